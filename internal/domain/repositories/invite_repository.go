package repositories

import (
	"context"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
)

// InviteRepository define a interface para persistência de convites
type InviteRepository interface {
	Create(ctx context.Context, invite *entities.Invite) error
	FindByRecipient(ctx context.Context, recipientEmail string) ([]*entities.Invite, error)
}
