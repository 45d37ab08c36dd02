package repositories

import (
	"context"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// FindBy* retornam (nil, nil) quando o usuário não existe; erro só em
// falha de persistência.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
