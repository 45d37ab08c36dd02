package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	"github.com/elegacy/elegacy-backend/internal/domain/repositories"
)

// InviteRepository implementa repositories.InviteRepository
type InviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository cria um novo InviteRepository
func NewInviteRepository(db *gorm.DB) repositories.InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *entities.Invite) error {
	model := &InviteModel{
		ID:             invite.ID,
		SenderEmail:    invite.SenderEmail,
		RecipientEmail: invite.RecipientEmail,
		DocumentID:     invite.DocumentID,
		DocumentTitle:  invite.DocumentTitle,
		Status:         string(invite.Status),
		CreatedAt:      invite.CreatedAt.Unix(),
	}

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	invite.ID = model.ID
	return nil
}

func (r *InviteRepository) FindByRecipient(ctx context.Context, recipientEmail string) ([]*entities.Invite, error) {
	var models []*InviteModel

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Where("recipient_email = ?", recipientEmail).
		Order("created_at, id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	invites := make([]*entities.Invite, 0, len(models))
	for _, model := range models {
		invites = append(invites, &entities.Invite{
			ID:             model.ID,
			SenderEmail:    model.SenderEmail,
			RecipientEmail: model.RecipientEmail,
			DocumentID:     model.DocumentID,
			DocumentTitle:  model.DocumentTitle,
			Status:         entities.InviteStatus(model.Status),
			CreatedAt:      time.Unix(model.CreatedAt, 0),
		})
	}
	return invites, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *InviteRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
