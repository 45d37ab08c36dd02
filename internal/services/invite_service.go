package services

import (
	"context"
	"fmt"
	"time"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
	"github.com/elegacy/elegacy-backend/internal/domain/errors"
	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/domain/repositories"
)

// InviteService envia convites para visualizar um documento.
// O convite apenas lê o documento pelo ID; não altera ownership.
type InviteService struct {
	inviteRepo repositories.InviteRepository
	docRepo    repositories.DocumentRepository
	mailer     ports.Mailer
	logger     ports.Logger
}

// NewInviteService cria um novo InviteService
func NewInviteService(
	inviteRepo repositories.InviteRepository,
	docRepo repositories.DocumentRepository,
	mailer ports.Mailer,
	logger ports.Logger,
) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		docRepo:    docRepo,
		mailer:     mailer,
		logger:     logger,
	}
}

// Send convida recipientEmail a visualizar o documento. Só o dono do
// documento pode convidar.
func (s *InviteService) Send(ctx context.Context, senderEmail, recipientEmail, documentID string) (*entities.Invite, error) {
	if recipientEmail == "" || documentID == "" {
		return nil, errors.ErrInvalidEmail
	}

	document, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, errors.ErrStore
	}
	if document == nil {
		return nil, errors.ErrDocumentNotFound
	}
	if document.OwnerEmail != senderEmail {
		return nil, errors.ErrForbidden
	}

	subject := "You've been invited to access a document"
	body := fmt.Sprintf(
		"Hi,\n\n%s has invited you to view the document titled %q.\nAccess it from the app.\n\nRegards,\neLegacy Team\n",
		senderEmail, document.Title,
	)
	if err := s.mailer.Send(ctx, recipientEmail, subject, body); err != nil {
		s.logger.Error("invite mail failed",
			"document_id", documentID,
			"recipient", recipientEmail,
			"error", err,
		)
		return nil, err
	}

	invite := &entities.Invite{
		SenderEmail:    senderEmail,
		RecipientEmail: recipientEmail,
		DocumentID:     document.ID,
		DocumentTitle:  document.Title,
		Status:         entities.InviteStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, errors.ErrStore
	}

	s.logger.Info("invite sent",
		"id", invite.ID,
		"document_id", document.ID,
		"recipient", recipientEmail,
	)
	return invite, nil
}

// ListByRecipient lista convites recebidos; só o próprio destinatário
func (s *InviteService) ListByRecipient(ctx context.Context, callerEmail, recipientEmail string) ([]*entities.Invite, error) {
	if callerEmail != recipientEmail {
		return nil, errors.ErrForbidden
	}

	invites, err := s.inviteRepo.FindByRecipient(ctx, recipientEmail)
	if err != nil {
		return nil, errors.ErrStore
	}
	return invites, nil
}
