package dto

import (
	"time"

	"github.com/elegacy/elegacy-backend/internal/domain/entities"
)

// SendInviteRequest representa a requisição de convite.
// O remetente vem da identidade autenticada, não do payload.
type SendInviteRequest struct {
	Recipient  string `json:"recipient" binding:"required,email"`
	DocumentID string `json:"documentId" binding:"required"`
}

// InviteResponse representa um convite na API
type InviteResponse struct {
	ID            string    `json:"id"`
	Sender        string    `json:"sender"`
	Recipient     string    `json:"recipient"`
	DocumentID    string    `json:"documentId"`
	DocumentTitle string    `json:"documentTitle"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToInviteResponse converte uma entidade Invite para InviteResponse
func ToInviteResponse(invite *entities.Invite) InviteResponse {
	return InviteResponse{
		ID:            invite.ID,
		Sender:        invite.SenderEmail,
		Recipient:     invite.RecipientEmail,
		DocumentID:    invite.DocumentID,
		DocumentTitle: invite.DocumentTitle,
		Status:        string(invite.Status),
		CreatedAt:     invite.CreatedAt,
	}
}

// ToInviteResponses converte uma lista de convites
func ToInviteResponses(invites []*entities.Invite) []InviteResponse {
	responses := make([]InviteResponse, len(invites))
	for i, invite := range invites {
		responses[i] = ToInviteResponse(invite)
	}
	return responses
}
