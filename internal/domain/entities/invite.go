package entities

import "time"

// InviteStatus representa o estado de um convite de compartilhamento
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRevoked  InviteStatus = "revoked"
)

// Invite representa um convite para visualizar um documento.
// O convite apenas referencia o documento por ID; não transfere ownership.
type Invite struct {
	ID             string
	SenderEmail    string
	RecipientEmail string
	DocumentID     string
	DocumentTitle  string
	Status         InviteStatus
	CreatedAt      time.Time
}
