package ports

import "context"

// Mailer envia e-mails de notificação (convites de compartilhamento).
// A entrega SMTP é um colaborador externo; falhas são do chamador.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
