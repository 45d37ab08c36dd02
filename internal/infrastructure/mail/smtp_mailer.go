package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/config"
)

// SMTPMailer implementa ports.Mailer sobre SMTP com STARTTLS
type SMTPMailer struct {
	cfg    *config.SMTPConfig
	logger ports.Logger
}

// NewSMTPMailer cria um novo SMTPMailer
func NewSMTPMailer(cfg *config.SMTPConfig, logger ports.Logger) ports.Mailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}
