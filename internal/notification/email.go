package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"settings_backend/internal/config"
	"settings_backend/internal/logger"
)

// SMTPProvider доставляет код подтверждения на email через SMTP.
type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.cfg.Email.FromEmail, p.cfg.Email.FromName))
	m.SetHeader("To", msg.Address)
	m.SetHeader("Subject", SubjectFor(msg.Channel))
	m.SetBody("text/html", renderConfirmationBody(msg))

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	logger.CtxInfo(ctx, "Verification code sent over email", "recipient", msg.RecipientID)
	return nil
}

func renderConfirmationBody(msg Message) string {
	return fmt.Sprintf(
		"<p>Ваш код підтвердження: <b>%s</b></p>",
		msg.Parameters["verificationCode"],
	)
}
