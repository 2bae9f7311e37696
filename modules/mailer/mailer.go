package mailer

import (
	"context"

	"hireflow-api/core/config"
	"hireflow-api/core/logger"

	"github.com/wneessen/go-mail"
)

// Message is one outbound email.
type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
}

// Mailer delivers a single message. Implementations report failure so the
// task queue can retry.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return err
	}
	if err := mm.AddToFormat(msg.ToName, msg.To); err != nil {
		return err
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.TextBody)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		logger.Error("SMTPMailer:Send", "error", err, "to", msg.To)
		return err
	}

	logger.Info("SMTPMailer:Send:Delivered", "to", msg.To, "subject", msg.Subject)
	return nil
}
