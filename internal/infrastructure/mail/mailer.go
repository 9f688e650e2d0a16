// Package mail sends the lifecycle notification emails over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/zoo-arcadia/arcadia-api/internal/api/metrics"
	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

// Config captures the SMTP settings for outbound mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements ports.Mailer over an SMTP relay using go-mail.
// Sends are synchronous: a failure propagates to the lifecycle operation
// that triggered the notification.
type SMTPMailer struct {
	client *mail.Client
	from   string
	log    zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From, log: log}, nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, user *domain.User, tempPassword string) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nYour Arcadia account has been created.\n\nTemporary password: %s\n\nYou will be asked to choose a new password at first login.\n",
		user.Name, tempPassword,
	)
	return m.send(ctx, "welcome", user.Email, "Welcome to Arcadia", body)
}

func (m *SMTPMailer) SendPasswordChanged(ctx context.Context, user *domain.User) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nThe password of your Arcadia account was just changed. If this was not you, contact an administrator immediately.\n",
		user.Name,
	)
	return m.send(ctx, "password_changed", user.Email, "Your password was changed", body)
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, user *domain.User, code string) error {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nYour password reset code is: %s\n\nIt expires in 15 minutes. If you did not request a reset, ignore this message.\n",
		user.Name, code,
	)
	return m.send(ctx, "reset_code", user.Email, "Password reset code", body)
}

func (m *SMTPMailer) send(ctx context.Context, template, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		metrics.MailSendsTotal.WithLabelValues(template, "failure").Inc()
		return fmt.Errorf("send %s mail: %w", template, err)
	}

	metrics.MailSendsTotal.WithLabelValues(template, "success").Inc()
	m.log.Debug().Str("template", template).Msg("mail sent")
	return nil
}
