package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

// NopMailer logs instead of sending. Used in development when no SMTP host
// is configured; secrets are never logged.
type NopMailer struct {
	log zerolog.Logger
}

func NewNopMailer(log zerolog.Logger) *NopMailer {
	return &NopMailer{log: log}
}

func (m *NopMailer) SendWelcome(_ context.Context, user *domain.User, _ string) error {
	m.log.Info().Str("to", user.Email).Msg("nop mailer: welcome mail suppressed")
	return nil
}

func (m *NopMailer) SendPasswordChanged(_ context.Context, user *domain.User) error {
	m.log.Info().Str("to", user.Email).Msg("nop mailer: password-changed mail suppressed")
	return nil
}

func (m *NopMailer) SendResetCode(_ context.Context, user *domain.User, _ string) error {
	m.log.Info().Str("to", user.Email).Msg("nop mailer: reset-code mail suppressed")
	return nil
}
