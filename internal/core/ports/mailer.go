package ports

import (
	"context"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

// Mailer sends the templated notifications triggered by the password
// lifecycle. Each send is awaited; a failure propagates as an error from the
// operation that triggered it.
type Mailer interface {
	// SendWelcome delivers the one-time plaintext temporary password to a
	// freshly provisioned account.
	SendWelcome(ctx context.Context, user *domain.User, tempPassword string) error
	SendPasswordChanged(ctx context.Context, user *domain.User) error
	SendResetCode(ctx context.Context, user *domain.User, code string) error
}
