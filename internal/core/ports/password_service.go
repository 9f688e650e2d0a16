package ports

import (
	"context"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

type PasswordService interface {
	// ProvisionUser creates an account with a generated temporary password,
	// stores only its hash, and emails the plaintext once. The account is
	// flagged to change its password on first login.
	ProvisionUser(ctx context.Context, email, name, roleName string) (*domain.User, error)
	// UpdatePassword verifies currentPassword against the stored hash before
	// persisting the new one. The reset flow replaces a password without this
	// check, but only through ResetPassword; there is no public bypass.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// InitiateReset issues a reset code for email and sends it. An unknown
	// email returns nil with no side effect.
	InitiateReset(ctx context.Context, email string) error
	// VerifyResetCode checks a code without consuming it, so it can be called
	// repeatedly before the actual reset.
	VerifyResetCode(ctx context.Context, email, code string) error
	// ResetPassword verifies the code, replaces the password, and consumes
	// the code entry.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
