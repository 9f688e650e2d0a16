package ports

import (
	"context"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

type AuthService interface {
	// Login validates an email/password pair and issues a token pair.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (domain.TokenPair, *domain.User, error)
	// Refresh verifies a refresh token, re-fetches the current principal by
	// subject id, and issues a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, *domain.User, error)
}
