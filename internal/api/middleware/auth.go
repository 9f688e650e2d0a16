package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
	"github.com/zoo-arcadia/arcadia-api/internal/core/ports"
	"github.com/zoo-arcadia/arcadia-api/internal/core/token"
)

const (
	// PrincipalKey is the echo context key holding the authenticated *domain.User.
	PrincipalKey = "principal"
	// ClaimsKey is the echo context key holding the verified *token.Claims.
	ClaimsKey = "claims"
)

// Auth is the request guard. It requires a bearer token to be present,
// verifies it, and resolves the subject to a known principal before any
// handler logic runs. The principal is re-fetched on every request so a
// deleted account is locked out immediately even while its tokens are
// still unexpired.
func Auth(tokens *token.Service, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrMissingToken
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrInvalidToken
				}
				return err
			}

			c.Set(PrincipalKey, user)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}
