package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/zoo-arcadia/arcadia-api/internal/api/middleware"
	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Its absence means the route was wired without the guard; fail closed.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	principal, _ := c.Get(middleware.PrincipalKey).(*domain.User)
	if principal == nil {
		return nil, domain.ErrMissingToken
	}
	return principal, nil
}
