package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/becas/scholarship-system/internal/api/middleware"
	"github.com/becas/scholarship-system/internal/core/domain"
)

// ctxIdentity returns the identity the Auth middleware resolved for this
// request. A missing identity means the route was mounted without the guard.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := c.Get(middleware.ContextIdentity).(*domain.Identity)
	if !ok || identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return identity, nil
}

// callerIsAdmin reports whether the request carries an authenticated admin.
func callerIsAdmin(c echo.Context) bool {
	identity, ok := c.Get(middleware.ContextIdentity).(*domain.Identity)
	return ok && identity != nil && identity.Role == domain.RoleAdmin
}
