package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/api/metrics"
	"github.com/becas/scholarship-system/internal/core/domain"
	"github.com/becas/scholarship-system/internal/core/ports"
)

// Context keys populated by Auth.
const (
	ContextIdentity = "identity"
	ContextUserID   = "user_id"
	ContextRole     = "role"
)

// IdentityResolver re-reads the subject of a verified token.
// A nil identity with a nil error means the subject no longer exists.
type IdentityResolver interface {
	ValidateIdentityByID(ctx context.Context, id int64) (*domain.Identity, error)
}

// Auth verifies the bearer token, re-resolves its subject on every request and
// injects the identity into context. Every rejection renders the same 401; the
// reason is only logged and counted.
func Auth(tokens ports.TokenIssuer, identities IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return guard(tokens, identities, log, false)
}

// OptionalAuth lets requests without an Authorization header through
// anonymously. A header that is present is checked exactly like Auth.
func OptionalAuth(tokens ports.TokenIssuer, identities IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return guard(tokens, identities, log, true)
}

func guard(tokens ports.TokenIssuer, identities IdentityResolver, log zerolog.Logger, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if optional {
					return next(c)
				}
				return reject(c, log, "missing_header", nil)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				return reject(c, log, "malformed_header", nil)
			}

			claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return reject(c, log, "invalid_token", err)
			}
			if claims.SubjectID <= 0 {
				return reject(c, log, "invalid_subject", nil)
			}

			identity, err := identities.ValidateIdentityByID(c.Request().Context(), claims.SubjectID)
			if err != nil {
				return reject(c, log, "store_error", err)
			}
			if identity == nil {
				return reject(c, log, "unknown_identity", nil)
			}

			c.Set(ContextIdentity, identity)
			c.Set(ContextUserID, identity.ID)
			c.Set(ContextRole, identity.Role)

			return next(c)
		}
	}
}

func reject(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()

	evt := log.Info()
	if reason == "store_error" {
		evt = log.Error()
	}
	evt.Err(err).
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request rejected by auth guard")

	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
