package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs internal errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from router, guard rejections, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	msg := domain.Message(err)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, fallback(msg, "invalid input")
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, fallback(msg, "unauthorized")
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, fallback(msg, "conflict")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, fallback(msg, "not found")
	}

	// Internal or unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func fallback(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
