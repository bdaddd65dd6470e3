package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/core/domain"
)

func TestHTTPErrorHandler_MapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{domain.InvalidInput("password too short"), http.StatusBadRequest, `{"error":"password too short"}`},
		{domain.Unauthorized("invalid password"), http.StatusUnauthorized, `{"error":"invalid password"}`},
		{domain.Conflict("email already registered"), http.StatusConflict, `{"error":"email already registered"}`},
		{domain.NotFound("user not found"), http.StatusNotFound, `{"error":"user not found"}`},
		{domain.Internal("create identity", errors.New("pq: connection reset")), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{echo.NewHTTPError(http.StatusUnauthorized, "unauthorized"), http.StatusUnauthorized, `{"error":"unauthorized"}`},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != tc.body {
			t.Fatalf("%v: unexpected body %s", tc.err, rec.Body.String())
		}
	}
}
