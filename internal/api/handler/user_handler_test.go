package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/becas/scholarship-system/internal/core/domain"
)

type stubUserService struct {
	users   []domain.PublicUser
	removed []int64
}

func (s *stubUserService) List(context.Context) ([]domain.PublicUser, error) {
	return s.users, nil
}

func (s *stubUserService) Get(_ context.Context, id int64) (*domain.PublicUser, error) {
	for _, u := range s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, domain.NotFound("user not found")
}

func (s *stubUserService) Remove(_ context.Context, id int64) error {
	s.removed = append(s.removed, id)
	return nil
}

func TestUserHandler_List(t *testing.T) {
	h := NewUserHandler(&stubUserService{users: []domain.PublicUser{{ID: 1, DisplayName: "ana"}}})

	c, rec := newContext(http.MethodGet, "/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Get(t *testing.T) {
	h := NewUserHandler(&stubUserService{users: []domain.PublicUser{{ID: 1, DisplayName: "ana"}}})

	c, rec := newContext(http.MethodGet, "/users/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/users/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserHandler_InvalidID(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	for _, raw := range []string{"abc", "0", "-3"} {
		c, _ := newContext(http.MethodDelete, "/users/"+raw, "")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		if err := h.Delete(c); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("id %q: expected ErrInvalidInput, got %v", raw, err)
		}
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodDelete, "/users/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.removed) != 1 || svc.removed[0] != 5 {
		t.Fatalf("unexpected removals %v", svc.removed)
	}
}
