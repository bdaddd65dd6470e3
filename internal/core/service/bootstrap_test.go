package service

import (
	"context"
	"testing"

	"github.com/becas/scholarship-system/internal/core/domain"
)

func TestEnsureAdmin(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "", "Root@X.com", "rootpass"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "", "root@x.com", "rootpass"); err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}
	if store.writeCount() != 1 {
		t.Fatalf("expected exactly one write, got %d", store.writeCount())
	}

	admin, err := store.FindByEmail(ctx, "root@x.com")
	if err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if admin.Role != domain.RoleAdmin || admin.DisplayName != domain.RoleAdmin {
		t.Fatalf("unexpected admin %+v", admin)
	}
	if _, err := svc.Login(ctx, "root@x.com", "rootpass"); err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
}

func TestEnsureAdmin_Disabled(t *testing.T) {
	store := newStubStore()
	svc := newTestAuthService(store)

	if err := svc.EnsureAdmin(context.Background(), "admin", "", ""); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("disabled bootstrap must not write")
	}
}
