package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/becas/scholarship-system/internal/core/domain"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	token, err := issuer.Issue(domain.SessionClaims{
		SubjectID:   42,
		Role:        domain.RoleStudent,
		DisplayName: "ana",
		Email:       "ana@x.com",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != 42 || claims.Role != domain.RoleStudent || claims.DisplayName != "ana" || claims.Email != "ana@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %s", got)
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	now := time.Now()
	issuer := NewJWTIssuer("secret", time.Hour).WithClock(func() time.Time { return now })

	token, err := issuer.Issue(domain.SessionClaims{SubjectID: 1, Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after expiry, got %v", err)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	token, err := NewJWTIssuer("secret", time.Hour).Issue(domain.SessionClaims{SubjectID: 1})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewJWTIssuer("other", time.Hour).Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTIssuer_Malformed(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("Verify(%q): expected ErrUnauthorized, got %v", tok, err)
		}
	}
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTIssuer("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTIssuer_RequiresExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTIssuer("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTIssuer_NonNumericSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := NewJWTIssuer("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != 0 {
		t.Fatalf("expected zero subject, got %d", claims.SubjectID)
	}
}
