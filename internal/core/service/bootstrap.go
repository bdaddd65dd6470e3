package service

import (
	"context"
	"errors"
	"strings"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// EnsureAdmin creates an admin identity for email unless one already holds it.
// Empty email or password disables the bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, displayName, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, domain.ErrIdentityNotFound):
		return s.internal("lookup bootstrap admin", err)
	}

	if displayName == "" {
		displayName = domain.RoleAdmin
	}
	_, err = s.Register(ctx, domain.ExplicitPassword{
		RegistrationProfile: domain.RegistrationProfile{
			DisplayName: displayName,
			Email:       email,
			Role:        domain.RoleAdmin,
		},
		Password: password,
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
