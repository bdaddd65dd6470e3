package ports

import (
	"context"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  domain.PublicUser
	// GeneratedPassword is set only for domain.GeneratedPassword registrations.
	GeneratedPassword string
}

type AuthService interface {
	Register(ctx context.Context, req domain.RegistrationRequest) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	// ValidateIdentityByID returns (nil, nil) for non-positive or unknown ids.
	ValidateIdentityByID(ctx context.Context, userID int64) (*domain.Identity, error)
}

// UserService exposes the administrative view over the credential store.
type UserService interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
	Get(ctx context.Context, id int64) (*domain.PublicUser, error)
	Remove(ctx context.Context, id int64) error
}
