package ports

import (
	"context"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// CredentialStore persists identities. Lookups return domain.ErrIdentityNotFound
// when nothing matches; Create returns domain.ErrEmailTaken on a duplicate email.
type CredentialStore interface {
	// FindByIdentifier matches the display name or the email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id int64) (*domain.Identity, error)
	// Create assigns the identity ID and returns the stored record.
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, id int64, newHash string) error
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Identity, error)
	Ping(ctx context.Context) error
}
