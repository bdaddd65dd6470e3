package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// CredentialStore keeps identities in process memory. Intended for local
// development and tests; contents are lost on restart.
type CredentialStore struct {
	mu     sync.RWMutex
	users  map[int64]domain.Identity
	nextID int64
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{users: make(map[int64]domain.Identity)}
}

// FindByIdentifier prefers an email match, then the lowest id with that display name.
func (s *CredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u, err := s.FindByEmail(ctx, identifier); err == nil {
		return u, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.Identity
	for _, u := range s.users {
		if u.DisplayName != identifier {
			continue
		}
		if found == nil || u.ID < found.ID {
			u := u
			found = &u
		}
	}
	if found == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return found, nil
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	if email == "" {
		return nil, domain.ErrIdentityNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (s *CredentialStore) FindByID(ctx context.Context, id int64) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return &u, nil
}

// Create checks email uniqueness and assigns the id under a single lock.
func (s *CredentialStore) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity.Email != "" {
		for _, u := range s.users {
			if u.Email == identity.Email {
				return nil, domain.ErrEmailTaken
			}
		}
	}

	s.nextID++
	stored := *identity
	stored.ID = s.nextID
	s.users[stored.ID] = stored
	return &stored, nil
}

func (s *CredentialStore) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	u.PasswordHash = newHash
	s.users[id] = u
	return nil
}

func (s *CredentialStore) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrIdentityNotFound
	}
	delete(s.users, id)
	return nil
}

// List returns identities ordered by id.
func (s *CredentialStore) List(ctx context.Context) ([]*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Identity, 0, len(s.users))
	for _, u := range s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CredentialStore) Ping(ctx context.Context) error { return ctx.Err() }
