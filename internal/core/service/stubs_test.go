package service

import (
	"context"
	"sync"

	"github.com/becas/scholarship-system/internal/core/domain"
)

type stubStore struct {
	mu     sync.Mutex
	users  map[int64]*domain.Identity
	nextID int64
	writes int
	reads  int

	// createErr, when set, is returned by Create instead of storing.
	createErr error
	// findErr, when set, is returned by every lookup.
	findErr error
}

func newStubStore() *stubStore {
	return &stubStore{users: make(map[int64]*domain.Identity)}
}

func cloneIdentity(u *domain.Identity) *domain.Identity {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubStore) FindByIdentifier(_ context.Context, identifier string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, u := range s.users {
		if u.DisplayName == identifier || (u.Email != "" && u.Email == identifier) {
			return cloneIdentity(u), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, u := range s.users {
		if u.Email != "" && u.Email == email {
			return cloneIdentity(u), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (s *stubStore) FindByID(_ context.Context, id int64) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(u), nil
}

func (s *stubStore) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.writes++
	s.nextID++
	stored := cloneIdentity(identity)
	stored.ID = s.nextID
	s.users[stored.ID] = stored
	return cloneIdentity(stored), nil
}

func (s *stubStore) UpdatePassword(_ context.Context, id int64, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	s.writes++
	u.PasswordHash = newHash
	return nil
}

func (s *stubStore) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrIdentityNotFound
	}
	s.writes++
	delete(s.users, id)
	return nil
}

func (s *stubStore) List(_ context.Context) ([]*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := make([]*domain.Identity, 0, len(s.users))
	for id := int64(1); id <= s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, cloneIdentity(u))
		}
	}
	return out, nil
}

func (s *stubStore) Ping(context.Context) error { return nil }

func (s *stubStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *stubStore) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// stubLimiter blocks every key once blocked is set, or a key once its
// failures reach max (when max > 0).
type stubLimiter struct {
	blocked  bool
	max      int
	failures map[string]int
	resets   map[string]int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), resets: make(map[string]int)}
}

func (l *stubLimiter) Blocked(_ context.Context, key string) (bool, error) {
	if l.blocked {
		return true, nil
	}
	return l.max > 0 && l.failures[key] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, identifier string) error {
	l.failures[identifier]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.resets[key]++
	delete(l.failures, key)
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingSink) Record(e domain.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) types() []domain.AuthEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
