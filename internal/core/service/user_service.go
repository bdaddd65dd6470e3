package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/core/domain"
	"github.com/becas/scholarship-system/internal/core/ports"
)

// UserService serves the administrative identity routes.
type UserService struct {
	store ports.CredentialStore
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewUserService(store ports.CredentialStore, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{store: store, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list identities failed")
		return nil, domain.Internal("list identities", err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.PublicUser, error) {
	if id <= 0 {
		return nil, domain.InvalidInput("invalid user id")
	}
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.NotFound("user not found")
		}
		s.log.Error().Err(err).Int64("user_id", id).Msg("get identity failed")
		return nil, domain.Internal("get identity", err)
	}
	pub := u.Public()
	return &pub, nil
}

func (s *UserService) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.InvalidInput("invalid user id")
	}
	if err := s.store.Remove(ctx, id); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return domain.NotFound("user not found")
		}
		s.log.Error().Err(err).Int64("user_id", id).Msg("remove identity failed")
		return domain.Internal("remove identity", err)
	}

	s.log.Info().Int64("user_id", id).Msg("identity removed")
	if s.audit != nil {
		s.audit.Record(domain.AuthEvent{
			Type:       domain.EventIdentityRemoved,
			SubjectID:  id,
			OccurredAt: time.Now().UTC(),
		})
	}
	return nil
}
