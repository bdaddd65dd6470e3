package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/core/domain"
	"github.com/becas/scholarship-system/internal/core/ports"
)

// AuthService implements registration, login, password change and identity
// re-validation over a credential store.
type AuthService struct {
	store   ports.CredentialStore
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
	now     func() time.Time
}

// AuthOption configures optional collaborators of AuthService.
type AuthOption func(*AuthService)

// WithLoginLimiter enables failed-login throttling.
func WithLoginLimiter(l ports.LoginLimiter) AuthOption {
	return func(s *AuthService) { s.limiter = l }
}

// WithAuditSink forwards authentication events to sink.
func WithAuditSink(sink ports.AuditSink) AuthOption {
	return func(s *AuthService) { s.audit = sink }
}

func NewAuthService(
	store ports.CredentialStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, req domain.RegistrationRequest) (*ports.AuthResult, error) {
	if req == nil {
		return nil, domain.InvalidInput("registration data is required")
	}
	profile, err := normalizeProfile(req.Profile())
	if err != nil {
		return nil, err
	}

	var plaintext, generated string
	switch r := req.(type) {
	case domain.ExplicitPassword:
		plaintext = r.Password
	case domain.GeneratedPassword:
		if r.Age <= 0 {
			return nil, domain.InvalidInput("age must be a positive number")
		}
		generated, err = generatePassword(profile.DisplayName, profile.Surname, r.Age)
		if err != nil {
			return nil, domain.Internal("generate password", err)
		}
		plaintext = generated
	default:
		return nil, domain.InvalidInput("unsupported registration type")
	}
	if err := s.hasher.Validate(plaintext); err != nil {
		return nil, err
	}

	if profile.Email != "" {
		existing, err := s.store.FindByEmail(ctx, profile.Email)
		switch {
		case err == nil && existing != nil:
			return nil, domain.Conflict("email already registered")
		case err != nil && !errors.Is(err, domain.ErrIdentityNotFound):
			return nil, s.internal("lookup identity by email", err)
		}
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.store.Create(ctx, &domain.Identity{
		DisplayName:  profile.DisplayName,
		Surname:      profile.Surname,
		Email:        profile.Email,
		PasswordHash: hash,
		Role:         profile.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent registration can pass the pre-check; the store's unique
		// constraint is authoritative.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.Conflict("email already registered")
		}
		return nil, s.internal("create identity", err)
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(created))
	if err != nil {
		return nil, s.internal("issue token", err)
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("identity registered")
	s.record(domain.EventRegistered, created.ID, profile.identifier(), "")

	return &ports.AuthResult{Token: token, User: created.Public(), GeneratedPassword: generated}, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.InvalidInput("identifier and password are required")
	}

	byIdentifier := identifierKey(identifier)
	if s.lockedOut(ctx, byIdentifier) {
		s.record(domain.EventLoginFailed, 0, identifier, "locked")
		return nil, domain.Unauthorized("too many failed attempts, try again later")
	}

	user, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.loginFailed(ctx, 0, identifier, "unknown_identifier", byIdentifier)
			return nil, domain.Unauthorized("user not found")
		}
		return nil, s.internal("lookup identity", err)
	}

	// The account counter is shared by every identifier that resolves to it.
	byAccount := accountKey(user.ID)
	if s.lockedOut(ctx, byAccount) {
		s.record(domain.EventLoginFailed, user.ID, identifier, "locked")
		return nil, domain.Unauthorized("too many failed attempts, try again later")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(ctx, user.ID, identifier, "invalid_password", byIdentifier, byAccount)
		return nil, domain.Unauthorized("invalid password")
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(user))
	if err != nil {
		return nil, s.internal("issue token", err)
	}

	s.resetAttempts(ctx, byIdentifier, byAccount)
	s.record(domain.EventLoginSucceeded, user.ID, identifier, "")

	return &ports.AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if userID <= 0 {
		return domain.InvalidInput("invalid user id")
	}
	if currentPassword == "" {
		return domain.InvalidInput("current password is required")
	}
	if err := s.hasher.Validate(newPassword); err != nil {
		return err
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return domain.NotFound("user not found")
		}
		return s.internal("lookup identity by id", err)
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.Unauthorized("current password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.store.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return domain.NotFound("user not found")
		}
		return s.internal("update password", err)
	}

	s.log.Info().Int64("user_id", userID).Msg("password changed")
	s.record(domain.EventPasswordChanged, userID, user.DisplayName, "")
	return nil
}

func (s *AuthService) ValidateIdentityByID(ctx context.Context, userID int64) (*domain.Identity, error) {
	if userID <= 0 {
		return nil, nil
	}
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, nil
		}
		return nil, s.internal("lookup identity by id", err)
	}
	return user, nil
}

func (s *AuthService) lockedOut(ctx context.Context, key string) bool {
	if s.limiter == nil {
		return false
	}
	blocked, err := s.limiter.Blocked(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("login limiter check failed, continuing")
		return false
	}
	return blocked
}

func (s *AuthService) loginFailed(ctx context.Context, userID int64, identifier, reason string, keys ...string) {
	if s.limiter != nil {
		for _, key := range keys {
			if err := s.limiter.RecordFailure(ctx, key); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("failed to record login attempt")
			}
		}
	}
	s.log.Info().Str("identifier", identifier).Str("reason", reason).Msg("login rejected")
	s.record(domain.EventLoginFailed, userID, identifier, reason)
}

func (s *AuthService) resetAttempts(ctx context.Context, keys ...string) {
	if s.limiter == nil {
		return
	}
	for _, key := range keys {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to reset login attempts")
		}
	}
}

// Limiter keys live in separate namespaces so a display name can never
// collide with an account counter.
func identifierKey(identifier string) string {
	return "identifier:" + strings.ToLower(identifier)
}

func accountKey(id int64) string {
	return "account:" + strconv.FormatInt(id, 10)
}

func (s *AuthService) record(typ domain.AuthEventType, userID int64, identifier, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Type:       typ,
		SubjectID:  userID,
		Identifier: identifier,
		Reason:     reason,
		OccurredAt: s.now().UTC(),
	})
}

// internal logs the cause and returns an opaque internal error.
func (s *AuthService) internal(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("auth operation failed")
	return domain.Internal(op, err)
}

type normalizedProfile domain.RegistrationProfile

func (p normalizedProfile) identifier() string {
	if p.Email != "" {
		return p.Email
	}
	return p.DisplayName
}

func normalizeProfile(p domain.RegistrationProfile) (normalizedProfile, error) {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Surname = strings.TrimSpace(p.Surname)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Role = strings.TrimSpace(p.Role)

	if p.DisplayName == "" {
		return normalizedProfile{}, domain.InvalidInput("display name is required")
	}
	if p.Role == "" {
		p.Role = domain.DefaultRole
	}
	if !domain.IsValidRole(p.Role) {
		return normalizedProfile{}, domain.InvalidInput("role must be estudiante or admin")
	}
	return normalizedProfile(p), nil
}
