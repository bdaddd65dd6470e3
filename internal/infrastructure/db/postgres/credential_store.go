package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becas/scholarship-system/internal/core/domain"
)

const uniqueViolation = "23505"

const identityColumns = `id, display_name, surname, COALESCE(email, ''), password_hash, role, created_at, updated_at`

// CredentialStore implements ports.CredentialStore using pgxpool.
type CredentialStore struct {
	db *pgxpool.Pool
}

func NewCredentialStore(db *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{db: db}
}

// FindByIdentifier prefers an email match, then the lowest id with that display name.
func (s *CredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	const q = `SELECT ` + identityColumns + ` FROM identities
		WHERE email = lower($1) OR display_name = $1
		ORDER BY (email = lower($1)) IS TRUE DESC, id
		LIMIT 1`
	return s.queryOne(ctx, q, identifier)
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	if email == "" {
		return nil, domain.ErrIdentityNotFound
	}
	const q = `SELECT ` + identityColumns + ` FROM identities WHERE email = lower($1)`
	return s.queryOne(ctx, q, email)
}

func (s *CredentialStore) FindByID(ctx context.Context, id int64) (*domain.Identity, error) {
	const q = `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`
	return s.queryOne(ctx, q, id)
}

func (s *CredentialStore) queryOne(ctx context.Context, q string, args ...any) (*domain.Identity, error) {
	u, err := scanIdentity(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return u, nil
}

// Create relies on the unique email constraint; a violation maps to ErrEmailTaken.
func (s *CredentialStore) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	const q = `INSERT INTO identities (display_name, surname, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING ` + identityColumns

	u, err := scanIdentity(s.db.QueryRow(ctx, q,
		identity.DisplayName,
		identity.Surname,
		strings.ToLower(identity.Email),
		identity.PasswordHash,
		identity.Role,
		identity.CreatedAt,
		identity.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return u, nil
}

func (s *CredentialStore) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	const q = `UPDATE identities SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := s.db.Exec(ctx, q, id, newHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (s *CredentialStore) Remove(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (s *CredentialStore) List(ctx context.Context) ([]*domain.Identity, error) {
	rows, err := s.db.Query(ctx, `SELECT `+identityColumns+` FROM identities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var out []*domain.Identity
	for rows.Next() {
		u, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var u domain.Identity
	if err := row.Scan(
		&u.ID,
		&u.DisplayName,
		&u.Surname,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
