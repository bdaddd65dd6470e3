package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// AuditRepository writes auth events to the auth_events table.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	const q = `INSERT INTO auth_events (type, user_id, identifier, reason, occurred_at)
		VALUES ($1, NULLIF($2::bigint, 0), $3, $4, $5)`
	_, err := r.db.Exec(ctx, q,
		string(event.Type),
		event.SubjectID,
		event.Identifier,
		event.Reason,
		event.OccurredAt.UTC(),
	)
	return err
}
