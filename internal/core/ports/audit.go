package ports

import (
	"context"

	"github.com/becas/scholarship-system/internal/core/domain"
)

// AuditSink accepts audit events without blocking the caller.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes a single audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
