package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// AuditRepository persists authentication events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService writes a single event to the audit trail.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink is the non-blocking entry point used by request handlers and
// services. Implementations must not block the caller.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// LoginThrottle tracks failed logins per email.
type LoginThrottle interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
