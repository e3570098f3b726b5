package ports

import (
	"context"
	"time"

	"github.com/campushub/user-directory/internal/core/domain"
)

// DirectoryEventInput is a single audit event emitted by a directory
// mutation, before deduplication and persistence.
type DirectoryEventInput struct {
	UserID    string
	Action    string
	Actor     string
	Timestamp time.Time
}

// AuditService processes audit events off the request path.
type AuditService interface {
	Process(ctx context.Context, in DirectoryEventInput) error
}

// AuditRepository persists the directory audit trail. The trail is
// append-only; nothing in the request path reads it back.
type AuditRepository interface {
	Insert(ctx context.Context, ev *domain.DirectoryEvent) error
}
