package ports

import (
	"context"

	"tracker/internal/core/domain/model/notification"
)

// NotificationRepository is the notification outbox.
type NotificationRepository interface {
	// Add enqueues a pending envelope.
	Add(ctx context.Context, envelope *notification.Envelope) error

	// Update stores the delivery bookkeeping of an envelope.
	Update(ctx context.Context, envelope *notification.Envelope) error

	// GetPending returns up to limit undelivered envelopes below
	// notification.MaxAttempts, fewest attempts first, then oldest.
	// Rows returned inside a transaction stay locked until it ends and are
	// skipped by concurrent callers.
	GetPending(ctx context.Context, limit int) ([]*notification.Envelope, error)
}
