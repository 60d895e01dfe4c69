package ports

import (
	"context"

	"tracker/internal/core/domain/model/notification"
)

// NotificationDispatcher delivers a notification request to its recipients.
type NotificationDispatcher interface {
	Send(ctx context.Context, request notification.Request) error
}
