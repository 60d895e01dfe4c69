package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command run.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction spanning the component store and the
// notification outbox. Repositories obtained from it share that transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error

	// Rollback is safe to defer; after Commit it is a no-op that may return an error.
	Rollback(ctx context.Context) error

	ComponentRepository() ComponentRepository
	NotificationRepository() NotificationRepository
}
