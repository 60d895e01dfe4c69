package ports

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/kernel"
)

// ErrComponentIsLocked is returned by ComponentLocker when another writer holds the lock.
var ErrComponentIsLocked = errors.New("component is locked by another writer")

// ReleaseFunc frees a lock obtained from ComponentLocker.
type ReleaseFunc func(ctx context.Context) error

// ComponentLocker serializes status changes of one component across processes.
// It complements the optimistic version check done by ComponentRepository.Update.
type ComponentLocker interface {
	// Lock acquires the component's lock or fails with ErrComponentIsLocked.
	Lock(ctx context.Context, id kernel.UUID) (ReleaseFunc, error)
}
