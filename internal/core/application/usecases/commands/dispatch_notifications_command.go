package commands

import (
	"errors"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// MaxDispatchBatchSize bounds how many outbox entries one run may lock.
const MaxDispatchBatchSize = 1000

// DispatchNotificationsCommand delivers up to batchSize pending outbox entries.
// It is normally issued by the scheduled dispatch job.
type DispatchNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates the command for one dispatch run.
func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize < 1 || batchSize > MaxDispatchBatchSize {
		return DispatchNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxDispatchBatchSize)
	}

	return DispatchNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of entries to deliver.
func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}
