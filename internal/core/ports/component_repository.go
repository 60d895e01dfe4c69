// Package ports defines the contracts between the tracker core and its
// infrastructure: persistence, notification delivery, locking and metrics.
// Adapters implement them; use cases depend only on these interfaces.
package ports

import (
	"context"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
)

// ComponentRepository defines the persistence contract for component aggregates.
// History is append-only: implementations only ever insert new records.
type ComponentRepository interface {
	// Add persists a new component aggregate.
	// Returns errs.ValueIsInvalidError when the code is already used in the work order.
	Add(ctx context.Context, aggregate *component.Component) error

	// Update persists a component loaded with Get and changed since.
	// The write succeeds only if the stored version still equals aggregate.Version();
	// otherwise errs.VersionIsInvalidError is returned and nothing is written.
	Update(ctx context.Context, aggregate *component.Component) error

	// Get retrieves a component with its full history, oldest record first.
	// Returns errs.ObjectNotFoundError when no component has the given id.
	Get(ctx context.Context, id kernel.UUID) (*component.Component, error)
}
