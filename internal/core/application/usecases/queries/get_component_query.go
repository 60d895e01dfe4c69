package queries

import (
	"errors"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrGetComponentQueryIsNotConstructed = errors.New(
	"GetComponentQuery must be created via NewGetComponentQuery constructor",
)

// GetComponentQuery retrieves one component with its allowed statuses and history.
//
// Example:
//
//	query, err := NewGetComponentQuery(id)
//	if err != nil {
//	    return err
//	}
//	c, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetComponentQuery struct {
	componentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetComponentQuery creates the query for the given component.
func NewGetComponentQuery(componentID kernel.UUID) (GetComponentQuery, error) {
	if err := componentID.Validate(); err != nil {
		return GetComponentQuery{}, err
	}
	return GetComponentQuery{
		componentID: componentID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetComponentQuery) Validate() error {
	return q.guard.Validate(ErrGetComponentQueryIsNotConstructed)
}

// ComponentID returns the requested component.
func (q GetComponentQuery) ComponentID() kernel.UUID {
	return q.componentID
}

// TransitionView is one history entry of the read model.
type TransitionView struct {
	From           StatusView
	To             StatusView
	At             time.Time
	Note           string
	Actor          string
	Automatic      bool
	DocumentNumber *string
	DocumentDate   *time.Time
}

// GetComponentQueryResponse is the component detail read model.
type GetComponentQueryResponse struct {
	ID              kernel.UUID
	Code            string
	WorkOrder       string
	Status          StatusView
	Treatments      []string
	AllowedStatuses []StatusView
	History         []TransitionView
	Version         int
}
