package queries

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrGetWorkOrderComponentsQueryIsNotConstructed = errors.New(
	"GetWorkOrderComponentsQuery must be created via NewGetWorkOrderComponentsQuery constructor",
)

// GetWorkOrderComponentsQuery lists the components of one work order in
// lifecycle order.
type GetWorkOrderComponentsQuery struct {
	workOrder string

	guard guard.ConstructorGuard
}

// NewGetWorkOrderComponentsQuery creates the query for a work order code.
func NewGetWorkOrderComponentsQuery(workOrder string) (GetWorkOrderComponentsQuery, error) {
	workOrder = strings.TrimSpace(workOrder)
	if workOrder == "" {
		return GetWorkOrderComponentsQuery{}, errs.NewValueIsRequiredError("work order")
	}
	return GetWorkOrderComponentsQuery{
		workOrder: workOrder,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkOrderComponentsQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderComponentsQueryIsNotConstructed)
}

// WorkOrder returns the requested work order code.
func (q GetWorkOrderComponentsQuery) WorkOrder() string {
	return q.workOrder
}

// ComponentSummary is one line of the work order board.
type ComponentSummary struct {
	ID         kernel.UUID
	Code       string
	Status     StatusView
	Treatments []string
}
