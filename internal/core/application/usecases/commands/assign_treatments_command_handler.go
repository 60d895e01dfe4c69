package commands

import (
	"context"

	"tracker/internal/core/domain/model/component"
)

// AssignTreatmentsCommandHandler replaces treatments and refreshes the
// allowed-status cache in the same write.
type AssignTreatmentsCommandHandler struct {
	uowFactory ComponentUoWFactory
}

// NewAssignTreatmentsCommandHandler creates a handler for treatment assignment.
func NewAssignTreatmentsCommandHandler(uowFactory ComponentUoWFactory) AssignTreatmentsCommandHandler {
	return AssignTreatmentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the component, swaps its treatments and saves it with a version check.
func (h AssignTreatmentsCommandHandler) Handle(ctx context.Context, cmd AssignTreatmentsCommand) (*component.Component, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ComponentRepository()
	current, err := repo.Get(ctx, cmd.ComponentID())
	if err != nil {
		return nil, err
	}

	updated, err := current.WithTreatments(cmd.Treatments())
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
