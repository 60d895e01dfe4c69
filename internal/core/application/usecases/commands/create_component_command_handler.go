package commands

import (
	"context"

	"tracker/internal/core/domain/model/component"
)

// CreateComponentCommandHandler registers new components in status NEW.
type CreateComponentCommandHandler struct {
	uowFactory ComponentUoWFactory
}

// NewCreateComponentCommandHandler creates a handler for component registration.
func NewCreateComponentCommandHandler(uowFactory ComponentUoWFactory) CreateComponentCommandHandler {
	return CreateComponentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the component and persists it in its own transaction.
func (h CreateComponentCommandHandler) Handle(ctx context.Context, cmd CreateComponentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := component.NewComponent(cmd.ComponentID(), cmd.Code(), cmd.WorkOrder(), cmd.Treatments())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ComponentRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
