package commands

import (
	"errors"
	"slices"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrCreateComponentCommandIsNotConstructed = errors.New(
	"CreateComponentCommand must be created via NewCreateComponentCommand constructor",
)

// CreateComponentCommand registers a component of a work order.
//
// Example:
//
//	id := kernel.NewUUID()
//	cmd, err := NewCreateComponentCommand(id, "TAV-0042", "WO-2025-118", []string{"zinc", "paint"})
//	if err != nil {
//	    return fmt.Errorf("invalid component data: %w", err)
//	}
//
//	handler := NewCreateComponentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create component: %w", err)
//	}
type CreateComponentCommand struct { //nolint:recvcheck //using for validation
	componentID kernel.UUID
	code        string
	workOrder   string
	treatments  []string

	guard guard.ConstructorGuard
}

// NewCreateComponentCommand creates a command to register a new component.
// Treatment names are trimmed and lower-cased; blank entries and duplicates are dropped.
func NewCreateComponentCommand(
	componentID kernel.UUID,
	code, workOrder string,
	treatments []string,
) (CreateComponentCommand, error) {
	cmd := CreateComponentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setComponentID(componentID),
		cmd.setCode(code),
		cmd.setWorkOrder(workOrder),
	); err != nil {
		return CreateComponentCommand{}, err
	}
	cmd.treatments = NormalizeTreatments(treatments)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateComponentCommand) Validate() error {
	return c.guard.Validate(ErrCreateComponentCommandIsNotConstructed)
}

// ComponentID returns the identifier of the new component.
func (c CreateComponentCommand) ComponentID() kernel.UUID {
	return c.componentID
}

// Code returns the human identifier of the component.
func (c CreateComponentCommand) Code() string {
	return c.code
}

// WorkOrder returns the parent work order code.
func (c CreateComponentCommand) WorkOrder() string {
	return c.workOrder
}

// Treatments returns the normalized treatment names.
func (c CreateComponentCommand) Treatments() []string {
	return slices.Clone(c.treatments)
}

func (c *CreateComponentCommand) setComponentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.componentID = id
	return nil
}

func (c *CreateComponentCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	c.code = code
	return nil
}

func (c *CreateComponentCommand) setWorkOrder(workOrder string) error {
	workOrder = strings.TrimSpace(workOrder)
	if workOrder == "" {
		return errs.NewValueIsRequiredError("work order")
	}

	c.workOrder = workOrder
	return nil
}

// NormalizeTreatments trims and lower-cases treatment names, dropping blanks
// and later duplicates.
func NormalizeTreatments(treatments []string) []string {
	normalized := make([]string, 0, len(treatments))
	for _, name := range treatments {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || slices.Contains(normalized, name) {
			continue
		}
		normalized = append(normalized, name)
	}
	return normalized
}
