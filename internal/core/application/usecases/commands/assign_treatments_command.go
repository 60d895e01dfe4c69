package commands

import (
	"errors"
	"slices"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/guard"
)

var ErrAssignTreatmentsCommandIsNotConstructed = errors.New(
	"AssignTreatmentsCommand must be created via NewAssignTreatmentsCommand constructor",
)

// AssignTreatmentsCommand replaces the treatments of a component.
// An empty list removes all treatments.
type AssignTreatmentsCommand struct { //nolint:recvcheck //using for validation
	componentID kernel.UUID
	treatments  []string

	guard guard.ConstructorGuard
}

// NewAssignTreatmentsCommand creates the command; names are normalized like on creation.
func NewAssignTreatmentsCommand(componentID kernel.UUID, treatments []string) (AssignTreatmentsCommand, error) {
	if err := componentID.Validate(); err != nil {
		return AssignTreatmentsCommand{}, err
	}

	return AssignTreatmentsCommand{
		componentID: componentID,
		treatments:  NormalizeTreatments(treatments),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignTreatmentsCommand) Validate() error {
	return c.guard.Validate(ErrAssignTreatmentsCommandIsNotConstructed)
}

// ComponentID returns the component to update.
func (c AssignTreatmentsCommand) ComponentID() kernel.UUID {
	return c.componentID
}

// Treatments returns the normalized treatment names.
func (c AssignTreatmentsCommand) Treatments() []string {
	return slices.Clone(c.treatments)
}
