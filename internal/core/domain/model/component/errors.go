package component

import (
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/status"
)

var (
	// ErrComponentIsNotConstructed is returned when a Component was not created
	// through NewComponent or RestoreComponent.
	ErrComponentIsNotConstructed = errors.New("Component must be created via NewComponent or RestoreComponent constructor")

	// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrMissingDocument is the sentinel wrapped by MissingDocumentError.
	ErrMissingDocument = errors.New("transport document is required")
)

// InvalidTransitionError reports a target outside the component's allowed set.
// Allowed carries the full set so a caller can re-prompt.
type InvalidTransitionError struct {
	Target  status.Status
	Allowed []status.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %q is not among [%s]",
		ErrInvalidTransition, e.Target.Code(), strings.Join(status.Codes(e.Allowed), ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// MissingDocumentError reports a transition to a status that needs a transport
// document when none was supplied.
type MissingDocumentError struct {
	Target status.Status
}

func (e *MissingDocumentError) Error() string {
	return fmt.Sprintf("%s: %q needs document number and date", ErrMissingDocument, e.Target.Code())
}

func (e *MissingDocumentError) Unwrap() error {
	return ErrMissingDocument
}
