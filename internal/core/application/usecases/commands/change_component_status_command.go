package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrChangeComponentStatusCommandIsNotConstructed = errors.New(
	"ChangeComponentStatusCommand must be created via NewChangeComponentStatusCommand constructor",
)

// ChangeComponentStatusCommand asks to move a component to a new status.
//
// Example:
//
//	doc, _ := component.NewDocument("DDT-118", shippedAt)
//	cmd, err := NewChangeComponentStatusCommand(id, status.Shipped, "m.rossi", "truck 2", &doc)
//	if err != nil {
//	    return err
//	}
//	change, err := handler.Handle(ctx, cmd)
type ChangeComponentStatusCommand struct { //nolint:recvcheck //using for validation
	componentID kernel.UUID
	target      status.Status
	actor       string
	note        string
	document    *component.Document

	guard guard.ConstructorGuard
}

// NewChangeComponentStatusCommand validates the request shape. Whether the
// target is allowed is decided later against the stored component.
func NewChangeComponentStatusCommand(
	componentID kernel.UUID,
	target status.Status,
	actor, note string,
	document *component.Document,
) (ChangeComponentStatusCommand, error) {
	cmd := ChangeComponentStatusCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setComponentID(componentID),
		cmd.setTarget(target),
		cmd.setActor(actor),
		cmd.setDocument(document),
	); err != nil {
		return ChangeComponentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeComponentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeComponentStatusCommandIsNotConstructed)
}

// ComponentID returns the component to change.
func (c ChangeComponentStatusCommand) ComponentID() kernel.UUID {
	return c.componentID
}

// Target returns the requested status.
func (c ChangeComponentStatusCommand) Target() status.Status {
	return c.target
}

// Actor returns the user requesting the change.
func (c ChangeComponentStatusCommand) Actor() string {
	return c.actor
}

// Note returns the free-text note.
func (c ChangeComponentStatusCommand) Note() string {
	return c.note
}

// Document returns the attached transport document, or nil.
func (c ChangeComponentStatusCommand) Document() *component.Document {
	return c.document
}

func (c *ChangeComponentStatusCommand) setComponentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.componentID = id
	return nil
}

func (c *ChangeComponentStatusCommand) setTarget(target status.Status) error {
	if target.IsZero() {
		return errs.NewValueIsRequiredError("status")
	}

	c.target = target
	return nil
}

func (c *ChangeComponentStatusCommand) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *ChangeComponentStatusCommand) setDocument(document *component.Document) error {
	if document == nil {
		return nil
	}
	if err := document.Validate(); err != nil {
		return err
	}

	doc := *document
	c.document = &doc
	return nil
}
