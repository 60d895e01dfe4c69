package services

import (
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/notification"
	"tracker/internal/core/domain/model/status"
)

// StatusChange is the outcome of one accepted status change.
type StatusChange struct {
	// Component is the updated component, history included.
	Component *component.Component

	// Transitions holds the primary record, followed by the automatic
	// READY_FOR_DELIVERY record when one fired.
	Transitions []component.TransitionRecord

	// Notifications are the requests triggered by the primary transition.
	Notifications []notification.Request

	// AutoTransitioned reports whether the automatic record was appended.
	AutoTransitioned bool
}

// LifecycleEngine validates and executes status changes. It never mutates the
// component it is given and performs no I/O; persisting the result and
// dispatching notifications belong to the caller.
//
// Example usage:
//
//	engine := services.NewLifecycleEngine(kernel.NewSystemClock(), services.NewNotificationRules(baseURL, nil))
//	change, err := engine.ChangeStatus(c, status.Shipped, "m.rossi", "", &doc)
//	var invalid *component.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    // show invalid.Allowed to the user
//	}
type LifecycleEngine struct {
	clock kernel.Clock
	rules NotificationRules
}

// NewLifecycleEngine creates an engine. A nil clock falls back to the system clock.
func NewLifecycleEngine(clock kernel.Clock, rules NotificationRules) LifecycleEngine {
	if clock == nil {
		clock = kernel.NewSystemClock()
	}
	return LifecycleEngine{
		clock: clock,
		rules: rules,
	}
}

// ChangeStatus moves c to target on behalf of actor.
//
// The sequence is: validate and apply the primary transition, evaluate the
// notification rules against it, then run the automatic READY_FOR_DELIVERY
// rule on the updated state. Both records share the same timestamp.
//
// Returns:
//   - StatusChange: the new component, 1 or 2 records and the notifications
//   - error: *component.InvalidTransitionError, *component.MissingDocumentError
//     or a validation error; nothing is produced in that case
func (e LifecycleEngine) ChangeStatus(
	c *component.Component,
	target status.Status,
	actor, note string,
	document *component.Document,
) (StatusChange, error) {
	at := e.clock.Now()

	updated, primary, err := c.ChangeStatus(target, actor, note, document, at)
	if err != nil {
		return StatusChange{}, err
	}

	requests, err := e.rules.For(updated, primary)
	if err != nil {
		return StatusChange{}, err
	}

	change := StatusChange{
		Component:     updated,
		Transitions:   []component.TransitionRecord{primary},
		Notifications: requests,
	}

	advanced, auto := updated.AutoAdvance(at)
	if auto != nil {
		change.Component = advanced
		change.Transitions = append(change.Transitions, *auto)
		change.AutoTransitioned = true
	}

	return change, nil
}
