package component

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

// AutoAdvanceNote is the note recorded on the automatic READY_FOR_DELIVERY transition.
const AutoAdvanceNote = "all treatments completed"

// Component is the aggregate root of the tracker.
//
// Component follows these invariants:
//   - id, code and work order are always set
//   - status is never the zero Status
//   - history is append-only; every record's target was allowed when appended
//   - allowedStatuses always equals AllowedStatuses(treatments)
//   - version is the persisted version the value was loaded with
type Component struct {
	// id is the unique identifier of the component
	id kernel.UUID

	// code is the human identifier shown to users (drawing or part number)
	code string

	// workOrder is the code of the parent work order
	workOrder string

	// status is the current lifecycle status
	status status.Status

	// treatments are the external treatments assigned to the component
	treatments []string

	// history is the append-only audit log
	history []TransitionRecord

	// allowedStatuses caches AllowedStatuses(treatments)
	allowedStatuses []status.Status

	// version supports optimistic concurrency in the persistence layer
	version int

	guard guard.ConstructorGuard
}

// NewComponent creates a component in status NEW with an empty history.
// Treatment names are expected to be normalized upstream; they only need to
// be non-empty and free of ":".
//
// Example:
//
//	c, err := component.NewComponent(kernel.NewUUID(), "TAV-0042", "WO-2025-118", []string{"zinc", "paint"})
//	if err != nil {
//	    // Handle validation error
//	}
func NewComponent(id kernel.UUID, code, workOrder string, treatments []string) (*Component, error) {
	c := &Component{
		status: status.New,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setWorkOrder(workOrder),
		c.setTreatments(treatments),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreComponent rebuilds a component from storage. The current status is
// taken as-is, including codes outside the built-in vocabulary written by other
// clients. The allowed-status cache is recomputed.
func RestoreComponent(
	id kernel.UUID,
	code, workOrder string,
	current status.Status,
	treatments []string,
	history []TransitionRecord,
	version int,
) (*Component, error) {
	c := &Component{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setWorkOrder(workOrder),
		c.setStatus(current),
		c.setTreatments(treatments),
		c.setVersion(version),
	); err != nil {
		return nil, err
	}

	c.history = slices.Clone(history)
	return c, nil
}

// Validate ensures the component was built by NewComponent or RestoreComponent.
func (c *Component) Validate() error {
	if c == nil {
		return ErrComponentIsNotConstructed
	}
	return c.guard.Validate(ErrComponentIsNotConstructed)
}

// ID returns the component's unique identifier.
func (c *Component) ID() kernel.UUID {
	return c.id
}

// Code returns the human identifier of the component.
func (c *Component) Code() string {
	return c.code
}

// WorkOrder returns the code of the parent work order.
func (c *Component) WorkOrder() string {
	return c.workOrder
}

// Status returns the current status.
func (c *Component) Status() status.Status {
	return c.status
}

// Treatments returns a copy of the assigned treatments.
func (c *Component) Treatments() []string {
	return slices.Clone(c.treatments)
}

// History returns a copy of the transition history, oldest first.
func (c *Component) History() []TransitionRecord {
	return slices.Clone(c.history)
}

// AllowedStatuses returns a copy of the cached allowed-status set.
func (c *Component) AllowedStatuses() []status.Status {
	return slices.Clone(c.allowedStatuses)
}

// Version returns the persisted version the component was loaded with.
func (c *Component) Version() int {
	return c.version
}

// IsAllowed reports whether target is a legal status for this component.
func (c *Component) IsAllowed(target status.Status) bool {
	return status.Contains(c.allowedStatuses, target)
}

// WithTreatments returns a copy of the component with a new treatment list and a
// recomputed allowed-status cache. Status and history are kept, so a component
// sitting on a treatment stage cannot drop that treatment.
func (c *Component) WithTreatments(treatments []string) (*Component, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.status.IsTreatment() && !slices.Contains(treatments, c.status.Treatment()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("treatments",
			fmt.Errorf("current status %s needs treatment %q", c.status.Label(), c.status.Treatment()))
	}

	next := c.clone()
	if err := next.setTreatments(treatments); err != nil {
		return nil, err
	}
	return next, nil
}

// ChangeStatus validates and applies a transition to target, returning the
// updated component and the appended record. The receiver is never modified,
// and nothing is produced on error.
//
// Failures, checked in this order:
//   - the actor is empty (errs.ValueIsRequiredError)
//   - target is not allowed (*InvalidTransitionError)
//   - target requires a document and none was given (*MissingDocumentError)
//
// Example:
//
//	doc, _ := component.NewDocument("DDT-118", time.Now())
//	next, record, err := c.ChangeStatus(status.Shipped, "m.rossi", "truck 2", &doc, clock.Now())
//	if errors.Is(err, component.ErrInvalidTransition) {
//	    // re-prompt with c.AllowedStatuses()
//	}
func (c *Component) ChangeStatus(
	target status.Status,
	actor, note string,
	document *Document,
	at time.Time,
) (*Component, TransitionRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, TransitionRecord{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return nil, TransitionRecord{}, errs.NewValueIsRequiredError("actor")
	}
	if at.IsZero() {
		return nil, TransitionRecord{}, errs.NewValueIsRequiredError("transition timestamp")
	}

	allowed := AllowedStatuses(c.treatments)
	if !status.Contains(allowed, target) {
		return nil, TransitionRecord{}, &InvalidTransitionError{
			Target:  target,
			Allowed: allowed,
		}
	}

	if RequiresDocument(target) && document == nil {
		return nil, TransitionRecord{}, &MissingDocumentError{Target: target}
	}
	if document != nil {
		if err := document.Validate(); err != nil {
			return nil, TransitionRecord{}, err
		}
	}

	next, record := c.apply(target, actor, note, document, at)
	return next, record, nil
}

// TreatmentsCompleted reports whether every assigned treatment has at least one
// history record reaching its ARRIVED stage. A component without treatments has
// nothing to complete and reports false.
func (c *Component) TreatmentsCompleted() bool {
	if len(c.treatments) == 0 {
		return false
	}

	arrived := make(map[string]struct{}, len(c.history))
	for _, record := range c.history {
		to := record.To()
		if to.IsTreatment() && to.Phase() == status.PhaseArrived {
			arrived[to.Treatment()] = struct{}{}
		}
	}

	for _, name := range c.treatments {
		if _, ok := arrived[name]; !ok {
			return false
		}
	}
	return true
}

// AutoAdvance moves the component to READY_FOR_DELIVERY when all treatments are
// completed and its status ranks below READY_FOR_DELIVERY. Components already
// there or later (SHIPPED) are left alone. It returns the receiver and a nil
// record when there is nothing to do, so repeated calls are no-ops. The
// transition skips the allowed-status check: base stages are always allowed.
func (c *Component) AutoAdvance(at time.Time) (*Component, *TransitionRecord) {
	if c.Validate() != nil || !c.TreatmentsCompleted() {
		return c, nil
	}
	if c.status.Rank() >= status.ReadyForDelivery.Rank() {
		return c, nil
	}

	next, record := c.apply(status.ReadyForDelivery, SystemActor, AutoAdvanceNote, nil, at)
	return next, &record
}

func (c *Component) apply(
	target status.Status,
	actor, note string,
	document *Document,
	at time.Time,
) (*Component, TransitionRecord) {
	record := newTransitionRecord(c.status, target, at, note, actor, document)

	next := c.clone()
	next.status = target
	next.history = append(next.history, record)
	next.allowedStatuses = AllowedStatuses(next.treatments)
	return next, record
}

func (c *Component) clone() *Component {
	cp := *c
	cp.treatments = slices.Clone(c.treatments)
	cp.history = slices.Clone(c.history)
	cp.allowedStatuses = slices.Clone(c.allowedStatuses)
	return &cp
}

func (c *Component) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Component) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *Component) setWorkOrder(workOrder string) error {
	workOrder = strings.TrimSpace(workOrder)
	if workOrder == "" {
		return errs.NewValueIsRequiredError("work order")
	}
	c.workOrder = workOrder
	return nil
}

func (c *Component) setStatus(current status.Status) error {
	if current.IsZero() {
		return errs.NewValueIsRequiredError("status")
	}
	c.status = current
	return nil
}

func (c *Component) setTreatments(treatments []string) error {
	var problems []error
	for i, name := range treatments {
		if err := status.ValidateTreatmentName(name); err != nil {
			problems = append(problems, fmt.Errorf("treatment #%d: %w", i+1, err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.treatments = slices.Clone(treatments)
	c.allowedStatuses = AllowedStatuses(c.treatments)
	return nil
}

func (c *Component) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	c.version = version
	return nil
}
