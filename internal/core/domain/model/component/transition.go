package component

import (
	"time"

	"tracker/internal/core/domain/model/status"
	"tracker/internal/pkg/errs"
)

// SystemActor is the actor recorded on transitions the engine performs by itself.
const SystemActor = "system"

// TransitionRecord is one immutable entry of a component's history.
type TransitionRecord struct {
	from     status.Status
	to       status.Status
	at       time.Time
	note     string
	actor    string
	document *Document
}

// RestoreTransitionRecord rebuilds a history entry read from storage. The target
// status, timestamp and actor are mandatory; from may be empty for legacy rows.
func RestoreTransitionRecord(
	from, to status.Status,
	at time.Time,
	note, actor string,
	document *Document,
) (TransitionRecord, error) {
	if to.IsZero() {
		return TransitionRecord{}, errs.NewValueIsRequiredError("transition target")
	}
	if at.IsZero() {
		return TransitionRecord{}, errs.NewValueIsRequiredError("transition timestamp")
	}
	if actor == "" {
		return TransitionRecord{}, errs.NewValueIsRequiredError("actor")
	}
	if document != nil {
		if err := document.Validate(); err != nil {
			return TransitionRecord{}, err
		}
	}
	return newTransitionRecord(from, to, at, note, actor, document), nil
}

func newTransitionRecord(from, to status.Status, at time.Time, note, actor string, document *Document) TransitionRecord {
	var doc *Document
	if document != nil {
		cp := *document
		doc = &cp
	}
	return TransitionRecord{
		from:     from,
		to:       to,
		at:       at,
		note:     note,
		actor:    actor,
		document: doc,
	}
}

// From returns the status before the transition.
func (r TransitionRecord) From() status.Status {
	return r.from
}

// To returns the status after the transition.
func (r TransitionRecord) To() status.Status {
	return r.to
}

// At returns when the transition happened.
func (r TransitionRecord) At() time.Time {
	return r.at
}

// Note returns the free-text note.
func (r TransitionRecord) Note() string {
	return r.note
}

// Actor returns the user identifier, or SystemActor.
func (r TransitionRecord) Actor() string {
	return r.actor
}

// Document returns a copy of the attached transport document, if any.
func (r TransitionRecord) Document() *Document {
	if r.document == nil {
		return nil
	}
	cp := *r.document
	return &cp
}

// IsAutomatic reports whether the engine authored the transition.
func (r TransitionRecord) IsAutomatic() bool {
	return r.actor == SystemActor
}
