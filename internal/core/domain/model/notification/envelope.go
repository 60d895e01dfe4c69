package notification

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrEnvelopeIsNotConstructed  = errors.New("envelope is not constructed")
	ErrEnvelopeAlreadyDispatched = errors.New("envelope is already dispatched")
)

// maxErrorLength bounds the stored delivery error, in bytes.
const maxErrorLength = 500

// MaxAttempts is the number of failed deliveries after which an entry is
// abandoned. Abandoned entries stay in the outbox with their last error but are
// no longer picked for dispatch.
const MaxAttempts = 5

// Envelope is an outbox entry: a Request plus its delivery bookkeeping.
type Envelope struct {
	id           kernel.UUID
	request      Request
	createdAt    time.Time
	attempts     int
	lastError    string
	dispatchedAt *time.Time

	guard guard.ConstructorGuard
}

// NewEnvelope wraps a request in a fresh, pending outbox entry.
func NewEnvelope(id kernel.UUID, request Request, createdAt time.Time) (*Envelope, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if request.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("request"))
	}
	if createdAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("created at"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Envelope{
		id:        id,
		request:   request,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreEnvelope rebuilds an outbox entry from storage.
func RestoreEnvelope(
	id kernel.UUID,
	request Request,
	createdAt time.Time,
	attempts int,
	lastError string,
	dispatchedAt *time.Time,
) (*Envelope, error) {
	e, err := NewEnvelope(id, request, createdAt)
	if err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, nil)
	}
	e.attempts = attempts
	e.lastError = lastError
	if dispatchedAt != nil {
		at := *dispatchedAt
		e.dispatchedAt = &at
	}
	return e, nil
}

// Validate ensures the envelope was built by NewEnvelope or RestoreEnvelope.
func (e *Envelope) Validate() error {
	if e == nil {
		return ErrEnvelopeIsNotConstructed
	}
	return e.guard.Validate(ErrEnvelopeIsNotConstructed)
}

// ID returns the outbox entry identifier.
func (e *Envelope) ID() kernel.UUID {
	return e.id
}

// Request returns the wrapped request.
func (e *Envelope) Request() Request {
	return e.request
}

// CreatedAt returns when the entry was enqueued.
func (e *Envelope) CreatedAt() time.Time {
	return e.createdAt
}

// Attempts returns how many deliveries were tried.
func (e *Envelope) Attempts() int {
	return e.attempts
}

// LastError returns the error of the latest failed delivery, if any.
func (e *Envelope) LastError() string {
	return e.lastError
}

// DispatchedAt returns when the entry was delivered, or nil while pending.
func (e *Envelope) DispatchedAt() *time.Time {
	if e.dispatchedAt == nil {
		return nil
	}
	at := *e.dispatchedAt
	return &at
}

// IsPending reports whether the entry still waits for delivery.
func (e *Envelope) IsPending() bool {
	return e.dispatchedAt == nil
}

// IsExhausted reports whether a pending entry used up its delivery attempts.
func (e *Envelope) IsExhausted() bool {
	return e.IsPending() && e.attempts >= MaxAttempts
}

// MarkDispatched records a successful delivery.
func (e *Envelope) MarkDispatched(at time.Time) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !e.IsPending() {
		return ErrEnvelopeAlreadyDispatched
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("dispatched at")
	}

	e.attempts++
	e.lastError = ""
	e.dispatchedAt = &at
	return nil
}

// MarkFailed records a failed delivery; the entry stays pending.
func (e *Envelope) MarkFailed(cause error) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !e.IsPending() {
		return ErrEnvelopeAlreadyDispatched
	}
	if cause == nil {
		return errs.NewValueIsRequiredError("cause")
	}

	e.attempts++
	e.lastError = truncateError(cause.Error())
	return nil
}

// truncateError cuts msg to maxErrorLength bytes without splitting a rune.
// The result must be valid UTF-8 for the text column.
func truncateError(msg string) string {
	msg = strings.ToValidUTF8(strings.TrimSpace(msg), "\uFFFD")
	if len(msg) <= maxErrorLength {
		return msg
	}

	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
