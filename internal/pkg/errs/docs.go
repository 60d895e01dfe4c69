// Package errs holds the typed errors shared by the tracker's domain, use cases
// and adapters.
//
// Every type unwraps to one sentinel so callers classify failures with
// errors.Is without caring about the details:
//
//	ErrValueIsRequired   -> ValueIsRequiredError   (missing input)
//	ErrValueIsInvalid    -> ValueIsInvalidError    (malformed or duplicate input)
//	ErrValueIsOutOfRange -> ValueIsOutOfRangeError (numeric bounds)
//	ErrObjectNotFound    -> ObjectNotFoundError    (unknown component or outbox entry)
//	ErrVersionIsInvalid  -> VersionIsInvalidError  (stale optimistic-lock version)
//
// The HTTP adapter maps the sentinels to status codes; the *WithCause
// constructors keep the underlying error available for logs.
package errs
