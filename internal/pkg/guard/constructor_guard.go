// Package guard provides ConstructorGuard, a marker embedded in commands, queries,
// value objects and aggregates to tell values built by their constructor apart from
// zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning value went through its constructor.
//
// Example usage:
//
//	var ErrDocumentNotConstructed = errors.New("Document must be created via NewDocument")
//
//	type Document struct {
//	    number string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (d Document) Validate() error {
//	    return d.guard.Validate(ErrDocumentNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed guards and validationError otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
