// Package kernel provides the shared domain primitives of the component tracker.
//
// The package includes:
//   - UUID: a validated identifier for components and notification outbox entries
//   - Clock: the injectable time source used for transition timestamps
//     (SystemClock in production, FixedClock in tests)
//
// Primitives are immutable value objects, except FixedClock which is a test
// double guarded by a mutex.
package kernel
