// Package notification holds the notification requests produced by status
// transitions and the outbox entries that carry them to the dispatcher.
//
// A Request is a pure description: the engine never sends anything. The
// application layer wraps each Request in an Envelope, stores it in the
// outbox and a scheduled job delivers it later. Delivery failures are
// recorded on the Envelope and retried; they never affect the transition
// that produced the request.
package notification
