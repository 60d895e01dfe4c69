// Package component provides the Component aggregate: a manufactured part moving
// through production, external treatments and shipment.
//
// The package includes:
//   - Component: the aggregate root holding status, treatments, the append-only
//     transition history and the cached allowed-status set
//   - TransitionRecord: one immutable audit entry of the history
//   - Document: transport-document (DDT) metadata attached to a transition
//   - AllowedStatuses and RequiresDocument: the allowed-status calculator and the
//     document requirement policy
//
// Key business rules:
//   - Every base stage is always an allowed target, whatever the current status
//   - A treatment stage is allowed only for treatments assigned to the component
//   - SHIPPED and every ARRIVED treatment stage require a transport document
//   - When every assigned treatment has an ARRIVED record in the history a
//     component ranked below READY_FOR_DELIVERY advances there with actor "system"
//   - Treatments cannot be reassigned away from the current treatment stage
//
// Operations never mutate the receiver: ChangeStatus, AutoAdvance and
// WithTreatments return a new Component, leaving the loaded value untouched for
// optimistic-concurrency retries.
package component
