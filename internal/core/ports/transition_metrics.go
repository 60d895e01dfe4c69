package ports

import (
	"tracker/internal/core/domain/model/component"
)

// Rejection reasons reported to TransitionMetrics.
const (
	RejectionInvalidTransition = "invalid_transition"
	RejectionMissingDocument   = "missing_document"
	RejectionConflict          = "conflict"
	RejectionInvalidInput      = "invalid_input"
)

// TransitionMetrics records what happens to status changes and outbox deliveries.
type TransitionMetrics interface {
	// TransitionApplied counts one persisted transition record.
	TransitionApplied(record component.TransitionRecord)

	// TransitionRejected counts one refused status change.
	TransitionRejected(reason string)

	// NotificationDelivered counts one delivery attempt.
	NotificationDelivered(ok bool)
}
