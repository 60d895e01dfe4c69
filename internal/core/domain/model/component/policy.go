package component

import "tracker/internal/core/domain/model/status"

// AllowedStatuses returns every status a component with the given treatments may
// move to: all base stages followed by the three stages of each treatment, in
// treatment order. The result does not depend on the current status.
func AllowedStatuses(treatments []string) []status.Status {
	bases := status.BaseStages()
	allowed := make([]status.Status, 0, len(bases)+3*len(treatments))
	for _, stage := range bases {
		allowed = append(allowed, status.Base(stage))
	}
	for _, name := range treatments {
		stages, err := status.TreatmentStages(name)
		if err != nil {
			// names are validated when treatments are assigned
			continue
		}
		allowed = append(allowed, stages...)
	}
	return allowed
}

// RequiresDocument reports whether moving to s needs transport-document metadata:
// shipping, and returning from any treatment.
func RequiresDocument(s status.Status) bool {
	if s.IsTreatment() {
		return s.Phase() == status.PhaseArrived
	}
	return s == status.Shipped
}
