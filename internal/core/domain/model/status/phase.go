package status

// Phase is the sub-step of a treatment stage.
type Phase int

const (
	// PhaseUnknown is the zero value; a Status with this phase is a base stage.
	PhaseUnknown Phase = iota
	PhasePrep
	PhaseInProgress
	PhaseArrived
)

var phaseTokens = map[Phase]string{
	PhasePrep:       "PREP",
	PhaseInProgress: "IN_PROGRESS",
	PhaseArrived:    "ARRIVED",
}

var phaseLabels = map[Phase]string{
	PhasePrep:       "Preparazione",
	PhaseInProgress: "In trattamento",
	PhaseArrived:    "Rientrato da",
}

// Phases returns the treatment phases in order.
func Phases() []Phase {
	return []Phase{PhasePrep, PhaseInProgress, PhaseArrived}
}

// ParsePhase maps a serialized token back to its Phase.
func ParsePhase(token string) (Phase, bool) {
	for phase, t := range phaseTokens {
		if t == token {
			return phase, true
		}
	}
	return PhaseUnknown, false
}

// IsValid reports whether p is one of the three treatment phases.
func (p Phase) IsValid() bool {
	_, ok := phaseTokens[p]
	return ok
}

// String returns the serialized token, or "UNKNOWN".
func (p Phase) String() string {
	if token, ok := phaseTokens[p]; ok {
		return token
	}
	return "UNKNOWN"
}

// Label returns the localized phase label used in status labels.
func (p Phase) Label() string {
	return phaseLabels[p]
}

func (p Phase) index() int {
	return int(p) - int(PhasePrep)
}
