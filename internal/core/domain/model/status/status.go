package status

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"tracker/internal/pkg/errs"

	"github.com/cespare/xxhash/v2"
)

const (
	treatmentPrefix = "4"
	separator       = ":"

	// treatmentRankBase sits right above BUILT; each phase owns a block of
	// phaseRankSpan ranks, all below READY_FOR_DELIVERY.
	treatmentRankBase = 4001
	phaseRankSpan     = 1000
)

// Status is either a base stage or a treatment stage. The zero value is not a
// valid status. Status values are comparable with ==.
type Status struct {
	stage     Stage
	treatment string
	phase     Phase
}

// Base stages.
var (
	New              = Base(StageNew)
	ProdInternal     = Base(StageProdInternal)
	ProdExternal     = Base(StageProdExternal)
	Built            = Base(StageBuilt)
	ReadyForDelivery = Base(StageReadyForDelivery)
	Shipped          = Base(StageShipped)
)

// Base wraps a base stage code.
func Base(stage Stage) Status {
	return Status{stage: stage}
}

// Treatment builds the treatment stage (name, phase). Names must be non-empty and
// must not contain ":" or they could not be parsed back.
func Treatment(name string, phase Phase) (Status, error) {
	if err := ValidateTreatmentName(name); err != nil {
		return Status{}, err
	}
	if !phase.IsValid() {
		return Status{}, errs.NewValueIsInvalidErrorWithCause(
			"phase",
			fmt.Errorf("%d is not a treatment phase", phase),
		)
	}
	return Status{treatment: name, phase: phase}, nil
}

// TreatmentStages returns the PREP, IN_PROGRESS and ARRIVED stages of one treatment.
func TreatmentStages(name string) ([]Status, error) {
	if err := ValidateTreatmentName(name); err != nil {
		return nil, err
	}
	result := make([]Status, 0, len(phaseTokens))
	for _, phase := range Phases() {
		result = append(result, Status{treatment: name, phase: phase})
	}
	return result, nil
}

// ValidateTreatmentName checks that name can be embedded in a status code.
func ValidateTreatmentName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("treatment")
	}
	if strings.Contains(name, separator) {
		return errs.NewValueIsInvalidErrorWithCause(
			"treatment",
			fmt.Errorf("%q must not contain %q", name, separator),
		)
	}
	return nil
}

// Parse decodes a stored status code. Codes shaped "4:<name>:<PHASE>" with a
// known phase token become treatment stages; everything else, including
// malformed composite codes, is returned verbatim as a base stage.
func Parse(code string) Status {
	parts := strings.Split(code, separator)
	if len(parts) == 3 && parts[0] == treatmentPrefix && parts[1] != "" {
		if phase, ok := ParsePhase(parts[2]); ok {
			return Status{treatment: parts[1], phase: phase}
		}
	}
	return Status{stage: Stage(code)}
}

// IsTreatment reports whether s is a treatment stage.
func (s Status) IsTreatment() bool {
	return s.phase != PhaseUnknown
}

// IsZero reports whether s is the zero Status.
func (s Status) IsZero() bool {
	return s == Status{}
}

// Stage returns the base stage code, or "" for treatment stages.
func (s Status) Stage() Stage {
	return s.stage
}

// Treatment returns the treatment name, or "" for base stages.
func (s Status) Treatment() string {
	return s.treatment
}

// Phase returns the treatment phase, or PhaseUnknown for base stages.
func (s Status) Phase() Phase {
	return s.phase
}

// Code returns the persisted form of the status.
func (s Status) Code() string {
	if s.IsTreatment() {
		return treatmentPrefix + separator + s.treatment + separator + s.phase.String()
	}
	return string(s.stage)
}

func (s Status) String() string {
	return s.Code()
}

// Label returns the human readable label, e.g. "1 - Nuovo" or
// "4 - In trattamento zinc". Unknown base codes are labelled with the code itself.
func (s Status) Label() string {
	if s.IsTreatment() {
		return fmt.Sprintf("%s - %s %s", treatmentPrefix, s.phase.Label(), s.treatment)
	}
	if info, ok := stages[s.stage]; ok {
		return info.label
	}
	return string(s.stage)
}

// Rank returns the sort key of s. Unknown base codes rank 0.
func (s Status) Rank() int {
	if s.IsTreatment() {
		tieBreak := int(xxhash.Sum64String(s.treatment) % phaseRankSpan)
		return treatmentRankBase + s.phase.index()*phaseRankSpan + tieBreak
	}
	return stages[s.stage].rank
}

// MarshalText encodes s as its status code.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.Code()), nil
}

// UnmarshalText decodes a status code with Parse.
func (s *Status) UnmarshalText(text []byte) error {
	*s = Parse(string(text))
	return nil
}

// Compare orders statuses by Rank, then by code.
func Compare(a, b Status) int {
	if c := cmp.Compare(a.Rank(), b.Rank()); c != 0 {
		return c
	}
	return strings.Compare(a.Code(), b.Code())
}

// Sort sorts statuses in place with Compare.
func Sort(statuses []Status) {
	slices.SortStableFunc(statuses, Compare)
}

// Contains reports whether target is in statuses.
func Contains(statuses []Status, target Status) bool {
	return slices.Contains(statuses, target)
}

// Codes returns the persisted form of each status.
func Codes(statuses []Status) []string {
	codes := make([]string, len(statuses))
	for i, s := range statuses {
		codes[i] = s.Code()
	}
	return codes
}

// ParseAll decodes every code with Parse.
func ParseAll(codes []string) []Status {
	result := make([]Status, len(codes))
	for i, code := range codes {
		result[i] = Parse(code)
	}
	return result
}
