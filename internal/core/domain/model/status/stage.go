package status

// Stage is the code of a base stage. Codes outside the known set are kept
// verbatim so that vocabulary added by other clients survives a round trip.
type Stage string

const (
	StageNew              Stage = "NEW"
	StageProdInternal     Stage = "PROD_INTERNAL"
	StageProdExternal     Stage = "PROD_EXTERNAL"
	StageBuilt            Stage = "BUILT"
	StageReadyForDelivery Stage = "READY_FOR_DELIVERY"
	StageShipped          Stage = "SHIPPED"
)

type stageInfo struct {
	label string
	rank  int
}

var stages = map[Stage]stageInfo{
	StageNew:              {label: "1 - Nuovo", rank: 1000},
	StageProdInternal:     {label: "2 - Produzione interna", rank: 2000},
	StageProdExternal:     {label: "2 - Produzione esterna", rank: 3000},
	StageBuilt:            {label: "3 - Costruito", rank: 4000},
	StageReadyForDelivery: {label: "5 - Pronto per la consegna", rank: 8000},
	StageShipped:          {label: "6 - Spedito", rank: 9900},
}

// BaseStages returns the known base stages in lifecycle order.
func BaseStages() []Stage {
	return []Stage{
		StageNew,
		StageProdInternal,
		StageProdExternal,
		StageBuilt,
		StageReadyForDelivery,
		StageShipped,
	}
}

// IsKnown reports whether the stage belongs to the built-in vocabulary.
func (s Stage) IsKnown() bool {
	_, ok := stages[s]
	return ok
}
