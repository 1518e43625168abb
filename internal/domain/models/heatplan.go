package models

// AcclimationPhase is the protocol state selected from lead time and
// tolerance gap.
type AcclimationPhase string

const (
	PhaseNone        AcclimationPhase = "none"
	PhaseMaintenance AcclimationPhase = "maintenance"
	PhaseAdaptation  AcclimationPhase = "adaptation"
	PhaseInitial     AcclimationPhase = "initial"
)

// HeatSession is one planned exposure session.
type HeatSession struct {
	Day             string  `json:"day"`
	DurationMin     int     `json:"duration_min"`
	Intensity       string  `json:"intensity"`
	TargetHeatIndex float64 `json:"target_heat_index"`
	Description     string  `json:"description"`
}

// HeatWeek is one week of the acclimation schedule. TargetHeatIndex increases
// monotonically week over week within a protocol, never regresses.
type HeatWeek struct {
	Week            int           `json:"week"`
	SubPhase        string        `json:"sub_phase"`
	TargetHeatIndex float64       `json:"target_heat_index"`
	Sessions        []HeatSession `json:"sessions"`
}

// HeatProtocol is the generated week-by-week exposure schedule.
type HeatProtocol struct {
	UserID           string           `json:"user_id"`
	Phase            AcclimationPhase `json:"phase"`
	CurrentTolerance float64          `json:"current_tolerance"`
	TargetHeatIndex  float64          `json:"target_heat_index"`
	TotalWeeks       int              `json:"total_weeks"`
	Weeks            []HeatWeek       `json:"weeks"`
	Tips             []string         `json:"tips"`
	Warning          string           `json:"warning,omitempty"`
}
