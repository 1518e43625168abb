package models

// PacingStrategy selects the fatigue/energy decay coefficients of a simulation.
type PacingStrategy string

const (
	PacingConservative PacingStrategy = "conservative"
	PacingTarget       PacingStrategy = "target"
	PacingAggressive   PacingStrategy = "aggressive"
)

// IsValidPacingStrategy returns true for a supported strategy.
func IsValidPacingStrategy(s PacingStrategy) bool {
	switch s {
	case PacingConservative, PacingTarget, PacingAggressive:
		return true
	default:
		return false
	}
}

// NutritionPlan holds planned race-day intake rates.
type NutritionPlan struct {
	FuelingGPerHr float64 `json:"fueling_g_per_hr"`
	FluidMlPerHr  float64 `json:"fluid_ml_per_hr"`
	SodiumMgPerHr float64 `json:"sodium_mg_per_hr"`
}

// EnergyState is one simulated distance step. The per-strategy sequence is
// finite, ordered and produced once per simulation call.
type EnergyState struct {
	DistanceKm  float64 `json:"distance_km"`
	GlycogenPct float64 `json:"glycogen_pct"`
	FatiguePct  float64 `json:"fatigue_pct"`
}

// ImpactStatus classifies the aggregate race-day penalty.
type ImpactStatus string

const (
	ImpactOptimal    ImpactStatus = "optimal"
	ImpactAcceptable ImpactStatus = "acceptable"
	ImpactWarning    ImpactStatus = "warning"
	ImpactDanger     ImpactStatus = "danger"
)

// PerformanceImpact aggregates the individual race-day penalties.
type PerformanceImpact struct {
	HeatPenaltyPct      float64      `json:"heat_penalty_pct"`
	HydrationPenaltyPct float64      `json:"hydration_penalty_pct"`
	FuelingPenaltyPct   float64      `json:"fueling_penalty_pct"`
	FatiguePenaltyPct   float64      `json:"fatigue_penalty_pct"`
	TotalPenaltyPct     float64      `json:"total_penalty_pct"`
	Status              ImpactStatus `json:"status"`
}

// GIRiskLevel classifies gastrointestinal risk.
type GIRiskLevel string

const (
	GIRiskLow      GIRiskLevel = "low"
	GIRiskModerate GIRiskLevel = "moderate"
	GIRiskHigh     GIRiskLevel = "high"
)

// GIRisk is the gastrointestinal risk assessment for a nutrition plan.
type GIRisk struct {
	RiskPct float64     `json:"risk_pct"`
	Level   GIRiskLevel `json:"level"`
	Message string      `json:"message"`
}

// StrategyOutcome is the simulation result for one pacing strategy.
type StrategyOutcome struct {
	Strategy           PacingStrategy `json:"strategy"`
	States             []EnergyState  `json:"states"`
	TimeToExhaustionKm float64        `json:"time_to_exhaustion_km"`
}

// EnergyDynamics is the full race-day forecast consumed by presentation.
type EnergyDynamics struct {
	Outcomes []StrategyOutcome `json:"outcomes"`
	Impact   PerformanceImpact `json:"impact"`
	GIRisk   GIRisk            `json:"gi_risk"`
}
