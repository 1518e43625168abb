package energy

import (
	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
)

// Simulation constants. All race-day fallback values live here so the model
// cannot silently diverge on magic numbers.
const (
	simStepKm = 1.0

	// assumed flat-course pace at target intensity
	basePaceMinPerKm = 6.0

	// glycogen model: burn scales with intensity squared; fueling can at
	// most offset the burn, it never refills stores mid-race
	glycogenStoreG     = 500.0
	baseBurnPctPerHr   = 12.0
	referenceIntensity = 95.0

	// fatigue model
	baseFatiguePerKm    = 0.8
	distanceFatigueRamp = 0.02 // extra fatigue per km per km already covered
	elevationFatigueDiv = 100.0
	heatFatiguePerDeg   = 0.02
	comfortHeatIndex    = 20.0
	fatigueSaturation   = 100.0

	// performance impact
	heatPenaltyPerDeg     = 0.6
	baseFluidNeedMlPerHr  = 400.0
	fluidNeedPerHotDeg    = 25.0
	hydrationPenaltyRate  = 0.08
	fuelingNeedGPerHr     = 60.0
	fuelingPenaltyRate    = 0.05
	fatiguePenaltyRate    = 0.05

	impactOptimalBelow    = 5.0
	impactAcceptableBelow = 10.0
	impactWarningBelow    = 20.0
)

// strategyCoeffs are the per-strategy decay coefficients.
type strategyCoeffs struct {
	IntensityPct float64
	GlycogenRate float64
	FatigueRate  float64
}

var strategies = map[models.PacingStrategy]strategyCoeffs{
	models.PacingConservative: {IntensityPct: 88, GlycogenRate: 1.0, FatigueRate: 0.85},
	models.PacingTarget:       {IntensityPct: 95, GlycogenRate: 1.15, FatigueRate: 1.0},
	models.PacingAggressive:   {IntensityPct: 102, GlycogenRate: 1.35, FatigueRate: 1.25},
}

// strategyOrder fixes the output ordering of the simulation.
var strategyOrder = []models.PacingStrategy{
	models.PacingConservative,
	models.PacingTarget,
	models.PacingAggressive,
}

// Simulator produces the within-race glycogen/fatigue forecast used for
// pacing advice.
type Simulator struct{}

func NewSimulator() *Simulator { return &Simulator{} }

// Simulate runs the race-day model for every pacing strategy and aggregates
// the performance impact and GI risk of the given plan.
func (s *Simulator) Simulate(distanceKm float64, plan models.NutritionPlan, conditions models.RaceConditions) *models.EnergyDynamics {
	outcomes := make([]models.StrategyOutcome, 0, len(strategyOrder))
	var targetFinalFatigue float64
	for _, strat := range strategyOrder {
		outcome := simulateStrategy(strat, distanceKm, plan, conditions)
		if strat == models.PacingTarget && len(outcome.States) > 0 {
			targetFinalFatigue = outcome.States[len(outcome.States)-1].FatiguePct
		}
		outcomes = append(outcomes, outcome)
	}

	impact := assessImpact(plan, conditions, targetFinalFatigue)
	gi := AssessGIRisk(plan.FuelingGPerHr, conditions.HeatIndex, strategies[models.PacingTarget].IntensityPct, plan.FluidMlPerHr)

	return &models.EnergyDynamics{
		Outcomes: outcomes,
		Impact:   impact,
		GIRisk:   gi,
	}
}

// simulateStrategy walks the race distance in fixed steps. The produced state
// sequence is finite, ordered and never restarted; glycogen is non-increasing
// along it.
func simulateStrategy(strat models.PacingStrategy, distanceKm float64, plan models.NutritionPlan, conditions models.RaceConditions) models.StrategyOutcome {
	coeffs, ok := strategies[strat]
	if !ok {
		coeffs = strategies[models.PacingTarget]
	}

	// faster pace at higher intensity
	paceMinPerKm := basePaceMinPerKm * referenceIntensity / coeffs.IntensityPct
	hoursPerStep := paceMinPerKm * simStepKm / 60

	intensityFactor := (coeffs.IntensityPct / referenceIntensity) * (coeffs.IntensityPct / referenceIntensity)
	burnPerHr := baseBurnPctPerHr * coeffs.GlycogenRate * intensityFactor
	fuelOffsetPerHr := plan.FuelingGPerHr / glycogenStoreG * 100

	elevPerKm := 0.0
	if distanceKm > 0 {
		elevPerKm = conditions.ElevationGain / distanceKm
	}
	heatFactor := 1.0
	if conditions.HeatIndex > comfortHeatIndex {
		heatFactor += (conditions.HeatIndex - comfortHeatIndex) * heatFatiguePerDeg
	}

	glycogen := 100.0
	fatigue := 0.0
	exhaustedAt := distanceKm

	states := make([]models.EnergyState, 0, int(distanceKm/simStepKm)+2)
	states = append(states, models.EnergyState{DistanceKm: 0, GlycogenPct: glycogen, FatiguePct: fatigue})

	for d := simStepKm; d <= distanceKm+1e-9; d += simStepKm {
		burn := burnPerHr * hoursPerStep
		offset := fuelOffsetPerHr * hoursPerStep
		if offset > burn {
			offset = burn
		}
		glycogen -= burn - offset
		if glycogen < 0 {
			glycogen = 0
		}

		perKm := (baseFatiguePerKm + d*distanceFatigueRamp) * coeffs.FatigueRate * heatFactor
		perKm *= 1 + elevPerKm/elevationFatigueDiv
		fatigue += perKm
		if fatigue > fatigueSaturation {
			fatigue = fatigueSaturation
		}

		states = append(states, models.EnergyState{DistanceKm: d, GlycogenPct: glycogen, FatiguePct: fatigue})

		if glycogen <= 0 || fatigue >= fatigueSaturation {
			exhaustedAt = d
			break
		}
	}

	return models.StrategyOutcome{
		Strategy:           strat,
		States:             states,
		TimeToExhaustionKm: exhaustedAt,
	}
}

// assessImpact aggregates heat, hydration, fueling and fatigue penalties into
// one race-day penalty figure with a fixed status classification.
func assessImpact(plan models.NutritionPlan, conditions models.RaceConditions, finalFatigue float64) models.PerformanceImpact {
	var heat float64
	if conditions.HeatIndex > comfortHeatIndex {
		heat = (conditions.HeatIndex - comfortHeatIndex) * heatPenaltyPerDeg
	}

	need := baseFluidNeedMlPerHr
	if conditions.HeatIndex > comfortHeatIndex {
		need += (conditions.HeatIndex - comfortHeatIndex) * fluidNeedPerHotDeg
	}
	var hydration float64
	if plan.FluidMlPerHr < need {
		hydration = (need - plan.FluidMlPerHr) / need * 100 * hydrationPenaltyRate
	}

	var fueling float64
	if plan.FuelingGPerHr < fuelingNeedGPerHr {
		fueling = (fuelingNeedGPerHr - plan.FuelingGPerHr) / fuelingNeedGPerHr * 100 * fuelingPenaltyRate
	}

	fatigue := finalFatigue * fatiguePenaltyRate

	total := heat + hydration + fueling + fatigue
	return models.PerformanceImpact{
		HeatPenaltyPct:      heat,
		HydrationPenaltyPct: hydration,
		FuelingPenaltyPct:   fueling,
		FatiguePenaltyPct:   fatigue,
		TotalPenaltyPct:     total,
		Status:              impactStatus(total),
	}
}

func impactStatus(totalPenaltyPct float64) models.ImpactStatus {
	switch {
	case totalPenaltyPct < impactOptimalBelow:
		return models.ImpactOptimal
	case totalPenaltyPct < impactAcceptableBelow:
		return models.ImpactAcceptable
	case totalPenaltyPct < impactWarningBelow:
		return models.ImpactWarning
	default:
		return models.ImpactDanger
	}
}

var _ domsvc.EnergySimulator = (*Simulator)(nil)
