package energy

import "RunSight/internal/domain/models"

// GI risk model constants.
const (
	giBaseRisk          = 10.0
	giFuelingComfortG   = 60.0
	giFuelingRiskPerG   = 0.5
	giHeatComfortIndex  = 25.0
	giHeatRiskPerDeg    = 0.8
	giInteractionFactor = 0.01
	giIntensityComfort  = 85.0
	giIntensityPerPct   = 0.2
	giAdequateFluidMl   = 800.0
	giFluidReliefPerMl  = 0.02

	giModerateAt = 25.0
	giHighAt     = 50.0
)

// AssessGIRisk estimates gastrointestinal distress risk for a fueling plan.
// Risk rises monotonically with fueling rate and heat index, with a
// non-linear interaction between the two (hot guts absorb less), and falls
// monotonically with fluid intake up to an adequate level.
func AssessGIRisk(fuelingGPerHr, heatIndex, intensityPct, fluidMlPerHr float64) models.GIRisk {
	risk := giBaseRisk

	excessFuel := 0.0
	if fuelingGPerHr > giFuelingComfortG {
		excessFuel = fuelingGPerHr - giFuelingComfortG
	}
	excessHeat := 0.0
	if heatIndex > giHeatComfortIndex {
		excessHeat = heatIndex - giHeatComfortIndex
	}

	risk += excessFuel * giFuelingRiskPerG
	risk += excessHeat * giHeatRiskPerDeg
	risk += excessFuel * excessHeat * giInteractionFactor
	if intensityPct > giIntensityComfort {
		risk += (intensityPct - giIntensityComfort) * giIntensityPerPct
	}

	fluid := fluidMlPerHr
	if fluid > giAdequateFluidMl {
		fluid = giAdequateFluidMl
	}
	risk -= fluid * giFluidReliefPerMl

	if risk < 0 {
		risk = 0
	}
	if risk > 100 {
		risk = 100
	}

	level := models.GIRiskLow
	message := "Fueling plan is well within tolerable gut load."
	switch {
	case risk >= giHighAt:
		level = models.GIRiskHigh
		message = "High GI distress risk: reduce carbohydrate rate or split intake, and train the gut before race day."
	case risk >= giModerateAt:
		level = models.GIRiskModerate
		message = "Moderate GI risk: practice this fueling rate in heat before racing with it."
	}

	return models.GIRisk{RiskPct: risk, Level: level, Message: message}
}
