package race

import (
	"math"

	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
	"RunSight/internal/services/adaptation"
)

// FatigueExponent encodes the empirical super-linear growth of race time with
// distance. It is a fixed constant, not fit per athlete.
const FatigueExponent = 1.06

// ProjectionConfidencePct is reported on every table entry. It is a
// presentation-facing heuristic constant, not a data-derived quantity.
const ProjectionConfidencePct = 75

// ReferenceDistances is the fixed projection table.
var ReferenceDistances = []struct {
	Label      string
	DistanceKm float64
}{
	{"10K", 10},
	{"Half Marathon", 21.0975},
	{"Marathon", 42.195},
	{"50K", 50},
	{"100K", 100},
}

// Projector extrapolates a baseline performance to the reference distances
// via the power-law scaling model.
type Projector struct{}

func NewProjector() *Projector { return &Projector{} }

// PredictTime projects the baseline to a target distance:
// predicted = T * (D/B)^1.06. Monotonically increasing in D for a fixed
// baseline since the exponent exceeds 1.
func PredictTime(baseline models.BaselineRace, distanceKm float64) float64 {
	if baseline.DistanceKm <= 0 || baseline.TimeMin <= 0 || distanceKm <= 0 {
		return 0
	}
	return baseline.TimeMin * math.Pow(distanceKm/baseline.DistanceKm, FatigueExponent)
}

// Project builds the projection table. When race conditions and learned
// profiles are present, each entry is slowed by the predicted environmental
// adjustment for those conditions.
func (p *Projector) Project(userID string, baseline models.BaselineRace, conditions *models.RaceConditions,
	heat, altitude *models.AdaptationProfile) *models.RaceProjection {

	adjustmentPct := environmentalAdjustment(conditions, heat, altitude)

	entries := make([]models.ProjectionEntry, 0, len(ReferenceDistances))
	for _, ref := range ReferenceDistances {
		predicted := PredictTime(baseline, ref.DistanceKm)
		if predicted <= 0 {
			continue
		}
		predicted *= 1 + adjustmentPct/100
		entries = append(entries, models.ProjectionEntry{
			Label:         ref.Label,
			DistanceKm:    ref.DistanceKm,
			PredictedMin:  predicted,
			PaceMinPerKm:  predicted / ref.DistanceKm,
			AdjustmentPct: adjustmentPct,
			ConfidencePct: ProjectionConfidencePct,
		})
	}
	return &models.RaceProjection{
		UserID:   userID,
		Baseline: baseline,
		Entries:  entries,
	}
}

// environmentalAdjustment sums the learned heat and altitude responses at the
// expected race conditions. Profiles with confidence 0 carry no learned signal
// and contribute only through their type's fixed extrapolation rule.
func environmentalAdjustment(conditions *models.RaceConditions, heat, altitude *models.AdaptationProfile) float64 {
	if conditions == nil {
		return 0
	}
	var adj float64
	if heat != nil {
		adj += adaptation.PredictAdjustment(models.AdaptationHeat, heat.Curve, conditions.TemperatureC)
	}
	if altitude != nil {
		adj += adaptation.PredictAdjustment(models.AdaptationAltitude, altitude.Curve, conditions.AltitudeM)
	}
	if adj < 0 {
		adj = 0
	}
	return adj
}

var _ domsvc.RaceProjector = (*Projector)(nil)
