package workload

import (
	"math"
	"sort"

	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
)

const (
	// Personalized zone activates only with enough baseline data quality.
	minDataQuality = 0.6

	// Personalized bounds must differ from the universal zone by more than
	// this to count as personalized at all.
	personalZoneEpsilon = 0.05

	// Clamps keeping the personalized zone inside the universal safety zone.
	lowerBoundMax = 1.2
	lowerBoundMin = 0.8
	upperBoundMin = 0.9
	upperBoundMax = 1.5

	// Fewer weekly metrics than this means "insufficient history".
	minWeeksForAnalysis = 4
)

// Analyzer classifies acute:chronic workload ratios into risk zones using
// personalized safe-zone bounds when the athlete's history supports them.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// ComputeBounds derives the personalized zone from the athlete's historical
// ratio mean and deviation. The result is always a sub-range of the
// safety-clamped universal zone [0.8, 1.5], and lower <= upper holds for any
// finite input.
func ComputeBounds(mean, stdDev float64) (lower, upper float64) {
	lower = mean - stdDev
	if lower > lowerBoundMax {
		lower = lowerBoundMax
	}
	if lower < lowerBoundMin {
		lower = lowerBoundMin
	}
	upper = mean + stdDev
	if upper < upperBoundMin {
		upper = upperBoundMin
	}
	if upper > upperBoundMax {
		upper = upperBoundMax
	}
	return lower, upper
}

// Classify maps a finite ratio to exactly one zone.
func Classify(ratio, lower, upper float64) models.LoadZone {
	switch {
	case ratio > models.ACWRHighRiskAbove:
		return models.ZoneHighRisk
	case ratio > upper:
		return models.ZoneCaution
	case ratio < lower:
		return models.ZoneUnderload
	default:
		return models.ZoneSweetSpot
	}
}

// RiskFor maps a zone to its presentation-facing risk level.
func RiskFor(zone models.LoadZone) models.RiskLevel {
	switch zone {
	case models.ZoneSweetSpot:
		return models.RiskLow
	case models.ZoneHighRisk:
		return models.RiskHigh
	default:
		return models.RiskModerate
	}
}

// Analyze builds the workload analysis for one athlete and timeframe. Weeks
// without a defined ratio are filtered out of every derived series; fewer than
// four weekly metrics flips NeedsMoreData, which presentation must treat as
// "insufficient history", not zero risk.
func (a *Analyzer) Analyze(userID, timeframe string, weeks []models.WeeklyLoadMetric, baselines *models.AthleteBaselines) *models.WorkloadAnalysis {
	sorted := make([]models.WeeklyLoadMetric, len(weeks))
	copy(sorted, weeks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].WeekStart.Before(sorted[j].WeekStart) })

	defined := make([]models.WeeklyLoadMetric, 0, len(sorted))
	for _, w := range sorted {
		if w.ACWR != nil && !math.IsNaN(*w.ACWR) && !math.IsInf(*w.ACWR, 0) {
			defined = append(defined, w)
		}
	}

	lower, upper := models.UniversalACWRLower, models.UniversalACWRUpper
	personal := false
	if baselines != nil && baselines.DataQualityScore >= minDataQuality {
		pl, pu := ComputeBounds(baselines.ACWRMean, baselines.ACWRStdDev)
		// a zone numerically identical to the universal one is not
		// meaningfully personalized
		if math.Abs(pl-models.UniversalACWRLower) > personalZoneEpsilon ||
			math.Abs(pu-models.UniversalACWRUpper) > personalZoneEpsilon {
			lower, upper = pl, pu
			personal = true
		}
	}

	out := &models.WorkloadAnalysis{
		UserID:          userID,
		Timeframe:       timeframe,
		LowerBound:      lower,
		UpperBound:      upper,
		HasPersonalZone: personal,
		NeedsMoreData:   len(sorted) < minWeeksForAnalysis,
		Weeks:           defined,
	}

	if len(defined) > 0 {
		current := *defined[len(defined)-1].ACWR
		out.CurrentACWR = &current
		out.Zone = Classify(current, lower, upper)
		out.Risk = RiskFor(out.Zone)
	}
	return out
}

var _ domsvc.WorkloadAnalyzer = (*Analyzer)(nil)
