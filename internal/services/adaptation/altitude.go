package adaptation

import (
	"sort"
	"time"

	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
	"RunSight/internal/services/regress"
)

// AltitudeLearner learns an athlete's altitude response from historical
// (altitude, pace) samples.
type AltitudeLearner struct{}

func NewAltitudeLearner() *AltitudeLearner { return &AltitudeLearner{} }

func (l *AltitudeLearner) Type() models.AdaptationType { return models.AdaptationAltitude }

func (l *AltitudeLearner) Learn(userID string, samples []models.PerformanceSample) *models.AdaptationProfile {
	valid := filterValid(samples)
	if len(valid) < MinSamplesAltitude {
		return DefaultAltitudeProfile(userID, len(valid))
	}

	baseline := baselinePace(valid, func(alt float64) bool {
		return alt < ComfortAltitudeMaxM
	})

	points := make([]regress.Point, 0, len(valid))
	for _, s := range valid {
		adj := (s.PaceMinPerKm - baseline) / baseline * 100
		points = append(points, regress.Point{X: s.ConditionValue, Y: adj})
	}

	curve := toCurve(regress.BucketAverage(points, AltitudeBucketWidthM))

	coeffs := &models.AltitudeCoefficients{
		SeaLevelPace:        baseline,
		AltitudeSensitivity: DefaultAltitudeSensitivity,
		AcclimatizationDays: acclimatizationDays(valid),
	}
	if len(curve) >= 2 {
		// regression over (altitude in km, adjustment) gives pct per 1000 m
		fit := make([]regress.Point, 0, len(curve))
		for _, p := range curve {
			fit = append(fit, regress.Point{X: p.BucketValue / 1000.0, Y: p.AdjustmentPct})
		}
		slope, _ := regress.LinearRegression(fit)
		if slope > 0 {
			coeffs.AltitudeSensitivity = slope
		}
	}

	return &models.AdaptationProfile{
		UserID:          userID,
		Type:            models.AdaptationAltitude,
		Curve:           curve,
		Altitude:        coeffs,
		ConfidenceScore: confidenceScore(valid, AltitudeConfidenceRangeM),
		SampleCount:     len(valid),
		UpdatedAt:       time.Now().UTC(),
	}
}

// DefaultAltitudeProfile is the neutral profile returned below the threshold.
func DefaultAltitudeProfile(userID string, sampleCount int) *models.AdaptationProfile {
	return &models.AdaptationProfile{
		UserID: userID,
		Type:   models.AdaptationAltitude,
		Altitude: &models.AltitudeCoefficients{
			SeaLevelPace:        DefaultPaceMinPerKm,
			AltitudeSensitivity: DefaultAltitudeSensitivity,
			AcclimatizationDays: DefaultAcclimatizationDays,
		},
		ConfidenceScore: 0,
		SampleCount:     sampleCount,
		UpdatedAt:       time.Now().UTC(),
	}
}

// acclimatizationDays estimates how long this athlete needs to adapt to
// altitude. It walks consecutive high-altitude sessions ordered by date and,
// for each pair where the later session is both faster and within the pairing
// window, records the day gap. The estimate is the mean gap clamped to
// [7, 21] days, defaulting to 14 when no pair qualifies.
func acclimatizationDays(samples []models.PerformanceSample) int {
	high := make([]models.PerformanceSample, 0)
	for _, s := range samples {
		if s.ConditionValue > HighAltitudeSessionM {
			high = append(high, s)
		}
	}
	if len(high) < 2 {
		return DefaultAcclimatizationDays
	}
	sort.SliceStable(high, func(i, j int) bool { return high[i].Date.Before(high[j].Date) })

	var gapSum float64
	var gaps int
	for i := 1; i < len(high); i++ {
		prev, cur := high[i-1], high[i]
		days := cur.Date.Sub(prev.Date).Hours() / 24
		if days <= 0 || days > AcclimatizationPairMaxDays {
			continue
		}
		if cur.PaceMinPerKm < prev.PaceMinPerKm {
			gapSum += days
			gaps++
		}
	}
	if gaps == 0 {
		return DefaultAcclimatizationDays
	}
	est := int(gapSum / float64(gaps))
	if est < MinAcclimatizationDays {
		est = MinAcclimatizationDays
	}
	if est > MaxAcclimatizationDays {
		est = MaxAcclimatizationDays
	}
	return est
}

var _ domsvc.AdaptationLearner = (*AltitudeLearner)(nil)
