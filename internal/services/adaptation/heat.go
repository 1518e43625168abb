package adaptation

import (
	"time"

	"RunSight/internal/domain/models"
	"RunSight/internal/services/regress"
	domsvc "RunSight/internal/domain/service"
)

// HeatLearner learns an athlete's heat-tolerance response curve from
// historical (temperature, pace) samples.
type HeatLearner struct{}

func NewHeatLearner() *HeatLearner { return &HeatLearner{} }

func (l *HeatLearner) Type() models.AdaptationType { return models.AdaptationHeat }

// Learn builds the heat profile. Below the sample threshold it returns the
// neutral default profile with confidence 0 rather than guessing.
func (l *HeatLearner) Learn(userID string, samples []models.PerformanceSample) *models.AdaptationProfile {
	valid := filterValid(samples)
	if len(valid) < MinSamplesHeat {
		return DefaultHeatProfile(userID, len(valid))
	}

	baseline := baselinePace(valid, func(temp float64) bool {
		return temp >= ComfortTempMinC && temp <= ComfortTempMaxC
	})

	points := make([]regress.Point, 0, len(valid))
	for _, s := range valid {
		adj := (s.PaceMinPerKm - baseline) / baseline * 100
		points = append(points, regress.Point{X: s.ConditionValue, Y: adj})
	}

	curve := toCurve(regress.BucketAverage(points, HeatBucketWidthC))

	coeffs := &models.HeatCoefficients{
		OptimalTempC:       DefaultOptimalTempC,
		HeatThresholdC:     DefaultHeatThresholdC,
		HeatToleranceIndex: DefaultHeatTolerance,
	}
	if len(curve) > 0 {
		coeffs.OptimalTempC = optimalBucket(curve)
		coeffs.HeatThresholdC = heatThreshold(curve)
		coeffs.HeatToleranceIndex = heatToleranceIndex(curve)
	}

	return &models.AdaptationProfile{
		UserID:          userID,
		Type:            models.AdaptationHeat,
		Curve:           curve,
		Heat:            coeffs,
		ConfidenceScore: confidenceScore(valid, HeatConfidenceRangeC),
		SampleCount:     len(valid),
		UpdatedAt:       time.Now().UTC(),
	}
}

// DefaultHeatProfile is the neutral profile returned below the sample threshold.
func DefaultHeatProfile(userID string, sampleCount int) *models.AdaptationProfile {
	return &models.AdaptationProfile{
		UserID: userID,
		Type:   models.AdaptationHeat,
		Heat: &models.HeatCoefficients{
			OptimalTempC:       DefaultOptimalTempC,
			HeatThresholdC:     DefaultHeatThresholdC,
			HeatToleranceIndex: DefaultHeatTolerance,
		},
		ConfidenceScore: 0,
		SampleCount:     sampleCount,
		UpdatedAt:       time.Now().UTC(),
	}
}

// optimalBucket returns the bucket value with the lowest (best) adjustment,
// first match winning on ties.
func optimalBucket(curve models.ResponseCurve) float64 {
	best := curve[0]
	for _, p := range curve[1:] {
		if p.AdjustmentPct < best.AdjustmentPct {
			best = p
		}
	}
	return best.BucketValue
}

// heatThreshold is the first bucket exceeding the degradation threshold.
// When no bucket degrades, the athlete tolerates everything observed and the
// threshold sits one bucket beyond the hottest observation.
func heatThreshold(curve models.ResponseCurve) float64 {
	for _, p := range curve {
		if p.AdjustmentPct > HeatThresholdAdjustmentPct {
			return p.BucketValue
		}
	}
	return curve[len(curve)-1].BucketValue + HeatBucketWidthC
}

// heatToleranceIndex scores overall heat resilience on [0,100]: 100 means no
// measured slowdown in hot buckets.
func heatToleranceIndex(curve models.ResponseCurve) float64 {
	var sum float64
	var n int
	for _, p := range curve {
		if p.BucketValue > ComfortTempMaxC && p.AdjustmentPct > 0 {
			sum += p.AdjustmentPct
			n++
		}
	}
	if n == 0 {
		return 100
	}
	idx := 100 - (sum/float64(n))*4
	if idx < 0 {
		idx = 0
	}
	return idx
}

func toCurve(buckets []regress.Bucket) models.ResponseCurve {
	curve := make(models.ResponseCurve, 0, len(buckets))
	for _, b := range buckets {
		curve = append(curve, models.CurvePoint{BucketValue: b.Value, AdjustmentPct: b.Avg})
	}
	return curve
}

var _ domsvc.AdaptationLearner = (*HeatLearner)(nil)
