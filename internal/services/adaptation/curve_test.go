package adaptation

import (
	"math"
	"testing"

	"RunSight/internal/domain/models"
)

func TestPredictAdjustmentInterpolates(t *testing.T) {
	curve := models.ResponseCurve{
		{BucketValue: 10, AdjustmentPct: 0},
		{BucketValue: 20, AdjustmentPct: 4},
		{BucketValue: 30, AdjustmentPct: 12},
	}
	got := PredictAdjustment(models.AdaptationHeat, curve, 15)
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("midpoint of [0,4]: got %v", got)
	}
	got = PredictAdjustment(models.AdaptationHeat, curve, 25)
	if math.Abs(got-8) > 1e-9 {
		t.Fatalf("midpoint of [4,12]: got %v", got)
	}
}

func TestPredictAdjustmentContinuousAtBuckets(t *testing.T) {
	curve := models.ResponseCurve{
		{BucketValue: 10, AdjustmentPct: 1},
		{BucketValue: 20, AdjustmentPct: 5},
		{BucketValue: 30, AdjustmentPct: 6},
	}
	const eps = 1e-6
	for _, b := range []float64{10, 20, 30} {
		lo := PredictAdjustment(models.AdaptationHeat, curve, b-eps)
		at := PredictAdjustment(models.AdaptationHeat, curve, b)
		hi := PredictAdjustment(models.AdaptationHeat, curve, b+eps)
		if math.Abs(lo-at) > 1e-3 || math.Abs(hi-at) > 1e-3 {
			t.Fatalf("discontinuity at bucket %v: %v %v %v", b, lo, at, hi)
		}
	}
}

func TestPredictAdjustmentClampsOutOfRange(t *testing.T) {
	curve := models.ResponseCurve{
		{BucketValue: 10, AdjustmentPct: -1},
		{BucketValue: 30, AdjustmentPct: 9},
	}
	if got := PredictAdjustment(models.AdaptationHeat, curve, -50); got != -1 {
		t.Fatalf("below range should clamp to first point, got %v", got)
	}
	if got := PredictAdjustment(models.AdaptationHeat, curve, 80); got != 9 {
		t.Fatalf("above range should clamp to last point, got %v", got)
	}
}

func TestPredictAdjustmentEmptyCurveFallbacks(t *testing.T) {
	if got := PredictAdjustment(models.AdaptationHeat, nil, 15); got != 0 {
		t.Fatalf("heat fallback below comfort: got %v", got)
	}
	if got := PredictAdjustment(models.AdaptationHeat, nil, 30); math.Abs(got-15) > 1e-9 {
		t.Fatalf("heat fallback: 10C over comfort at 1.5%%/C, got %v", got)
	}
	if got := PredictAdjustment(models.AdaptationAltitude, nil, 500); got != 0 {
		t.Fatalf("altitude fallback below floor: got %v", got)
	}
	if got := PredictAdjustment(models.AdaptationAltitude, nil, 2000); math.Abs(got-3) > 1e-9 {
		t.Fatalf("altitude fallback: +3%%/1000m above 1000m, got %v", got)
	}
	if got := PredictAdjustment(models.AdaptationTimeOfDay, nil, 9); got != 0 {
		t.Fatalf("time-of-day has no extrapolation rule, got %v", got)
	}
}

func TestPredictAdjustmentSinglePoint(t *testing.T) {
	curve := models.ResponseCurve{{BucketValue: 20, AdjustmentPct: 3}}
	for _, v := range []float64{0, 20, 45} {
		if got := PredictAdjustment(models.AdaptationHeat, curve, v); got != 3 {
			t.Fatalf("single-point curve should always clamp, got %v at %v", got, v)
		}
	}
}
