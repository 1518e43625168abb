package adaptation

import (
	"testing"
	"time"

	"RunSight/internal/domain/models"
)

func heatSample(temp, pace float64, day int) models.PerformanceSample {
	return models.PerformanceSample{
		ConditionValue: temp,
		PaceMinPerKm:   pace,
		Date:           time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Completed:      true,
	}
}

func TestHeatLearnerBelowThresholdReturnsDefault(t *testing.T) {
	l := NewHeatLearner()
	samples := make([]models.PerformanceSample, 0, 9)
	for i := 0; i < 9; i++ {
		samples = append(samples, heatSample(15, 5.0, i))
	}
	p := l.Learn("u1", samples)
	if p.Heat == nil {
		t.Fatalf("expected heat coefficients")
	}
	if p.Heat.OptimalTempC != 15 || p.Heat.HeatThresholdC != 25 || p.ConfidenceScore != 0 {
		t.Fatalf("expected neutral default {15, 25, conf 0}, got %+v conf=%v", p.Heat, p.ConfidenceScore)
	}
	if len(p.Curve) != 0 {
		t.Fatalf("default profile must have empty curve")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
}

func TestHeatLearnerMalformedSamplesFiltered(t *testing.T) {
	l := NewHeatLearner()
	samples := make([]models.PerformanceSample, 0, 20)
	for i := 0; i < 20; i++ {
		samples = append(samples, models.PerformanceSample{ConditionValue: 15}) // no pace
	}
	p := l.Learn("u1", samples)
	if p.ConfidenceScore != 0 || p.SampleCount != 0 {
		t.Fatalf("malformed samples must not count, got count=%d conf=%v", p.SampleCount, p.ConfidenceScore)
	}
}

func TestHeatLearnerSparseHotOutlier(t *testing.T) {
	// 15 comfortable runs at identical pace, one hot run noticeably slower:
	// confidence stays low but the curve shows a positive adjustment near 30C.
	l := NewHeatLearner()
	samples := make([]models.PerformanceSample, 0, 16)
	for i := 0; i < 15; i++ {
		samples = append(samples, heatSample(10+float64(i%11), 5.0, i))
	}
	samples = append(samples, heatSample(30, 5.5, 20))

	p := l.Learn("u1", samples)
	if p.ConfidenceScore >= 60 {
		t.Fatalf("confidence should stay low for narrow sparse data, got %v", p.ConfidenceScore)
	}
	var hot *models.CurvePoint
	for i := range p.Curve {
		if p.Curve[i].BucketValue == 30 {
			hot = &p.Curve[i]
		}
	}
	if hot == nil {
		t.Fatalf("expected a 30C bucket, curve=%+v", p.Curve)
	}
	if hot.AdjustmentPct <= 0 {
		t.Fatalf("expected positive adjustment near 30C, got %v", hot.AdjustmentPct)
	}
	if err := p.Curve.Validate(); err != nil {
		t.Fatalf("curve invariant: %v", err)
	}
}

func TestHeatLearnerAnchors(t *testing.T) {
	l := NewHeatLearner()
	var samples []models.PerformanceSample
	// comfortable baseline
	for i := 0; i < 10; i++ {
		samples = append(samples, heatSample(15, 5.0, i))
	}
	// mild warmth, slight slowdown
	for i := 0; i < 5; i++ {
		samples = append(samples, heatSample(24, 5.1, 10+i))
	}
	// hot, clear slowdown
	for i := 0; i < 5; i++ {
		samples = append(samples, heatSample(31, 5.6, 15+i))
	}
	p := l.Learn("u1", samples)
	if p.Heat.OptimalTempC != 15 {
		t.Fatalf("optimal temp: got %v", p.Heat.OptimalTempC)
	}
	// 31C bucket (30) is the first exceeding +5% adjustment
	if p.Heat.HeatThresholdC != 30 {
		t.Fatalf("heat threshold: got %v", p.Heat.HeatThresholdC)
	}
	if p.Heat.HeatToleranceIndex >= 100 {
		t.Fatalf("tolerance index should reflect hot slowdown, got %v", p.Heat.HeatToleranceIndex)
	}
}

func TestHeatLearnerNoDegradationThreshold(t *testing.T) {
	l := NewHeatLearner()
	var samples []models.PerformanceSample
	for i := 0; i < 6; i++ {
		samples = append(samples, heatSample(15, 5.0, i))
	}
	for i := 0; i < 6; i++ {
		samples = append(samples, heatSample(30, 5.05, 6+i)) // ~1% only
	}
	p := l.Learn("u1", samples)
	// nothing exceeds +5%: threshold sits one bucket past the hottest observation
	if p.Heat.HeatThresholdC != 35 {
		t.Fatalf("expected threshold 35, got %v", p.Heat.HeatThresholdC)
	}
}

func TestHeatLearnerDeterministic(t *testing.T) {
	l := NewHeatLearner()
	var samples []models.PerformanceSample
	for i := 0; i < 30; i++ {
		samples = append(samples, heatSample(float64(5+i), 5.0+float64(i)*0.02, i))
	}
	a := l.Learn("u1", samples)
	b := l.Learn("u1", samples)
	if len(a.Curve) != len(b.Curve) {
		t.Fatalf("non-deterministic curve length")
	}
	for i := range a.Curve {
		if a.Curve[i] != b.Curve[i] {
			t.Fatalf("non-deterministic curve point %d", i)
		}
	}
	if a.ConfidenceScore != b.ConfidenceScore {
		t.Fatalf("non-deterministic confidence")
	}
}
