package race

import (
	"math"
	"testing"

	"RunSight/internal/domain/models"
)

func TestPredictTimeMarathonScenario(t *testing.T) {
	// 45 * (42.195/10)^1.06 = 207.06
	baseline := models.BaselineRace{DistanceKm: 10, TimeMin: 45}
	got := PredictTime(baseline, 42.195)
	if math.Abs(got-207.06) > 0.1 {
		t.Fatalf("45min 10K should project to ~207min marathon, got %v", got)
	}
}

func TestPredictTimeMonotoneInDistance(t *testing.T) {
	baseline := models.BaselineRace{DistanceKm: 21.0975, TimeMin: 100}
	prev := 0.0
	for _, d := range []float64{5, 10, 21.0975, 42.195, 50, 100, 160} {
		got := PredictTime(baseline, d)
		if got <= prev {
			t.Fatalf("projection not strictly increasing at %vkm: %v <= %v", d, got, prev)
		}
		prev = got
	}
}

func TestPredictTimeDegenerate(t *testing.T) {
	if got := PredictTime(models.BaselineRace{}, 10); got != 0 {
		t.Fatalf("zero baseline should project 0, got %v", got)
	}
}

func TestProjectTableShape(t *testing.T) {
	p := NewProjector()
	baseline := models.BaselineRace{DistanceKm: 10, TimeMin: 45, Name: "Spring 10K"}
	got := p.Project("u1", baseline, nil, nil, nil)
	if len(got.Entries) != 5 {
		t.Fatalf("expected 5 reference distances, got %d", len(got.Entries))
	}
	for i, e := range got.Entries {
		if e.ConfidencePct != 75 {
			t.Fatalf("entry %d: confidence must be the fixed 75, got %v", i, e.ConfidencePct)
		}
		if e.AdjustmentPct != 0 {
			t.Fatalf("no conditions given: adjustment should be 0, got %v", e.AdjustmentPct)
		}
		if i > 0 && e.PredictedMin <= got.Entries[i-1].PredictedMin {
			t.Fatalf("table not increasing at entry %d", i)
		}
	}
}

func TestProjectAppliesEnvironmentalAdjustment(t *testing.T) {
	p := NewProjector()
	baseline := models.BaselineRace{DistanceKm: 10, TimeMin: 45}
	heat := &models.AdaptationProfile{
		UserID: "u1",
		Type:   models.AdaptationHeat,
		Curve: models.ResponseCurve{
			{BucketValue: 15, AdjustmentPct: 0},
			{BucketValue: 30, AdjustmentPct: 9},
		},
		Heat: &models.HeatCoefficients{OptimalTempC: 15, HeatThresholdC: 25},
	}
	conditions := &models.RaceConditions{TemperatureC: 30}

	plain := p.Project("u1", baseline, nil, nil, nil)
	hot := p.Project("u1", baseline, conditions, heat, nil)
	for i := range hot.Entries {
		if hot.Entries[i].AdjustmentPct != 9 {
			t.Fatalf("expected 9%% adjustment, got %v", hot.Entries[i].AdjustmentPct)
		}
		want := plain.Entries[i].PredictedMin * 1.09
		if math.Abs(hot.Entries[i].PredictedMin-want) > 1e-6 {
			t.Fatalf("entry %d: expected %v, got %v", i, want, hot.Entries[i].PredictedMin)
		}
	}
}
