package workload

import (
	"math"
	"testing"
	"time"

	"RunSight/internal/domain/models"
)

func week(offset int, acwr *float64) models.WeeklyLoadMetric {
	return models.WeeklyLoadMetric{
		WeekStart: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*offset),
		ACWR:      acwr,
	}
}

func ratio(v float64) *float64 { return &v }

func TestComputeBoundsPersonalZoneScenario(t *testing.T) {
	lower, upper := ComputeBounds(1.0, 0.05)
	if math.Abs(lower-0.95) > 1e-9 || math.Abs(upper-1.05) > 1e-9 {
		t.Fatalf("expected [0.95, 1.05], got [%v, %v]", lower, upper)
	}
}

func TestComputeBoundsAlwaysOrderedAndClamped(t *testing.T) {
	cases := []struct{ mean, std float64 }{
		{1.0, 0}, {1.0, 10}, {0.1, 0}, {5.0, 0}, {5.0, 10}, {0, 10}, {1.2, 0.3},
	}
	for _, c := range cases {
		lower, upper := ComputeBounds(c.mean, c.std)
		if lower > upper {
			t.Fatalf("mean=%v std=%v: lower %v > upper %v", c.mean, c.std, lower, upper)
		}
		if lower < 0.8 || lower > 1.2 {
			t.Fatalf("mean=%v std=%v: lower %v outside [0.8,1.2]", c.mean, c.std, lower)
		}
		if upper < 0.9 || upper > 1.5 {
			t.Fatalf("mean=%v std=%v: upper %v outside [0.9,1.5]", c.mean, c.std, upper)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	lower, upper := 0.9, 1.1
	cases := map[float64]models.LoadZone{
		0.0:  models.ZoneUnderload,
		0.89: models.ZoneUnderload,
		0.9:  models.ZoneSweetSpot,
		1.1:  models.ZoneSweetSpot,
		1.2:  models.ZoneCaution,
		1.5:  models.ZoneCaution,
		1.51: models.ZoneHighRisk,
		9.0:  models.ZoneHighRisk,
	}
	for r, want := range cases {
		if got := Classify(r, lower, upper); got != want {
			t.Fatalf("ratio %v: got %s want %s", r, got, want)
		}
	}
}

func TestRiskMapping(t *testing.T) {
	if RiskFor(models.ZoneSweetSpot) != models.RiskLow {
		t.Fatalf("sweet-spot should be low risk")
	}
	if RiskFor(models.ZoneCaution) != models.RiskModerate || RiskFor(models.ZoneUnderload) != models.RiskModerate {
		t.Fatalf("caution/underload should be moderate risk")
	}
	if RiskFor(models.ZoneHighRisk) != models.RiskHigh {
		t.Fatalf("high-risk should be high risk")
	}
}

func TestAnalyzeFiltersUndefinedWeeks(t *testing.T) {
	a := NewAnalyzer()
	weeks := []models.WeeklyLoadMetric{
		week(0, nil), // insufficient chronic history
		week(1, ratio(1.0)),
		week(2, nil),
		week(3, ratio(1.6)),
	}
	got := a.Analyze("u1", "4w", weeks, nil)
	if len(got.Weeks) != 2 {
		t.Fatalf("undefined weeks must be filtered, got %d", len(got.Weeks))
	}
	if got.CurrentACWR == nil || *got.CurrentACWR != 1.6 {
		t.Fatalf("current should be the most recent defined ratio, got %v", got.CurrentACWR)
	}
	if got.Zone != models.ZoneHighRisk || got.Risk != models.RiskHigh {
		t.Fatalf("1.6 should be high-risk, got %s/%s", got.Zone, got.Risk)
	}
}

func TestAnalyzeNeedsMoreData(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze("u1", "4w", []models.WeeklyLoadMetric{week(0, ratio(1.0))}, nil)
	if !got.NeedsMoreData {
		t.Fatalf("fewer than 4 weeks must flag NeedsMoreData")
	}
	got = a.Analyze("u1", "4w", []models.WeeklyLoadMetric{
		week(0, ratio(1.0)), week(1, ratio(1.0)), week(2, ratio(1.0)), week(3, ratio(1.0)),
	}, nil)
	if got.NeedsMoreData {
		t.Fatalf("4 weeks should not flag NeedsMoreData")
	}
}

func TestAnalyzePersonalZoneActivation(t *testing.T) {
	a := NewAnalyzer()
	weeks := []models.WeeklyLoadMetric{
		week(0, ratio(1.0)), week(1, ratio(1.0)), week(2, ratio(1.0)), week(3, ratio(1.0)),
	}

	// quality below 0.6: universal zone verbatim
	lowQ := &models.AthleteBaselines{ACWRMean: 1.0, ACWRStdDev: 0.05, DataQualityScore: 0.5}
	got := a.Analyze("u1", "4w", weeks, lowQ)
	if got.HasPersonalZone || got.LowerBound != 0.8 || got.UpperBound != 1.3 {
		t.Fatalf("low quality should keep universal zone, got [%v,%v] personal=%v",
			got.LowerBound, got.UpperBound, got.HasPersonalZone)
	}

	// mean 1.0, std 0.05, good quality
	goodQ := &models.AthleteBaselines{ACWRMean: 1.0, ACWRStdDev: 0.05, DataQualityScore: 0.9}
	got = a.Analyze("u1", "4w", weeks, goodQ)
	if !got.HasPersonalZone {
		t.Fatalf("expected personal zone")
	}
	if math.Abs(got.LowerBound-0.95) > 1e-9 || math.Abs(got.UpperBound-1.05) > 1e-9 {
		t.Fatalf("expected [0.95,1.05], got [%v,%v]", got.LowerBound, got.UpperBound)
	}

	// bounds within epsilon of universal: cosmetically personalized, not flagged
	nearUniversal := &models.AthleteBaselines{ACWRMean: 1.04, ACWRStdDev: 0.24, DataQualityScore: 0.9}
	got = a.Analyze("u1", "4w", weeks, nearUniversal)
	if got.HasPersonalZone {
		t.Fatalf("bounds within 0.05 of universal must not flag personal zone, got [%v,%v]",
			got.LowerBound, got.UpperBound)
	}
	if got.LowerBound != 0.8 || got.UpperBound != 1.3 {
		t.Fatalf("non-personal zone should fall back to universal bounds")
	}
}
