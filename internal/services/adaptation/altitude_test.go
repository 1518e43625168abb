package adaptation

import (
	"math"
	"testing"
	"time"

	"RunSight/internal/domain/models"
)

func altSample(altitude, pace float64, day int) models.PerformanceSample {
	return models.PerformanceSample{
		ConditionValue: altitude,
		PaceMinPerKm:   pace,
		Date:           time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Completed:      true,
	}
}

func TestAltitudeLearnerBelowThresholdReturnsDefault(t *testing.T) {
	l := NewAltitudeLearner()
	p := l.Learn("u1", []models.PerformanceSample{altSample(100, 5, 0)})
	if p.Altitude == nil {
		t.Fatalf("expected altitude coefficients")
	}
	if p.ConfidenceScore != 0 || p.Altitude.AcclimatizationDays != 14 {
		t.Fatalf("expected neutral default, got %+v conf=%v", p.Altitude, p.ConfidenceScore)
	}
	if p.Altitude.AltitudeSensitivity != 3.0 {
		t.Fatalf("default sensitivity should be 3%%/1000m, got %v", p.Altitude.AltitudeSensitivity)
	}
}

func TestAltitudeLearnerSensitivityFromCurve(t *testing.T) {
	l := NewAltitudeLearner()
	var samples []models.PerformanceSample
	// sea level baseline
	for i := 0; i < 6; i++ {
		samples = append(samples, altSample(50, 5.0, i))
	}
	// steady 4% slowdown per 1000 m
	for i := 0; i < 4; i++ {
		samples = append(samples, altSample(1000, 5.2, 6+i))
	}
	for i := 0; i < 4; i++ {
		samples = append(samples, altSample(2000, 5.4, 10+i))
	}
	p := l.Learn("u1", samples)
	if p.Altitude.SeaLevelPace != 5.0 {
		t.Fatalf("sea level pace: got %v", p.Altitude.SeaLevelPace)
	}
	if math.Abs(p.Altitude.AltitudeSensitivity-4.0) > 0.2 {
		t.Fatalf("sensitivity near 4%%/1000m expected, got %v", p.Altitude.AltitudeSensitivity)
	}
	if err := p.Curve.Validate(); err != nil {
		t.Fatalf("curve invariant: %v", err)
	}
}

func TestAcclimatizationDaysFromQualifyingPairs(t *testing.T) {
	var samples []models.PerformanceSample
	// two pairs of improving high-altitude sessions, 10 and 12 days apart
	samples = append(samples, altSample(2000, 5.8, 0))
	samples = append(samples, altSample(2000, 5.5, 10))
	samples = append(samples, altSample(1800, 5.4, 22))
	got := acclimatizationDays(samples)
	if got != 11 {
		t.Fatalf("expected mean gap 11, got %d", got)
	}
}

func TestAcclimatizationDaysClampsAndDefaults(t *testing.T) {
	// gaps of 2 days clamp up to the 7-day minimum
	short := []models.PerformanceSample{
		altSample(2000, 5.8, 0),
		altSample(2000, 5.6, 2),
	}
	if got := acclimatizationDays(short); got != 7 {
		t.Fatalf("expected clamp to 7, got %d", got)
	}

	// later session slower: pair does not qualify
	noImprove := []models.PerformanceSample{
		altSample(2000, 5.5, 0),
		altSample(2000, 5.8, 10),
	}
	if got := acclimatizationDays(noImprove); got != 14 {
		t.Fatalf("expected default 14, got %d", got)
	}

	// sessions too far apart
	farApart := []models.PerformanceSample{
		altSample(2000, 5.8, 0),
		altSample(2000, 5.5, 45),
	}
	if got := acclimatizationDays(farApart); got != 14 {
		t.Fatalf("expected default 14 for >30 day gap, got %d", got)
	}

	// below the high-altitude cutoff entirely
	low := []models.PerformanceSample{
		altSample(900, 5.8, 0),
		altSample(900, 5.5, 10),
	}
	if got := acclimatizationDays(low); got != 14 {
		t.Fatalf("expected default 14 for low sessions, got %d", got)
	}
}
