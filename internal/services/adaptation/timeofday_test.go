package adaptation

import (
	"testing"
	"time"

	"RunSight/internal/domain/models"
)

func todSample(hour int, pace float64, completed bool, day int) models.PerformanceSample {
	return models.PerformanceSample{
		ConditionValue: float64(hour),
		PaceMinPerKm:   pace,
		Date:           time.Date(2025, 4, 1, hour, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Completed:      completed,
	}
}

func TestTimeOfDayBelowThresholdReturnsDefault(t *testing.T) {
	l := NewTimeOfDayLearner()
	var samples []models.PerformanceSample
	for i := 0; i < 19; i++ {
		samples = append(samples, todSample(7, 5.0, true, i))
	}
	p := l.Learn("u1", samples)
	if p.Time == nil || p.Time.BestDaypart != "morning" || p.ConfidenceScore != 0 {
		t.Fatalf("expected neutral default, got %+v conf=%v", p.Time, p.ConfidenceScore)
	}
}

func TestTimeOfDayRanksFasterDaypart(t *testing.T) {
	l := NewTimeOfDayLearner()
	var samples []models.PerformanceSample
	// ten early-morning runs, clearly faster
	for i := 0; i < 10; i++ {
		samples = append(samples, todSample(6, 4.8, true, i))
	}
	// ten evening runs, slower
	for i := 0; i < 10; i++ {
		samples = append(samples, todSample(18, 5.4, true, 10+i))
	}
	p := l.Learn("u1", samples)
	if p.Time.BestDaypart != "early_morning" {
		t.Fatalf("expected early_morning best, got %s", p.Time.BestDaypart)
	}
	if !p.Time.IsEarlyBird {
		t.Fatalf("expected early bird")
	}
	if len(p.Time.DaypartScores) != 2 {
		t.Fatalf("expected 2 ranked dayparts, got %d", len(p.Time.DaypartScores))
	}
	if p.Time.DaypartScores[0].Score <= p.Time.DaypartScores[1].Score {
		t.Fatalf("scores not ranked descending: %+v", p.Time.DaypartScores)
	}
	if err := p.Curve.Validate(); err != nil {
		t.Fatalf("curve invariant: %v", err)
	}
}

func TestTimeOfDayCompletionRateMatters(t *testing.T) {
	l := NewTimeOfDayLearner()
	var samples []models.PerformanceSample
	// identical pace, but evening runs frequently abandoned
	for i := 0; i < 10; i++ {
		samples = append(samples, todSample(9, 5.0, true, i))
	}
	for i := 0; i < 10; i++ {
		samples = append(samples, todSample(19, 5.0, i%2 == 0, 10+i))
	}
	p := l.Learn("u1", samples)
	if p.Time.BestDaypart != "morning" {
		t.Fatalf("completion rate should break the pace tie, got %s", p.Time.BestDaypart)
	}
}

func TestTimeOfDayTieBrokenByInsertionOrder(t *testing.T) {
	l := NewTimeOfDayLearner()
	var samples []models.PerformanceSample
	// two dayparts with identical pace and completion: stable sort keeps
	// the earlier daypart first
	for i := 0; i < 10; i++ {
		samples = append(samples, todSample(6, 5.0, true, i))
	}
	for i := 0; i < 10; i++ {
		samples = append(samples, todSample(14, 5.0, true, 10+i))
	}
	p := l.Learn("u1", samples)
	if p.Time.BestDaypart != "early_morning" {
		t.Fatalf("tie should keep insertion order, got %s", p.Time.BestDaypart)
	}
}

func TestTimeOfDaySparseDaypartExcluded(t *testing.T) {
	l := NewTimeOfDayLearner()
	var samples []models.PerformanceSample
	for i := 0; i < 19; i++ {
		samples = append(samples, todSample(9, 5.0, true, i))
	}
	// only two night runs: below the per-daypart minimum
	samples = append(samples, todSample(23, 4.0, true, 20))
	samples = append(samples, todSample(23, 4.0, true, 21))
	p := l.Learn("u1", samples)
	for _, s := range p.Time.DaypartScores {
		if s.Daypart == "night" {
			t.Fatalf("night daypart with <3 samples must be excluded")
		}
	}
	if p.Time.BestDaypart != "morning" {
		t.Fatalf("expected morning, got %s", p.Time.BestDaypart)
	}
}
