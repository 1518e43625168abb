package heatplan

import (
	"testing"

	"RunSight/internal/domain/models"
)

func heatProfile(thresholdC float64) *models.AdaptationProfile {
	return &models.AdaptationProfile{
		Type:            models.AdaptationHeat,
		ConfidenceScore: 70,
		Heat: &models.HeatCoefficients{
			OptimalTempC:       14,
			HeatThresholdC:     thresholdC,
			HeatToleranceIndex: 60,
		},
	}
}

func TestBuildTooLateForAcclimation(t *testing.T) {
	b := NewBuilder()
	p := b.Build("u1", heatProfile(22), 10, 36)
	if p.Phase != models.PhaseNone {
		t.Fatalf("10 days out should be phase none, got %s", p.Phase)
	}
	if len(p.Weeks) != 0 {
		t.Fatalf("phase none must not schedule weeks, got %d", len(p.Weeks))
	}
	if p.Warning == "" {
		t.Fatalf("phase none must carry a warning")
	}
	if len(p.Tips) == 0 {
		t.Fatalf("management tips must still be provided")
	}
}

func TestBuildMaintenanceWhenToleranceClose(t *testing.T) {
	b := NewBuilder()
	p := b.Build("u1", heatProfile(28), 42, 35)
	if p.Phase != models.PhaseMaintenance {
		t.Fatalf("gap of 7 should be maintenance, got %s", p.Phase)
	}
	if p.TotalWeeks != 4 {
		t.Fatalf("maintenance caps at 4 weeks, got %d", p.TotalWeeks)
	}
	for _, w := range p.Weeks {
		if w.TargetHeatIndex != 28 {
			t.Fatalf("maintenance targets stay at tolerance: week %d got %v", w.Week, w.TargetHeatIndex)
		}
	}
}

func TestBuildFullAdaptationProtocol(t *testing.T) {
	b := NewBuilder()
	p := b.Build("u1", heatProfile(22), 56, 38)
	if p.Phase != models.PhaseAdaptation {
		t.Fatalf("8 weeks out with gap 16 should be adaptation, got %s", p.Phase)
	}
	if p.TotalWeeks != 6 || len(p.Weeks) != 6 {
		t.Fatalf("full protocol caps at 6 weeks, got %d (%d weeks)", p.TotalWeeks, len(p.Weeks))
	}
	if p.Weeks[0].SubPhase != "initial_exposure" || p.Weeks[1].SubPhase != "initial_exposure" {
		t.Fatalf("first two weeks must be initial exposure")
	}
	if p.Weeks[2].SubPhase != "core_adaptation" {
		t.Fatalf("middle weeks must be core adaptation, got %s", p.Weeks[2].SubPhase)
	}
	if last := p.Weeks[len(p.Weeks)-1]; last.SubPhase != "race_specific" {
		t.Fatalf("final week must be race specific, got %s", last.SubPhase)
	}
	if got := p.Weeks[len(p.Weeks)-1].TargetHeatIndex; got != 38 {
		t.Fatalf("final week must reach the race heat index, got %v", got)
	}
}

func TestBuildRapidProtocol(t *testing.T) {
	b := NewBuilder()
	p := b.Build("u1", heatProfile(20), 21, 34)
	if p.Phase != models.PhaseInitial {
		t.Fatalf("3 weeks out with gap 14 should be initial, got %s", p.Phase)
	}
	if p.TotalWeeks != 3 {
		t.Fatalf("rapid protocol should use all 3 weeks, got %d", p.TotalWeeks)
	}
	for _, w := range p.Weeks {
		if len(w.Sessions) != 7 {
			t.Fatalf("rapid weeks schedule daily exposure, week %d has %d sessions", w.Week, len(w.Sessions))
		}
	}
}

func TestBuildTargetsNeverRegress(t *testing.T) {
	b := NewBuilder()
	cases := []struct {
		days int
		race float64
	}{
		{56, 40},
		{35, 36},
		{21, 34},
		{42, 30},
	}
	for _, tc := range cases {
		p := b.Build("u1", heatProfile(24), tc.days, tc.race)
		prev := p.CurrentTolerance
		for _, w := range p.Weeks {
			if w.TargetHeatIndex < prev {
				t.Fatalf("days=%d race=%v: target regressed at week %d: %v < %v",
					tc.days, tc.race, w.Week, w.TargetHeatIndex, prev)
			}
			prev = w.TargetHeatIndex
			for _, s := range w.Sessions {
				if s.TargetHeatIndex != w.TargetHeatIndex {
					t.Fatalf("session target must match its week target")
				}
			}
		}
	}
}

func TestBuildWithoutProfileUsesDefaultTolerance(t *testing.T) {
	b := NewBuilder()
	p := b.Build("u1", nil, 42, 38)
	if p.CurrentTolerance != 25 {
		t.Fatalf("missing profile should fall back to default tolerance, got %v", p.CurrentTolerance)
	}
	if p.Phase != models.PhaseAdaptation {
		t.Fatalf("gap 13 with 6 weeks should be adaptation, got %s", p.Phase)
	}
}
