package energy

import (
	"testing"

	"RunSight/internal/domain/models"
)

func defaultPlan() models.NutritionPlan {
	return models.NutritionPlan{FuelingGPerHr: 60, FluidMlPerHr: 500, SodiumMgPerHr: 300}
}

func outcomeFor(t *testing.T, d *models.EnergyDynamics, strat models.PacingStrategy) models.StrategyOutcome {
	t.Helper()
	for _, o := range d.Outcomes {
		if o.Strategy == strat {
			return o
		}
	}
	t.Fatalf("missing outcome for %s", strat)
	return models.StrategyOutcome{}
}

func TestSimulateGlycogenNonIncreasing(t *testing.T) {
	s := NewSimulator()
	d := s.Simulate(42.195, defaultPlan(), models.RaceConditions{HeatIndex: 25})
	for _, o := range d.Outcomes {
		for i := 1; i < len(o.States); i++ {
			if o.States[i].GlycogenPct > o.States[i-1].GlycogenPct {
				t.Fatalf("%s: glycogen increased at step %d", o.Strategy, i)
			}
			if o.States[i].DistanceKm <= o.States[i-1].DistanceKm {
				t.Fatalf("%s: states not strictly ordered by distance", o.Strategy)
			}
		}
	}
}

func TestSimulateAggressiveExhaustsFirst(t *testing.T) {
	s := NewSimulator()
	// long race, minimal fueling: everybody runs out, aggressive first
	plan := models.NutritionPlan{FuelingGPerHr: 10, FluidMlPerHr: 400}
	d := s.Simulate(100, plan, models.RaceConditions{HeatIndex: 28})
	agg := outcomeFor(t, d, models.PacingAggressive)
	con := outcomeFor(t, d, models.PacingConservative)
	if agg.TimeToExhaustionKm > con.TimeToExhaustionKm {
		t.Fatalf("aggressive (%v km) should not outlast conservative (%v km)",
			agg.TimeToExhaustionKm, con.TimeToExhaustionKm)
	}
}

func TestSimulateWellFueledShortRaceFinishes(t *testing.T) {
	s := NewSimulator()
	d := s.Simulate(10, models.NutritionPlan{FuelingGPerHr: 80, FluidMlPerHr: 600}, models.RaceConditions{HeatIndex: 15})
	for _, o := range d.Outcomes {
		if o.TimeToExhaustionKm != 10 {
			t.Fatalf("%s: short fueled race should complete, exhausted at %v", o.Strategy, o.TimeToExhaustionKm)
		}
	}
}

func TestImpactStatusThresholds(t *testing.T) {
	s := NewSimulator()
	cool := s.Simulate(10, models.NutritionPlan{FuelingGPerHr: 80, FluidMlPerHr: 800}, models.RaceConditions{HeatIndex: 15})
	hot := s.Simulate(42.195, models.NutritionPlan{FuelingGPerHr: 20, FluidMlPerHr: 200}, models.RaceConditions{HeatIndex: 38})
	if cool.Impact.TotalPenaltyPct >= hot.Impact.TotalPenaltyPct {
		t.Fatalf("hot underfueled race should carry the bigger penalty: %v vs %v",
			cool.Impact.TotalPenaltyPct, hot.Impact.TotalPenaltyPct)
	}
	if hot.Impact.Status != models.ImpactDanger && hot.Impact.Status != models.ImpactWarning {
		t.Fatalf("hot underfueled marathon should at least warn, got %s", hot.Impact.Status)
	}
	if cool.Impact.HeatPenaltyPct != 0 {
		t.Fatalf("no heat penalty expected below comfort, got %v", cool.Impact.HeatPenaltyPct)
	}
}

func TestImpactStatusTotal(t *testing.T) {
	cases := map[float64]models.ImpactStatus{
		0:    models.ImpactOptimal,
		4.9:  models.ImpactOptimal,
		5:    models.ImpactAcceptable,
		9.9:  models.ImpactAcceptable,
		10:   models.ImpactWarning,
		19.9: models.ImpactWarning,
		20:   models.ImpactDanger,
		80:   models.ImpactDanger,
	}
	for total, want := range cases {
		if got := impactStatus(total); got != want {
			t.Fatalf("total %v: got %s want %s", total, got, want)
		}
	}
}
