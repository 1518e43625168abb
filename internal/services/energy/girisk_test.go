package energy

import (
	"testing"

	"RunSight/internal/domain/models"
)

func TestGIRiskMonotoneInFueling(t *testing.T) {
	prev := -1.0
	for _, fueling := range []float64{30, 60, 75, 90, 110, 130} {
		r := AssessGIRisk(fueling, 30, 95, 500)
		if r.RiskPct < prev {
			t.Fatalf("risk decreased when fueling rose to %v: %v < %v", fueling, r.RiskPct, prev)
		}
		prev = r.RiskPct
	}
}

func TestGIRiskMonotoneInHeat(t *testing.T) {
	prev := -1.0
	for _, hi := range []float64{15, 25, 30, 35, 42} {
		r := AssessGIRisk(90, hi, 95, 500)
		if r.RiskPct < prev {
			t.Fatalf("risk decreased when heat rose to %v: %v < %v", hi, r.RiskPct, prev)
		}
		prev = r.RiskPct
	}
}

func TestGIRiskDecreasesWithFluid(t *testing.T) {
	dry := AssessGIRisk(90, 32, 95, 100)
	hydrated := AssessGIRisk(90, 32, 95, 700)
	if hydrated.RiskPct > dry.RiskPct {
		t.Fatalf("adequate fluid should reduce risk: %v > %v", hydrated.RiskPct, dry.RiskPct)
	}
	// beyond adequate intake there is no extra relief
	flooded := AssessGIRisk(90, 32, 95, 1600)
	adequate := AssessGIRisk(90, 32, 95, 800)
	if flooded.RiskPct != adequate.RiskPct {
		t.Fatalf("fluid relief should cap at adequate intake: %v vs %v", flooded.RiskPct, adequate.RiskPct)
	}
}

func TestGIRiskHeatFuelingInteraction(t *testing.T) {
	// the marginal cost of extra fueling must be larger in the heat
	coolLo := AssessGIRisk(70, 20, 95, 500)
	coolHi := AssessGIRisk(100, 20, 95, 500)
	hotLo := AssessGIRisk(70, 38, 95, 500)
	hotHi := AssessGIRisk(100, 38, 95, 500)
	coolDelta := coolHi.RiskPct - coolLo.RiskPct
	hotDelta := hotHi.RiskPct - hotLo.RiskPct
	if hotDelta <= coolDelta {
		t.Fatalf("fueling increase should cost more in heat: %v <= %v", hotDelta, coolDelta)
	}
}

func TestGIRiskLevelsAndBounds(t *testing.T) {
	low := AssessGIRisk(40, 15, 85, 800)
	if low.Level != models.GIRiskLow {
		t.Fatalf("mild plan should be low risk, got %s (%v%%)", low.Level, low.RiskPct)
	}
	extreme := AssessGIRisk(200, 50, 110, 0)
	if extreme.Level != models.GIRiskHigh {
		t.Fatalf("extreme plan should be high risk, got %s", extreme.Level)
	}
	if extreme.RiskPct > 100 || low.RiskPct < 0 {
		t.Fatalf("risk must stay within [0,100]: %v, %v", extreme.RiskPct, low.RiskPct)
	}
	if low.Message == "" || extreme.Message == "" {
		t.Fatalf("messages must be populated")
	}
}
