package heatplan

import (
	"fmt"

	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
	"RunSight/internal/services/adaptation"
)

// Protocol thresholds.
const (
	minLeadWeeks        = 2
	fullProtocolWeeks   = 4
	maxProtocolWeeks    = 6
	rapidProtocolWeeks  = 3
	minRapidWeeks       = 2
	maintenanceWeeksCap = 4
	toleranceGapClose   = 10.0
)

// Builder generates a week-by-week heat exposure schedule from the learned
// heat profile and the remaining lead time.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build selects the protocol phase and fills the weekly schedule. The weekly
// target heat index interpolates linearly from current tolerance to the race
// heat index and never regresses week over week.
func (b *Builder) Build(userID string, heat *models.AdaptationProfile, daysUntilRace int, raceHeatIndex float64) *models.HeatProtocol {
	tolerance := adaptation.DefaultHeatThresholdC
	if heat != nil && heat.Heat != nil && heat.ConfidenceScore > 0 {
		tolerance = heat.Heat.HeatThresholdC
	}
	weeksAvailable := daysUntilRace / 7
	gap := raceHeatIndex - tolerance

	out := &models.HeatProtocol{
		UserID:           userID,
		CurrentTolerance: tolerance,
		TargetHeatIndex:  raceHeatIndex,
		Tips:             managementTips(raceHeatIndex),
	}

	switch {
	case weeksAvailable < minLeadWeeks:
		out.Phase = models.PhaseNone
		out.Warning = "Heat acclimation needs at least 10-14 days; there is not enough time before this race. Rely on heat-management tactics instead."
		return out

	case gap <= toleranceGapClose:
		out.Phase = models.PhaseMaintenance
		out.TotalWeeks = weeksAvailable
		if out.TotalWeeks > maintenanceWeeksCap {
			out.TotalWeeks = maintenanceWeeksCap
		}
		out.Weeks = maintenanceWeeks(out.TotalWeeks, tolerance)

	case weeksAvailable >= fullProtocolWeeks:
		out.Phase = models.PhaseAdaptation
		out.TotalWeeks = weeksAvailable
		if out.TotalWeeks > maxProtocolWeeks {
			out.TotalWeeks = maxProtocolWeeks
		}
		out.Weeks = adaptationWeeks(out.TotalWeeks, tolerance, raceHeatIndex)

	default:
		out.Phase = models.PhaseInitial
		out.TotalWeeks = weeksAvailable
		if out.TotalWeeks > rapidProtocolWeeks {
			out.TotalWeeks = rapidProtocolWeeks
		}
		if out.TotalWeeks < minRapidWeeks {
			out.TotalWeeks = minRapidWeeks
		}
		out.Weeks = rapidWeeks(out.TotalWeeks, tolerance, raceHeatIndex)
	}
	return out
}

// weekTarget interpolates the exposure target for a 1-based week.
func weekTarget(week, totalWeeks int, tolerance, raceHeatIndex float64) float64 {
	if totalWeeks <= 0 {
		return tolerance
	}
	progression := float64(week) / float64(totalWeeks)
	target := tolerance + (raceHeatIndex-tolerance)*progression
	if target < tolerance {
		target = tolerance
	}
	return target
}

// adaptationWeeks is the full 4-6 week protocol: initial exposure in weeks
// 1-2, core adaptation with tempo work in the middle, race-specific
// maintenance at the end.
func adaptationWeeks(totalWeeks int, tolerance, raceHeatIndex float64) []models.HeatWeek {
	weeks := make([]models.HeatWeek, 0, totalWeeks)
	for w := 1; w <= totalWeeks; w++ {
		target := weekTarget(w, totalWeeks, tolerance, raceHeatIndex)
		var subPhase string
		var sessions []models.HeatSession
		switch {
		case w <= 2:
			subPhase = "initial_exposure"
			sessions = []models.HeatSession{
				session("Monday", 30, "easy", target, "Short easy run in the heat of the day"),
				session("Wednesday", 35, "easy", target, "Easy run plus 15 min post-run passive heat"),
				session("Friday", 40, "easy", target, "Easy long-ish run, hydrate to thirst"),
			}
		case w < totalWeeks:
			subPhase = "core_adaptation"
			sessions = []models.HeatSession{
				session("Monday", 40, "easy", target, "Easy run in full heat exposure"),
				session("Wednesday", 45, "tempo", target, "Tempo intervals in the heat, extended cooldown"),
				session("Friday", 50, "easy", target, "Progressive long run finishing at race effort"),
			}
		default:
			subPhase = "race_specific"
			sessions = []models.HeatSession{
				session("Tuesday", 40, "race-pace", target, "Race-pace rehearsal with planned race fueling"),
				session("Saturday", 30, "easy", target, "Short exposure maintenance, full recovery focus"),
			}
		}
		weeks = append(weeks, models.HeatWeek{Week: w, SubPhase: subPhase, TargetHeatIndex: target, Sessions: sessions})
	}
	return weeks
}

// rapidWeeks compresses acclimation into 2-3 weeks with daily exposure.
func rapidWeeks(totalWeeks int, tolerance, raceHeatIndex float64) []models.HeatWeek {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	weeks := make([]models.HeatWeek, 0, totalWeeks)
	for w := 1; w <= totalWeeks; w++ {
		target := weekTarget(w, totalWeeks, tolerance, raceHeatIndex)
		sessions := make([]models.HeatSession, 0, len(days))
		for i, day := range days {
			dur := 20 + 2*i
			sessions = append(sessions, session(day, dur, "easy", target,
				fmt.Sprintf("Daily heat exposure, day %d of the week", i+1)))
		}
		weeks = append(weeks, models.HeatWeek{Week: w, SubPhase: "rapid", TargetHeatIndex: target, Sessions: sessions})
	}
	return weeks
}

// maintenanceWeeks holds tolerance with two weekly sessions; targets stay
// flat, which keeps the non-regression invariant trivially.
func maintenanceWeeks(totalWeeks int, tolerance float64) []models.HeatWeek {
	weeks := make([]models.HeatWeek, 0, totalWeeks)
	for w := 1; w <= totalWeeks; w++ {
		weeks = append(weeks, models.HeatWeek{
			Week:            w,
			SubPhase:        "maintenance",
			TargetHeatIndex: tolerance,
			Sessions: []models.HeatSession{
				session("Tuesday", 35, "easy", tolerance, "Maintenance heat run"),
				session("Saturday", 45, "tempo", tolerance, "Quality session in the heat"),
			},
		})
	}
	return weeks
}

func session(day string, durationMin int, intensity string, target float64, description string) models.HeatSession {
	return models.HeatSession{
		Day:             day,
		DurationMin:     durationMin,
		Intensity:       intensity,
		TargetHeatIndex: target,
		Description:     description,
	}
}

func managementTips(raceHeatIndex float64) []string {
	tips := []string{
		"Pre-cool with cold fluids or ice before the start.",
		"Start conservatively; heat cost compounds late in the race.",
		"Drink to a plan, not to thirst, once heat index exceeds 27.",
	}
	if raceHeatIndex >= 32 {
		tips = append(tips, "Use every aid station for external cooling: ice, sponges, water over the head.")
	}
	return tips
}

var _ domsvc.ProtocolBuilder = (*Builder)(nil)
