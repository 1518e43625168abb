package adaptation

import (
	"sort"
	"time"

	"RunSight/internal/domain/models"
	domsvc "RunSight/internal/domain/service"
)

// Dayparts in fixed order. Each maps a set of clock hours; the order doubles
// as the tiebreaker when ranking scores (stable sort).
var dayparts = []struct {
	Name       string
	Hours      []int
	MedianHour float64
}{
	{"early_morning", []int{5, 6, 7}, 6},
	{"morning", []int{8, 9, 10, 11}, 9.5},
	{"afternoon", []int{12, 13, 14, 15, 16}, 14},
	{"evening", []int{17, 18, 19, 20}, 18.5},
	{"night", []int{21, 22, 23, 0, 1, 2, 3, 4}, 23},
}

// TimeOfDayLearner ranks an athlete's dayparts by combining relative pace
// improvement with completion rate.
type TimeOfDayLearner struct{}

func NewTimeOfDayLearner() *TimeOfDayLearner { return &TimeOfDayLearner{} }

func (l *TimeOfDayLearner) Type() models.AdaptationType { return models.AdaptationTimeOfDay }

func (l *TimeOfDayLearner) Learn(userID string, samples []models.PerformanceSample) *models.AdaptationProfile {
	valid := filterValid(samples)
	if len(valid) < MinSamplesTimeOfDay {
		return DefaultTimeOfDayProfile(userID, len(valid))
	}

	var overallSum float64
	for _, s := range valid {
		overallSum += s.PaceMinPerKm
	}
	overall := overallSum / float64(len(valid))

	hourToDaypart := make(map[int]int, 24)
	for i, dp := range dayparts {
		for _, h := range dp.Hours {
			hourToDaypart[h] = i
		}
	}

	type agg struct {
		paceSum   float64
		total     int
		completed int
	}
	byDaypart := make([]agg, len(dayparts))
	for _, s := range valid {
		i, ok := hourToDaypart[int(s.ConditionValue)]
		if !ok {
			continue
		}
		byDaypart[i].paceSum += s.PaceMinPerKm
		byDaypart[i].total++
		if s.Completed {
			byDaypart[i].completed++
		}
	}

	scores := make([]models.DaypartScore, 0, len(dayparts))
	curve := make(models.ResponseCurve, 0, len(dayparts))
	for i, dp := range dayparts {
		a := byDaypart[i]
		if a.total < MinSamplesPerDaypart {
			continue
		}
		avgPace := a.paceSum / float64(a.total)
		improvementPct := (overall - avgPace) / overall * 100
		completion := float64(a.completed) / float64(a.total)
		scores = append(scores, models.DaypartScore{
			Daypart:        dp.Name,
			Score:          DaypartPaceWeight*improvementPct + DaypartCompletionWeight*completion*100,
			AvgPaceMinKm:   avgPace,
			CompletionRate: completion,
			SampleCount:    a.total,
		})
		curve = append(curve, models.CurvePoint{
			BucketValue:   dp.MedianHour,
			AdjustmentPct: -improvementPct,
		})
	}
	if len(scores) == 0 {
		return DefaultTimeOfDayProfile(userID, len(valid))
	}

	// rank best first; insertion order breaks ties
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	best := scores[0].Daypart
	coeffs := &models.TimeCoefficients{
		BestDaypart:   best,
		DaypartScores: scores,
		IsEarlyBird:   best == "early_morning" || best == "morning",
	}

	return &models.AdaptationProfile{
		UserID:          userID,
		Type:            models.AdaptationTimeOfDay,
		Curve:           curve,
		Time:            coeffs,
		ConfidenceScore: timeOfDayConfidence(valid, len(scores)),
		SampleCount:     len(valid),
		UpdatedAt:       time.Now().UTC(),
	}
}

// DefaultTimeOfDayProfile is the neutral profile returned below the threshold.
func DefaultTimeOfDayProfile(userID string, sampleCount int) *models.AdaptationProfile {
	return &models.AdaptationProfile{
		UserID: userID,
		Type:   models.AdaptationTimeOfDay,
		Time: &models.TimeCoefficients{
			BestDaypart: DefaultBestDaypart,
			IsEarlyBird: true,
		},
		ConfidenceScore: 0,
		SampleCount:     sampleCount,
		UpdatedAt:       time.Now().UTC(),
	}
}

// timeOfDayConfidence treats daypart coverage as the condition spread: samples
// concentrated in one daypart say little about the others.
func timeOfDayConfidence(samples []models.PerformanceSample, daypartsCovered int) float64 {
	sampleScore := float64(len(samples)) * ConfidencePerSample
	if sampleScore > 100 {
		sampleScore = 100
	}
	rangeScore := float64(daypartsCovered) / float64(len(dayparts)) * 100
	score := ConfidenceSampleWeight*sampleScore + ConfidenceRangeWeight*rangeScore
	if score > 100 {
		score = 100
	}
	return score
}

var _ domsvc.AdaptationLearner = (*TimeOfDayLearner)(nil)
