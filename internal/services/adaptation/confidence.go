package adaptation

import "RunSight/internal/domain/models"

// confidenceScore combines a capped sample-count score with the spread of
// observed condition values. More samples across a wider range of conditions
// increases confidence; the result is capped at 100.
func confidenceScore(samples []models.PerformanceSample, refRange float64) float64 {
	if len(samples) == 0 || refRange <= 0 {
		return 0
	}
	sampleScore := float64(len(samples)) * ConfidencePerSample
	if sampleScore > 100 {
		sampleScore = 100
	}

	lo, hi := samples[0].ConditionValue, samples[0].ConditionValue
	for _, s := range samples[1:] {
		if s.ConditionValue < lo {
			lo = s.ConditionValue
		}
		if s.ConditionValue > hi {
			hi = s.ConditionValue
		}
	}
	rangeScore := (hi - lo) / refRange * 100
	if rangeScore > 100 {
		rangeScore = 100
	}

	score := ConfidenceSampleWeight*sampleScore + ConfidenceRangeWeight*rangeScore
	if score > 100 {
		score = 100
	}
	return score
}

// filterValid drops malformed samples (missing pace) before any computation.
func filterValid(samples []models.PerformanceSample) []models.PerformanceSample {
	out := make([]models.PerformanceSample, 0, len(samples))
	for _, s := range samples {
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// baselinePace returns the mean pace over samples whose condition value
// satisfies comfortable, falling back to the overall mean when none qualify.
func baselinePace(samples []models.PerformanceSample, comfortable func(float64) bool) float64 {
	var comfortSum float64
	var comfortN int
	var allSum float64
	for _, s := range samples {
		allSum += s.PaceMinPerKm
		if comfortable(s.ConditionValue) {
			comfortSum += s.PaceMinPerKm
			comfortN++
		}
	}
	if comfortN > 0 {
		return comfortSum / float64(comfortN)
	}
	if len(samples) > 0 {
		return allSum / float64(len(samples))
	}
	return DefaultPaceMinPerKm
}
