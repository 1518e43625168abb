package models

import (
	"fmt"
	"time"
)

// AdaptationType identifies which environmental learner produced a profile.
type AdaptationType string

const (
	AdaptationHeat      AdaptationType = "heat"
	AdaptationAltitude  AdaptationType = "altitude"
	AdaptationTimeOfDay AdaptationType = "time_of_day"
)

// IsValidAdaptationType returns true if t is a supported adaptation type.
func IsValidAdaptationType(t AdaptationType) bool {
	switch t {
	case AdaptationHeat, AdaptationAltitude, AdaptationTimeOfDay:
		return true
	default:
		return false
	}
}

// CurvePoint is one bucketed observation of the learned response curve.
type CurvePoint struct {
	BucketValue   float64 `json:"bucket_value"`
	AdjustmentPct float64 `json:"adjustment_pct"`
}

// ResponseCurve is an ordered sequence of curve points, sorted ascending by
// bucket value with no duplicates. It is fully recomputed on each learning
// pass, never incrementally patched.
type ResponseCurve []CurvePoint

// Validate checks the curve invariant: strictly increasing unique buckets.
func (c ResponseCurve) Validate() error {
	for i := 1; i < len(c); i++ {
		if c[i].BucketValue <= c[i-1].BucketValue {
			return fmt.Errorf("response curve: bucket %v not strictly increasing after %v",
				c[i].BucketValue, c[i-1].BucketValue)
		}
	}
	return nil
}

// HeatCoefficients are the learned anchors of the heat-tolerance profile.
type HeatCoefficients struct {
	OptimalTempC       float64 `json:"optimal_temp_c"`
	HeatThresholdC     float64 `json:"heat_threshold_c"`
	HeatToleranceIndex float64 `json:"heat_tolerance_index"`
}

// AltitudeCoefficients are the learned anchors of the altitude-response profile.
type AltitudeCoefficients struct {
	SeaLevelPace        float64 `json:"sea_level_pace"`
	AltitudeSensitivity float64 `json:"altitude_sensitivity"` // pct slowdown per 1000 m
	AcclimatizationDays int     `json:"acclimatization_days"`
}

// DaypartScore ranks one daypart by the combined pace/completion score.
type DaypartScore struct {
	Daypart        string  `json:"daypart"`
	Score          float64 `json:"score"`
	AvgPaceMinKm   float64 `json:"avg_pace_min_km"`
	CompletionRate float64 `json:"completion_rate"`
	SampleCount    int     `json:"sample_count"`
}

// TimeCoefficients are the learned anchors of the time-of-day profile.
type TimeCoefficients struct {
	BestDaypart   string         `json:"best_daypart"`
	DaypartScores []DaypartScore `json:"daypart_scores"`
	IsEarlyBird   bool           `json:"is_early_bird"`
}

// AdaptationProfile is the derived state of one learner for one athlete.
// Exactly one coefficient set is non-nil, matching Type (tagged union).
type AdaptationProfile struct {
	UserID          string                `json:"user_id"`
	Type            AdaptationType        `json:"type"`
	Curve           ResponseCurve         `json:"curve"`
	Heat            *HeatCoefficients     `json:"heat,omitempty"`
	Altitude        *AltitudeCoefficients `json:"altitude,omitempty"`
	Time            *TimeCoefficients     `json:"time,omitempty"`
	ConfidenceScore float64               `json:"confidence_score"` // [0,100]; 0 means "do not act on this"
	SampleCount     int                   `json:"sample_count"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Validate checks the tagged-union invariant on read.
func (p *AdaptationProfile) Validate() error {
	if !IsValidAdaptationType(p.Type) {
		return fmt.Errorf("profile: unknown adaptation type %q", p.Type)
	}
	if err := p.Curve.Validate(); err != nil {
		return err
	}
	switch p.Type {
	case AdaptationHeat:
		if p.Heat == nil || p.Altitude != nil || p.Time != nil {
			return fmt.Errorf("profile: heat profile must carry exactly heat coefficients")
		}
	case AdaptationAltitude:
		if p.Altitude == nil || p.Heat != nil || p.Time != nil {
			return fmt.Errorf("profile: altitude profile must carry exactly altitude coefficients")
		}
	case AdaptationTimeOfDay:
		if p.Time == nil || p.Heat != nil || p.Altitude != nil {
			return fmt.Errorf("profile: time profile must carry exactly time coefficients")
		}
	}
	if p.ConfidenceScore < 0 || p.ConfidenceScore > 100 {
		return fmt.Errorf("profile: confidence %v out of [0,100]", p.ConfidenceScore)
	}
	return nil
}
