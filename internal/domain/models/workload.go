package models

import "time"

// WeeklyLoadMetric is one ISO week of aggregated training load for an athlete.
// Created by the load aggregator; consumed read-only by the workload analyzer.
// ACWR is nil when chronic history is insufficient for the week.
type WeeklyLoadMetric struct {
	WeekStart       time.Time `json:"week_start"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	AcuteLoad       float64   `json:"acute_load"`
	ChronicLoad     float64   `json:"chronic_load"`
	ACWR            *float64  `json:"acwr,omitempty"`
}

// Universal ACWR safe zone used when no personalized baseline qualifies.
const (
	UniversalACWRLower = 0.8
	UniversalACWRUpper = 1.3
	ACWRHighRiskAbove  = 1.5
)

// AthleteBaselines holds the personalized ACWR zone derived from an athlete's
// historical ratio mean/variance. Bounds are always a sub-range of the
// safety-clamped universal zone [0.8, 1.5].
type AthleteBaselines struct {
	ACWRMean         float64 `json:"acwr_mean"`
	ACWRStdDev       float64 `json:"acwr_std_dev"`
	LowerBound       float64 `json:"lower_bound"`
	UpperBound       float64 `json:"upper_bound"`
	DataQualityScore float64 `json:"data_quality_score"` // [0,1]; personalized zone activates at >= 0.6
}

// LoadZone classifies a workload ratio. Classification is total: every finite
// ratio maps to exactly one zone.
type LoadZone string

const (
	ZoneSweetSpot LoadZone = "sweet-spot"
	ZoneCaution   LoadZone = "caution"
	ZoneUnderload LoadZone = "underload"
	ZoneHighRisk  LoadZone = "high-risk"
)

// RiskLevel maps a load zone to presentation-facing severity.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// WorkloadAnalysis is the analyzer output for one athlete and timeframe.
type WorkloadAnalysis struct {
	UserID          string             `json:"user_id"`
	Timeframe       string             `json:"timeframe"`
	CurrentACWR     *float64           `json:"current_acwr,omitempty"`
	Zone            LoadZone           `json:"zone,omitempty"`
	Risk            RiskLevel          `json:"risk,omitempty"`
	LowerBound      float64            `json:"lower_bound"`
	UpperBound      float64            `json:"upper_bound"`
	HasPersonalZone bool               `json:"has_personal_zone"`
	NeedsMoreData   bool               `json:"needs_more_data"`
	Weeks           []WeeklyLoadMetric `json:"weeks"`
}
