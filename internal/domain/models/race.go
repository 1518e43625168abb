package models

import "time"

// BaselineRace is the reference performance anchoring a projection request.
// Selected once per request; not persisted by the engine.
type BaselineRace struct {
	DistanceKm float64   `json:"distance_km"`
	TimeMin    float64   `json:"time_min"`
	Name       string    `json:"name,omitempty"`
	Date       time.Time `json:"date,omitempty"`
}

// ProjectionEntry is one row of the race projection table.
type ProjectionEntry struct {
	Label         string  `json:"label"`
	DistanceKm    float64 `json:"distance_km"`
	PredictedMin  float64 `json:"predicted_min"`
	PaceMinPerKm  float64 `json:"pace_min_per_km"`
	AdjustmentPct float64 `json:"adjustment_pct"` // environmental adjustment applied, 0 if none
	ConfidencePct float64 `json:"confidence_pct"`
}

// RaceProjection is the full projection table for one baseline.
type RaceProjection struct {
	UserID   string            `json:"user_id"`
	Baseline BaselineRace      `json:"baseline"`
	Entries  []ProjectionEntry `json:"entries"`
}

// RaceConditions are the expected environmental conditions for a target race.
type RaceConditions struct {
	TemperatureC  float64 `json:"temperature_c"`
	Humidity      float64 `json:"humidity"`
	HeatIndex     float64 `json:"heat_index"`
	AltitudeM     float64 `json:"altitude_m"`
	ElevationGain float64 `json:"elevation_gain"`
}
