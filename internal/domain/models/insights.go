package models

import "time"

// AggregateInsights is the combined race-readiness report for one athlete.
// Sections fail independently: a missing section carries an entry in Errors
// instead of failing the whole report.
type AggregateInsights struct {
	UserID       string            `json:"user_id"`
	Timestamp    time.Time         `json:"timestamp"`
	Workload     *WorkloadAnalysis `json:"workload,omitempty"`
	Projection   *RaceProjection   `json:"projection,omitempty"`
	Energy       *EnergyDynamics   `json:"energy,omitempty"`
	HeatProtocol *HeatProtocol     `json:"heat_protocol,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}
