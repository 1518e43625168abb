package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	activitiesIngested *prometheus.CounterVec
	learningPasses     *prometheus.CounterVec
	profileUpserts     *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec
	latency            *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		activitiesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runsight_activities_ingested_total",
				Help: "Total number of activity records ingested per backend",
			},
			[]string{"backend", "user_id"},
		),
		learningPasses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runsight_learning_passes_total",
				Help: "Total number of completed learning passes",
			},
			[]string{"adaptation_type"},
		),
		profileUpserts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runsight_profile_upserts_total",
				Help: "Total number of persisted adaptation profiles",
			},
			[]string{"adaptation_type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runsight_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "runsight_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordActivityIngested records one ingested activity record.
func (r *Recorder) RecordActivityIngested(backend, userID string) {
	r.activitiesIngested.WithLabelValues(backend, userID).Inc()
}

// RecordLearningPass records a completed learning pass.
func (r *Recorder) RecordLearningPass(adaptationType string) {
	r.learningPasses.WithLabelValues(adaptationType).Inc()
}

// RecordProfileUpsert records a persisted profile.
func (r *Recorder) RecordProfileUpsert(adaptationType string) {
	r.profileUpserts.WithLabelValues(adaptationType).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
