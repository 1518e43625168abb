package usecase

import (
	"context"
	"encoding/json"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	svccache "RunSight/internal/service/cache"
	pkgkafka "RunSight/pkg/kafka"
)

// KafkaActivitiesHandler consumes activity messages and writes to storage.
// A successful write invalidates the user's cached adaptation profiles so the
// next profile read picks up the new history.
type KafkaActivitiesHandler struct {
	topic   string
	storage domrepo.ActivityStorage
	metrics domrepo.Metrics
	cache   svccache.BytesCache
}

func NewKafkaActivitiesHandler(topic string, storage domrepo.ActivityStorage, metrics domrepo.Metrics, cache svccache.BytesCache) *KafkaActivitiesHandler {
	return &KafkaActivitiesHandler{topic: topic, storage: storage, metrics: metrics, cache: cache}
}

func (h *KafkaActivitiesHandler) Topic() string { return h.topic }

// incoming message schema mirrors the producer payload in the activity repo
func (h *KafkaActivitiesHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		ID            string  `json:"id"`
		UserID        string  `json:"user_id"`
		DistanceKm    float64 `json:"distance_km"`
		DurationMin   float64 `json:"duration_min"`
		AvgPaceMinKm  float64 `json:"avg_pace_min_km"`
		AvgHeartRate  float64 `json:"avg_heart_rate"`
		TemperatureC  float64 `json:"temperature_c"`
		AltitudeM     float64 `json:"altitude_m"`
		ElevationGain float64 `json:"elevation_gain"`
		StartedAt     int64   `json:"started_at"`
		Completed     bool    `json:"completed"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.StartedAt > 1e11 { // ms
		m.StartedAt = m.StartedAt / 1000
	}
	// E2E latency from activity start to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(m.StartedAt, 0)).Seconds())

	start := time.Now()
	err := h.storage.Store(ctx, &models.ActivityRecord{
		ID:            m.ID,
		UserID:        m.UserID,
		DistanceKm:    m.DistanceKm,
		DurationMin:   m.DurationMin,
		AvgPaceMinKm:  m.AvgPaceMinKm,
		AvgHeartRate:  m.AvgHeartRate,
		TemperatureC:  m.TemperatureC,
		AltitudeM:     m.AltitudeM,
		ElevationGain: m.ElevationGain,
		StartedAt:     time.Unix(m.StartedAt, 0).UTC(),
		Completed:     m.Completed,
	})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	invalidateProfiles(h.cache, nil, m.UserID)
	h.metrics.RecordActivityIngested("clickhouse", m.UserID)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaActivitiesHandler)(nil)
