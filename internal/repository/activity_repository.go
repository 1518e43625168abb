package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"RunSight/internal/domain/models"
	"RunSight/internal/domain/repository"
	pkgkafka "RunSight/pkg/kafka"
)

// ClickHouseActivityStorage implements ActivityStorage for ClickHouse.
type ClickHouseActivityStorage struct {
	db    *sql.DB
	table string
}

// NewClickHouseActivityStorage creates ClickHouse activity storage.
func NewClickHouseActivityStorage(db *sql.DB, table string) repository.ActivityStorage {
	return &ClickHouseActivityStorage{db: db, table: table}
}

func (s *ClickHouseActivityStorage) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseActivityStorage) Store(ctx context.Context, a *models.ActivityRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (id, user_id, distance_km, duration_min, avg_pace_min_km, avg_heart_rate, temperature_c, altitude_m, elevation_gain, started_at, completed, source) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q, activityArgs(a)...)
	return err
}

func (s *ClickHouseActivityStorage) StoreBatch(ctx context.Context, activities []*models.ActivityRecord) error {
	if len(activities) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(activities); start += chunkSize {
		end := start + chunkSize
		if end > len(activities) {
			end = len(activities)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*12)
		for _, a := range activities[start:end] {
			if a == nil || a.UserID == "" || a.StartedAt.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args, activityArgs(a)...)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (id, user_id, distance_km, duration_min, avg_pace_min_km, avg_heart_rate, temperature_c, altitude_m, elevation_gain, started_at, completed, source) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func activityArgs(a *models.ActivityRecord) []interface{} {
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	completed := uint8(0)
	if a.Completed {
		completed = 1
	}
	return []interface{}{
		id,
		a.UserID,
		a.DistanceKm,
		a.DurationMin,
		a.AvgPaceMinKm,
		a.AvgHeartRate,
		a.TemperatureC,
		a.AltitudeM,
		a.ElevationGain,
		a.StartedAt,
		completed,
		"device",
	}
}

func (s *ClickHouseActivityStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseActivityStorage) Close() error {
	return nil // Managed by pkg
}

// KafkaActivityPublisher implements Publisher for Kafka.
type KafkaActivityPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaActivityPublisher creates the Kafka publisher.
func NewKafkaActivityPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaActivityPublisher{producer: producer, topic: topic}
}

func (p *KafkaActivityPublisher) Publish(ctx context.Context, a *models.ActivityRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.UserID), activityPayload(a))
}

func (p *KafkaActivityPublisher) PublishBatch(ctx context.Context, activities []*models.ActivityRecord) error {
	if len(activities) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(activities))
	for i, a := range activities {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(a.UserID),
			Value: activityPayload(a),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func activityPayload(a *models.ActivityRecord) map[string]interface{} {
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	return map[string]interface{}{
		"id":              id,
		"user_id":         a.UserID,
		"distance_km":     a.DistanceKm,
		"duration_min":    a.DurationMin,
		"avg_pace_min_km": a.AvgPaceMinKm,
		"avg_heart_rate":  a.AvgHeartRate,
		"temperature_c":   a.TemperatureC,
		"altitude_m":      a.AltitudeM,
		"elevation_gain":  a.ElevationGain,
		"started_at":      a.StartedAt.Unix(),
		"completed":       a.Completed,
	}
}

func (p *KafkaActivityPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
