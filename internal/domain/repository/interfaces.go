package repository

import (
	"context"
	"time"

	"RunSight/internal/domain/models"
)

// ActivityStream is a live feed of activity records from a device gateway.
type ActivityStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.ActivityRecord, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher pushes activity records onto the ingest bus.
type Publisher interface {
	Publish(ctx context.Context, a *models.ActivityRecord) error
	PublishBatch(ctx context.Context, activities []*models.ActivityRecord) error
	Close() error
}

// ActivityStorage persists raw activity records.
type ActivityStorage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, a *models.ActivityRecord) error
	StoreBatch(ctx context.Context, activities []*models.ActivityRecord) error
	Health(ctx context.Context) error // ping
	Close() error
}

// SampleStore provides read-only access to historical samples and weekly load
// aggregates for the analytics core. Implementations return empty sets for
// "no data", never an error.
type SampleStore interface {
	ListActivities(ctx context.Context, userID string, from, to time.Time) ([]models.ActivityRecord, error)
	ListSamples(ctx context.Context, userID string, t models.AdaptationType, limit int) ([]models.PerformanceSample, error)
	WeeklyLoads(ctx context.Context, userID string, weeks int) ([]models.WeeklyLoadMetric, error)
	Baselines(ctx context.Context, userID string) (*models.AthleteBaselines, error)
	ActiveUsers(ctx context.Context, since time.Time) ([]string, error)
}

// ProfileStore persists derived adaptation profiles, upsert-by-key
// (user_id, adaptation_type). Get returns (nil, nil) when absent.
type ProfileStore interface {
	Get(ctx context.Context, userID string, t models.AdaptationType) (*models.AdaptationProfile, error)
	Upsert(ctx context.Context, p *models.AdaptationProfile) error
}

// Metrics records operational metrics for the ingest and learning paths.
type Metrics interface {
	RecordActivityIngested(source, userID string)
	RecordLearningPass(adaptationType string)
	RecordProfileUpsert(adaptationType string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
