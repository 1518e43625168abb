package usecase

import (
	"context"
	"fmt"
	"time"

	drepo "RunSight/internal/domain/repository"
	svccache "RunSight/internal/service/cache"

	"RunSight/internal/domain/models"
)

// ActivityProcessor routes ingested activity records to the configured backend.
// Direct ClickHouse writes invalidate the user's derived-profile caches; on the
// kafka backend the consumer handler does it at persistence time instead.
type ActivityProcessor struct {
	pub     drepo.Publisher
	store   drepo.ActivityStorage
	metrics drepo.Metrics
	cache   svccache.BytesCache
	backend string
	batchSz int
	batchTO time.Duration
}

// NewActivityProcessor creates a new ActivityProcessor instance.
func NewActivityProcessor(
	pub drepo.Publisher,
	store drepo.ActivityStorage,
	metrics drepo.Metrics,
	cache svccache.BytesCache,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *ActivityProcessor {
	return &ActivityProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		cache:   cache,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
	}
}

// Process routes a single activity record to the configured backend.
func (p *ActivityProcessor) Process(ctx context.Context, a *models.ActivityRecord) error {
	if a == nil {
		return fmt.Errorf("activity is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, a)
	case "clickhouse":
		err = p.store.Store(ctx, a)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process activity: %w", err)
	}
	if p.backend == "clickhouse" {
		invalidateProfiles(p.cache, nil, a.UserID)
	}

	p.metrics.RecordActivityIngested(p.backend, a.UserID)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch routes multiple activity records in a batch.
func (p *ActivityProcessor) ProcessBatch(ctx context.Context, activities []*models.ActivityRecord) error {
	if len(activities) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, activities)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, activities)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}
	if p.backend == "clickhouse" {
		seen := make(map[string]struct{}, len(activities))
		for _, a := range activities {
			if _, ok := seen[a.UserID]; ok {
				continue
			}
			seen[a.UserID] = struct{}{}
			invalidateProfiles(p.cache, nil, a.UserID)
		}
	}

	for _, a := range activities {
		p.metrics.RecordActivityIngested(p.backend, a.UserID)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *ActivityProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
