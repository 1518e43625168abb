package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"RunSight/internal/domain/models"
	svccache "RunSight/internal/service/cache"
)

type memStorage struct {
	stored []*models.ActivityRecord
	err    error
}

func (s *memStorage) Init(ctx context.Context) error { return nil }

func (s *memStorage) Store(ctx context.Context, a *models.ActivityRecord) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, a)
	return nil
}

func (s *memStorage) StoreBatch(ctx context.Context, activities []*models.ActivityRecord) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, activities...)
	return nil
}

func (s *memStorage) Health(ctx context.Context) error { return nil }
func (s *memStorage) Close() error                     { return nil }

type memPublisher struct {
	published []*models.ActivityRecord
}

func (p *memPublisher) Publish(ctx context.Context, a *models.ActivityRecord) error {
	p.published = append(p.published, a)
	return nil
}

func (p *memPublisher) PublishBatch(ctx context.Context, activities []*models.ActivityRecord) error {
	p.published = append(p.published, activities...)
	return nil
}

func (p *memPublisher) Close() error { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordActivityIngested(source, userID string) {}
func (noopMetrics) RecordLearningPass(adaptationType string)     {}
func (noopMetrics) RecordProfileUpsert(adaptationType string)    {}
func (noopMetrics) RecordError(kind string)                      {}
func (noopMetrics) RecordLatency(op string, seconds float64)     {}

func primeProfileCache(t *testing.T, c svccache.BytesCache, userID string) {
	t.Helper()
	for _, at := range []models.AdaptationType{models.AdaptationHeat, models.AdaptationAltitude, models.AdaptationTimeOfDay} {
		if err := c.SetBytes(profileCacheKey(userID, at), []byte(`{"stale":true}`), time.Hour); err != nil {
			t.Fatalf("prime cache: %v", err)
		}
	}
}

func cachedProfileTypes(t *testing.T, c svccache.BytesCache, userID string) []models.AdaptationType {
	t.Helper()
	var hit []models.AdaptationType
	for _, at := range []models.AdaptationType{models.AdaptationHeat, models.AdaptationAltitude, models.AdaptationTimeOfDay} {
		_, ok, err := c.GetBytes(profileCacheKey(userID, at))
		if err != nil {
			t.Fatalf("cache read: %v", err)
		}
		if ok {
			hit = append(hit, at)
		}
	}
	return hit
}

func activityMessage(t *testing.T, userID string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":           "a1",
		"user_id":      userID,
		"distance_km":  10.0,
		"duration_min": 52.0,
		"started_at":   time.Now().Add(-time.Hour).Unix(),
		"completed":    true,
	})
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	return b
}

func TestConsumerHandlerDropsCachedProfiles(t *testing.T) {
	cache := svccache.NewTTLCache()
	primeProfileCache(t, cache, "u1")
	primeProfileCache(t, cache, "u2")

	h := NewKafkaActivitiesHandler("activities", &memStorage{}, noopMetrics{}, cache)
	if err := h.Handle(context.Background(), activityMessage(t, "u1")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if hit := cachedProfileTypes(t, cache, "u1"); len(hit) != 0 {
		t.Fatalf("ingest left stale profiles cached for u1: %v", hit)
	}
	if hit := cachedProfileTypes(t, cache, "u2"); len(hit) != 3 {
		t.Fatalf("other users' cached profiles must survive, got %v", hit)
	}
}

func TestConsumerHandlerKeepsCacheOnStoreFailure(t *testing.T) {
	cache := svccache.NewTTLCache()
	primeProfileCache(t, cache, "u1")

	h := NewKafkaActivitiesHandler("activities", &memStorage{err: errors.New("insert failed")}, noopMetrics{}, cache)
	if err := h.Handle(context.Background(), activityMessage(t, "u1")); err == nil {
		t.Fatalf("expected store error")
	}

	// nothing was persisted, so the cached profiles are still correct
	if hit := cachedProfileTypes(t, cache, "u1"); len(hit) != 3 {
		t.Fatalf("failed ingest must not drop cached profiles, got %v", hit)
	}
}

func TestProcessorClickHouseBackendDropsCachedProfiles(t *testing.T) {
	cache := svccache.NewTTLCache()
	primeProfileCache(t, cache, "u1")

	p := NewActivityProcessor(nil, &memStorage{}, noopMetrics{}, cache, "clickhouse", 100, time.Second)
	a := &models.ActivityRecord{ID: "a1", UserID: "u1", DistanceKm: 8, DurationMin: 40, StartedAt: time.Now(), Completed: true}
	if err := p.Process(context.Background(), a); err != nil {
		t.Fatalf("process: %v", err)
	}

	if hit := cachedProfileTypes(t, cache, "u1"); len(hit) != 0 {
		t.Fatalf("clickhouse ingest left stale profiles cached: %v", hit)
	}
}

func TestProcessorKafkaBackendLeavesCacheToConsumer(t *testing.T) {
	cache := svccache.NewTTLCache()
	primeProfileCache(t, cache, "u1")

	pub := &memPublisher{}
	p := NewActivityProcessor(pub, nil, noopMetrics{}, cache, "kafka", 100, time.Second)
	a := &models.ActivityRecord{ID: "a1", UserID: "u1", DistanceKm: 8, DurationMin: 40, StartedAt: time.Now(), Completed: true}
	if err := p.Process(context.Background(), a); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 published record, got %d", len(pub.published))
	}

	// invalidation happens at persistence time, in the consumer handler
	if hit := cachedProfileTypes(t, cache, "u1"); len(hit) != 3 {
		t.Fatalf("publish-only path must not touch the cache, got %v", hit)
	}
}

func TestProcessorBatchDropsCachedProfilesPerUser(t *testing.T) {
	cache := svccache.NewTTLCache()
	primeProfileCache(t, cache, "u1")
	primeProfileCache(t, cache, "u2")
	primeProfileCache(t, cache, "u3")

	p := NewActivityProcessor(nil, &memStorage{}, noopMetrics{}, cache, "clickhouse", 100, time.Second)
	batch := []*models.ActivityRecord{
		{ID: "a1", UserID: "u1", DistanceKm: 5, DurationMin: 25, StartedAt: time.Now(), Completed: true},
		{ID: "a2", UserID: "u2", DistanceKm: 6, DurationMin: 30, StartedAt: time.Now(), Completed: true},
		{ID: "a3", UserID: "u1", DistanceKm: 7, DurationMin: 35, StartedAt: time.Now(), Completed: true},
	}
	if err := p.ProcessBatch(context.Background(), batch); err != nil {
		t.Fatalf("process batch: %v", err)
	}

	for _, u := range []string{"u1", "u2"} {
		if hit := cachedProfileTypes(t, cache, u); len(hit) != 0 {
			t.Fatalf("batch ingest left stale profiles cached for %s: %v", u, hit)
		}
	}
	if hit := cachedProfileTypes(t, cache, "u3"); len(hit) != 3 {
		t.Fatalf("users outside the batch must keep cached profiles, got %v", hit)
	}
}
