package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	domsvc "RunSight/internal/domain/service"
	svccache "RunSight/internal/service/cache"
	"RunSight/pkg/logger"
)

const (
	learnSampleLimit = 500
	profileCacheTTL  = 15 * time.Minute
)

// LearningUseCase runs adaptation learners over an athlete's history and
// persists the derived profiles. Profiles are derived state: a failed read or
// write degrades to "no profile", never to a request failure.
type LearningUseCase struct {
	samples  domrepo.SampleStore
	profiles domrepo.ProfileStore
	cache    svccache.BytesCache
	metrics  domrepo.Metrics
	log      *logger.Logger
	learners map[models.AdaptationType]domsvc.AdaptationLearner
}

func NewLearningUseCase(
	samples domrepo.SampleStore,
	profiles domrepo.ProfileStore,
	cache svccache.BytesCache,
	metrics domrepo.Metrics,
	log *logger.Logger,
	learners ...domsvc.AdaptationLearner,
) *LearningUseCase {
	byType := make(map[models.AdaptationType]domsvc.AdaptationLearner, len(learners))
	for _, l := range learners {
		byType[l.Type()] = l
	}
	return &LearningUseCase{
		samples:  samples,
		profiles: profiles,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		learners: byType,
	}
}

func profileCacheKey(userID string, t models.AdaptationType) string {
	return "profile:" + userID + ":" + string(t)
}

// invalidateProfiles drops every cached profile of a user once new data is
// ingested; the next read re-learns against the extended history. Cache
// failures degrade to a stale-until-TTL entry, never to an ingest failure.
func invalidateProfiles(cache svccache.BytesCache, log *logger.Logger, userID string) {
	if cache == nil || userID == "" {
		return
	}
	err := cache.DeleteBytes(
		profileCacheKey(userID, models.AdaptationHeat),
		profileCacheKey(userID, models.AdaptationAltitude),
		profileCacheKey(userID, models.AdaptationTimeOfDay),
	)
	if err != nil && log != nil {
		log.Warn("profile cache invalidate failed",
			logger.String("user_id", userID),
			logger.Error(err))
	}
}

// Relearn recomputes one adaptation profile from scratch and persists it.
// Learners never fail; persistence failures are logged and surfaced via
// metrics but the freshly learned profile is still returned.
func (uc *LearningUseCase) Relearn(ctx context.Context, userID string, t models.AdaptationType) (*models.AdaptationProfile, error) {
	learner, ok := uc.learners[t]
	if !ok {
		return nil, fmt.Errorf("no learner for adaptation type %q", t)
	}

	start := time.Now()
	samples, err := uc.samples.ListSamples(ctx, userID, t, learnSampleLimit)
	if err != nil {
		uc.metrics.RecordError("learn_read_samples")
		return nil, fmt.Errorf("list samples: %w", err)
	}

	profile := learner.Learn(userID, samples)
	uc.metrics.RecordLearningPass(string(t))
	uc.metrics.RecordLatency("learning_pass", time.Since(start).Seconds())

	if err := uc.profiles.Upsert(ctx, profile); err != nil {
		uc.metrics.RecordError("profile_upsert")
		uc.log.Error("profile upsert failed, serving unpersisted profile",
			logger.String("user_id", userID),
			logger.String("type", string(t)),
			logger.Error(err))
	} else {
		uc.metrics.RecordProfileUpsert(string(t))
	}
	uc.cacheProfile(userID, t, profile)

	return profile, nil
}

// RelearnAll recomputes every registered learner for one athlete. Failures of
// individual learners do not abort the pass.
func (uc *LearningUseCase) RelearnAll(ctx context.Context, userID string) map[models.AdaptationType]*models.AdaptationProfile {
	out := make(map[models.AdaptationType]*models.AdaptationProfile, len(uc.learners))
	for t := range uc.learners {
		p, err := uc.Relearn(ctx, userID, t)
		if err != nil {
			uc.log.Error("relearn failed",
				logger.String("user_id", userID),
				logger.String("type", string(t)),
				logger.Error(err))
			continue
		}
		out[t] = p
	}
	return out
}

// Profile fetches an adaptation profile read-through: cache, then store, then
// an on-demand learning pass when nothing is persisted yet.
func (uc *LearningUseCase) Profile(ctx context.Context, userID string, t models.AdaptationType) (*models.AdaptationProfile, error) {
	if !models.IsValidAdaptationType(t) {
		return nil, fmt.Errorf("unknown adaptation type %q", t)
	}

	if uc.cache != nil {
		if b, ok, err := uc.cache.GetBytes(profileCacheKey(userID, t)); err == nil && ok {
			var p models.AdaptationProfile
			if err := json.Unmarshal(b, &p); err == nil && p.Validate() == nil {
				return &p, nil
			}
		}
	}

	p, err := uc.profiles.Get(ctx, userID, t)
	if err != nil {
		uc.metrics.RecordError("profile_read")
		uc.log.Error("profile read failed, relearning",
			logger.String("user_id", userID),
			logger.String("type", string(t)),
			logger.Error(err))
		p = nil
	}
	if p != nil {
		uc.cacheProfile(userID, t, p)
		return p, nil
	}

	return uc.Relearn(ctx, userID, t)
}

func (uc *LearningUseCase) cacheProfile(userID string, t models.AdaptationType, p *models.AdaptationProfile) {
	if uc.cache == nil || p == nil {
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := uc.cache.SetBytes(profileCacheKey(userID, t), b, profileCacheTTL); err != nil {
		uc.metrics.RecordError("profile_cache_set")
	}
}
