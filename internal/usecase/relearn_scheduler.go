package usecase

import (
	"context"
	"time"

	"github.com/robfig/cron"

	domrepo "RunSight/internal/domain/repository"
	"RunSight/pkg/logger"
	"RunSight/pkg/queue"
)

// RelearnScheduler periodically enqueues a relearn pass for every recently
// active athlete. Learning stays out of the request path; profiles served
// between passes are at worst one schedule interval stale.
type RelearnScheduler struct {
	cron         *cron.Cron
	samples      domrepo.SampleStore
	queue        queue.QueueService
	metrics      domrepo.Metrics
	log          *logger.Logger
	spec         string
	activeWindow time.Duration
}

func NewRelearnScheduler(
	samples domrepo.SampleStore,
	q queue.QueueService,
	metrics domrepo.Metrics,
	log *logger.Logger,
	spec string,
	activeWindow time.Duration,
) *RelearnScheduler {
	if spec == "" {
		spec = "@every 6h"
	}
	if activeWindow <= 0 {
		activeWindow = 14 * 24 * time.Hour
	}
	return &RelearnScheduler{
		cron:         cron.New(),
		samples:      samples,
		queue:        q,
		metrics:      metrics,
		log:          log,
		spec:         spec,
		activeWindow: activeWindow,
	}
}

func (s *RelearnScheduler) Start(ctx context.Context) error {
	if err := s.cron.AddFunc(s.spec, func() { s.enqueueAll(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("relearn scheduler started", logger.String("spec", s.spec))
	return nil
}

func (s *RelearnScheduler) Stop() {
	s.cron.Stop()
}

func (s *RelearnScheduler) enqueueAll(ctx context.Context) {
	since := time.Now().Add(-s.activeWindow)
	users, err := s.samples.ActiveUsers(ctx, since)
	if err != nil {
		s.metrics.RecordError("relearn_list_users")
		s.log.Error("relearn pass skipped, cannot list active users", logger.Error(err))
		return
	}
	enqueued := 0
	for _, userID := range users {
		if err := s.queue.PublishMessage(ctx, "relearn", RelearnPayload{UserID: userID}); err != nil {
			s.metrics.RecordError("relearn_enqueue")
			s.log.Error("relearn enqueue failed",
				logger.String("user_id", userID),
				logger.Error(err))
			continue
		}
		enqueued++
	}
	s.log.Info("relearn pass enqueued",
		logger.Int("users", len(users)),
		logger.Int("enqueued", enqueued))
}
