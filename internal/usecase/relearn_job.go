package usecase

import (
	"context"
	"fmt"

	"RunSight/internal/domain/models"
	"RunSight/pkg/logger"
	"RunSight/pkg/queue"
)

// RelearnPayload is the queue message driving one background learning pass.
type RelearnPayload struct {
	UserID string `json:"user_id"`
	Type   string `json:"type,omitempty"` // empty means all learners
}

// RelearnJob consumes relearn messages and runs the learning pass.
type RelearnJob struct {
	learning *LearningUseCase
	log      *logger.Logger
}

func NewRelearnJob(learning *LearningUseCase, log *logger.Logger) *RelearnJob {
	return &RelearnJob{learning: learning, log: log}
}

func (j *RelearnJob) Name() string { return "relearn_profiles" }
func (j *RelearnJob) Type() string { return "relearn" }

func (j *RelearnJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RelearnPayload](payload)
	if err != nil {
		return fmt.Errorf("relearn payload: %w", err)
	}
	if p.UserID == "" {
		return fmt.Errorf("relearn payload: user_id required")
	}

	if p.Type == "" {
		profiles := j.learning.RelearnAll(ctx, p.UserID)
		j.log.Info("background relearn completed",
			logger.String("user_id", p.UserID),
			logger.Int("profiles", len(profiles)))
		return nil
	}

	t := models.AdaptationType(p.Type)
	if !models.IsValidAdaptationType(t) {
		return fmt.Errorf("relearn payload: unknown type %q", p.Type)
	}
	if _, err := j.learning.Relearn(ctx, p.UserID, t); err != nil {
		return err
	}
	j.log.Info("background relearn completed",
		logger.String("user_id", p.UserID),
		logger.String("type", p.Type))
	return nil
}

var _ queue.Job = (*RelearnJob)(nil)
