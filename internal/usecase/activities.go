package usecase

import (
	"context"
	"fmt"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
)

// ActivitiesUseCase provides business logic for retrieving raw activities.
type ActivitiesUseCase struct {
	store domrepo.SampleStore
}

func NewActivitiesUseCase(store domrepo.SampleStore) *ActivitiesUseCase {
	return &ActivitiesUseCase{store: store}
}

type GetActivitiesParams struct {
	UserID string
	From   time.Time
	To     time.Time
	Limit  int
}

type GetActivitiesResult struct {
	UserID     string
	From       time.Time
	To         time.Time
	Count      int
	Activities []models.ActivityRecord
}

func (uc *ActivitiesUseCase) GetActivities(ctx context.Context, p GetActivitiesParams) (*GetActivitiesResult, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("user_id required")
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 1000
	}
	if p.Limit > 10000 {
		p.Limit = 10000
	}

	activities, err := uc.store.ListActivities(ctx, p.UserID, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if len(activities) > p.Limit {
		activities = activities[:p.Limit]
	}

	return &GetActivitiesResult{
		UserID:     p.UserID,
		From:       p.From,
		To:         p.To,
		Count:      len(activities),
		Activities: activities,
	}, nil
}
