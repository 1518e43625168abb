package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
)

// InsightsAggregateUseCase combines every insight section into one
// race-readiness report.
type InsightsAggregateUseCase struct {
	agg     *InsightAggregator
	timeout time.Duration
}

func NewInsightsAggregateUseCase(agg *InsightAggregator) *InsightsAggregateUseCase {
	return &InsightsAggregateUseCase{agg: agg, timeout: 10 * time.Second}
}

type GetReportParams struct {
	UserID        string
	Timeframe     domrepo.Timeframe
	Baseline      models.BaselineRace
	Conditions    models.RaceConditions
	Plan          models.NutritionPlan
	RaceDistance  float64
	DaysUntilRace int
}

func (uc *InsightsAggregateUseCase) GetReport(ctx context.Context, p GetReportParams) (*models.AggregateInsights, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("user_id required")
	}
	if p.Timeframe == "" {
		p.Timeframe = domrepo.DefaultTimeframe()
	}
	if p.RaceDistance <= 0 {
		p.RaceDistance = p.Baseline.DistanceKm
	}
	if p.Plan.FuelingGPerHr == 0 && p.Plan.FluidMlPerHr == 0 {
		p.Plan = models.NutritionPlan{FuelingGPerHr: 60, FluidMlPerHr: 500, SodiumMgPerHr: 300}
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.AggregateInsights{
		UserID:    p.UserID,
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Workload(ctx, p.UserID, p.Timeframe)
		ch <- item{"workload", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Projection(ctx, p.UserID, p.Baseline, &p.Conditions)
		ch <- item{"projection", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Energy(ctx, p.RaceDistance, p.Plan, p.Conditions)
		ch <- item{"energy", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.HeatProtocol(ctx, p.UserID, p.DaysUntilRace, p.Conditions.HeatIndex)
		ch <- item{"heat_protocol", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "workload":
			res.Workload = it.val.(*models.WorkloadAnalysis)
		case "projection":
			res.Projection = it.val.(*models.RaceProjection)
		case "energy":
			res.Energy = it.val.(*models.EnergyDynamics)
		case "heat_protocol":
			res.HeatProtocol = it.val.(*models.HeatProtocol)
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
