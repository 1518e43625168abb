package usecase

import (
	"context"
	"fmt"

	"RunSight/internal/domain/models"
	domrepo "RunSight/internal/domain/repository"
	domsvc "RunSight/internal/domain/service"
)

// InsightAggregator wires the analytical core to the stores for the individual
// insight endpoints.
type InsightAggregator struct {
	samples   domrepo.SampleStore
	learning  *LearningUseCase
	workload  domsvc.WorkloadAnalyzer
	projector domsvc.RaceProjector
	simulator domsvc.EnergySimulator
	protocol  domsvc.ProtocolBuilder
	weather   domsvc.WeatherProvider
}

func NewInsightAggregator(
	samples domrepo.SampleStore,
	learning *LearningUseCase,
	workload domsvc.WorkloadAnalyzer,
	projector domsvc.RaceProjector,
	simulator domsvc.EnergySimulator,
	protocol domsvc.ProtocolBuilder,
	weather domsvc.WeatherProvider,
) *InsightAggregator {
	return &InsightAggregator{
		samples:   samples,
		learning:  learning,
		workload:  workload,
		projector: projector,
		simulator: simulator,
		protocol:  protocol,
		weather:   weather,
	}
}

// Adaptation returns the learned profile for one adaptation type.
func (a *InsightAggregator) Adaptation(ctx context.Context, userID string, t models.AdaptationType) (*models.AdaptationProfile, error) {
	return a.learning.Profile(ctx, userID, t)
}

// Workload builds the ACWR analysis over the requested timeframe.
func (a *InsightAggregator) Workload(ctx context.Context, userID string, tf domrepo.Timeframe) (*models.WorkloadAnalysis, error) {
	weeks, err := a.samples.WeeklyLoads(ctx, userID, tf.LookbackWeeks())
	if err != nil {
		return nil, fmt.Errorf("weekly loads: %w", err)
	}
	baselines, err := a.samples.Baselines(ctx, userID)
	if err != nil {
		// baselines are an optimization; fall back to the universal zone
		baselines = nil
	}
	analysis := a.workload.Analyze(userID, string(tf), weeks, baselines)
	if shown := tf.WeeksShown(); len(analysis.Weeks) > shown {
		analysis.Weeks = analysis.Weeks[len(analysis.Weeks)-shown:]
	}
	return analysis, nil
}

// Projection builds the race projection table, adjusted for the expected
// conditions using the learned heat and altitude profiles. Profile fetch
// failures degrade to an unadjusted projection.
func (a *InsightAggregator) Projection(ctx context.Context, userID string, baseline models.BaselineRace, conditions *models.RaceConditions) (*models.RaceProjection, error) {
	if baseline.DistanceKm <= 0 || baseline.TimeMin <= 0 {
		return nil, fmt.Errorf("baseline race requires positive distance and time")
	}
	heat, err := a.learning.Profile(ctx, userID, models.AdaptationHeat)
	if err != nil {
		heat = nil
	}
	altitude, err := a.learning.Profile(ctx, userID, models.AdaptationAltitude)
	if err != nil {
		altitude = nil
	}
	return a.projector.Project(userID, baseline, conditions, heat, altitude), nil
}

// Energy runs the race-day energy simulation.
func (a *InsightAggregator) Energy(ctx context.Context, distanceKm float64, plan models.NutritionPlan, conditions models.RaceConditions) (*models.EnergyDynamics, error) {
	if distanceKm <= 0 {
		return nil, fmt.Errorf("distance must be positive")
	}
	return a.simulator.Simulate(distanceKm, plan, conditions), nil
}

// HeatProtocol builds the acclimation schedule from the learned heat profile.
func (a *InsightAggregator) HeatProtocol(ctx context.Context, userID string, daysUntilRace int, raceHeatIndex float64) (*models.HeatProtocol, error) {
	heat, err := a.learning.Profile(ctx, userID, models.AdaptationHeat)
	if err != nil {
		heat = nil
	}
	return a.protocol.Build(userID, heat, daysUntilRace, raceHeatIndex), nil
}

// Conditions resolves expected race conditions from the weather provider.
// Returns nil when no provider is configured or the lookup fails; callers
// treat nil conditions as "project without environmental adjustment".
func (a *InsightAggregator) Conditions(ctx context.Context, lat, lon float64) *models.RaceConditions {
	if a.weather == nil {
		return nil
	}
	c, err := a.weather.Current(ctx, lat, lon)
	if err != nil {
		return nil
	}
	return c
}
