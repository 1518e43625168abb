package service

import (
	"context"

	"RunSight/internal/domain/models"
)

// AdaptationLearner converts historical samples into a personalized response
// profile. Learners are pure: identical input order yields identical output,
// and insufficient data yields a neutral default profile, never an error.
type AdaptationLearner interface {
	Type() models.AdaptationType
	Learn(userID string, samples []models.PerformanceSample) *models.AdaptationProfile
}

// WorkloadAnalyzer classifies the current acute:chronic workload ratio.
type WorkloadAnalyzer interface {
	Analyze(userID string, timeframe string, weeks []models.WeeklyLoadMetric, baselines *models.AthleteBaselines) *models.WorkloadAnalysis
}

// RaceProjector extrapolates a baseline performance to other distances.
type RaceProjector interface {
	Project(userID string, baseline models.BaselineRace, conditions *models.RaceConditions,
		heat, altitude *models.AdaptationProfile) *models.RaceProjection
}

// EnergySimulator produces the within-race energy/fatigue forecast.
type EnergySimulator interface {
	Simulate(distanceKm float64, plan models.NutritionPlan, conditions models.RaceConditions) *models.EnergyDynamics
}

// ProtocolBuilder generates a heat acclimation schedule from the learned heat
// profile and the days remaining until the race.
type ProtocolBuilder interface {
	Build(userID string, heat *models.AdaptationProfile, daysUntilRace int, raceHeatIndex float64) *models.HeatProtocol
}

// WeatherProvider supplies current conditions for a location. External
// collaborator; failures surface as "insight unavailable", never as raw errors.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*models.RaceConditions, error)
}
