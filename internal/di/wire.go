//go:build wireinject
// +build wireinject

package di

import (
	"RunSight/pkg/config"
	"RunSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics and logging
		ProvideMetrics,
		ProvideLogger,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvidePostgresClient,
		ProvideRedisClient,
		ProvideCache,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories (with business logic)
		ProvideActivityStorage,
		ProvideActivityPublisher,
		ProvideSampleStore,
		ProvideProfileStore,
		ProvideDeviceStream,

		// Use cases
		ProvideActivityProcessor,
		ProvideActivityCollector,
		ProvideKafkaActivitiesHandler,
		ProvideLearning,
		ProvideInsightAggregator,
		ProvideRelearnQueue,
		ProvideRelearnScheduler,

		// HTTP handlers
		ProvideEchoHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
