package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"RunSight/internal/domain/repository"
	"RunSight/internal/handler/api"
	mid "RunSight/internal/middleware"
	internalrepo "RunSight/internal/repository"
	svccache "RunSight/internal/service/cache"
	"RunSight/internal/service/devicestream"
	"RunSight/internal/service/fitimport"
	"RunSight/internal/service/weather"
	"RunSight/internal/services/adaptation"
	"RunSight/internal/services/energy"
	"RunSight/internal/services/heatplan"
	"RunSight/internal/services/race"
	"RunSight/internal/services/workload"
	"RunSight/internal/usecase"
	pkgcache "RunSight/pkg/cache"
	pkgch "RunSight/pkg/clickhouse"
	"RunSight/pkg/config"
	pkgkafka "RunSight/pkg/kafka"
	applogger "RunSight/pkg/logger"
	"RunSight/pkg/metrics"
	pkgpg "RunSight/pkg/postgres"
	"RunSight/pkg/queue"
	"RunSight/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
		"CREATE TABLE IF NOT EXISTS " + cfg.ClickHouse.Database + ".activities (" +
			"id String, user_id String, distance_km Float64, duration_min Float64, " +
			"avg_pace_min_km Float64, avg_heart_rate Float64, temperature_c Float64, " +
			"altitude_m Float64, elevation_gain Float64, started_at DateTime, " +
			"completed UInt8, source String" +
			") ENGINE=MergeTree ORDER BY (user_id, started_at)",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvidePostgresClient creates the Postgres client for adaptation profiles.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	client, err := pkgpg.NewClient(
		pkgpg.WithHost(cfg.Postgres.Host),
		pkgpg.WithPort(cfg.Postgres.Port),
		pkgpg.WithDatabase(cfg.Postgres.Database),
		pkgpg.WithCredentials(cfg.Postgres.User, cfg.Postgres.Password),
		pkgpg.WithSSLMode(cfg.Postgres.SSLMode),
		pkgpg.WithMaxConnections(10, 5),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.ProfileSchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}

	return client, nil
}

// ProvideRedisClient creates the shared Redis client for cache and queue.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Learning.Redis.Addr,
		Password: cfg.Learning.Redis.Password,
		DB:       cfg.Learning.Redis.DB,
	})
}

// ProvideCache selects the profile/response cache backend. With Redis enabled
// the cache is layered: in-process LRU in front of Redis.
func ProvideCache(cfg *config.Config) (svccache.BytesCache, error) {
	if !cfg.Learning.Redis.Enabled {
		return svccache.NewTTLCache(), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Learning.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Learning.Redis.Password),
		pkgcache.WithRedisDB(cfg.Learning.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return svccache.NewLayeredBytesCache(pkgcache.NewLayeredCache(rc)), nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideActivityStorage creates ClickHouse activity storage.
func ProvideActivityStorage(chClient *pkgch.Client, cfg *config.Config) repository.ActivityStorage {
	return internalrepo.NewClickHouseActivityStorage(chClient.DB(), cfg.ClickHouse.Database+".activities")
}

// ProvideActivityPublisher creates Kafka publisher repository.
func ProvideActivityPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaActivityPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaActivitiesHandler registers handler for the activities topic.
func ProvideKafkaActivitiesHandler(store repository.ActivityStorage, metrics repository.Metrics, cache svccache.BytesCache, cfg *config.Config) *usecase.KafkaActivitiesHandler {
	return usecase.NewKafkaActivitiesHandler(cfg.Kafka.Topic, store, metrics, cache)
}

// ProvideDeviceStream creates the wearable device WebSocket stream.
func ProvideDeviceStream(cfg *config.Config) repository.ActivityStream {
	return devicestream.New(
		cfg.DeviceStream.APIKey,
		cfg.DeviceStream.WebSocketURL,
		cfg.DeviceStream.Channels,
		cfg.DeviceStream.ReconnectDelay,
		cfg.DeviceStream.PingInterval,
	)
}

// ProvideSampleStore creates the ClickHouse read-side sample store.
func ProvideSampleStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.SampleStore {
	store := internalrepo.NewCHSampleStore(chClient, cfg.ClickHouse.Database+".activities")
	store.SetLogger(l)
	return store
}

// ProvideProfileStore creates the Postgres adaptation profile store.
func ProvideProfileStore(pgClient *pkgpg.Client) repository.ProfileStore {
	return internalrepo.NewPGProfileStore(pgClient)
}

// ProvideActivityProcessor creates the activity processor use case.
func ProvideActivityProcessor(
	pub repository.Publisher,
	store repository.ActivityStorage,
	metrics repository.Metrics,
	cache svccache.BytesCache,
	cfg *config.Config,
) *usecase.ActivityProcessor {
	return usecase.NewActivityProcessor(
		pub,
		store,
		metrics,
		cache,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideActivityCollector creates the activity collector use case.
func ProvideActivityCollector(
	stream repository.ActivityStream,
	processor *usecase.ActivityProcessor,
	metrics repository.Metrics,
) *usecase.ActivityCollector {
	// Build middleware pipeline between WebSocket and backend
	pipe := mid.NewRealtimePipeline(processor, metrics,
		mid.WithMaxRPS(20),
		mid.WithBufferSize(1000),
	)
	return usecase.NewActivityCollector(stream, processor, metrics, pipe)
}

// ProvideLearning creates the learning use case with all adaptation learners.
func ProvideLearning(
	samples repository.SampleStore,
	profiles repository.ProfileStore,
	cache svccache.BytesCache,
	metrics repository.Metrics,
	l *applogger.Logger,
) *usecase.LearningUseCase {
	return usecase.NewLearningUseCase(
		samples,
		profiles,
		cache,
		metrics,
		l,
		adaptation.NewHeatLearner(),
		adaptation.NewAltitudeLearner(),
		adaptation.NewTimeOfDayLearner(),
	)
}

// ProvideInsightAggregator assembles the analytical core.
func ProvideInsightAggregator(
	samples repository.SampleStore,
	learning *usecase.LearningUseCase,
	cfg *config.Config,
) *usecase.InsightAggregator {
	return usecase.NewInsightAggregator(
		samples,
		learning,
		workload.NewAnalyzer(),
		race.NewProjector(),
		energy.NewSimulator(),
		heatplan.NewBuilder(),
		weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout),
	)
}

// ProvideRelearnQueue creates the Redis queue that carries relearn jobs.
func ProvideRelearnQueue(
	cfg *config.Config,
	client *redis.Client,
	l *applogger.Logger,
) *queue.RedisQueue {
	return queue.NewRedisQueue(
		l,
		&queue.QueueConfig{
			Workers:    cfg.Learning.Queue.Workers,
			QueueSize:  cfg.Learning.Queue.Size,
			RetryLimit: cfg.Learning.Queue.RetryLimit,
			RetryDelay: cfg.Learning.Queue.RetryDelay,
		},
		client,
		queue.ModeProducerConsumer,
		queue.WithKeyPrefix("runsight"),
	)
}

// ProvideRelearnScheduler creates the cron-driven relearn scheduler.
func ProvideRelearnScheduler(
	samples repository.SampleStore,
	q *queue.RedisQueue,
	metrics repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.RelearnScheduler {
	return usecase.NewRelearnScheduler(
		samples,
		q,
		metrics,
		l,
		cfg.Learning.Schedule,
		cfg.Learning.ActiveWindow,
	)
}

// ProvideEchoHandler creates the public API handler.
func ProvideEchoHandler(
	l *applogger.Logger,
	agg *usecase.InsightAggregator,
	learning *usecase.LearningUseCase,
	samples repository.SampleStore,
	processor *usecase.ActivityProcessor,
) *api.InsightsEchoHandler {
	return api.NewInsightsEchoHandler(
		l,
		agg,
		usecase.NewInsightsAggregateUseCase(agg),
		usecase.NewActivitiesUseCase(samples),
		learning,
		fitimport.NewImporter(),
		processor,
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.ActivityCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaActivitiesHandler,
	chClient *pkgch.Client,
	pgClient *pkgpg.Client,
	handler *api.InsightsEchoHandler,
	agg *usecase.InsightAggregator,
	cache svccache.BytesCache,
	redisClient *redis.Client,
	relearnQueue *queue.RedisQueue,
	scheduler *usecase.RelearnScheduler,
	learning *usecase.LearningUseCase,
	l *applogger.Logger,
) *server.App {
	// Attach hook to consumer: example NoopHook for now; can be replaced via config
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	relearnQueue.RegisterJob(usecase.NewRelearnJob(learning, l))

	// Aggregate repeated error logs into a Redis list drained by the log shipper
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          "error_logs",
		Publisher:      queue.NewRedisPublisher(l, redisClient, queue.WithKeyPrefix("runsight:logs")),
	})

	app := server.New(cfg, collector, consumer, kh, chClient, pgClient)
	app.SetHTTPHandler(handler)
	app.SetScheduler(scheduler)
	app.SetRelearnQueue(relearnQueue)

	ops := api.NewInsightsHandler(agg)
	ops.SetCache(cache)
	ops.SetLogger(l)
	app.SetOpsHandler(ops)

	// attach activity processor to app for closing resources via collector
	if collector != nil {
		app.ActivityProc = collector.Processor()
	}
	return app
}
