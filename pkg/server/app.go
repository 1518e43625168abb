package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RunSight/internal/handler/api"
	"RunSight/internal/usecase"
	pkgch "RunSight/pkg/clickhouse"
	"RunSight/pkg/config"
	xhttp "RunSight/pkg/http"
	pkgkafka "RunSight/pkg/kafka"
	applogger "RunSight/pkg/logger"
	pkgpg "RunSight/pkg/postgres"
	"RunSight/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg          *config.Config
	collector    *usecase.ActivityCollector
	consumer     *pkgkafka.Consumer
	kh           pkgkafka.MessageHandler
	chClient     *pkgch.Client
	pgClient     *pkgpg.Client
	scheduler    *usecase.RelearnScheduler
	relearnQueue *queue.RedisQueue
	httpServer   *xhttp.Server
	opsServer    *http.Server
	httpHandler  xhttp.Handler
	opsHandler   *api.InsightsHandler
	ActivityProc *usecase.ActivityProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.ActivityCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	pgClient *pkgpg.Client,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
		pgClient:  pgClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetOpsHandler allows DI to inject the plain net/http insight handler for the ops mux.
func (a *App) SetOpsHandler(h *api.InsightsHandler) { a.opsHandler = h }

// SetScheduler allows DI to inject the relearn scheduler.
func (a *App) SetScheduler(s *usecase.RelearnScheduler) { a.scheduler = s }

// SetRelearnQueue allows DI to inject the relearn job queue consumer.
func (a *App) SetRelearnQueue(q *queue.RedisQueue) { a.relearnQueue = q }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Setup Echo HTTP server using pkg/http and register routes via handler
	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Internal ops mux: cached insight reads + health, no Echo middleware
	if a.opsHandler != nil {
		mux := http.NewServeMux()
		mux.HandleFunc("/internal/adaptation", a.opsHandler.Adaptation())
		mux.HandleFunc("/internal/workload", a.opsHandler.Workload())
		mux.HandleFunc("/internal/heat-protocol", a.opsHandler.HeatProtocol())
		mux.HandleFunc("/healthz", a.healthHandler())
		a.opsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port+1),
			Handler:      mux,
			ReadTimeout:  a.cfg.Server.ReadTimeout,
			WriteTimeout: a.cfg.Server.WriteTimeout,
		}
		go func() {
			if err := a.opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				l.Error("ops server error", applogger.Error(err))
			}
		}()
		l.Info("ops server started", applogger.Int("port", a.cfg.Server.Port+1))
	}

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started", applogger.Strings("channels", a.cfg.DeviceStream.Channels))

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start relearn queue workers and scheduler
	if a.relearnQueue != nil {
		if err := a.relearnQueue.Start(); err != nil {
			l.Error("relearn queue start error", applogger.Error(err))
		} else {
			a.relearnQueue.StartRetryProcessor()
			l.Info("relearn queue started")
		}
	}
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			l.Error("relearn scheduler start error", applogger.Error(err))
		}
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	// best-effort logging via stdout
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop scheduler first so no new relearn work is enqueued
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP servers
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}
	if a.opsServer != nil {
		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			l.Warn("ops server shutdown error", applogger.Error(err))
		}
	}

	// Drain relearn queue workers
	if a.relearnQueue != nil {
		if err := a.relearnQueue.Stop(shutdownCtx); err != nil {
			l.Warn("relearn queue stop error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close activity processor resources (publisher/storage)
	if a.ActivityProc != nil {
		a.ActivityProc.Close()
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.pgClient != nil {
		if err := a.pgClient.Close(); err != nil {
			l.Warn("postgres close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}

// healthHandler checks all infrastructure dependencies.
func (a *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if a.chClient != nil {
			if err := a.chClient.Health(ctx); err != nil {
				http.Error(w, "clickhouse: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		if a.pgClient != nil {
			if err := a.pgClient.Health(ctx); err != nil {
				http.Error(w, "postgres: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
