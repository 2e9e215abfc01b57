package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.temporal.io/sdk/worker"

	"github.com/rentrobe/rentrobe/pkg/app"
	"github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	"github.com/rentrobe/rentrobe/pkg/workflows"
	"github.com/rentrobe/rentrobe/services/catalog/application/subscribers"
	catalogpg "github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/postgres"
	rentalsvcs "github.com/rentrobe/rentrobe/services/rental/application/services"
	rentalflows "github.com/rentrobe/rentrobe/services/rental/application/workflows"
)

func main() {
	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrHelp):
		return
	case err != nil:
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("refusing to start", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	if err := run(cfg, log); err != nil {
		log.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}

// run consumes domain events and, with Temporal enabled, runs the rental
// maintenance workflows until SIGINT or SIGTERM. The event bus waits up to
// 30s for in-flight handlers on the way out.
func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	bus, err := events.NewEventBus(cfg, log)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Warn("close event bus", "error", err)
		}
	}()

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer redisClient.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: bus,
		Redis:    redisClient,
		Metrics:  tel.Metrics,
	}
	checks := httpx.HealthChecks{Database: pool, Redis: redisClient, EventBus: bus}

	if cfg.TemporalEnabled {
		tc, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("temporal: %w", err)
		}
		defer tc.Close()
		a.TemporalClient = tc
		checks.Workflows = tc

		w, err := startWorkflows(ctx, a)
		if err != nil {
			return fmt.Errorf("workflows: %w", err)
		}
		defer w.Stop()
	} else {
		log.Info("temporal disabled, stale rental requests will not expire")
	}

	if err := registerSubscribers(ctx, a); err != nil {
		return fmt.Errorf("subscribers: %w", err)
	}

	if cfg.WorkerOpsAddr != "" {
		ops := serveOps(cfg.WorkerOpsAddr, tel.Handler, checks, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ops.Shutdown(shutdownCtx)
		}()
	}

	log.Info("worker running")
	<-ctx.Done()
	log.Info("shutting down worker")
	return nil
}

// serveOps exposes /health and /metrics for probes and scrapers. A failure
// to listen is logged; the worker keeps consuming without it.
func serveOps(addr string, metrics http.Handler, checks httpx.HealthChecks, log logger.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(logger.Recovery(log))
	r.Get("/health", httpx.HealthHandler(checks))
	r.Handle("/metrics", metrics)

	srv := httpx.NewServer(addr, r)
	go func() {
		log.Info("worker ops listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("worker ops server", "error", err)
		}
	}()
	return srv
}

// registerSubscribers wires the event handlers of every context that
// consumes events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	sync := subscribers.NewCacheSync(
		catalogpg.NewItemRepository(a.Db, nil),
		cache.NewItemCache(a.Redis),
		a.Logger,
	)
	topics, err := sync.Register(ctx, a.EventBus)
	if err != nil {
		return err
	}
	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// startWorkflows runs the rental workflows on the configured task queue and
// schedules the stale-request sweep.
func startWorkflows(ctx context.Context, a *app.Application) (worker.Worker, error) {
	rentals := rentalsvcs.New(a).Rentals
	w, err := a.TemporalClient.StartWorker(a.Config.TemporalTaskQueue,
		rentalflows.Registrar{Activities: rentalflows.NewActivities(rentals)},
	)
	if err != nil {
		return nil, err
	}
	if err := a.TemporalClient.EnsureCron(ctx,
		rentalflows.ExpireStalePendingCronID,
		a.Config.TemporalTaskQueue,
		a.Config.RentalExpiryCron,
		rentalflows.ExpireStalePendingWorkflow,
	); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
