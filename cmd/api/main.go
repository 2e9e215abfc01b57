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
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/rentrobe/rentrobe/docs/swagger"
	"github.com/rentrobe/rentrobe/pkg/app"
	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	"github.com/rentrobe/rentrobe/pkg/workflows"
	catalogApi "github.com/rentrobe/rentrobe/services/catalog/application/api"
	rentalApi "github.com/rentrobe/rentrobe/services/rental/application/api"
)

const shutdownGrace = 30 * time.Second

// @title					Rentrobe API
// @version				1.0
// @description			Peer-to-peer clothing rental: catalog browsing, rental requests and reviews.
// @description			Amounts are whole rupees; dates are YYYY-MM-DD.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
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
		log.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource of the API process; it returns after SIGINT or
// SIGTERM once in-flight requests drain, or on the first startup error.
func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log.Debug("configuration", "settings", cfg.Summary())

	tel, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdownTelemetry(tel, log)

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	bus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer closeWithLog(log, "event bus", bus.Close)
	if err := bus.StartForwarder(ctx); err != nil {
		return fmt.Errorf("outbox forwarder: %w", err)
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer closeWithLog(log, "redis", redisClient.Close)

	// Cron workflows run in the worker; the API only reports Temporal health.
	var temporalClient *workflows.TemporalClient
	if cfg.TemporalEnabled {
		if temporalClient, err = workflows.NewTemporalClient(ctx, cfg, log); err != nil {
			return fmt.Errorf("temporal: %w", err)
		}
		defer temporalClient.Close()
	}

	sessionStore := auth.NewSessionStore(redisClient, auth.SessionOptions{
		AuthKey:       []byte(cfg.SessionAuthKey),
		EncryptionKey: []byte(cfg.SessionEncryptionKey),
		MaxAge:        time.Duration(cfg.SessionMaxAgeHours) * time.Hour,
		Secure:        cfg.IsProduction(),
	})

	a := &app.Application{
		Config:         cfg,
		Db:             pool,
		Logger:         log,
		EventBus:       bus,
		Redis:          redisClient,
		Metrics:        tel.Metrics,
		TemporalClient: temporalClient,
		SessionStore:   sessionStore,
	}

	checks := httpx.HealthChecks{Database: pool, Redis: redisClient, EventBus: bus}
	if temporalClient != nil {
		checks.Workflows = temporalClient
	}
	srv := httpx.NewServer(cfg.HTTPAddr, newRouter(a, tel.Handler, checks))

	serveErr := make(chan error, 1)
	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down api", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info("api stopped")
	return nil
}

// newRouter assembles the middleware chain and mounts every context's
// routes under /api.
func newRouter(a *app.Application, metrics http.Handler, checks httpx.HealthChecks) chi.Router {
	cfg, log := a.Config, a.Logger
	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.RateLimitPerMinute,
			MutationsPerMinute: cfg.MutationRateLimitPerMinute,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(checks))
	r.Handle("/metrics", metrics)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		if cfg.Environment == config.EnvDevelopment {
			r.Post("/dev/session", devSessionHandler(a.SessionStore, log))
			r.Delete("/dev/session", devLogoutHandler(a.SessionStore, log))
		}
		catalogApi.CatalogRoutes(r, a)
		rentalApi.RentalRoutes(r, a)
	})
	return r
}

func shutdownTelemetry(tel *telemetry.Telemetry, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		log.Warn("telemetry shutdown", "error", err)
	}
}

func closeWithLog(log logger.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Warn("close "+name, "error", err)
	}
}
