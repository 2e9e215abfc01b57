package app

import (
	"github.com/gorilla/sessions"

	"github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/pkg/config"
	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	"github.com/rentrobe/rentrobe/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each bounded context's route or subscriber registration.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id, request_id and user_id are injected
// automatically:
//
//	app.Logger.InfoContext(ctx, "rental requested", "rental_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Metrics        *telemetry.BookingMetrics
	TemporalClient *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
