package app

import (
	"github.com/ghuser/grocerylists/pkg/cache"
	"github.com/ghuser/grocerylists/pkg/config"
	"github.com/ghuser/grocerylists/pkg/events"
	"github.com/ghuser/grocerylists/pkg/logger"
	"github.com/ghuser/grocerylists/pkg/realtime"
	"github.com/ghuser/grocerylists/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's route and subscriber registration during startup.
//
// Logging: app.Logger is backed by a trace-aware handler: use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item added", "list_id", listID)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when REDIS_URL is empty
	Realtime *realtime.Hub
	Metrics  *telemetry.MutationMetrics
}
