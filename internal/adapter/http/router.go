package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/goloan/internal/adapter/http/handler"
	"github.com/iho/goloan/internal/adapter/http/middleware"
	"github.com/iho/goloan/internal/infrastructure/metrics"
	"github.com/iho/goloan/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ScheduleHandler  *handler.ScheduleHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		if cfg.Metrics != nil {
			cfg.RateLimiter.OnLimit(cfg.Metrics.RateLimitHits.Inc)
		}
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			opts := []middleware.IdempotencyOption{middleware.WithIdempotencyTTL(cfg.IdempotencyTTL)}
			if cfg.Metrics != nil {
				opts = append(opts, middleware.WithReplayHook(cfg.Metrics.IdempotencyReplays.Inc))
			}
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, opts...).Wrap)
		}

		r.Post("/payments", cfg.ScheduleHandler.Payment)

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", cfg.ScheduleHandler.Create)
			r.Post("/yearly", cfg.ScheduleHandler.Yearly)
			r.Get("/csv", cfg.ScheduleHandler.CSV)
		})
	})

	return r
}
