package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/goloan/internal/adapter/http"
	"github.com/iho/goloan/internal/adapter/http/handler"
	"github.com/iho/goloan/internal/adapter/http/middleware"
	"github.com/iho/goloan/internal/adapter/idgen"
	redisRepo "github.com/iho/goloan/internal/adapter/repository/redis"
	"github.com/iho/goloan/internal/infrastructure/config"
	applogger "github.com/iho/goloan/internal/infrastructure/logger"
	"github.com/iho/goloan/internal/infrastructure/metrics"
	"github.com/iho/goloan/internal/infrastructure/redis"
	"github.com/iho/goloan/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := applogger.New(applogger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}

	logger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	// Connect to Redis when configured
	var (
		redisClient      *goredis.Client
		idempotencyStore usecase.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisConnectTimeout)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()

		redisClient = client
		idempotencyStore = redisRepo.NewIdempotencyStore(client)
		logger.Info().Msg("connected to redis")
	} else {
		logger.Warn().Msg("REDIS_URL not set, idempotency disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	scheduleUC := usecase.NewScheduleUseCase(cfg.RequestLimits(), idgen.NewULIDGenerator(), m, logger)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

		scheduler, err := newCleanupScheduler(cfg.RateLimitCleanup, cfg.RateLimitIdle, rateLimiter, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ScheduleHandler:  handler.NewScheduleHandler(scheduleUC),
		HealthHandler:    handler.NewHealthHandler(redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Logger:           logger,
		Metrics:          m,
		MetricsHandler:   promhttp.Handler(),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return serve(ctx, server, cfg, logger)
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, cfg *config.Config, logger zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newCleanupScheduler returns a cron scheduler that drops idle rate limiters.
func newCleanupScheduler(spec string, maxIdle time.Duration, rl *middleware.RateLimiter, logger zerolog.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		if removed := rl.CleanupIdle(maxIdle); removed > 0 {
			logger.Debug().Int("removed", removed).Int("remaining", rl.Size()).Msg("rate limiters cleaned up")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CLEANUP schedule %q: %w", spec, err)
	}

	return c, nil
}
