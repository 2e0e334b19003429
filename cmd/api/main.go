package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/wrapping-quotes/internal/config"
	"github.com/noah-isme/wrapping-quotes/internal/health"
	"github.com/noah-isme/wrapping-quotes/internal/obs"
	"github.com/noah-isme/wrapping-quotes/internal/ratelimit"
	"github.com/noah-isme/wrapping-quotes/internal/session"
)

func main() {
	cfg := config.MustLoad()

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "quotes")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:    "wrapping-quotes",
			ServiceVersion: envOrDefault("APP_VERSION", ""),
			Environment:    cfg.AppEnv,
			Exporter:       envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			Endpoint:       envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio:  envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.ExportDir).Msg("create export directory")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if tracingEnabled {
			if err := redisotel.InstrumentTracing(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis tracing")
			}
		}
		if metricsEnabled {
			if err := redisotel.InstrumentMetrics(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis metrics")
			}
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimitEnabled() {
		l, err := newLimiter(redisClient)
		if err != nil {
			logger.Fatal().Err(err).Msg("initialise rate limiter")
		}
		limiter = l
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	store := session.NewStore(session.StoreOptions{
		Exporter: session.DirExporter{Dir: cfg.ExportDir},
		Logger:   logger,
	})
	if metricsEnabled {
		obs.RegisterSessionsGauge(metricsNamespace, nil, store.Len)
	}

	handler := newRouter(routerDeps{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Limiter: limiter,
		Metrics: httpMetrics,
		Tracing: tracingEnabled,
		Health: health.Handler{
			Checker:      health.Dependencies{ExportDir: cfg.ExportDir, Redis: redisClient},
			DirTimeout:   envDurationMillis("HEALTH_READY_DIR_TIMEOUT_MS", 500),
			RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
		},
		Pprof: envBool("OBS_ENABLE_PPROF", false),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		health.SetReady(false)
		logger.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Str("export_dir", cfg.ExportDir).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Int("open_sessions", store.Len()).Msg("server stopped")
}

// newLimiter counts per-client requests in Redis when it is configured so that
// replicas share a budget, and in process otherwise.
func newLimiter(rdb *redis.Client) (ratelimit.Limiter, error) {
	store, err := ratelimit.NewStore(rdb, "quotes:ratelimit")
	if err != nil {
		return nil, err
	}
	return ratelimit.FixedWindow{Store: store}, nil
}
