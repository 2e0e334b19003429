package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/noah-isme/wrapping-quotes/internal/config"
	"github.com/noah-isme/wrapping-quotes/internal/health"
	"github.com/noah-isme/wrapping-quotes/internal/obs"
	"github.com/noah-isme/wrapping-quotes/internal/ratelimit"
	"github.com/noah-isme/wrapping-quotes/internal/security"
	"github.com/noah-isme/wrapping-quotes/internal/session"
)

type routerDeps struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   *session.Store
	Limiter ratelimit.Limiter
	Metrics *obs.HTTPMetrics
	Health  health.Handler
	Tracing bool
	Pprof   bool
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if d.Tracing {
		r.Use(obs.TracingMiddleware)
	}
	if d.Metrics != nil {
		r.Use(obs.HTTPObs{Metrics: d.Metrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: d.Logger}.Middleware)
	r.Use(security.HeadersFor(d.Config.AppEnv).Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(d.Config),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	if d.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}
	if d.Pprof {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)

	quotes := &session.Handler{Store: d.Store, Logger: d.Logger}
	r.Route("/api/v1", func(v chi.Router) {
		v.Use(security.BodyLimit{Max: d.Config.MaxBodyBytes}.Middleware)
		if d.Limiter != nil {
			v.Use(ratelimit.Handler{
				Limiter: d.Limiter,
				Config: ratelimit.Config{
					Key:    ratelimit.ClientKey,
					Window: time.Minute,
					Max:    d.Config.RateLimitPerMinute,
				},
				OnError: func(err error) {
					d.Logger.Warn().Err(err).Msg("rate limiter unavailable")
				},
			}.Middleware)
		}
		quotes.Routes(v)
	})
	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
