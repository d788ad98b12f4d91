package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/netpulse/netpulse/internal/api/handlers"
	"github.com/netpulse/netpulse/internal/api/middleware"
	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/domain/user"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/metrics"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Rule      *handlers.RuleHandler
	Alert     *handlers.AlertHandler
	Mute      *handlers.MuteHandler
	Channel   *handlers.ChannelHandler
	Device    *handlers.DeviceHandler
	Analytics *handlers.AnalyticsHandler
	Forecast  *handlers.ForecastHandler
	Engine    *handlers.EngineHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		r.Post("/api/v1/auth/login", h.Auth.Login)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)
		r.With(middleware.RequireRole(user.RoleAdmin)).
			Post("/api/v1/auth/register", h.Auth.Register)

		// Alert rules
		r.Route("/api/v1/rules", func(r chi.Router) {
			r.Get("/", h.Rule.List)
			r.Post("/", h.Rule.Create)
			r.Get("/{id}", h.Rule.Get)
			r.Put("/{id}", h.Rule.Update)
			r.Delete("/{id}", h.Rule.Delete)
			r.Post("/{id}/enable", h.Rule.Enable)
			r.Post("/{id}/disable", h.Rule.Disable)
		})

		// Fired alerts
		r.Route("/api/v1/alerts", func(r chi.Router) {
			r.Get("/", h.Alert.List)
			r.Get("/summary", h.Alert.GetSummary)
			r.Get("/{id}", h.Alert.Get)
			r.Post("/{id}/acknowledge", h.Alert.Acknowledge)
			r.Post("/{id}/resolve", h.Alert.Resolve)
		})

		// Mute windows
		r.Route("/api/v1/mutes", func(r chi.Router) {
			r.Get("/", h.Mute.List)
			r.Post("/", h.Mute.Create)
			r.Delete("/{id}", h.Mute.Delete)
		})

		// Notification channels
		r.Route("/api/v1/channels", func(r chi.Router) {
			r.Get("/", h.Channel.List)
			r.Post("/", h.Channel.Create)
			r.Get("/{id}", h.Channel.Get)
			r.Put("/{id}", h.Channel.Update)
			r.Delete("/{id}", h.Channel.Delete)
			r.Post("/{id}/test", h.Channel.Test)
		})

		// Devices and metrics
		r.Route("/api/v1/devices", func(r chi.Router) {
			r.Get("/", h.Device.List)
			r.Get("/{id}", h.Device.Get)
			r.Get("/{id}/metrics", h.Device.LatestMetrics)
			r.Get("/{id}/metrics/{metric}", h.Device.MetricHistory)
		})

		// Analytics
		r.Route("/api/v1/analytics", func(r chi.Router) {
			r.Get("/{host_id}/health", h.Analytics.Health)
			r.Get("/{host_id}/{metric}", h.Analytics.Report)
			r.Get("/{host_id}/{metric}/anomalies", h.Analytics.Anomalies)
		})

		// Forecasting
		r.Route("/api/v1/forecast", func(r chi.Router) {
			r.Get("/{host_id}/{metric}", h.Forecast.Forecast)
			r.Get("/{host_id}/{metric}/capacity", h.Forecast.Capacity)
		})

		// On-demand evaluation
		r.Post("/api/v1/engine/evaluate", h.Engine.Evaluate)
	})

	return r
}
