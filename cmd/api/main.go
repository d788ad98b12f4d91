package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/netpulse/netpulse/internal/api/handlers"
	"github.com/netpulse/netpulse/internal/api/router"
	"github.com/netpulse/netpulse/internal/collector"
	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/engine"
	"github.com/netpulse/netpulse/internal/notifier"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/validator"
	"github.com/netpulse/netpulse/internal/repository/postgres"
	"github.com/netpulse/netpulse/internal/services"
	"github.com/netpulse/netpulse/internal/unifi"
	"github.com/netpulse/netpulse/migrations"
)

// @title NetPulse API
// @version 1.0
// @description UniFi network telemetry collection, alerting and analytics.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.Files); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	ruleRepo := postgres.NewRuleRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	muteRepo := postgres.NewMuteRepository(db)
	channelRepo := postgres.NewChannelRepository(db)
	metricRepo := postgres.NewMetricRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)

	// Notifier registry
	registry := notifier.NewRegistry()
	registry.Register(notifier.NewEmailNotifier(cfg.SMTP))
	registry.Register(notifier.NewWebhookNotifier())

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth, log)
	ruleService := services.NewRuleService(ruleRepo, log)
	alertService := services.NewAlertService(alertRepo, log)
	muteService := services.NewMuteService(muteRepo, ruleRepo, log)
	channelService := services.NewChannelService(channelRepo, registry, log)
	notificationService := services.NewNotificationService(channelRepo, registry, log)
	analyticsService := services.NewAnalyticsService(metricRepo, log)
	forecastService := services.NewForecastService(metricRepo, log)

	alertEngine := engine.New(ruleRepo, alertRepo, muteRepo, metricRepo, deviceRepo, log)

	ctx := context.Background()
	if err := authService.EnsureAdmin(ctx); err != nil {
		log.WithError(err).Fatal("Failed to seed admin account")
	}

	// Telemetry poller
	var poller *collector.Poller
	if cfg.UniFi.Username != "" {
		controller, err := unifi.NewClient(cfg.UniFi, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to create controller client")
		}

		retention := collector.NewRetention(cfg.Engine, alertRepo, metricRepo, log)
		poller = collector.New(cfg.Engine, controller, deviceRepo, metricRepo, ruleRepo,
			alertEngine, notificationService, retention, log)

		if err := poller.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start poller")
		}
		defer poller.Stop()
	} else {
		log.Warn("UNIFI_USERNAME is not set, telemetry collection is disabled")
	}

	val := validator.New()

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(db, log),
		Auth:      handlers.NewAuthHandler(authService, userRepo, log, val),
		Rule:      handlers.NewRuleHandler(ruleService, log, val),
		Alert:     handlers.NewAlertHandler(alertService, log, val),
		Mute:      handlers.NewMuteHandler(muteService, log, val),
		Channel:   handlers.NewChannelHandler(channelService, log, val),
		Device:    handlers.NewDeviceHandler(deviceRepo, metricRepo, log),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, log),
		Forecast:  handlers.NewForecastHandler(forecastService, log),
		Engine:    handlers.NewEngineHandler(alertEngine, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Server shutdown failed")
	}

	log.Info("Server stopped")
}
