package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/seed"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/views"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.IsSQLite() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (WARN+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB, slog.LevelWarn)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(),
		dbLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	if cfg.SeedOnStart {
		res, err := seed.Run(database.DB)
		if err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("seed on start", "skipped", res.Skipped, "inspections", res.Inspections, "alerts", res.Alerts)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	dashboardService := services.NewDashboardService(database.DB)
	inspectionService := services.NewInspectionService(database.DB)
	alertService := services.NewAlertService(database.DB)

	sessions := session.NewManager(cfg)
	var appMetrics *metrics.Metrics
	if cfg.MetricsEnabled {
		appMetrics = metrics.New()
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sessions, appMetrics)
	healthHandler := handlers.NewHealthHandler(database.Ping)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, inspectionService, alertService, sessions)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService, alertService, sessions, appMetrics)
	alertHandler := handlers.NewAlertHandler(alertService, sessions, appMetrics, cfg.AlertManagerRoles)
	predictHandler := handlers.NewPredictHandler()

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		Views:        views.New(),
		ViewsLayout:  views.Layout,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	if cfg.CookieKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key: cfg.CookieKey,
		}))
	}
	if appMetrics != nil {
		app.Use(appMetrics.Middleware())
	}

	// Routes
	routes.Setup(app, cfg, sessions, appMetrics,
		authHandler, healthHandler, dashboardHandler, inspectionHandler, alertHandler, predictHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
