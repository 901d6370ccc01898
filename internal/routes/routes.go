package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions *session.Manager,
	m *metrics.Metrics,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	dashboardHandler *handlers.DashboardHandler,
	inspectionHandler *handlers.InspectionHandler,
	alertHandler *handlers.AlertHandler,
	predictHandler *handlers.PredictHandler,
) {
	app.Use(middleware.SecurityHeaders())

	// Operational endpoints (no session lookup)
	app.Get("/health", healthHandler.Check)
	if m != nil && cfg.MetricsEnabled {
		app.Get("/metrics", m.Handler())
	}

	app.Use(middleware.LoadPrincipal(sessions))

	// Credential endpoints: 10 req/min per IP
	credentialLimiter := func() fiber.Handler {
		return limiter.New(limiter.Config{
			Max:               10,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		})
	}

	// Public console routes
	app.Get("/", authHandler.Index)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", credentialLimiter(), authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Console pages (session required) - middleware applied per route so
	// unknown paths still reach the 404 page
	requirePage := middleware.RequirePage()
	app.Get("/dashboard", requirePage, dashboardHandler.Dashboard)
	app.Get("/alerts", requirePage, alertHandler.List)
	app.Post("/alerts/:id/status", requirePage, middleware.RequireRole(cfg.AlertManagerRoles), alertHandler.UpdateStatus)
	app.Get("/history", requirePage, inspectionHandler.History)
	app.Get("/reports", requirePage, dashboardHandler.Reports)
	app.Get("/inspection/:id", requirePage, inspectionHandler.Detail)

	// Device API: session or bearer token
	requireAPI := middleware.RequireAPI(cfg)
	app.Post("/predict", requireAPI, predictHandler.Predict)

	api := app.Group("/api", middleware.CORS(cfg))
	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	api.Post("/token", credentialLimiter(), authHandler.Token)
	api.Post("/inspections", requireAPI, inspectionHandler.Record)
}
