package router

import (
	"time"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/orngfire/youtube-leaderboard/internal/handler"
	"github.com/orngfire/youtube-leaderboard/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Page        *handler.PageHandler
	Leaderboard *handler.LeaderboardHandler
	State       *handler.StateHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus
	app.Get("/metrics", handler.MetricsHandler())

	// Server-rendered page
	app.Get("/", h.Page.GetPage)

	// API routes
	api := app.Group("/api")

	api.Get("/leaderboard", h.Leaderboard.GetLeaderboard)
	api.Get("/state", h.Leaderboard.GetState)

	// Manual refresh is the only upstream-hitting trigger; keep it on a
	// tight per-IP budget.
	refreshLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Max:    10,
		Window: time.Minute,
	})
	api.Post("/refresh", h.State.Refresh, refreshLimiter.Handler())

	api.Post("/tab", h.State.SwitchTab)
	api.Post("/rows/toggle", h.State.ToggleRow)
	api.Post("/theme", h.State.SetTheme)
	api.Post("/viewport", h.State.Viewport)
}
