package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/masifunde/apsmatch-api/internal/config"
	"github.com/masifunde/apsmatch-api/internal/handler"
	"github.com/masifunde/apsmatch-api/internal/middleware"
	"github.com/masifunde/apsmatch-api/internal/observability"
)

// Dependencies collects the handlers the router mounts.
type Dependencies struct {
	Config   config.Config
	Marks    *handler.MarkHandler
	Matches  *handler.MatchHandler
	Programs *handler.ProgramHandler
}

// Register mounts all API routes on the application.
func Register(app *fiber.App, deps Dependencies) {
	api := app.Group("/api/v1")

	api.Get("/health", handler.HealthCheck(deps.Config))
	api.Get("/metrics", observability.MetricsHandler())

	protect := middleware.JWTProtected(deps.Config.JWTSecret)

	marks := api.Group("/marks", protect)
	deps.Marks.Register(marks)
	deps.Marks.RegisterBulk(marks.Group("", middleware.RequireRole("admin"), middleware.RateLimit("bulk", 5, time.Minute)))

	matches := api.Group("/matches", protect)
	deps.Matches.Register(matches)

	programs := api.Group("/programs", protect)
	deps.Programs.Register(programs)
	deps.Programs.RegisterAdmin(programs.Group("", middleware.RequireRole("admin")))
}
