package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/examhub/exam-service/internal/api/http/handlers"
	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/domain"
	"github.com/examhub/exam-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	gate := cfg.AuthMiddleware
	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", gate.Optional, cfg.Auth.Logout)
	authGroup.Get("/me", gate.Handle, gate.RequireRoles(), cfg.Auth.Me)
	authGroup.Post("/revocations", gate.Handle, gate.RequireRoles(domain.RoleAdmin), cfg.Auth.Revoke)
}
