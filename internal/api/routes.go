package api

import (
	"github.com/blackcloro/steam-payments/internal/api/handlers"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
)

func SetupRoutes(app *fiber.App, ph *handlers.PaymentHandler) {
	api := app.Group("/api/v1")

	// The handler owns method dispatch, including CORS preflight.
	api.All("/payments", ph.Fiber)
	// Check if the server is up and running.
	api.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
}
