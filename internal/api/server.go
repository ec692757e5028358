package api

import (
	"context"
	"fmt"

	"github.com/blackcloro/steam-payments/internal/api/handlers"
	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/pkg/logger"

	"github.com/gofiber/fiber/v3"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

type Server struct {
	app    *fiber.App
	config *config.Config
}

func NewServer(cfg *config.Config, ph *handlers.PaymentHandler) *Server {
	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:               cfg.Limiter.Max,
		Expiration:        cfg.Limiter.Expiration,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))

	SetupRoutes(app, ph)

	return &Server{
		app:    app,
		config: cfg,
	}
}

// App exposes the fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	logger.Info("Starting server", "env", s.config.Env, "address", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownComplete := make(chan struct{})

	var shutdownErr error
	go func() {
		defer close(shutdownComplete)
		shutdownErr = s.app.ShutdownWithContext(ctx)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-shutdownComplete:
		if shutdownErr != nil {
			logger.Error("Error during shutdown", shutdownErr)
		}
		return shutdownErr
	}
}
