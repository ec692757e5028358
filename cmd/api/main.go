package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackcloro/steam-payments/internal/api"
	"github.com/blackcloro/steam-payments/internal/app"
	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if cfg.DB.URL == "" {
		logger.Warn("DATABASE_URL is not set; payment requests will fail with 500")
	}

	server := api.NewServer(cfg, app.NewPaymentHandler(cfg))

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server exiting")
}
