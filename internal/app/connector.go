package app

import (
	"context"
	"time"

	"github.com/blackcloro/steam-payments/internal/api/handlers"
	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/internal/infrastructure/database"
)

// PostgresConnector opens one postgres connection per invocation.
func PostgresConnector(ctx context.Context, url string, timeout time.Duration) (handlers.Store, error) {
	repo, err := database.OpenPaymentRepository(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// NewPaymentHandler wires the handler to postgres.
func NewPaymentHandler(cfg *config.Config) *handlers.PaymentHandler {
	return handlers.NewPaymentHandler(cfg, PostgresConnector)
}
