package payment

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	ListRecent(ctx context.Context, limit int) ([]*Payment, error)
}
