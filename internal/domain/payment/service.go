package payment

import (
	"context"

	"github.com/google/uuid"
)

// RecentLimit caps the list of recent payments.
const RecentLimit = 50

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

func (s *Service) CreatePayment(ctx context.Context, req CreateRequest) (*Payment, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &Payment{
		SteamID:       req.SteamID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        StatusPending,
		TransactionID: s.newID(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPayment(ctx context.Context, transactionID string) (*Payment, error) {
	return s.repo.GetByTransactionID(ctx, transactionID)
}

func (s *Service) ListRecentPayments(ctx context.Context) ([]*Payment, error) {
	return s.repo.ListRecent(ctx, RecentLimit)
}
