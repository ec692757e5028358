package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/blackcloro/steam-payments/internal"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepository) GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	args := m.Called(ctx, transactionID)
	p, _ := args.Get(0).(*Payment)
	return p, args.Error(1)
}

func (m *mockRepository) ListRecent(ctx context.Context, limit int) ([]*Payment, error) {
	args := m.Called(ctx, limit)
	ps, _ := args.Get(0).([]*Payment)
	return ps, args.Error(1)
}

type PaymentServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *mockRepository
	service  *Service
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockRepo = new(mockRepository)
	s.service = NewService(s.mockRepo)
	s.service.newID = func() string { return "0b6f9c1e-5a1d-4c3e-9f7a-2d8e4b6a1c00" }
}

func (s *PaymentServiceTestSuite) TestCreatePayment() {
	s.mockRepo.On("Create", s.ctx, mock.MatchedBy(func(p *Payment) bool {
		return p.SteamID == "76561198000000000" &&
			p.Amount.Equal(decimal.NewFromInt(500)) &&
			p.PaymentMethod == DefaultPaymentMethod &&
			p.Status == StatusPending &&
			p.TransactionID == "0b6f9c1e-5a1d-4c3e-9f7a-2d8e4b6a1c00"
	})).Return(nil).Once()

	p, err := s.service.CreatePayment(s.ctx, CreateRequest{
		SteamID: " 76561198000000000 ",
		Amount:  decimal.NewFromInt(500),
	})

	s.Require().NoError(err)
	s.Equal(StatusPending, p.Status)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreatePaymentInvalidSkipsRepository() {
	_, err := s.service.CreatePayment(s.ctx, CreateRequest{SteamID: "", Amount: decimal.NewFromInt(5)})

	s.ErrorIs(err, internal.ErrInvalidPayment)
	s.mockRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreatePaymentRepositoryError() {
	s.mockRepo.On("Create", s.ctx, mock.Anything).Return(internal.ErrDuplicateTransaction).Once()

	_, err := s.service.CreatePayment(s.ctx, CreateRequest{SteamID: "a", Amount: decimal.NewFromInt(1)})

	s.ErrorIs(err, internal.ErrDuplicateTransaction)
}

func (s *PaymentServiceTestSuite) TestGetPayment() {
	want := &Payment{ID: 1, TransactionID: "tx-1", Status: StatusPending}
	s.mockRepo.On("GetByTransactionID", s.ctx, "tx-1").Return(want, nil).Once()
	s.mockRepo.On("GetByTransactionID", s.ctx, "missing").Return(nil, internal.ErrPaymentNotFound).Once()

	got, err := s.service.GetPayment(s.ctx, "tx-1")
	s.Require().NoError(err)
	s.Equal(want, got)

	_, err = s.service.GetPayment(s.ctx, "missing")
	s.True(errors.Is(err, internal.ErrPaymentNotFound))
}

func (s *PaymentServiceTestSuite) TestListRecentPaymentsUsesLimit() {
	s.mockRepo.On("ListRecent", s.ctx, RecentLimit).Return([]*Payment{{ID: 2}, {ID: 1}}, nil).Once()

	got, err := s.service.ListRecentPayments(s.ctx)

	s.Require().NoError(err)
	s.Len(got, 2)
	s.mockRepo.AssertExpectations(s.T())
}
