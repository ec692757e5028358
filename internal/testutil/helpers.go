package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/blackcloro/steam-payments/internal/domain/payment"
)

// TruncatePayments removes all records from the payments table and resets its id sequence.
func TruncatePayments(ctx context.Context, t require.TestingT, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE payments RESTART IDENTITY")
	require.NoError(t, err)
}

// CountPayments returns the number of persisted payments.
func CountPayments(ctx context.Context, t require.TestingT, pool *pgxpool.Pool) int {
	var n int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM payments").Scan(&n)
	require.NoError(t, err)
	return n
}

func GeneratePayments(count int) []payment.Payment {
	ps := make([]payment.Payment, count)
	for i := 0; i < count; i++ {
		ps[i] = payment.Payment{
			SteamID:       fmt.Sprintf("7656119800000%04d", i+1),
			Amount:        decimal.NewFromInt(int64(i+1) * 10),
			PaymentMethod: payment.DefaultPaymentMethod,
			Status:        payment.StatusPending,
			TransactionID: fmt.Sprintf("00000000-0000-4000-8000-%012d", i+1),
		}
	}
	return ps
}

// SamePayment reports whether stored carries the caller-supplied fields of original.
func SamePayment(original, stored *payment.Payment) bool {
	return original.TransactionID == stored.TransactionID &&
		original.SteamID == stored.SteamID &&
		original.PaymentMethod == stored.PaymentMethod &&
		original.Status == stored.Status &&
		original.Amount.Equal(stored.Amount)
}
