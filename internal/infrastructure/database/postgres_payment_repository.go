package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/blackcloro/steam-payments/internal"
	"github.com/blackcloro/steam-payments/internal/domain/payment"
	"github.com/blackcloro/steam-payments/pkg/logger"
)

const paymentColumns = `id, steam_id, amount, payment_method, status, transaction_id, created_at`

type PostgresPaymentRepository struct {
	conn *pgx.Conn
}

func NewPostgresPaymentRepository(conn *pgx.Conn) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{conn: conn}
}

// OpenPaymentRepository connects and wraps the connection in a repository.
func OpenPaymentRepository(ctx context.Context, url string, timeout time.Duration) (*PostgresPaymentRepository, error) {
	conn, err := Connect(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	return NewPostgresPaymentRepository(conn), nil
}

func (r *PostgresPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Rollback failed", "error", err)
		}
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO payments (steam_id, amount, payment_method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+paymentColumns,
		p.SteamID, p.Amount, p.PaymentMethod, p.Status, p.TransactionID,
	)
	if err := scanPayment(row, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return internal.ErrDuplicateTransaction
		} else if errors.As(err, &pgErr) && pgErr.Code == "22003" {
			return internal.ErrNumericOverflow
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error) {
	var p payment.Payment
	row := r.conn.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE transaction_id = $1
	`, transactionID)
	if err := scanPayment(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPaymentRepository) ListRecent(ctx context.Context, limit int) ([]*payment.Payment, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0, limit)
	for rows.Next() {
		p := &payment.Payment{}
		if err := scanPayment(rows, p); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *PostgresPaymentRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func scanPayment(row pgx.Row, p *payment.Payment) error {
	return row.Scan(
		&p.ID, &p.SteamID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID, &p.CreatedAt,
	)
}
