package database

import (
	"context"
	"fmt"
	"time"

	shopspring "github.com/jackc/pgtype/ext/shopspring-numeric"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

// Connect opens a dedicated connection for a single invocation. The caller
// owns it and must close it.
func Connect(ctx context.Context, url string, timeout time.Duration) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// NUMERIC columns scan into decimal.Decimal.
	conn.ConnInfo().RegisterDataType(pgtype.DataType{
		Value: &shopspring.Numeric{},
		Name:  "numeric",
		OID:   pgtype.NumericOID,
	})

	return conn, nil
}
