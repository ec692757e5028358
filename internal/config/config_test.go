package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PAYMENTS_DB_URL", "")

	cfg, err := load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, "https://payment.example.com/pay", cfg.Payment.PageURL)
	assert.Equal(t, 20, cfg.Limiter.Max)
	assert.Equal(t, 30*time.Second, cfg.Limiter.Expiration)
	assert.Empty(t, cfg.DB.URL)
}

func TestLoadDatabaseURLFromEnvironment(t *testing.T) {
	t.Setenv("PAYMENTS_DB_URL", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/payments")

	cfg, err := load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/payments", cfg.DB.URL)
}

func TestLoadPrefixedOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PAYMENTS_DB_URL", "postgres://prefixed/payments")
	t.Setenv("PAYMENTS_PORT", "9090")
	t.Setenv("PAYMENTS_LOG_FORMAT", "json")
	t.Setenv("PAYMENTS_PAYMENT_PAGE_URL", "https://pay.local/checkout")

	cfg, err := load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "postgres://prefixed/payments", cfg.DB.URL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://pay.local/checkout", cfg.Payment.PageURL)
}

func TestLoadMissingFileWritesNothingToStdout(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = stdout })

	_, err = load(missingEnvFile(t))
	os.Stdout = stdout
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, string(out))
}
