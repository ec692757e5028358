package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/internal/testutil"
)

func newLambdaHandler(store *testutil.MemoryStore) *PaymentHandler {
	cfg := &config.Config{
		DB:      config.DBConfig{URL: testDatabaseURL},
		Payment: config.PaymentConfig{PageURL: "https://payment.example.com/pay"},
	}
	return NewPaymentHandler(cfg, func(_ context.Context, url string, _ time.Duration) (Store, error) {
		return store.Open(url)
	})
}

func TestLambdaCreateAndFetch(t *testing.T) {
	store := testutil.NewMemoryStore()
	h := newLambdaHandler(store)
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})

	resp, err := h.Lambda(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"steam_id":"76561198000000000","amount":500}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.False(t, resp.IsBase64Encoded)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &created))
	txID, _ := created["transaction_id"].(string)
	require.NotEmpty(t, txID)

	resp, err = h.Lambda(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		QueryStringParameters: map[string]string{"transaction_id": txID},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, store.Closes)
}

func TestLambdaBase64Body(t *testing.T) {
	store := testutil.NewMemoryStore()
	h := newLambdaHandler(store)

	resp, err := h.Lambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"steam_id":"1","amount":9.99}`)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, store.Len())

	_, err = h.Lambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	assert.Error(t, err)
}

func TestLambdaPreflightAndFaults(t *testing.T) {
	store := testutil.NewMemoryStore()
	h := newLambdaHandler(store)

	resp, err := h.Lambda(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "86400", resp.Headers["Access-Control-Max-Age"])
	assert.Zero(t, store.Opens)

	store.Err = errors.New("relation \"payments\" does not exist")
	_, err = h.Lambda(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})
	assert.ErrorIs(t, err, store.Err)
	assert.Equal(t, 1, store.Closes)
}
