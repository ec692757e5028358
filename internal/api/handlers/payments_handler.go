package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blackcloro/steam-payments/internal"
	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/internal/domain/payment"
	"github.com/blackcloro/steam-payments/pkg/logger"
)

// Request is the transport-neutral view of one invocation.
type Request struct {
	HTTPMethod            string            `json:"httpMethod"`
	Body                  string            `json:"body"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
}

type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Store is a payment repository bound to one database connection.
type Store interface {
	payment.Repository
	Close(ctx context.Context) error
}

// Connector opens a Store for a single invocation.
type Connector func(ctx context.Context, url string, timeout time.Duration) (Store, error)

type PaymentHandler struct {
	db      config.DBConfig
	pageURL string
	connect Connector
}

func NewPaymentHandler(cfg *config.Config, connect Connector) *PaymentHandler {
	return &PaymentHandler{
		db:      cfg.DB,
		pageURL: cfg.Payment.PageURL,
		connect: connect,
	}
}

type paymentResponse struct {
	ID            int64          `json:"id"`
	SteamID       string         `json:"steam_id"`
	Amount        json.Number    `json:"amount"`
	PaymentMethod string         `json:"payment_method"`
	Status        payment.Status `json:"status"`
	TransactionID string         `json:"transaction_id"`
	CreatedAt     time.Time      `json:"created_at"`
	PaymentURL    string         `json:"payment_url,omitempty"`
}

type listResponse struct {
	Payments []paymentResponse `json:"payments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toPaymentResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		SteamID:       p.SteamID,
		Amount:        json.Number(p.Amount.String()),
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

// Handle dispatches one invocation. Only classified failures become shaped
// responses; anything else is returned as an error for the runtime to report.
// The store opened for the invocation is closed on every path.
func (h *PaymentHandler) Handle(ctx context.Context, req Request) (Response, error) {
	method := req.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	if method == http.MethodOptions {
		return preflight(), nil
	}

	if h.db.URL == "" {
		logger.Error("Database URL is not configured", nil)
		return jsonError(http.StatusInternalServerError, "Database configuration missing")
	}

	store, err := h.connect(ctx, h.db.URL, h.db.ConnectTimeout)
	if err != nil {
		return Response{}, err
	}
	defer func() {
		if closeErr := store.Close(context.Background()); closeErr != nil {
			logger.Warn("Failed to close database connection", "error", closeErr)
		}
	}()

	service := payment.NewService(store)

	switch method {
	case http.MethodPost:
		return h.createPayment(ctx, service, req.Body)
	case http.MethodGet:
		if transactionID := req.QueryStringParameters["transaction_id"]; transactionID != "" {
			return h.getPayment(ctx, service, transactionID)
		}
		return h.listPayments(ctx, service)
	default:
		return jsonError(http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *PaymentHandler) createPayment(ctx context.Context, service *payment.Service, body string) (Response, error) {
	createReq, err := decodeCreateRequest(body)
	if err != nil {
		logger.Warn("Invalid request body", "error", err)
		return jsonError(http.StatusBadRequest, "Invalid request body")
	}

	p, err := service.CreatePayment(ctx, createReq)
	switch {
	case errors.Is(err, internal.ErrInvalidPayment):
		return jsonError(http.StatusBadRequest, "Invalid steam_id or amount")
	case errors.Is(err, internal.ErrDuplicateTransaction):
		return jsonError(http.StatusConflict, "Duplicate transaction")
	case errors.Is(err, internal.ErrNumericOverflow):
		return jsonError(http.StatusBadRequest, "Amount out of range")
	case err != nil:
		return Response{}, fmt.Errorf("create payment: %w", err)
	}

	out := toPaymentResponse(p)
	out.PaymentURL, err = payment.CheckoutURL(h.pageURL, p.TransactionID)
	if err != nil {
		return Response{}, err
	}

	logger.Info("Payment created", "transaction_id", p.TransactionID, "steam_id", p.SteamID, "amount", p.Amount.String())
	return jsonResponse(http.StatusCreated, out)
}

func (h *PaymentHandler) getPayment(ctx context.Context, service *payment.Service, transactionID string) (Response, error) {
	p, err := service.GetPayment(ctx, transactionID)
	if errors.Is(err, internal.ErrPaymentNotFound) {
		return jsonError(http.StatusNotFound, "Payment not found")
	}
	if err != nil {
		return Response{}, fmt.Errorf("get payment %s: %w", transactionID, err)
	}
	return jsonResponse(http.StatusOK, toPaymentResponse(p))
}

func (h *PaymentHandler) listPayments(ctx context.Context, service *payment.Service) (Response, error) {
	payments, err := service.ListRecentPayments(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list payments: %w", err)
	}

	out := listResponse{Payments: make([]paymentResponse, 0, len(payments))}
	for _, p := range payments {
		out.Payments = append(out.Payments, toPaymentResponse(p))
	}
	return jsonResponse(http.StatusOK, out)
}

type createBody struct {
	SteamID       string          `json:"steam_id"`
	Amount        json.RawMessage `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// decodeCreateRequest treats an absent body as an empty object; a body that
// is present but not a JSON object is rejected. The amount must be a JSON
// number, not a string.
func decodeCreateRequest(body string) (payment.CreateRequest, error) {
	var req payment.CreateRequest
	if len(bytes.TrimSpace([]byte(body))) == 0 {
		return req, nil
	}

	var in createBody
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return req, fmt.Errorf("%w: %v", internal.ErrInvalidRequestBody, err)
	}
	req.SteamID = in.SteamID
	req.PaymentMethod = in.PaymentMethod

	if len(in.Amount) > 0 && in.Amount[0] == '"' {
		return req, fmt.Errorf("%w: amount must be a number", internal.ErrInvalidRequestBody)
	}
	if len(in.Amount) > 0 {
		if err := req.Amount.UnmarshalJSON(in.Amount); err != nil {
			return req, fmt.Errorf("%w: %v", internal.ErrInvalidRequestBody, err)
		}
	}
	return req, nil
}

func preflight() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Max-Age":       "86400",
		},
		Body: "",
	}
}

func jsonResponse(status int, v any) (Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{}, fmt.Errorf("encode response: %w", err)
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

func jsonError(status int, msg string) (Response, error) {
	return jsonResponse(status, errorResponse{Error: msg})
}
