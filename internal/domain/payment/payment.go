package payment

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/blackcloro/steam-payments/internal"
)

type Status string

// StatusPending is the only status this service ever writes.
const StatusPending Status = "pending"

const DefaultPaymentMethod = "card"

// Amount bounds. MaxAmountScale is the largest scale a Postgres NUMERIC keeps.
const (
	MaxAmountIntegerDigits = 20
	MaxAmountScale         = 16383
)

type Payment struct {
	ID            int64           `json:"id"`
	SteamID       string          `json:"steam_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        Status          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CreateRequest struct {
	SteamID       string          `json:"steam_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod string          `json:"payment_method"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator cannot compare struct types, so decimals are checked by sign.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Normalize trims the identifiers and fills in the default payment method.
func (r *CreateRequest) Normalize() {
	r.SteamID = strings.TrimSpace(r.SteamID)
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	if r.PaymentMethod == "" {
		r.PaymentMethod = DefaultPaymentMethod
	}
}

func (r *CreateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrInvalidPayment, err)
	}
	return checkAmountRange(r.Amount)
}

// checkAmountRange works on the coefficient and exponent only, so amounts
// such as 1e50000000 are rejected without being expanded.
func checkAmountRange(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if int64(d.NumDigits())+exp > MaxAmountIntegerDigits {
		return fmt.Errorf("%w: more than %d integer digits", internal.ErrNumericOverflow, MaxAmountIntegerDigits)
	}
	if -exp > MaxAmountScale {
		return fmt.Errorf("%w: scale above %d", internal.ErrNumericOverflow, MaxAmountScale)
	}
	return nil
}

// CheckoutURL returns the placeholder payment page for a transaction.
func CheckoutURL(base, transactionID string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid payment page url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("tx", transactionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
