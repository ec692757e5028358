package internal

import "errors"

var (
	ErrInvalidPayment       = errors.New("invalid steam_id or amount")
	ErrInvalidRequestBody   = errors.New("invalid request body")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrNumericOverflow      = errors.New("numeric field overflow")
	ErrPaymentNotFound      = errors.New("payment not found")
)
