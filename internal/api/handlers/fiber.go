package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Fiber serves the payment handler over the local HTTP server.
func (h *PaymentHandler) Fiber(c fiber.Ctx) error {
	resp, err := h.Handle(c.Context(), Request{
		HTTPMethod:            c.Method(),
		Body:                  string(c.Body()),
		QueryStringParameters: c.Queries(),
	})
	if err != nil {
		return err
	}

	for k, v := range resp.Headers {
		c.Set(k, v)
	}
	return c.Status(resp.StatusCode).SendString(resp.Body)
}
