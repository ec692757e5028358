package handlers

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/blackcloro/steam-payments/pkg/logger"
)

// Lambda serves the payment handler behind an API Gateway proxy integration.
func (h *PaymentHandler) Lambda(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger.Debug("Invocation received",
			"request_id", lc.AwsRequestID,
			"function", lambdacontext.FunctionName,
			"method", event.HTTPMethod)
	}

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, fmt.Errorf("decode request body: %w", err)
		}
		body = string(decoded)
	}

	resp, err := h.Handle(ctx, Request{
		HTTPMethod:            event.HTTPMethod,
		Body:                  body,
		QueryStringParameters: event.QueryStringParameters,
	})
	if err != nil {
		logger.Error("Invocation failed", err, "method", event.HTTPMethod)
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: resp.IsBase64Encoded,
	}, nil
}
