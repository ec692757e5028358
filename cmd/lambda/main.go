package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/blackcloro/steam-payments/internal/app"
	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg.Log.Level, "json")

	lambda.Start(app.NewPaymentHandler(cfg).Lambda)
}
