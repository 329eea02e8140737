// Package main serves every API route behind an API Gateway HTTP API.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/nursejordan/i-notarize-online.com/internal/app"
	"github.com/nursejordan/i-notarize-online.com/internal/config"
	"github.com/nursejordan/i-notarize-online.com/internal/otel"
)

// main initializes the application, seeds on cold start and starts the Lambda handler.
func main() {
	ctx := context.Background()
	env := config.MustLoad()

	shutdown, err := otel.Setup(ctx, "notary-api", env.OTelEndpoint)
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Open(ctx, env)
	if err != nil {
		log.Fatal(err)
	}
	// A failed seed is retried on the next cold start; health keeps answering.
	if err := a.Start(ctx); err != nil {
		log.Printf("startup: %v", err)
	}
	lambda.StartWithOptions(a.Handler.Handle, lambda.WithEnableSIGTERM(func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}))
}
