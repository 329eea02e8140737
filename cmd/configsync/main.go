// Package main applies configuration documents uploaded to S3 through the config store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/nursejordan/i-notarize-online.com/internal/app"
	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/config"
	"github.com/nursejordan/i-notarize-online.com/internal/s3io"
	"github.com/nursejordan/i-notarize-online.com/internal/validate"
)

// Putter is the configuration write path.
type Putter interface {
	Put(ctx context.Context, key string, data map[string]any) error
}

// App holds the application state, including configuration and AWS clients.
type App struct {
	prefix string
	s3     s3io.Getter
	config Putter
}

// main initializes the app and starts the Lambda handler.
func main() {
	env := config.MustLoad()
	a, err := app.Open(context.Background(), env)
	if err != nil {
		log.Fatal(err)
	}
	if a.S3 == nil {
		log.Fatal("configsync: needs the dynamodb store backend")
	}
	h := &App{prefix: env.ConfigPrefix, s3: a.S3, config: a.Business}
	lambda.Start(h.handler)
}

// ---- Handler ----

// handler applies every configuration object of the event. Rejected documents
// are logged and skipped; store failures are returned so Lambda retries.
func (a *App) handler(ctx context.Context, ev events.S3Event) (any, error) {
	var errs []error
	for _, rec := range ev.Records {
		if err := a.processS3Record(ctx, rec); err != nil {
			log.Printf("configsync: %v", err)
			if !apperrors.IsClientError(err) {
				errs = append(errs, err)
			}
		}
	}
	return nil, errors.Join(errs...)
}

// processS3Record handles a single S3 event record.
func (a *App) processS3Record(ctx context.Context, record events.S3EventRecord) error {
	bucket := record.S3.Bucket.Name
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		key = record.S3.Object.Key
	}

	configKey, ok := s3io.ParseConfigObjectKey(a.prefix, key)
	if !ok {
		log.Printf("configsync: skipping %s", key)
		return nil
	}

	obj, err := s3io.Read(ctx, a.s3, bucket, key)
	if err != nil {
		return err
	}
	if obj.ContentType != "" && obj.ContentType != s3io.ContentTypeJSON {
		log.Printf("configsync: warning content-type=%s for %s", obj.ContentType, key)
	}

	var data map[string]any
	if err := validate.DecodeJSON(obj.Body, &data); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := a.config.Put(ctx, configKey, data); err != nil {
		return fmt.Errorf("apply %s: %w", key, err)
	}

	log.Printf("configsync: applied %s from s3://%s/%s etag=%s", configKey, bucket, key, obj.ETag)
	return nil
}
