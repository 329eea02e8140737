// Package app builds the dependency graph shared by the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nursejordan/i-notarize-online.com/internal/awsutil"
	"github.com/nursejordan/i-notarize-online.com/internal/business"
	"github.com/nursejordan/i-notarize-online.com/internal/config"
	"github.com/nursejordan/i-notarize-online.com/internal/contact"
	"github.com/nursejordan/i-notarize-online.com/internal/ddb"
	"github.com/nursejordan/i-notarize-online.com/internal/handler"
	"github.com/nursejordan/i-notarize-online.com/internal/s3io"
	"github.com/nursejordan/i-notarize-online.com/internal/seed"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
	"github.com/nursejordan/i-notarize-online.com/internal/store/memstore"
)

// App bundles the store, services and router for one process.
type App struct {
	Env      config.Env
	Store    store.Store
	S3       s3io.Getter
	Contact  *contact.Service
	Business *business.Service
	Seeder   *seed.Seeder
	Handler  *handler.Handler
}

// Open connects to the backends selected by env and wires the services.
func Open(ctx context.Context, env config.Env) (*App, error) {
	var (
		st  store.Store
		s3c s3io.Getter
	)
	needAWS := env.StoreBackend == config.BackendDynamoDB || env.SeedSource != ""
	if needAWS {
		cfg, err := awsutil.Load(ctx, env.Region, env.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		s3c = s3.NewFromConfig(cfg, func(o *s3.Options) {
			if env.Endpoint != "" {
				o.UsePathStyle = true // localstack/dev friendliness
			}
		})
		if env.StoreBackend == config.BackendDynamoDB {
			st = ddb.New(dynamodb.NewFromConfig(cfg), env.Table)
		}
	}
	if st == nil {
		st = memstore.New()
	}
	return New(env, st, s3c), nil
}

// New wires the services over st. s3c may be nil when no S3 seed source is set.
func New(env config.Env, st store.Store, s3c s3io.Getter) *App {
	c := contact.New(st)
	b := business.New(st)
	return &App{
		Env:      env,
		Store:    st,
		S3:       s3c,
		Contact:  c,
		Business: b,
		Seeder:   seed.NewSeeder(st, seed.SourceFor(env.SeedSource, s3c)),
		Handler: handler.New(handler.Options{
			Root:        env.APIRoot,
			Version:     env.APIVersion,
			CORSOrigins: env.CORSOrigins,
		}, c, b),
	}
}

// Start runs the startup hooks: seeding when SEED_ON_START is set.
func (a *App) Start(ctx context.Context) error {
	if !a.Env.SeedOnStart {
		return nil
	}
	if _, err := a.Seeder.IfEmpty(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
