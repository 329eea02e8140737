// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Env holds the configuration values for the application.
type Env struct {
	Region       string   `env:"AWS_REGION" envDefault:"us-east-1"`
	Endpoint     string   `env:"AWS_ENDPOINT_URL"`
	Table        string   `env:"DDB_TABLE" envDefault:"notary_service"`
	StoreBackend string   `env:"STORE_BACKEND" envDefault:"dynamodb"`
	APIRoot      string   `env:"API_ROOT" envDefault:"/api"`
	APIVersion   string   `env:"API_VERSION" envDefault:"1.0.0"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	SeedSource   string   `env:"SEED_SOURCE"`
	SeedOnStart  bool     `env:"SEED_ON_START" envDefault:"true"`
	HTTPAddr     string   `env:"HTTP_ADDR" envDefault:"localhost:8001"`
	OTelEndpoint string   `env:"OTEL_ENDPOINT"`
	ConfigPrefix string   `env:"CONFIG_PREFIX" envDefault:"config/"`
}

// Load reads the environment variables and returns a validated Env.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	e.APIRoot = normalizeRoot(e.APIRoot)
	e.CORSOrigins = trimAll(e.CORSOrigins)
	switch e.StoreBackend {
	case BackendDynamoDB, BackendMemory:
	default:
		return Env{}, fmt.Errorf("unknown STORE_BACKEND %q", e.StoreBackend)
	}
	if strings.TrimSpace(e.Table) == "" {
		return Env{}, fmt.Errorf("DDB_TABLE must not be empty")
	}
	return e, nil
}

// MustLoad is Load for entrypoints that cannot start without configuration.
func MustLoad() Env {
	e, err := Load()
	if err != nil {
		panic(err)
	}
	return e
}

// normalizeRoot yields "" or a path with a leading and no trailing slash.
func normalizeRoot(root string) string {
	root = strings.Trim(strings.TrimSpace(root), "/")
	if root == "" {
		return ""
	}
	return "/" + root
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
