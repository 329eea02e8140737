// Package seed loads the canonical reference data and writes it to an empty store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/s3io"
	"github.com/nursejordan/i-notarize-online.com/internal/validate"
)

// BundleVersion is the only seed format version understood by Load.
const BundleVersion = "1"

//go:embed data/seed.v1.json
var embedded []byte

// Source yields a raw seed bundle document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// Embedded is the bundle compiled into the binary.
type Embedded struct{}

// Fetch returns the compiled-in bundle.
func (Embedded) Fetch(context.Context) ([]byte, error) { return embedded, nil }

// String names the embedded file.
func (Embedded) String() string { return "embedded:seed.v1.json" }

// S3 reads the bundle from an s3://bucket/key URI.
type S3 struct {
	Client s3io.Getter
	URI    string
}

// Fetch reads the object at URI.
func (s S3) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := s3io.ReadURI(ctx, s.Client, s.URI)
	if err != nil {
		return nil, err
	}
	return obj.Body, nil
}

// String returns the URI.
func (s S3) String() string { return s.URI }

// SourceFor returns the S3 source for uri, or Embedded when uri is empty.
func SourceFor(uri string, client s3io.Getter) Source {
	if uri == "" {
		return Embedded{}
	}
	return S3{Client: client, URI: uri}
}

// Load fetches and decodes a bundle, then checks every record.
func Load(ctx context.Context, src Source) (models.SeedBundle, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return models.SeedBundle{}, fmt.Errorf("fetch seed %s: %w", src, err)
	}
	var b models.SeedBundle
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return models.SeedBundle{}, fmt.Errorf("decode seed %s: %w", src, err)
	}
	if err := Check(b); err != nil {
		return models.SeedBundle{}, fmt.Errorf("seed %s: %w", src, err)
	}
	return b, nil
}

// Check validates a decoded bundle.
func Check(b models.SeedBundle) error {
	if b.Version != BundleVersion {
		return fmt.Errorf("unsupported version %q", b.Version)
	}
	if len(b.Services) == 0 {
		return fmt.Errorf("bundle has no services")
	}
	ids := map[string]bool{}
	for i, s := range b.Services {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("services[%d]: id and name are required", i)
		}
		if ids[s.ID] {
			return fmt.Errorf("services[%d]: duplicate id %q", i, s.ID)
		}
		ids[s.ID] = true
	}
	keys := map[models.ConfigKey]bool{}
	for i, c := range b.Configs {
		if keys[c.Key] {
			return fmt.Errorf("configs[%d]: duplicate key %q", i, c.Key)
		}
		keys[c.Key] = true
		if err := validate.ConfigPayload(c.Key, c.Data); err != nil {
			return fmt.Errorf("configs[%d] %s: %w", i, c.Key, err)
		}
	}
	for i := range b.Testimonials {
		if err := validate.Struct(&b.Testimonials[i]); err != nil {
			return fmt.Errorf("testimonials[%d]: %w", i, err)
		}
	}
	for i := range b.AdditionalServices {
		if err := validate.Struct(&b.AdditionalServices[i]); err != nil {
			return fmt.Errorf("additional_services[%d]: %w", i, err)
		}
	}
	return nil
}
