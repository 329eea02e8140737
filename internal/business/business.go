// Package business serves the business configuration documents and the catalog.
package business

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
	"github.com/nursejordan/i-notarize-online.com/internal/validate"
)

// Testimonial limits accepted by Testimonials.
const (
	DefaultTestimonials = 10
	MaxTestimonials     = 100
)

var tracer = otel.Tracer("github.com/nursejordan/i-notarize-online.com/internal/business")

// Store is what Service needs from persistence.
type Store interface {
	store.ConfigStore
	store.CatalogStore
}

// Service reads and writes configuration documents and reads the catalog.
type Service struct {
	store Store
	Now   func() time.Time
}

// New returns a Service over st.
func New(st Store) *Service {
	return &Service{store: st, Now: time.Now}
}

// Get returns the data payload stored under key.
func (s *Service) Get(ctx context.Context, key string) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "business.Get", trace.WithAttributes(attribute.String("config.key", key)))
	defer span.End()

	k, err := models.ParseConfigKey(key)
	if err != nil {
		return nil, apperrors.Invalid("key", "oneof", err.Error())
	}
	cfg, err := s.store.GetConfig(ctx, k)
	if err != nil {
		return nil, fail(span, apperrors.Persistence("get config "+key, err))
	}
	return cfg.Data, nil
}

// Put validates data against the shape of key and upserts it.
func (s *Service) Put(ctx context.Context, key string, data map[string]any) error {
	ctx, span := tracer.Start(ctx, "business.Put", trace.WithAttributes(attribute.String("config.key", key)))
	defer span.End()

	k, err := models.ParseConfigKey(key)
	if err != nil {
		return apperrors.Invalid("key", "oneof", err.Error())
	}
	if err := validate.ConfigPayload(k, data); err != nil {
		return err
	}
	if err := s.store.PutConfig(ctx, k, data, s.Now().UTC()); err != nil {
		return fail(span, apperrors.Persistence("put config "+key, err))
	}
	return nil
}

// Services lists the active services.
func (s *Service) Services(ctx context.Context) ([]models.Service, error) {
	out, err := s.store.ListActiveServices(ctx)
	if err != nil {
		return nil, apperrors.Persistence("list services", err)
	}
	return out, nil
}

// AdditionalPricing lists the active add-on price entries.
func (s *Service) AdditionalPricing(ctx context.Context) ([]models.AdditionalService, error) {
	out, err := s.store.ListActiveAdditionalServices(ctx)
	if err != nil {
		return nil, apperrors.Persistence("list additional services", err)
	}
	return out, nil
}

// Testimonials returns up to limit published testimonials, newest first.
// limit must be positive; larger values are capped at MaxTestimonials.
func (s *Service) Testimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	if limit < 1 {
		return nil, apperrors.Invalid("limit", "min", "must be at least 1")
	}
	limit = min(limit, MaxTestimonials)
	out, err := s.store.ListPublishedTestimonials(ctx, limit)
	if err != nil {
		return nil, apperrors.Persistence("list testimonials", err)
	}
	return out, nil
}

func fail(span trace.Span, err error) error {
	if !apperrors.IsClientError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
