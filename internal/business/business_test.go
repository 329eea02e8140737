package business

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store/memstore"
)

func hours(remote string) map[string]any {
	return map[string]any{
		"remote":        remote,
		"mobile":        "8 AM - 8 PM",
		"phone_support": "7 AM - 10 PM",
		"weekend":       "Available",
	}
}

func TestGetUnwrittenKeyIsNotFound(t *testing.T) {
	svc := New(memstore.New())
	for _, k := range models.ConfigKeys {
		_, err := svc.Get(context.Background(), string(k))
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Fatalf("%s: expected not found, got %v", k, err)
		}
	}
}

func TestGetUnknownKeyIsValidationError(t *testing.T) {
	st := memstore.New()
	called := false
	st.FailOn = func(string) error { called = true; return nil }

	_, err := New(st).Get(context.Background(), "pricing")
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatal("store consulted for unknown key")
	}
}

func TestPutThenGetReturnsLatest(t *testing.T) {
	st := memstore.New()
	svc := New(st)
	ctx := context.Background()

	for _, remote := range []string{"24/7", "6 AM - midnight", "24/7 except holidays"} {
		if err := svc.Put(ctx, "business_hours", hours(remote)); err != nil {
			t.Fatalf("put %q: %v", remote, err)
		}
	}
	got, err := svc.Get(ctx, "business_hours")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["remote"] != "24/7 except holidays" {
		t.Fatalf("got %v", got)
	}
	if st.ConfigCount() != 1 {
		t.Fatalf("config count = %d, want 1", st.ConfigCount())
	}
}

func TestPutRejectsMalformedPayload(t *testing.T) {
	st := memstore.New()
	data := hours("24/7")
	delete(data, "weekend")

	err := New(st).Put(context.Background(), "business_hours", data)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if st.ConfigCount() != 0 {
		t.Fatal("invalid payload was stored")
	}
}

func TestPutStampsUpdatedAt(t *testing.T) {
	st := memstore.New()
	svc := New(st)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return at }

	if err := svc.Put(context.Background(), "business_hours", hours("24/7")); err != nil {
		t.Fatalf("put: %v", err)
	}
	cfg, err := st.GetConfig(context.Background(), models.KeyBusinessHours)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !cfg.UpdatedAt.Equal(at) {
		t.Fatalf("updated_at = %v, want %v", cfg.UpdatedAt, at)
	}
}

func TestTestimonialsNewestFirstWithLimit(t *testing.T) {
	st := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		st.PutTestimonial(models.Testimonial{ID: name, Name: name, Active: true, Verified: true, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	st.PutTestimonial(models.Testimonial{ID: "hidden", Active: true, Verified: false, CreatedAt: base.Add(time.Hour * 10)})

	got, err := New(st).Testimonials(context.Background(), 2)
	if err != nil {
		t.Fatalf("testimonials: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "mid" {
		t.Fatalf("unexpected testimonials: %+v", got)
	}
}

func TestTestimonialsLimitBounds(t *testing.T) {
	svc := New(memstore.New())
	for _, limit := range []int{0, -1} {
		_, err := svc.Testimonials(context.Background(), limit)
		if !apperrors.IsClientError(err) {
			t.Fatalf("limit %d: expected client error, got %v", limit, err)
		}
	}
}

func TestTestimonialsLimitIsCapped(t *testing.T) {
	st := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxTestimonials+5; i++ {
		st.PutTestimonial(models.Testimonial{
			ID: fmt.Sprintf("t%03d", i), Active: true, Verified: true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	got, err := New(st).Testimonials(context.Background(), MaxTestimonials+1)
	if err != nil {
		t.Fatalf("testimonials: %v", err)
	}
	if len(got) != MaxTestimonials {
		t.Fatalf("got %d testimonials, want %d", len(got), MaxTestimonials)
	}
}

func TestCatalogReadsWrapStoreFailures(t *testing.T) {
	st := memstore.New()
	st.FailOn = func(string) error { return errors.New("timeout") }
	svc := New(st)

	if _, err := svc.Services(context.Background()); apperrors.HTTPStatus(err) != 500 {
		t.Fatalf("services: %v", err)
	}
	if _, err := svc.AdditionalPricing(context.Background()); apperrors.HTTPStatus(err) != 500 {
		t.Fatalf("pricing: %v", err)
	}
	if _, err := svc.Testimonials(context.Background(), DefaultTestimonials); apperrors.HTTPStatus(err) != 500 {
		t.Fatalf("testimonials: %v", err)
	}
}
