package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
)

func TestCreateSubmissionRejectsTakenReference(t *testing.T) {
	ctx := context.Background()
	st := New()
	now := time.Now().UTC()

	if err := st.CreateSubmission(ctx, models.ContactSubmission{ID: "a", Reference: "REQ-1", CreatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := st.CreateSubmission(ctx, models.ContactSubmission{ID: "b", Reference: "REQ-1", CreatedAt: now})
	if !errors.Is(err, apperrors.ErrReferenceTaken) {
		t.Fatalf("expected ErrReferenceTaken, got %v", err)
	}
	if st.SubmissionCount() != 1 {
		t.Fatalf("count = %d, want 1", st.SubmissionCount())
	}
}

func TestConfigDataIsCopied(t *testing.T) {
	ctx := context.Background()
	st := New()
	data := map[string]any{"remote": "24/7"}
	if err := st.PutConfig(ctx, models.KeyBusinessHours, data, time.Now()); err != nil {
		t.Fatalf("put: %v", err)
	}
	data["remote"] = "changed"

	got, err := st.GetConfig(ctx, models.KeyBusinessHours)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data["remote"] != "24/7" {
		t.Fatalf("stored data aliased caller map: %v", got.Data)
	}
}

func TestApplySeedIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	st := New()
	if err := st.PutConfig(ctx, models.KeyBusinessHours, map[string]any{"remote": "x"}, time.Now()); err != nil {
		t.Fatalf("put: %v", err)
	}
	b := models.SeedBundle{
		Services: []models.Service{{ID: "remote", Active: true}},
		Configs: []models.SeedConfig{
			{Key: models.KeyBusinessInfo, Data: map[string]any{"a": "b"}},
			{Key: models.KeyBusinessHours, Data: map[string]any{"remote": "24/7"}},
		},
	}
	err := st.ApplySeed(ctx, b)
	if !errors.Is(err, store.ErrSeedConflict) {
		t.Fatalf("expected seed conflict, got %v", err)
	}
	if ok, _ := st.HasServices(ctx); ok {
		t.Fatal("services written despite conflict")
	}
	if st.ConfigCount() != 1 {
		t.Fatalf("config count = %d, want 1", st.ConfigCount())
	}
}

func TestFailOnInjectsErrors(t *testing.T) {
	st := New()
	boom := errors.New("boom")
	st.FailOn = func(op string) error {
		if op == "ListSubmissions" {
			return boom
		}
		return nil
	}
	if _, err := st.ListSubmissions(context.Background(), 10); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}
