// Package memstore is an in-memory implementation of store.Store.
//
// It backs the `--store memory` development mode and the service tests.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
)

// Store keeps every collection in maps guarded by one mutex.
type Store struct {
	// FailOn, when set, is consulted before every operation; a non-nil result is
	// returned as that operation's error.
	FailOn func(op string) error

	mu           sync.Mutex
	submissions  map[string]models.ContactSubmission
	references   map[string]string
	configs      map[models.ConfigKey]models.BusinessConfig
	services     map[string]models.Service
	testimonials map[string]models.Testimonial
	addons       map[string]models.AdditionalService

	// seed order of services and addons
	serviceOrder []string
	addonOrder   []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		submissions:  map[string]models.ContactSubmission{},
		references:   map[string]string{},
		configs:      map[models.ConfigKey]models.BusinessConfig{},
		services:     map[string]models.Service{},
		testimonials: map[string]models.Testimonial{},
		addons:       map[string]models.AdditionalService{},
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op)
}

// CreateSubmission implements store.SubmissionStore.
func (s *Store) CreateSubmission(ctx context.Context, sub models.ContactSubmission) error {
	if err := s.fail("CreateSubmission"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.references[sub.Reference]; ok {
		return apperrors.ErrReferenceTaken
	}
	s.references[sub.Reference] = sub.ID
	s.submissions[sub.ID] = sub
	return nil
}

// ListSubmissions implements store.SubmissionStore.
func (s *Store) ListSubmissions(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	if err := s.fail("ListSubmissions"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	out := make([]models.ContactSubmission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		out = append(out, sub)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return truncate(out, limit), nil
}

// SubmissionCount reports how many submissions are stored.
func (s *Store) SubmissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}

// GetConfig implements store.ConfigStore.
func (s *Store) GetConfig(ctx context.Context, key models.ConfigKey) (models.BusinessConfig, error) {
	if err := s.fail("GetConfig"); err != nil {
		return models.BusinessConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[key]
	if !ok {
		return models.BusinessConfig{}, apperrors.NotFound(string(key))
	}
	cfg.Data = cloneData(cfg.Data)
	return cfg, nil
}

// PutConfig implements store.ConfigStore.
func (s *Store) PutConfig(ctx context.Context, key models.ConfigKey, data map[string]any, updatedAt time.Time) error {
	if err := s.fail("PutConfig"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[key] = models.BusinessConfig{Key: key, Data: cloneData(data), UpdatedAt: updatedAt}
	return nil
}

// ConfigCount reports how many configuration documents are stored.
func (s *Store) ConfigCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.configs)
}

// ListActiveServices implements store.CatalogStore.
func (s *Store) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	if err := s.fail("ListActiveServices"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Service, 0, len(s.services))
	for _, id := range s.serviceOrder {
		if svc := s.services[id]; svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

// ListActiveAdditionalServices implements store.CatalogStore.
func (s *Store) ListActiveAdditionalServices(ctx context.Context) ([]models.AdditionalService, error) {
	if err := s.fail("ListActiveAdditionalServices"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AdditionalService, 0, len(s.addons))
	for _, id := range s.addonOrder {
		if a := s.addons[id]; a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListPublishedTestimonials implements store.CatalogStore.
func (s *Store) ListPublishedTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	if err := s.fail("ListPublishedTestimonials"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	out := make([]models.Testimonial, 0, len(s.testimonials))
	for _, tm := range s.testimonials {
		if tm.Active && tm.Verified {
			out = append(out, tm)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return truncate(out, limit), nil
}

// PutTestimonial stores tm as-is. The API has no write path for testimonials.
func (s *Store) PutTestimonial(tm models.Testimonial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testimonials[tm.ID] = tm
}

// HasServices implements store.SeedStore.
func (s *Store) HasServices(ctx context.Context) (bool, error) {
	if err := s.fail("HasServices"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.services) > 0, nil
}

// ApplySeed implements store.SeedStore.
func (s *Store) ApplySeed(ctx context.Context, b models.SeedBundle) error {
	if err := s.fail("ApplySeed"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var conflicts []string
	for _, svc := range b.Services {
		if _, ok := s.services[svc.ID]; ok {
			conflicts = append(conflicts, "service "+svc.ID)
		}
	}
	for _, c := range b.Configs {
		if _, ok := s.configs[c.Key]; ok {
			conflicts = append(conflicts, "config "+string(c.Key))
		}
	}
	for _, tm := range b.Testimonials {
		if _, ok := s.testimonials[tm.ID]; ok {
			conflicts = append(conflicts, "testimonial "+tm.ID)
		}
	}
	for _, a := range b.AdditionalServices {
		if _, ok := s.addons[a.ID]; ok {
			conflicts = append(conflicts, "additional service "+a.ID)
		}
	}
	if len(conflicts) > 0 {
		return &store.SeedConflictError{Items: conflicts}
	}

	for _, svc := range b.Services {
		s.services[svc.ID] = svc
		s.serviceOrder = append(s.serviceOrder, svc.ID)
	}
	for _, c := range b.Configs {
		s.configs[c.Key] = models.BusinessConfig{Key: c.Key, Data: cloneData(c.Data), UpdatedAt: c.UpdatedAt}
	}
	for _, tm := range b.Testimonials {
		s.testimonials[tm.ID] = tm
	}
	for _, a := range b.AdditionalServices {
		s.addons[a.ID] = a
		s.addonOrder = append(s.addonOrder, a.ID)
	}
	return nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// cloneData deep-copies a JSON-shaped payload so callers cannot alias stored state.
func cloneData(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return in
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return in
	}
	return out
}
