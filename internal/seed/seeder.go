package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
)

// Seeder writes the seed bundle when the catalog is empty.
type Seeder struct {
	store  store.SeedStore
	source Source
	Now    func() time.Time
}

// NewSeeder returns a Seeder writing the bundle of src into st.
func NewSeeder(st store.SeedStore, src Source) *Seeder {
	return &Seeder{store: st, source: src, Now: time.Now}
}

// IfEmpty seeds the store unless the service catalog already has items.
// Only the catalog is checked; a store with services but missing configuration
// documents is left alone. The write itself is all or nothing.
func (s *Seeder) IfEmpty(ctx context.Context) (bool, error) {
	has, err := s.store.HasServices(ctx)
	if err != nil {
		return false, fmt.Errorf("check seed state: %w", err)
	}
	if has {
		log.Printf("seed: already initialized")
		return false, nil
	}

	b, err := Load(ctx, s.source)
	if err != nil {
		return false, err
	}
	stamp(&b, s.Now().UTC())

	log.Printf("seed: writing %s (%d services, %d configs, %d testimonials, %d additional services)",
		s.source, len(b.Services), len(b.Configs), len(b.Testimonials), len(b.AdditionalServices))
	if err := s.store.ApplySeed(ctx, b); err != nil {
		if !errors.Is(err, store.ErrSeedConflict) {
			return false, fmt.Errorf("apply seed: %w", err)
		}
		// Another instance may have seeded between the check and the write.
		has, herr := s.store.HasServices(ctx)
		if herr == nil && has {
			log.Printf("seed: initialized concurrently")
			return false, nil
		}
		return false, fmt.Errorf("apply seed over partial data: %w", err)
	}
	log.Printf("seed: initialized")
	return true, nil
}

// stamp fills generated ids and timestamps. Creation times advance by one
// millisecond per record so seed order is also creation order.
func stamp(b *models.SeedBundle, now time.Time) {
	at := func(i int) time.Time { return now.Add(time.Duration(i) * time.Millisecond) }
	for i := range b.Services {
		b.Services[i].CreatedAt = at(i)
	}
	for i := range b.Configs {
		b.Configs[i].UpdatedAt = now
	}
	for i := range b.Testimonials {
		if b.Testimonials[i].ID == "" {
			b.Testimonials[i].ID = uuid.NewString()
		}
		b.Testimonials[i].CreatedAt = at(i)
	}
	for i := range b.AdditionalServices {
		if b.AdditionalServices[i].ID == "" {
			b.AdditionalServices[i].ID = uuid.NewString()
		}
	}
}
