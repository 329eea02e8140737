// Package store declares the persistence ports used by the services.
//
// Implementations must provide atomic single-item inserts and atomic upserts;
// the services hold no state of their own and rely on those primitives.
package store

import (
	"context"
	"time"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

// MaxSubmissions caps ListSubmissions.
const MaxSubmissions = 100

// SubmissionStore persists contact submissions.
type SubmissionStore interface {
	// CreateSubmission inserts s and claims s.Reference in one atomic write.
	// It returns apperrors.ErrReferenceTaken when the reference is already used.
	CreateSubmission(ctx context.Context, s models.ContactSubmission) error
	// ListSubmissions returns up to limit submissions, newest first.
	ListSubmissions(ctx context.Context, limit int) ([]models.ContactSubmission, error)
}

// ConfigStore holds one document per configuration key.
type ConfigStore interface {
	// GetConfig returns apperrors.ErrNotFound when key was never written.
	GetConfig(ctx context.Context, key models.ConfigKey) (models.BusinessConfig, error)
	// PutConfig replaces or inserts the document for key in a single atomic write.
	PutConfig(ctx context.Context, key models.ConfigKey, data map[string]any, updatedAt time.Time) error
}

// CatalogStore serves the read-only catalog.
type CatalogStore interface {
	ListActiveServices(ctx context.Context) ([]models.Service, error)
	ListActiveAdditionalServices(ctx context.Context) ([]models.AdditionalService, error)
	// ListPublishedTestimonials returns active, verified testimonials, newest first.
	ListPublishedTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error)
}

// SeedStore writes the reference data set.
type SeedStore interface {
	// HasServices reports whether the service catalog holds at least one item.
	HasServices(ctx context.Context) (bool, error)
	// ApplySeed writes every item of b atomically; nothing is written on failure.
	// Items that already exist cause ErrSeedConflict.
	ApplySeed(ctx context.Context, b models.SeedBundle) error
}

// Store is the full persistence surface.
type Store interface {
	SubmissionStore
	ConfigStore
	CatalogStore
	SeedStore
}
