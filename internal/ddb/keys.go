package ddb

import (
	"fmt"
	"time"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

// Partition keys of the single-table layout.
const (
	pkSubmission  = "SUBMISSION"
	pkService     = "SERVICE"
	pkConfig      = "CONFIG"
	pkTestimonial = "TESTIMONIAL"
	pkAddon       = "ADDON"

	referencePrefix = "REFERENCE#"
	skReference     = "REFERENCE"
)

// Item type discriminators stored in the "type" attribute.
const (
	typeSubmission  = "submission"
	typeReference   = "reference"
	typeService     = "service"
	typeConfig      = "config"
	typeTestimonial = "testimonial"
	typeAddon       = "additional_service"
)

// SubmissionKeys sorts submissions by creation time, then id.
func SubmissionKeys(createdAt time.Time, id string) (pk, sk string) {
	return pkSubmission, FormatTime(createdAt) + "#" + id
}

// ReferenceKeys address the uniqueness marker of a reference code.
func ReferenceKeys(reference string) (pk, sk string) {
	return referencePrefix + reference, skReference
}

// ConfigKeys address the single document of a configuration key.
func ConfigKeys(key models.ConfigKey) (pk, sk string) {
	return pkConfig, string(key)
}

// ServiceKeys keep services in seed order.
func ServiceKeys(position int, id string) (pk, sk string) {
	return pkService, fmt.Sprintf("%04d#%s", position, id)
}

// TestimonialKeys sort testimonials by creation time.
func TestimonialKeys(createdAt time.Time, id string) (pk, sk string) {
	return pkTestimonial, FormatTime(createdAt) + "#" + id
}

// AddonKeys keep additional services in seed order.
func AddonKeys(position int, id string) (pk, sk string) {
	return pkAddon, fmt.Sprintf("%04d#%s", position, id)
}
