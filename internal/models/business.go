package models

import (
	"fmt"
	"time"
)

// ConfigKey addresses a single business configuration document.
type ConfigKey string

// The fixed set of configuration categories.
const (
	KeyBusinessInfo  ConfigKey = "business_info"
	KeyBusinessHours ConfigKey = "business_hours"
	KeyCoverageAreas ConfigKey = "coverage_areas"
	KeyBusinessStats ConfigKey = "business_stats"
)

// ConfigKeys lists every known key in seed order.
var ConfigKeys = []ConfigKey{KeyBusinessInfo, KeyBusinessHours, KeyCoverageAreas, KeyBusinessStats}

// ParseConfigKey returns the ConfigKey named by s.
func ParseConfigKey(s string) (ConfigKey, error) {
	for _, k := range ConfigKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown config key %q", s)
}

// BusinessConfig is the stored envelope around a configuration payload.
type BusinessConfig struct {
	Key       ConfigKey      `json:"key"`
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BusinessInfo is the payload shape of the business_info document.
type BusinessInfo struct {
	BusinessName string `json:"business_name" validate:"required"`
	NotaryName   string `json:"notary_name" validate:"required"`
	License      string `json:"license" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	ServiceArea  string `json:"service_area" validate:"required"`
}

// BusinessHours is the payload shape of the business_hours document.
type BusinessHours struct {
	Remote       string `json:"remote" validate:"required"`
	Mobile       string `json:"mobile" validate:"required"`
	PhoneSupport string `json:"phone_support" validate:"required"`
	Weekend      string `json:"weekend" validate:"required"`
}

// TravelFee is one row of the coverage travel-fee table. Fee is free-form ("$25", "$1/mile").
type TravelFee struct {
	Area        string `json:"area" validate:"required"`
	Fee         string `json:"fee" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// CoverageArea is the payload shape of the coverage_areas document.
type CoverageArea struct {
	MobileAreas []string    `json:"mobile_areas" validate:"required,min=1"`
	RemoteAreas []string    `json:"remote_areas" validate:"required,min=1"`
	TravelFees  []TravelFee `json:"travel_fees" validate:"dive"`
}

// BusinessStats is the payload shape of the business_stats document.
type BusinessStats struct {
	DocumentsNotarized  string `json:"documents_notarized" validate:"required"`
	AverageRating       string `json:"average_rating" validate:"required"`
	AverageSessionTime  string `json:"average_session_time" validate:"required"`
	ServiceAvailability string `json:"service_availability" validate:"required"`
}

// PayloadFor returns a pointer to the typed payload for key, for decoding and validation.
func PayloadFor(key ConfigKey) any {
	switch key {
	case KeyBusinessInfo:
		return &BusinessInfo{}
	case KeyBusinessHours:
		return &BusinessHours{}
	case KeyCoverageAreas:
		return &CoverageArea{}
	case KeyBusinessStats:
		return &BusinessStats{}
	}
	return nil
}

// SeedConfig is one configuration document of the seed bundle.
type SeedConfig struct {
	Key       ConfigKey      `json:"key"`
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"-"`
}

// SeedBundle is the canonical reference data written to an empty store.
type SeedBundle struct {
	Version            string              `json:"version"`
	Services           []Service           `json:"services"`
	Configs            []SeedConfig        `json:"configs"`
	Testimonials       []Testimonial       `json:"testimonials"`
	AdditionalServices []AdditionalService `json:"additional_services"`
}
