package models

import "time"

// Service is a notarization offering. BasePrice is nil for custom-quote offerings.
type Service struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BasePrice    *float64  `json:"base_price"`
	Description  string    `json:"description"`
	Features     []string  `json:"features"`
	Availability string    `json:"availability"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Testimonial is a client review shown on the site.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Role      string    `json:"role" validate:"required,max=100"`
	Content   string    `json:"content" validate:"required,max=500"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Date      string    `json:"date" validate:"required"`
	Verified  bool      `json:"verified"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AdditionalService is an add-on price entry (e.g. certified copies).
type AdditionalService struct {
	ID      string  `json:"id"`
	Service string  `json:"service" validate:"required"`
	Price   float64 `json:"price" validate:"gte=0"`
	Unit    *string `json:"unit"`
	Active  bool    `json:"active"`
}
