package ddb

import (
	"fmt"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

// submissionItem is the DynamoDB shape of a contact submission.
type submissionItem struct {
	PK string `dynamodbav:"PK"` // SUBMISSION
	SK string `dynamodbav:"SK"` // <created_at>#<id>

	Type          string  `dynamodbav:"type"`
	ID            string  `dynamodbav:"id"`
	Name          string  `dynamodbav:"name"`
	Email         string  `dynamodbav:"email"`
	Phone         string  `dynamodbav:"phone"`
	ServiceType   string  `dynamodbav:"service_type"`
	DocumentType  *string `dynamodbav:"document_type,omitempty"`
	PreferredDate *string `dynamodbav:"preferred_date,omitempty"`
	Message       *string `dynamodbav:"message,omitempty"`
	Urgency       string  `dynamodbav:"urgency"`
	Status        string  `dynamodbav:"status"`
	Reference     string  `dynamodbav:"reference"`
	CreatedAt     string  `dynamodbav:"created_at"`
	UpdatedAt     string  `dynamodbav:"updated_at"`
}

// referenceItem claims a reference code for one submission.
type referenceItem struct {
	PK           string `dynamodbav:"PK"` // REFERENCE#<reference>
	SK           string `dynamodbav:"SK"` // REFERENCE
	Type         string `dynamodbav:"type"`
	SubmissionID string `dynamodbav:"submission_id"`
	CreatedAt    string `dynamodbav:"created_at"`
}

type configItem struct {
	PK        string         `dynamodbav:"PK"` // CONFIG
	SK        string         `dynamodbav:"SK"` // <key>
	Type      string         `dynamodbav:"type"`
	Key       string         `dynamodbav:"config_key"`
	Data      map[string]any `dynamodbav:"data"`
	UpdatedAt string         `dynamodbav:"updated_at"`
}

type serviceItem struct {
	PK           string   `dynamodbav:"PK"` // SERVICE
	SK           string   `dynamodbav:"SK"` // <position>#<id>
	Type         string   `dynamodbav:"type"`
	ID           string   `dynamodbav:"id"`
	Name         string   `dynamodbav:"name"`
	BasePrice    *float64 `dynamodbav:"base_price,omitempty"`
	Description  string   `dynamodbav:"description"`
	Features     []string `dynamodbav:"features"`
	Availability string   `dynamodbav:"availability"`
	Active       bool     `dynamodbav:"active"`
	CreatedAt    string   `dynamodbav:"created_at"`
}

type testimonialItem struct {
	PK        string `dynamodbav:"PK"` // TESTIMONIAL
	SK        string `dynamodbav:"SK"` // <created_at>#<id>
	Type      string `dynamodbav:"type"`
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Role      string `dynamodbav:"role"`
	Content   string `dynamodbav:"content"`
	Rating    int    `dynamodbav:"rating"`
	Date      string `dynamodbav:"date"`
	Verified  bool   `dynamodbav:"verified"`
	Active    bool   `dynamodbav:"active"`
	CreatedAt string `dynamodbav:"created_at"`
}

type addonItem struct {
	PK      string  `dynamodbav:"PK"` // ADDON
	SK      string  `dynamodbav:"SK"` // <position>#<id>
	Type    string  `dynamodbav:"type"`
	ID      string  `dynamodbav:"id"`
	Service string  `dynamodbav:"service"`
	Price   float64 `dynamodbav:"price"`
	Unit    *string `dynamodbav:"unit,omitempty"`
	Active  bool    `dynamodbav:"active"`
}

func toSubmissionItem(s models.ContactSubmission) submissionItem {
	pk, sk := SubmissionKeys(s.CreatedAt, s.ID)
	return submissionItem{
		PK: pk, SK: sk,
		Type:          typeSubmission,
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Phone:         s.Phone,
		ServiceType:   string(s.ServiceType),
		DocumentType:  s.DocumentType,
		PreferredDate: s.PreferredDate,
		Message:       s.Message,
		Urgency:       string(s.Urgency),
		Status:        string(s.Status),
		Reference:     s.Reference,
		CreatedAt:     FormatTime(s.CreatedAt),
		UpdatedAt:     FormatTime(s.UpdatedAt),
	}
}

func (it submissionItem) toModel() (models.ContactSubmission, error) {
	created, err := ParseTime(it.CreatedAt)
	if err != nil {
		return models.ContactSubmission{}, fmt.Errorf("submission %s: %w", it.ID, err)
	}
	updated, err := ParseTime(it.UpdatedAt)
	if err != nil {
		return models.ContactSubmission{}, fmt.Errorf("submission %s: %w", it.ID, err)
	}
	return models.ContactSubmission{
		ID:            it.ID,
		Name:          it.Name,
		Email:         it.Email,
		Phone:         it.Phone,
		ServiceType:   models.ServiceType(it.ServiceType),
		DocumentType:  it.DocumentType,
		PreferredDate: it.PreferredDate,
		Message:       it.Message,
		Urgency:       models.Urgency(it.Urgency),
		Status:        models.SubmissionStatus(it.Status),
		Reference:     it.Reference,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

func toServiceItem(position int, s models.Service) serviceItem {
	pk, sk := ServiceKeys(position, s.ID)
	return serviceItem{
		PK: pk, SK: sk,
		Type:         typeService,
		ID:           s.ID,
		Name:         s.Name,
		BasePrice:    s.BasePrice,
		Description:  s.Description,
		Features:     s.Features,
		Availability: s.Availability,
		Active:       s.Active,
		CreatedAt:    FormatTime(s.CreatedAt),
	}
}

func (it serviceItem) toModel() (models.Service, error) {
	created, err := ParseTime(it.CreatedAt)
	if err != nil {
		return models.Service{}, fmt.Errorf("service %s: %w", it.ID, err)
	}
	return models.Service{
		ID:           it.ID,
		Name:         it.Name,
		BasePrice:    it.BasePrice,
		Description:  it.Description,
		Features:     it.Features,
		Availability: it.Availability,
		Active:       it.Active,
		CreatedAt:    created,
	}, nil
}

func toTestimonialItem(t models.Testimonial) testimonialItem {
	pk, sk := TestimonialKeys(t.CreatedAt, t.ID)
	return testimonialItem{
		PK: pk, SK: sk,
		Type:      typeTestimonial,
		ID:        t.ID,
		Name:      t.Name,
		Role:      t.Role,
		Content:   t.Content,
		Rating:    t.Rating,
		Date:      t.Date,
		Verified:  t.Verified,
		Active:    t.Active,
		CreatedAt: FormatTime(t.CreatedAt),
	}
}

func (it testimonialItem) toModel() (models.Testimonial, error) {
	created, err := ParseTime(it.CreatedAt)
	if err != nil {
		return models.Testimonial{}, fmt.Errorf("testimonial %s: %w", it.ID, err)
	}
	return models.Testimonial{
		ID:        it.ID,
		Name:      it.Name,
		Role:      it.Role,
		Content:   it.Content,
		Rating:    it.Rating,
		Date:      it.Date,
		Verified:  it.Verified,
		Active:    it.Active,
		CreatedAt: created,
	}, nil
}

func toAddonItem(position int, a models.AdditionalService) addonItem {
	pk, sk := AddonKeys(position, a.ID)
	return addonItem{
		PK: pk, SK: sk,
		Type:    typeAddon,
		ID:      a.ID,
		Service: a.Service,
		Price:   a.Price,
		Unit:    a.Unit,
		Active:  a.Active,
	}
}

func (it addonItem) toModel() models.AdditionalService {
	return models.AdditionalService{
		ID:      it.ID,
		Service: it.Service,
		Price:   it.Price,
		Unit:    it.Unit,
		Active:  it.Active,
	}
}
