// Package models defines the data models used in the application.
package models

import (
	"encoding/json"
	"time"
)

// SubmissionStatus represents the processing status of a contact submission.
type SubmissionStatus string

// Possible values for SubmissionStatus. Only StatusNew is written by the API.
const (
	StatusNew       SubmissionStatus = "new"
	StatusContacted SubmissionStatus = "contacted"
	StatusCompleted SubmissionStatus = "completed"
)

// ServiceType names the notarization offering a request is for.
type ServiceType string

// Possible values for ServiceType.
const (
	ServiceRemote ServiceType = "remote"
	ServiceMobile ServiceType = "mobile"
	ServiceBulk   ServiceType = "bulk"
)

// Urgency is the turnaround requested by the submitter.
type Urgency string

// Possible values for Urgency.
const (
	UrgencyNormal Urgency = "normal"
	UrgencyRush   Urgency = "rush"
)

// ContactInput is the caller-supplied part of a contact submission.
// Optional fields are pointers so "absent" and "empty" stay distinct.
// Urgency is nil only when the member was absent from the request.
type ContactInput struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required,min=10,max=20"`
	ServiceType   string  `json:"service_type" validate:"required,oneof=remote mobile bulk"`
	DocumentType  *string `json:"document_type" validate:"omitempty,max=100"`
	PreferredDate *string `json:"preferred_date"`
	Message       *string `json:"message" validate:"omitempty,max=1000"`
	Urgency       *string `json:"urgency" validate:"required,oneof=normal rush"`
}

// UnmarshalJSON decodes a request body, turning an explicit "urgency": null
// into an empty value so it is rejected instead of defaulted.
func (in *ContactInput) UnmarshalJSON(b []byte) error {
	type plain ContactInput
	if err := json.Unmarshal(b, (*plain)(in)); err != nil {
		return err
	}
	var sent struct {
		Urgency json.RawMessage `json:"urgency"`
	}
	if err := json.Unmarshal(b, &sent); err != nil {
		return err
	}
	if sent.Urgency != nil && in.Urgency == nil {
		in.Urgency = new(string)
	}
	return nil
}

// ContactSubmission represents one stored contact request.
type ContactSubmission struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	ServiceType   ServiceType      `json:"service_type"`
	DocumentType  *string          `json:"document_type"`
	PreferredDate *string          `json:"preferred_date"`
	Message       *string          `json:"message"`
	Urgency       Urgency          `json:"urgency"`
	Status        SubmissionStatus `json:"status"`
	Reference     string           `json:"reference"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
