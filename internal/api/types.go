// Package api contains types for the API requests and responses.
package api

import "github.com/nursejordan/i-notarize-online.com/internal/apperrors"

// Health is the payload of the API root.
type Health struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// SubmissionReceipt is returned after a contact submission is stored.
type SubmissionReceipt struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Reference         string `json:"reference"`
	EstimatedResponse string `json:"estimated_response"`
}

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Success   bool                   `json:"success"`
	Detail    string                 `json:"detail"`
	ErrorCode apperrors.Code         `json:"error_code"`
	Errors    []apperrors.FieldError `json:"errors,omitempty"`
}
