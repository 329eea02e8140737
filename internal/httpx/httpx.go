// Package httpx provides helper functions for creating HTTP responses.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/nursejordan/i-notarize-online.com/internal/api"
	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
)

// JSON creates a JSON HTTP response with the given status code and value.
func JSON(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Error(http.StatusInternalServerError, "encode error")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(b),
	}, nil
}

// Error creates a JSON HTTP error response with the given status code and message.
func Error(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	return JSON(status, api.ErrorResponse{
		Detail:    msg,
		ErrorCode: codeFor(status),
	})
}

// Fail renders err using its kind. detail is the public message for not-found and
// internal failures; validation failures carry their own field report.
func Fail(err error, detail string) (events.APIGatewayV2HTTPResponse, error) {
	status := apperrors.HTTPStatus(err)
	body := api.ErrorResponse{ErrorCode: apperrors.CodeOf(err), Detail: detail}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		body.Detail = "Validation failed"
		body.Errors = ve.Fields
	}
	return JSON(status, body)
}

// NoContent creates an empty 204 response.
func NoContent() events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNoContent, Headers: map[string]string{}}
}

func codeFor(status int) apperrors.Code {
	switch {
	case status == http.StatusNotFound:
		return apperrors.CodeNotFound
	case status >= 400 && status < 500:
		return apperrors.CodeValidation
	}
	return apperrors.CodeInternal
}
