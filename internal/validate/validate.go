// Package validate provides functions to validate request payloads and seed content.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so field errors match what the caller sent.
	vd.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return vd
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperrors.ValidationError{Fields: make([]apperrors.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperrors.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// ContactInput applies defaults to in and validates it. Urgency defaults to
// normal only when it was not sent at all.
func ContactInput(in *models.ContactInput) error {
	if in.Urgency == nil {
		u := string(models.UrgencyNormal)
		in.Urgency = &u
	}
	return Struct(in)
}

// DecodeJSON unmarshals body into dst, reporting malformed input as a ValidationError.
func DecodeJSON(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return apperrors.Invalid("body", "required", "request body is required")
	}
	err := json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperrors.Invalid(field, "type", fmt.Sprintf("must be of type %s", typeErr.Type))
	}
	return apperrors.Invalid("body", "json", "request body must be valid JSON")
}

// Limit parses an optional positive integer query parameter. Values above max
// are clamped to max.
func Limit(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Invalid("limit", "type", "must be an integer")
	}
	if n < 1 {
		return 0, apperrors.Invalid("limit", "min", "must be at least 1")
	}
	return min(n, max), nil
}

// ConfigPayload checks that data has the shape expected for key.
func ConfigPayload(key models.ConfigKey, data map[string]any) error {
	target := models.PayloadFor(key)
	if target == nil {
		return apperrors.Invalid("key", "oneof", fmt.Sprintf("unknown config key %q", key))
	}
	if data == nil {
		return apperrors.Invalid("data", "required", "configuration data is required")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return apperrors.Invalid("data", "json", "configuration data must be JSON encodable")
	}
	if err := DecodeJSON(raw, target); err != nil {
		return err
	}
	return Struct(target)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return "failed " + fe.Tag() + " validation"
}
