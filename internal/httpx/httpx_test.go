package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/nursejordan/i-notarize-online.com/internal/api"
	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
)

func decodeError(t *testing.T, body string) api.ErrorResponse {
	t.Helper()
	var out api.ErrorResponse
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	return out
}

func TestJSONSetsContentType(t *testing.T) {
	t.Parallel()

	resp, err := JSON(http.StatusOK, map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Body != `{"k":"v"}` {
		t.Fatalf("body = %s", resp.Body)
	}
}

func TestFailValidationIncludesFields(t *testing.T) {
	t.Parallel()

	resp, _ := Fail(apperrors.Invalid("email", "email", "must be a valid email address"), "ignored")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeError(t, resp.Body)
	if body.Success || body.ErrorCode != apperrors.CodeValidation || len(body.Errors) != 1 || body.Errors[0].Field != "email" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestFailInternalHidesCause(t *testing.T) {
	t.Parallel()

	resp, _ := Fail(apperrors.Persistence("put", errors.New("dynamodb: connection refused")), "Failed to submit contact form")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeError(t, resp.Body)
	if body.Detail != "Failed to submit contact form" || body.ErrorCode != apperrors.CodeInternal {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestFailNotFound(t *testing.T) {
	t.Parallel()

	resp, _ := Fail(apperrors.NotFound("business_hours"), "Business hours not found")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := decodeError(t, resp.Body); body.Detail != "Business hours not found" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestCORSAllowlist(t *testing.T) {
	t.Parallel()

	c := NewCORS([]string{"https://i-notarize-online.com/"})
	resp, _ := JSON(http.StatusOK, nil)
	c.Apply(&resp, "https://i-notarize-online.com")
	if got := resp.Headers["Access-Control-Allow-Origin"]; got != "https://i-notarize-online.com" {
		t.Fatalf("allow origin = %q", got)
	}

	resp, _ = JSON(http.StatusOK, nil)
	c.Apply(&resp, "https://evil.example")
	if _, ok := resp.Headers["Access-Control-Allow-Origin"]; ok {
		t.Fatal("unexpected allow origin for unlisted origin")
	}
}

func TestCORSWildcardPreflight(t *testing.T) {
	t.Parallel()

	c := NewCORS([]string{"*"})
	resp := c.Preflight("http://localhost:3000", "content-type, x-request-id")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "http://localhost:3000" {
		t.Fatalf("headers = %v", resp.Headers)
	}
	if resp.Headers["Access-Control-Allow-Headers"] != "content-type, x-request-id" {
		t.Fatalf("headers = %v", resp.Headers)
	}
	if resp.Headers["Access-Control-Allow-Methods"] != allowedMethods {
		t.Fatalf("headers = %v", resp.Headers)
	}
}
