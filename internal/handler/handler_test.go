package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/nursejordan/i-notarize-online.com/internal/api"
	"github.com/nursejordan/i-notarize-online.com/internal/business"
	"github.com/nursejordan/i-notarize-online.com/internal/contact"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/seed"
	"github.com/nursejordan/i-notarize-online.com/internal/store/memstore"
)

func newTestHandler(t *testing.T) (*Handler, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	h := New(Options{Root: "/api", Version: "1.0.0", CORSOrigins: []string{"https://i-notarize-online.com"}},
		contact.New(st), business.New(st))
	return h, st
}

func request(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
		Headers: map[string]string{"content-type": "application/json"},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: method, Path: path},
		},
	}
}

func do(t *testing.T, h *Handler, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	t.Helper()
	resp, err := h.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	return resp
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, p := range []string{"/api", "/api/"} {
		resp := do(t, h, request(http.MethodGet, p, ""))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status = %d", p, resp.StatusCode)
		}
		got := decode[api.Health](t, resp.Body)
		if got.Message != HealthMessage || got.Version != "1.0.0" {
			t.Fatalf("unexpected health %+v", got)
		}
	}
}

func TestSubmitValidForm(t *testing.T) {
	h, st := newTestHandler(t)
	body := `{"name":"John Smith","email":"john.smith@example.com","phone":"5551234567","service_type":"remote","urgency":"normal"}`

	resp := do(t, h, request(http.MethodPost, "/api/contact/submit", body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, resp.Body)
	}
	got := decode[api.SubmissionReceipt](t, resp.Body)
	if !got.Success || got.EstimatedResponse != "within 2 hours" || got.Reference == "" {
		t.Fatalf("unexpected receipt %+v", got)
	}
	if st.SubmissionCount() != 1 {
		t.Fatalf("count = %d", st.SubmissionCount())
	}
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name, body, field string
	}{
		{"invalid email", `{"name":"John Smith","email":"invalid-email","phone":"5551234567","service_type":"remote"}`, "email"},
		{"invalid service", `{"name":"John Smith","email":"john@example.com","phone":"5551234567","service_type":"invalid_service"}`, "service_type"},
		{"empty body", ``, "body"},
		{"wrong type", `{"name":42}`, "name"},
		{"malformed", `{"name":`, "body"},
		{"empty urgency", `{"name":"John Smith","email":"john@example.com","phone":"5551234567","service_type":"remote","urgency":""}`, "urgency"},
		{"null urgency", `{"name":"John Smith","email":"john@example.com","phone":"5551234567","service_type":"remote","urgency":null}`, "urgency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, st := newTestHandler(t)
			resp := do(t, h, request(http.MethodPost, "/api/contact/submit", tt.body))
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d body=%s", resp.StatusCode, resp.Body)
			}
			got := decode[api.ErrorResponse](t, resp.Body)
			if got.Success || got.ErrorCode != "VALIDATION_ERROR" || len(got.Errors) == 0 || got.Errors[0].Field != tt.field {
				t.Fatalf("unexpected error body %+v", got)
			}
			if st.SubmissionCount() != 0 {
				t.Fatal("record created for invalid input")
			}
		})
	}
}

func TestSubmitBase64Body(t *testing.T) {
	h, _ := newTestHandler(t)
	raw := `{"name":"Jane Doe","email":"jane@example.com","phone":"5551234567","service_type":"mobile","urgency":"rush"}`
	req := request(http.MethodPost, "/api/contact/submit", base64.StdEncoding.EncodeToString([]byte(raw)))
	req.IsBase64Encoded = true

	resp := do(t, h, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.StatusCode, resp.Body)
	}
	if got := decode[api.SubmissionReceipt](t, resp.Body); got.EstimatedResponse != "within 1 hour" {
		t.Fatalf("unexpected receipt %+v", got)
	}
}

func TestSubmitStoreFailureIsOpaque(t *testing.T) {
	h, st := newTestHandler(t)
	st.FailOn = func(string) error { return errors.New("dial tcp 10.0.0.1:8000: connection refused") }
	body := `{"name":"John Smith","email":"john@example.com","phone":"5551234567","service_type":"remote"}`

	resp := do(t, h, request(http.MethodPost, "/api/contact/submit", body))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[api.ErrorResponse](t, resp.Body)
	if got.Detail != "Failed to submit contact form" || got.ErrorCode != "INTERNAL_ERROR" {
		t.Fatalf("unexpected error body %+v", got)
	}
}

func TestTestimonialsLimit(t *testing.T) {
	h, st := newTestHandler(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"t1", "t2", "t3"} {
		st.PutTestimonial(models.Testimonial{ID: id, Active: true, Verified: true, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	req := request(http.MethodGet, "/api/testimonials", "")
	req.QueryStringParameters = map[string]string{"limit": "2"}
	resp := do(t, h, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[[]models.Testimonial](t, resp.Body)
	if len(got) != 2 || got[0].ID != "t3" || got[1].ID != "t2" {
		t.Fatalf("unexpected testimonials %+v", got)
	}

	req.QueryStringParameters = map[string]string{"limit": "500"}
	resp = do(t, h, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("large limit status = %d", resp.StatusCode)
	}
	if got := decode[[]models.Testimonial](t, resp.Body); len(got) != 3 {
		t.Fatalf("large limit returned %d testimonials", len(got))
	}

	req.QueryStringParameters = map[string]string{"limit": "abc"}
	if resp := do(t, h, req); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad limit status = %d", resp.StatusCode)
	}
}

func TestBusinessHoursBeforeAndAfterSeed(t *testing.T) {
	h, st := newTestHandler(t)
	req := request(http.MethodGet, "/api/business/hours", "")

	resp := do(t, h, req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("before seed status = %d", resp.StatusCode)
	}
	if got := decode[api.ErrorResponse](t, resp.Body); got.Detail != "Business hours not found" {
		t.Fatalf("unexpected detail %q", got.Detail)
	}

	if _, err := seed.NewSeeder(st, seed.Embedded{}).IfEmpty(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	resp = do(t, h, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("after seed status = %d", resp.StatusCode)
	}
	got := decode[map[string]any](t, resp.Body)
	if got["remote"] != "24/7" || got["weekend"] != "Available" {
		t.Fatalf("unexpected hours %v", got)
	}
	if _, wrapped := got["data"]; wrapped {
		t.Fatal("document returned with its envelope")
	}
}

func TestCatalogRoutes(t *testing.T) {
	h, st := newTestHandler(t)
	if _, err := seed.NewSeeder(st, seed.Embedded{}).IfEmpty(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := do(t, h, request(http.MethodGet, "/api/services", ""))
	services := decode[[]models.Service](t, resp.Body)
	if len(services) != 3 || services[0].ID != "remote" {
		t.Fatalf("unexpected services %+v", services)
	}
	resp = do(t, h, request(http.MethodGet, "/api/pricing/additional", ""))
	if addons := decode[[]models.AdditionalService](t, resp.Body); len(addons) != 4 {
		t.Fatalf("unexpected additional services %+v", addons)
	}
	resp = do(t, h, request(http.MethodGet, "/api/coverage", ""))
	if cov := decode[map[string]any](t, resp.Body); cov["mobile_areas"] == nil {
		t.Fatalf("unexpected coverage %v", cov)
	}
}

func TestRoutingErrors(t *testing.T) {
	h, _ := newTestHandler(t)
	if resp := do(t, h, request(http.MethodGet, "/api/nope", "")); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route status = %d", resp.StatusCode)
	}
	if resp := do(t, h, request(http.MethodGet, "/apiary", "")); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("outside root status = %d", resp.StatusCode)
	}
	resp := do(t, h, request(http.MethodGet, "/api/contact/submit", ""))
	if resp.StatusCode != http.StatusMethodNotAllowed || resp.Headers["Allow"] != "POST, OPTIONS" {
		t.Fatalf("wrong method: %d %v", resp.StatusCode, resp.Headers)
	}
}

func TestCORS(t *testing.T) {
	h, _ := newTestHandler(t)
	req := request(http.MethodOptions, "/api/contact/submit", "")
	req.Headers["Origin"] = "https://i-notarize-online.com"
	resp := do(t, h, req)
	if resp.StatusCode != http.StatusNoContent || resp.Headers["Access-Control-Allow-Origin"] != "https://i-notarize-online.com" {
		t.Fatalf("preflight: %d %v", resp.StatusCode, resp.Headers)
	}

	req = request(http.MethodGet, "/api", "")
	req.Headers["Origin"] = "https://evil.example"
	resp = do(t, h, req)
	if _, ok := resp.Headers["Access-Control-Allow-Origin"]; ok {
		t.Fatalf("disallowed origin echoed: %v", resp.Headers)
	}
}

func TestHeadOmitsBody(t *testing.T) {
	h, _ := newTestHandler(t)
	resp := do(t, h, request(http.MethodHead, "/api/services", ""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Body != "" {
		t.Fatalf("HEAD body = %q, want empty", resp.Body)
	}
	if resp.Headers["Content-Type"] == "" {
		t.Fatalf("HEAD lost headers: %v", resp.Headers)
	}
}
