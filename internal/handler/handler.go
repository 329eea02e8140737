// Package handler routes API Gateway HTTP API requests to the services.
package handler

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/nursejordan/i-notarize-online.com/internal/api"
	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/business"
	"github.com/nursejordan/i-notarize-online.com/internal/httpx"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/validate"
)

// HealthMessage is reported by the API root.
const HealthMessage = "i-Notarize-Online API is running"

// Contact is the submission pipeline used by the contact routes.
type Contact interface {
	Submit(ctx context.Context, in models.ContactInput) (api.SubmissionReceipt, error)
	List(ctx context.Context) ([]models.ContactSubmission, error)
}

// Business serves configuration documents and the catalog.
type Business interface {
	Get(ctx context.Context, key string) (map[string]any, error)
	Services(ctx context.Context) ([]models.Service, error)
	AdditionalPricing(ctx context.Context) ([]models.AdditionalService, error)
	Testimonials(ctx context.Context, limit int) ([]models.Testimonial, error)
}

type handlerFunc func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type route struct {
	method string
	fn     handlerFunc
}

// Handler dispatches requests under Root.
type Handler struct {
	root    string
	version string
	cors    httpx.CORS

	contact  Contact
	business Business
	routes   map[string]route
}

// Options configures a Handler.
type Options struct {
	Root        string
	Version     string
	CORSOrigins []string
}

// New builds the router.
func New(opts Options, c Contact, b Business) *Handler {
	h := &Handler{
		root:     strings.TrimRight(opts.Root, "/"),
		version:  opts.Version,
		cors:     httpx.NewCORS(opts.CORSOrigins),
		contact:  c,
		business: b,
	}
	h.routes = map[string]route{
		"/":                    {http.MethodGet, h.health},
		"/contact/submit":      {http.MethodPost, h.submit},
		"/contact/submissions": {http.MethodGet, h.submissions},
		"/business/info":       {http.MethodGet, h.config(models.KeyBusinessInfo, "Business info")},
		"/business/hours":      {http.MethodGet, h.config(models.KeyBusinessHours, "Business hours")},
		"/business/stats":      {http.MethodGet, h.config(models.KeyBusinessStats, "Business stats")},
		"/coverage":            {http.MethodGet, h.config(models.KeyCoverageAreas, "Coverage areas")},
		"/services":            {http.MethodGet, h.services},
		"/pricing/additional":  {http.MethodGet, h.additionalPricing},
		"/testimonials":        {http.MethodGet, h.testimonials},
	}
	return h
}

// header retrieves a header value in a case-insensitive manner.
func header(h map[string]string, key string) string {
	lk := strings.ToLower(key)
	for k, v := range h {
		if strings.ToLower(k) == lk {
			return v
		}
	}
	return ""
}

// Handle is the Lambda entrypoint.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	origin := header(req.Headers, "Origin")
	method := req.RequestContext.HTTP.Method
	if method == http.MethodOptions {
		return h.cors.Preflight(origin, header(req.Headers, "Access-Control-Request-Headers")), nil
	}

	resp, err := h.dispatch(ctx, method, req)
	if err != nil {
		log.Printf("%s %s: %v", method, req.RawPath, err)
		resp, _ = httpx.Error(http.StatusInternalServerError, "Internal server error")
	}
	h.cors.Apply(&resp, origin)
	return resp, nil
}

func (h *Handler) dispatch(ctx context.Context, method string, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	p, ok := h.relative(req.RawPath)
	if !ok {
		return httpx.Error(http.StatusNotFound, "Not Found")
	}
	r, ok := h.routes[p]
	if !ok {
		return httpx.Error(http.StatusNotFound, "Not Found")
	}
	if r.method != method && !(r.method == http.MethodGet && method == http.MethodHead) {
		resp, err := httpx.Error(http.StatusMethodNotAllowed, "Method Not Allowed")
		resp.Headers["Allow"] = r.method + ", " + http.MethodOptions
		return resp, err
	}
	resp, err := r.fn(ctx, req)
	if method == http.MethodHead {
		resp.Body = ""
		resp.IsBase64Encoded = false
	}
	return resp, err
}

// relative strips the API root from p. "/api" and "/api/" both map to "/".
func (h *Handler) relative(p string) (string, bool) {
	if p == "" {
		p = "/"
	}
	if h.root != "" {
		rest, ok := strings.CutPrefix(p, h.root)
		if !ok || (rest != "" && rest[0] != '/') {
			return "", false
		}
		p = rest
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/", true
	}
	return p, true
}

// fail renders err, logging it when the service is at fault.
func fail(err error, detail string) (events.APIGatewayV2HTTPResponse, error) {
	if !apperrors.IsClientError(err) {
		log.Printf("%s: %v", detail, err)
	}
	return httpx.Fail(err, detail)
}

func (h *Handler) health(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return httpx.JSON(http.StatusOK, api.Health{Message: HealthMessage, Version: h.version})
}

func (h *Handler) submit(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return httpx.Fail(apperrors.Invalid("body", "base64", "request body is not valid base64"), "")
		}
		body = b
	}
	var in models.ContactInput
	if err := validate.DecodeJSON(body, &in); err != nil {
		return httpx.Fail(err, "")
	}
	receipt, err := h.contact.Submit(ctx, in)
	if err != nil {
		return fail(err, "Failed to submit contact form")
	}
	return httpx.JSON(http.StatusOK, receipt)
}

func (h *Handler) submissions(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	subs, err := h.contact.List(ctx)
	if err != nil {
		return fail(err, "Failed to retrieve submissions")
	}
	return httpx.JSON(http.StatusOK, subs)
}

// config serves the data of one configuration document. label names it in
// error details.
func (h *Handler) config(key models.ConfigKey, label string) handlerFunc {
	return func(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		data, err := h.business.Get(ctx, string(key))
		switch {
		case err == nil:
			return httpx.JSON(http.StatusOK, data)
		case apperrors.HTTPStatus(err) == http.StatusNotFound:
			return httpx.Fail(err, label+" not found")
		default:
			return fail(err, "Failed to get "+strings.ToLower(label))
		}
	}
}

func (h *Handler) services(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	out, err := h.business.Services(ctx)
	if err != nil {
		return fail(err, "Failed to get services")
	}
	return httpx.JSON(http.StatusOK, out)
}

func (h *Handler) additionalPricing(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	out, err := h.business.AdditionalPricing(ctx)
	if err != nil {
		return fail(err, "Failed to get additional services")
	}
	return httpx.JSON(http.StatusOK, out)
}

func (h *Handler) testimonials(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	limit, err := validate.Limit(req.QueryStringParameters["limit"], business.DefaultTestimonials, business.MaxTestimonials)
	if err != nil {
		return httpx.Fail(err, "")
	}
	out, err := h.business.Testimonials(ctx, limit)
	if err != nil {
		return fail(err, "Failed to get testimonials")
	}
	return httpx.JSON(http.StatusOK, out)
}
