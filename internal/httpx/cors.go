package httpx

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const allowedMethods = "GET, POST, OPTIONS"

// CORS applies an origin allowlist to responses. A "*" entry allows any origin;
// the request origin is echoed so credentials stay usable.
type CORS struct {
	origins  map[string]struct{}
	allowAll bool
}

// NewCORS builds a policy from the configured origin list.
func NewCORS(origins []string) CORS {
	c := CORS{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			c.allowAll = true
			continue
		}
		if o != "" {
			c.origins[o] = struct{}{}
		}
	}
	return c
}

// Allowed reports whether origin may read responses.
func (c CORS) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if c.allowAll {
		return true
	}
	_, ok := c.origins[strings.TrimRight(origin, "/")]
	return ok
}

// Apply adds CORS headers to resp for the given request origin.
func (c CORS) Apply(resp *events.APIGatewayV2HTTPResponse, origin string) {
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers["Vary"] = "Origin"
	if !c.Allowed(origin) {
		return
	}
	resp.Headers["Access-Control-Allow-Origin"] = origin
	resp.Headers["Access-Control-Allow-Credentials"] = "true"
}

// Preflight answers an OPTIONS request.
func (c CORS) Preflight(origin, requestHeaders string) events.APIGatewayV2HTTPResponse {
	resp := NoContent()
	c.Apply(&resp, origin)
	if !c.Allowed(origin) {
		return resp
	}
	resp.Headers["Access-Control-Allow-Methods"] = allowedMethods
	if requestHeaders != "" {
		resp.Headers["Access-Control-Allow-Headers"] = requestHeaders
	} else {
		resp.Headers["Access-Control-Allow-Headers"] = "Content-Type"
	}
	resp.Headers["Access-Control-Max-Age"] = "600"
	return resp
}
