// Package fetch provides HTTP fetching for the crawler and script collector.
//
// It offers a narrow Fetcher interface wrapping Go's standard HTTP client,
// with support for request timeouts, custom headers, a rotating User-Agent
// pool, and response size/content-type validation. Unlike a general-purpose
// page-rendering fetcher, it returns raw bytes and lets callers (htmlparse,
// keyextract) decide how to interpret the body.
package fetch

import (
	"context"
	"time"
)

// Request defines the payload for a fetch.
type Request struct {
	// URL is the target resource to fetch (required).
	URL string

	// Headers are custom HTTP headers to include in the request, overriding
	// any fetcher-level defaults of the same name.
	Headers map[string]string

	// Timeout is the request timeout in milliseconds. If zero, the fetcher's
	// default timeout is used.
	Timeout int
}

// Response defines the payload for a fetch result.
type Response struct {
	// URL is the final URL after any redirects.
	URL string

	// StatusCode is the HTTP status code (e.g., 200, 404).
	StatusCode int

	// Headers contains the HTTP response headers.
	Headers map[string]string

	// ContentType is the value of the Content-Type response header, with any
	// charset/boundary parameters stripped.
	ContentType string

	// Body is the raw response body.
	Body []byte

	// Timestamp is when the response was received.
	Timestamp time.Time
}

// Fetcher defines an interface for fetching resources over HTTP.
//
// Implementations range from a real HTTP client (HTTPFetcher) to an
// in-memory stand-in for tests (MockFetcher).
type Fetcher interface {
	// Fetch retrieves the resource at req.URL and returns the response.
	// Returns an error if the request fails or the response fails
	// validation (content type, body size).
	Fetch(ctx context.Context, request *Request) (*Response, error)
}
