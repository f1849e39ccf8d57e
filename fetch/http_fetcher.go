package fetch

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const (
	// DefaultMaxBodySize is the maximum response body size (10 MB).
	// Responses larger than this will be rejected to prevent memory issues.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// DefaultTimeout is the default HTTP request timeout (30 seconds).
	DefaultTimeout = 30 * time.Second
)

// userAgents is a small pool of realistic desktop browser User-Agent strings,
// rotated through when HTTPFetcherOptions.RandomUserAgent is set. Sites that
// block bare Go HTTP clients by User-Agent sniffing are otherwise missed
// entirely by the crawl.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Mobile/15E148 Safari/604.1",
}

// randomUserAgent returns a random entry from userAgents.
func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// defaultHeaders are sent with every request unless overridden. They mimic a
// real browser's default request headers closely enough to avoid the
// crudest bot filters.
var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Keep-Alive":      "timeout=5, max=100",
	"DNT":             "1",
}

// HTTPFetcherOptions defines configuration options for HTTPFetcher.
//
// All fields are optional. When not specified, sensible defaults are used.
type HTTPFetcherOptions struct {
	// Timeout is the HTTP request timeout. Defaults to DefaultTimeout (30s).
	Timeout time.Duration

	// Headers are default HTTP headers sent with all requests, merged over
	// defaultHeaders. Request-specific headers override these.
	Headers map[string]string

	// Client is the HTTP client to use for requests. Defaults to a client
	// built from Timeout and CookieJar.
	Client *http.Client

	// MaxBodySize is the maximum response body size in bytes.
	// Responses larger than this are rejected. Defaults to DefaultMaxBodySize (10 MB).
	MaxBodySize int64

	// RandomUserAgent rotates through userAgents per request instead of
	// using a fixed User-Agent header.
	RandomUserAgent bool

	// CookieJar enables a shared cookie jar across requests made by this
	// fetcher, so that session cookies set by one page survive to the next
	// fetch against the same host.
	CookieJar bool

	// AllowedContentTypes restricts which Content-Type values are accepted.
	// A response is accepted if its Content-Type contains any of these
	// substrings. If empty, any Content-Type is accepted.
	AllowedContentTypes []string
}

// HTTPFetcher implements the Fetcher interface using Go's standard HTTP client.
type HTTPFetcher struct {
	timeout             time.Duration
	headers             map[string]string
	client              *http.Client
	maxBodySize         int64
	randomUserAgent     bool
	allowedContentTypes []string
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
//
// All options are optional and will use sensible defaults if not specified.
func NewHTTPFetcher(options HTTPFetcherOptions) *HTTPFetcher {
	if options.Timeout == 0 {
		options.Timeout = DefaultTimeout
	}
	headers := make(map[string]string, len(defaultHeaders)+len(options.Headers))
	for k, v := range defaultHeaders {
		headers[k] = v
	}
	for k, v := range options.Headers {
		headers[k] = v
	}
	if options.Client == nil {
		client := &http.Client{Timeout: options.Timeout}
		if options.CookieJar {
			jar, _ := cookiejar.New(nil)
			client.Jar = jar
		}
		options.Client = client
	}
	if options.MaxBodySize == 0 {
		options.MaxBodySize = DefaultMaxBodySize
	}
	return &HTTPFetcher{
		timeout:             options.Timeout,
		headers:             headers,
		client:              options.Client,
		maxBodySize:         options.MaxBodySize,
		randomUserAgent:     options.RandomUserAgent,
		allowedContentTypes: options.AllowedContentTypes,
	}
}

// Fetch implements the Fetcher interface for HTTP requests.
//
// Fetches the resource at req.URL. Returns an error if the URL is invalid,
// the request fails, the response's Content-Type doesn't match
// AllowedContentTypes, or the response exceeds MaxBodySize.
func (f *HTTPFetcher) Fetch(ctx context.Context, req *Request) (*Response, error) {
	var cancel context.CancelFunc
	if req.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Millisecond)
	} else {
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, NewRequestError(err).WithRawURL(req.URL)
	}

	for key, value := range f.headers {
		httpReq.Header.Set(key, value)
	}
	if f.randomUserAgent {
		httpReq.Header.Set("User-Agent", randomUserAgent())
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, NewRequestError(err).WithRawURL(req.URL)
	}
	defer resp.Body.Close()

	contentType := contentTypeWithoutParams(resp.Header.Get("Content-Type"))
	if len(f.allowedContentTypes) > 0 && !matchesAny(contentType, f.allowedContentTypes) {
		return nil, NewRequestErrorf("%w: %s", ErrContentType, contentType).
			WithStatusCode(resp.StatusCode).WithRawURL(req.URL)
	}

	if cl := resp.Header.Get("Content-Length"); cl != "" && cl != "0" {
		limitedReader := io.LimitReader(resp.Body, f.maxBodySize+1)
		body, err := io.ReadAll(limitedReader)
		if err != nil {
			return nil, NewRequestError(err).WithRawURL(req.URL)
		}
		if len(body) > int(f.maxBodySize) {
			return nil, NewRequestErrorf("response size exceeds limit of %d bytes", f.maxBodySize).
				WithRawURL(req.URL)
		}
		if len(body) == 0 {
			return nil, NewRequestError(ErrEmptyBody).WithRawURL(req.URL)
		}
		return buildResponse(resp, contentType, body), nil
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, NewRequestError(err).WithRawURL(req.URL)
	}
	if len(body) > int(f.maxBodySize) {
		return nil, NewRequestErrorf("response size exceeds limit of %d bytes", f.maxBodySize).
			WithRawURL(req.URL)
	}
	return buildResponse(resp, contentType, body), nil
}

func buildResponse(resp *http.Response, contentType string, body []byte) *Response {
	headers := make(map[string]string, len(resp.Header))
	for name, values := range resp.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}
	return &Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		Headers:     headers,
		ContentType: contentType,
		Body:        body,
		Timestamp:   time.Now().UTC(),
	}
}

// contentTypeWithoutParams strips any "; charset=..." style parameters from
// a Content-Type header value.
func contentTypeWithoutParams(contentType string) string {
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		return strings.TrimSpace(contentType[:idx])
	}
	return strings.TrimSpace(contentType)
}

func matchesAny(contentType string, substrs []string) bool {
	for _, s := range substrs {
		if strings.Contains(contentType, s) {
			return true
		}
	}
	return false
}
