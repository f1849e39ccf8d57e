package web

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/corvidscan/keyhunter/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{
			name:     "simple https URL",
			input:    "https://example.com",
			expected: "https://example.com",
		},
		{
			name:     "http URL converted to https",
			input:    "http://example.com",
			expected: "https://example.com",
		},
		{
			name:     "URL without protocol",
			input:    "example.com",
			expected: "https://example.com",
		},
		{
			name:     "URL with path",
			input:    "https://example.com/path",
			expected: "https://example.com/path",
		},
		{
			name:     "URL with root path removed",
			input:    "https://example.com/",
			expected: "https://example.com",
		},
		{
			name:     "URL with query and fragment removed",
			input:    "https://example.com/path?query=1#fragment",
			expected: "https://example.com/path",
		},
		{
			name:     "URL with whitespace",
			input:    "  https://example.com  ",
			expected: "https://example.com",
		},
		{
			name:        "empty URL",
			input:       "",
			expectError: true,
		},
		{
			name:        "invalid protocol",
			input:       "ftp://example.com",
			expectError: true,
		},
		{
			name:        "malformed URL",
			input:       "ht tp://example.com",
			expectError: true,
		},
		// Edge cases from feedback
		{
			name:     "httpbin.org - starts with http but no scheme",
			input:    "httpbin.org",
			expected: "https://httpbin.org",
		},
		{
			name:     "httpbin.org with path",
			input:    "httpbin.org/get",
			expected: "https://httpbin.org/get",
		},
		{
			name:        "mailto URL should be rejected",
			input:       "mailto:test@example.com",
			expectError: true,
		},
		{
			name:        "javascript URL should be rejected",
			input:       "javascript:void(0)",
			expectError: true,
		},
		{
			name:        "tel URL should be rejected",
			input:       "tel:+1234567890",
			expectError: true,
		},
		{
			name:        "data URL should be rejected",
			input:       "data:text/html,<h1>Hello</h1>",
			expectError: true,
		},
		{
			name:     "protocol-relative URL",
			input:    "//example.com/path",
			expected: "https://example.com/path",
		},
		{
			name:     "URL with port",
			input:    "https://example.com:8080/path",
			expected: "https://example.com:8080/path",
		},
		{
			name:     "http URL with port converted to https",
			input:    "http://example.com:8080/path",
			expected: "https://example.com:8080/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeURL(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result.String())
			}
		})
	}
}

func TestSortURLs(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "sort URLs alphabetically",
			input:    []string{"https://z.com", "https://a.com", "https://m.com"},
			expected: []string{"https://a.com", "https://m.com", "https://z.com"},
		},
		{
			name:     "already sorted",
			input:    []string{"https://a.com", "https://b.com", "https://c.com"},
			expected: []string{"https://a.com", "https://b.com", "https://c.com"},
		},
		{
			name:     "single URL",
			input:    []string{"https://example.com"},
			expected: []string{"https://example.com"},
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Convert strings to URLs
			urls := make([]*url.URL, len(tt.input))
			for i, u := range tt.input {
				urls[i], _ = url.Parse(u)
			}

			// Sort the URLs
			SortURLs(urls)

			// Convert back to strings for comparison
			result := make([]string, len(urls))
			for i, u := range urls {
				result[i] = u.String()
			}

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortURLsWithNilEntries(t *testing.T) {
	// Test that nil entries are sorted to the end
	urls := []*url.URL{
		mustParse("https://z.com"),
		nil,
		mustParse("https://a.com"),
		nil,
		mustParse("https://m.com"),
	}

	SortURLs(urls)

	// Non-nil entries should be sorted, nils at end
	assert.Equal(t, "https://a.com", urls[0].String())
	assert.Equal(t, "https://m.com", urls[1].String())
	assert.Equal(t, "https://z.com", urls[2].String())
	assert.Nil(t, urls[3])
	assert.Nil(t, urls[4])
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		link     string
		expected string
		valid    bool
	}{
		{
			name:     "absolute HTTPS URL",
			domain:   "example.com",
			link:     "https://example.com/page",
			expected: "https://example.com/page",
			valid:    true,
		},
		{
			name:     "absolute HTTP URL",
			domain:   "example.com",
			link:     "http://example.com/page",
			expected: "https://example.com/page",
			valid:    true,
		},
		{
			name:     "relative URL with leading slash",
			domain:   "example.com",
			link:     "/about",
			expected: "https://example.com/about",
			valid:    true,
		},
		{
			name:     "relative URL without leading slash",
			domain:   "example.com",
			link:     "about",
			expected: "https://example.com/about",
			valid:    true,
		},
		{
			name:   "invalid scheme",
			domain: "example.com",
			link:   "ftp://example.com/file",
			valid:  false,
		},
		{
			name:   "javascript URL",
			domain: "example.com",
			link:   "javascript:void(0)",
			valid:  false,
		},
		{
			name:   "mailto URL",
			domain: "example.com",
			link:   "mailto:test@example.com",
			valid:  false,
		},
		{
			name:     "URL with fragment",
			domain:   "example.com",
			link:     "https://example.com/page#section",
			expected: "https://example.com/page",
			valid:    true,
		},
		{
			name:     "domain with https prefix",
			domain:   "https://example.com",
			link:     "/page",
			expected: "https://example.com/page",
			valid:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, valid := ResolveLink(tt.domain, tt.link)
			assert.Equal(t, tt.valid, valid)
			if valid {
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// Example demonstrates basic URL normalization.
func ExampleNormalizeURL() {
	// Normalize a URL with query parameters and fragment
	url, _ := NormalizeURL("example.com/path?query=1#fragment")
	fmt.Println(url.String())

	// Convert http to https
	url, _ = NormalizeURL("http://example.com")
	fmt.Println(url.String())

	// Add https prefix when missing
	url, _ = NormalizeURL("example.com")
	fmt.Println(url.String())

	// Output:
	// https://example.com/path
	// https://example.com
	// https://example.com
}

// Example demonstrates resolving relative URLs against a base domain.
func ExampleResolveLink() {
	baseDomain := "example.com"

	// Resolve absolute path
	resolved, ok := ResolveLink(baseDomain, "/about")
	fmt.Printf("%s: %v\n", resolved, ok)

	// Resolve relative path
	resolved, ok = ResolveLink(baseDomain, "contact")
	fmt.Printf("%s: %v\n", resolved, ok)

	// Reject non-HTTP schemes
	resolved, ok = ResolveLink(baseDomain, "mailto:test@example.com")
	fmt.Printf("valid: %v\n", ok)

	// Output:
	// https://example.com/about: true
	// https://example.com/contact: true
	// valid: false
}

// Example demonstrates sorting URLs alphabetically.
func ExampleSortURLs() {
	urls := []*url.URL{
		mustParse("https://z.com/page"),
		mustParse("https://a.com/page"),
		mustParse("https://m.com/page"),
	}

	SortURLs(urls)

	for _, u := range urls {
		fmt.Println(u.String())
	}

	// Output:
	// https://a.com/page
	// https://m.com/page
	// https://z.com/page
}

// mustParse is a helper function for examples.
func mustParse(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
