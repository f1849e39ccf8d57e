// Package urlcache canonicalizes URLs and tracks which pages and scripts a
// crawl has already seen, so the Site Crawler and Script Collector never
// process the same resource twice.
package urlcache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/corvidscan/keyhunter/web"
)

// preservedQueryParams is the allow-list of query parameter names kept by
// Canonicalize because they materially identify content on real sites.
var preservedQueryParams = map[string]bool{
	"tab": true, "tabid": true, "tab_id": true, "tab-id": true,
	"id": true, "page": true, "page_id": true, "page-id": true,
}

// Canonicalize normalizes rawURL the way web.NormalizeURL does (add a
// scheme, upgrade http to https, strip the fragment), then additionally
// strips every query parameter except the allow-list, re-attaching any
// preserved ones in a deterministic order. web.NormalizeURL strips all
// query parameters unconditionally, so this calls url.Parse directly
// rather than routing through it.
func Canonicalize(rawURL string) (string, error) {
	normalized, err := web.NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("urlcache: parse %q: %w", rawURL, err)
	}
	query := u.Query()

	preserved := url.Values{}
	for key := range query {
		if preservedQueryParams[strings.ToLower(key)] {
			preserved[key] = query[key]
		}
	}

	canon := *normalized
	if len(preserved) > 0 {
		keys := make([]string, 0, len(preserved))
		for k := range preserved {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := url.Values{}
		for _, k := range keys {
			values[k] = preserved[k]
		}
		canon.RawQuery = values.Encode()
	}
	return canon.String(), nil
}
