// Package crawler implements the Site Crawler: it walks a site breadth-
// first from a single entrypoint, staying within a domain whitelist, and
// streams the scripts it discovers to a Script Collector over a channel.
//
// Basic usage:
//
//	c, err := crawler.New(crawler.Options{
//		Fetcher: fetch.NewHTTPFetcher(fetch.HTTPFetcherOptions{}),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	out := make(chan crawler.ScriptMsg, 16)
//	go func() {
//		defer close(out)
//		if err := c.Walk(ctx, "https://example.com", out); err != nil {
//			log.Printf("walk failed: %v", err)
//		}
//	}()
//	for msg := range out {
//		// hand msg to a collector.Collector
//	}
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/corvidscan/keyhunter/fetch"
	"github.com/corvidscan/keyhunter/htmlparse"
	"github.com/corvidscan/keyhunter/retry"
	"github.com/corvidscan/keyhunter/urlcache"
	"github.com/corvidscan/keyhunter/web"
)

// DefaultConcurrency bounds how many pages are fetched at once when Options
// doesn't specify one.
const DefaultConcurrency = 8

// Options configures a Crawler.
type Options struct {
	// Fetcher retrieves both pages and robots.txt. Required. The crawler
	// validates the html Content-Type itself, so this fetcher should not
	// restrict AllowedContentTypes (robots.txt is text/plain).
	Fetcher fetch.Fetcher

	// Cache deduplicates pages and scripts across the whole walk. If nil,
	// a fresh urlcache.Cache is created.
	Cache *urlcache.Cache

	// MaxWalks caps the total number of pages fetched. Zero means
	// unlimited.
	MaxWalks int

	// Concurrency bounds how many pages are fetched at once. Defaults to
	// DefaultConcurrency.
	Concurrency int

	// RequestDelay adds a fixed delay before each fetch, applied inside
	// the concurrency bound.
	RequestDelay time.Duration

	// ExtraWhitelist adds hosts to the crawl's domain whitelist beyond
	// the entrypoint's own host.
	ExtraWhitelist []string

	// RespectRobotsTxt enables robots.txt compliance. Defaults to true.
	RespectRobotsTxt *bool

	// RobotsTxtUserAgent is the user agent checked against robots.txt
	// rules. Defaults to "*".
	RobotsTxtUserAgent string

	// Logger receives per-page failures and progress. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Crawler walks a single site from one entrypoint, following links within
// a domain whitelist and reporting discovered scripts on a channel.
//
// A Crawler is single-use: call Walk once per instance.
type Crawler struct {
	fetcher     fetch.Fetcher
	cache       *urlcache.Cache
	logger      *slog.Logger
	maxWalks    int64
	concurrency int
	sem         chan struct{}
	requestDelay time.Duration

	whitelist map[string]bool

	inProgress     atomic.Int64
	walksPerformed atomic.Int64
	doneSent       atomic.Bool
	wg             sync.WaitGroup
	stats          *CrawlerStats

	respectRobotsTxt   bool
	robotsTxtUserAgent string
	robotsCache        sync.Map // map[string]*robotsTxtData
}

// New validates opts and constructs a Crawler.
func New(opts Options) (*Crawler, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("crawler: Fetcher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cache := opts.Cache
	if cache == nil {
		cache = urlcache.New()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	robotsTxtUserAgent := opts.RobotsTxtUserAgent
	if robotsTxtUserAgent == "" {
		robotsTxtUserAgent = "*"
	}
	respectRobotsTxt := true
	if opts.RespectRobotsTxt != nil {
		respectRobotsTxt = *opts.RespectRobotsTxt
	}

	whitelist := make(map[string]bool, len(opts.ExtraWhitelist))
	for _, host := range opts.ExtraWhitelist {
		whitelist[strings.ToLower(host)] = true
	}

	return &Crawler{
		fetcher:            opts.Fetcher,
		cache:              cache,
		logger:             logger,
		maxWalks:           int64(opts.MaxWalks),
		concurrency:        concurrency,
		sem:                make(chan struct{}, concurrency),
		requestDelay:       opts.RequestDelay,
		whitelist:          whitelist,
		stats:              &CrawlerStats{},
		respectRobotsTxt:   respectRobotsTxt,
		robotsTxtUserAgent: robotsTxtUserAgent,
	}, nil
}

// BoolPtr returns a pointer to b, for setting Options.RespectRobotsTxt.
func BoolPtr(b bool) *bool {
	return &b
}

// GetStats returns the crawler's running page-processing statistics.
func (c *Crawler) GetStats() *CrawlerStats {
	return c.stats
}

// Walk parses entrypoint, seeds the domain whitelist from its host, and
// breadth-walks the site, sending ScriptsMsg/DidWalkPageMsg/DoneMsg on
// out as it goes. Walk sends exactly one DoneMsg before returning nil.
//
// The only error Walk returns is a malformed entrypoint URL; every other
// failure (a bad fetch, a non-HTML page, a parse error) is logged and
// treated as a recoverable per-page failure.
func (c *Crawler) Walk(ctx context.Context, entrypoint string, out chan<- ScriptMsg) error {
	entryURL, err := web.NormalizeURL(entrypoint)
	if err != nil {
		return fmt.Errorf("crawler: malformed entrypoint: %w", err)
	}
	if entryURL.Hostname() == "" {
		return fmt.Errorf("crawler: entrypoint has no host: %s", entrypoint)
	}

	c.whitelist[strings.ToLower(entryURL.Hostname())] = true

	c.visit(ctx, []string{entryURL.String()}, out)
	c.wg.Wait()

	if c.doneSent.CompareAndSwap(false, true) {
		out <- DoneMsg{}
	}
	return nil
}

// visit reserves as many of urls as the walk budget and dedup caches
// allow, then fetches each reserved URL in its own goroutine, bounded by
// c.sem. Each goroutine recursively visits the links its page discovers
// before decrementing in-progress, so the WaitGroup only reaches zero
// once the whole reachable subtree under urls has been walked.
func (c *Crawler) visit(ctx context.Context, urls []string, out chan<- ScriptMsg) {
	reserved := c.reserve(urls)
	if len(reserved) == 0 {
		return
	}
	c.inProgress.Add(int64(len(reserved)))
	c.wg.Add(len(reserved))

	for _, pageURL := range reserved {
		go func(pageURL string) {
			defer func() {
				c.walksPerformed.Add(1)
				c.inProgress.Add(-1)
				c.wg.Done()
			}()

			select {
			case c.sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			links := c.processPage(ctx, pageURL, out)
			<-c.sem

			if len(links) > 0 {
				c.visit(ctx, links, out)
			}
		}(pageURL)
	}
}

// reserve returns the prefix of urls that fit within the remaining walk
// budget, after dropping already-seen pages and pages outside the
// whitelist.
func (c *Crawler) reserve(urls []string) []string {
	reserved := make([]string, 0, len(urls))
	for _, rawURL := range urls {
		if c.maxWalks > 0 {
			remaining := c.maxWalks - c.walksPerformed.Load() - c.inProgress.Load() - int64(len(reserved))
			if remaining <= 0 {
				break
			}
		}
		if !c.cache.RecordPage(rawURL) {
			continue
		}
		if !c.isWhitelisted(rawURL) {
			continue
		}
		reserved = append(reserved, rawURL)
	}
	return reserved
}

func (c *Crawler) isWhitelisted(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return c.whitelist[strings.ToLower(u.Hostname())]
}

// processPage fetches, parses, and reports on one page, returning the
// outbound links it discovered for further traversal. A fetch or parse
// failure is logged and treated as an empty page with no links.
func (c *Crawler) processPage(ctx context.Context, pageURL string, out chan<- ScriptMsg) []string {
	c.stats.IncrementProcessed()

	if c.requestDelay > 0 {
		select {
		case <-time.After(c.requestDelay):
		case <-ctx.Done():
			return nil
		}
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		c.logger.Warn("invalid page url", "url", pageURL, "error", err)
		c.stats.IncrementFailed()
		return nil
	}

	if !c.isAllowedByRobots(ctx, parsedURL) {
		c.logger.Debug("blocked by robots.txt", "url", pageURL)
		c.stats.IncrementFailed()
		return nil
	}

	resp, err := c.fetchWithRetry(ctx, pageURL)
	if err != nil {
		c.logger.Warn("fetch failed", "url", pageURL, "error", err)
		c.stats.IncrementFailed()
		return nil
	}
	if !strings.Contains(resp.ContentType, "html") {
		c.logger.Debug("skipping non-html response", "url", pageURL, "content_type", resp.ContentType)
		c.stats.IncrementFailed()
		return nil
	}

	doc, err := htmlparse.Parse(string(resp.Body))
	if err != nil {
		c.logger.Warn("html parse failed", "url", pageURL, "error", err)
		c.stats.IncrementFailed()
		return nil
	}

	scripts := c.newScripts(doc.Scripts(resp.URL))
	if len(scripts) > 0 {
		out <- ScriptsMsg{Scripts: scripts}
	}
	out <- DidWalkPageMsg{}
	c.stats.IncrementSucceeded()

	return doc.PageLinks(resp.URL)
}

// errTransientStatus marks a response status worth retrying (429 or 5xx).
var errTransientStatus = fmt.Errorf("transient response status")

// fetchWithRetry fetches pageURL, retrying on network errors and on
// 429/5xx responses with exponential backoff.
func (c *Crawler) fetchWithRetry(ctx context.Context, pageURL string) (*fetch.Response, error) {
	return retry.Do(ctx, func() (*fetch.Response, error) {
		resp, err := c.fetcher.Fetch(ctx, &fetch.Request{URL: pageURL})
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", errTransientStatus, resp.StatusCode)
		}
		return resp, nil
	}, retry.WithMaxAttempts(3), retry.WithBackoff(200*time.Millisecond, 5*time.Second))
}

// newScripts filters refs down to the ones not already recorded in the
// script cache. Inline scripts have no canonical URL to dedupe on and are
// always kept.
func (c *Crawler) newScripts(refs []htmlparse.ScriptRef) []htmlparse.ScriptRef {
	fresh := make([]htmlparse.ScriptRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Kind == htmlparse.ScriptInline {
			fresh = append(fresh, ref)
			continue
		}
		if c.cache.RecordScript(ref.URL) {
			fresh = append(fresh, ref)
		}
	}
	return fresh
}
