// Package collector implements the Script Collector: it consumes script
// references discovered by the crawler, decides whether each is worth
// fetching, parses the ones it fetches for candidate secrets, and emits
// Findings on its own channel.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corvidscan/keyhunter/crawler"
	"github.com/corvidscan/keyhunter/fetch"
	"github.com/corvidscan/keyhunter/finding"
	"github.com/corvidscan/keyhunter/htmlparse"
	"github.com/corvidscan/keyhunter/keyextract"
	"github.com/corvidscan/keyhunter/rules"
)

// FindingMsg is one message on the channel a Collector sends to its
// caller: a batch of findings, a per-script progress signal, a
// recoverable failure to log, or one of the two terminal signals.
type FindingMsg interface {
	isFindingMsg()
}

// KeysMsg carries every Finding extracted from one script.
type KeysMsg struct {
	Findings []*finding.Finding
}

func (KeysMsg) isFindingMsg() {}

// DidScanScriptMsg reports that one script finished being considered,
// whether or not it was fetched, skipped, or yielded any findings.
type DidScanScriptMsg struct{}

func (DidScanScriptMsg) isFindingMsg() {}

// DidScrapePagesMsg reports that the underlying crawl finished walking
// pages, carrying the total number of pages walked.
type DidScrapePagesMsg struct {
	Count int
}

func (DidScrapePagesMsg) isFindingMsg() {}

// RecoverableFailureMsg reports a per-script error that did not stop the
// collector: a fetch failure, a disallowed content type, or a parse
// error from a malformed script.
type RecoverableFailureMsg struct {
	Err error
}

func (RecoverableFailureMsg) isFindingMsg() {}

// StopMsg is the terminal message, sent exactly once after the input
// channel closes or yields a crawler.DoneMsg.
type StopMsg struct{}

func (StopMsg) isFindingMsg() {}

// ErrNotJavascript reports that a fetched script's Content-Type did not
// contain "javascript"; the script is dropped rather than parsed.
var ErrNotJavascript = fmt.Errorf("collector: content-type is not javascript")

// skipDomains are hosts whose scripts are near-universally third-party
// library code, never application code that would carry a secret. Matched
// against the request host with any "www." prefix stripped.
var skipDomains = map[string]bool{
	"ajax.googleapis.com":      true,
	"apis.google.com":          true,
	"youtube.com":              true,
	"googletagmanager.com":     true,
	"assets.calendly.com":      true,
	"cdn.jsdelivr.net":         true,
	"unpkg.com":                true,
	"events.framer.com":        true,
}

// skipPathSubstrings are path fragments identifying well-known vendored
// libraries, regardless of which host serves them.
var skipPathSubstrings = []string{"jquery", "react", "lodash", "unpkg"}

// Collector consumes a crawler.ScriptMsg channel and emits FindingMsg.
type Collector struct {
	catalog *rules.Catalog
	fetcher fetch.Fetcher
}

// New builds a Collector that checks scripts against catalog and fetches
// remote ones through fetcher.
func New(catalog *rules.Catalog, fetcher fetch.Fetcher) *Collector {
	return &Collector{catalog: catalog, fetcher: fetcher}
}

// Run drains in until it closes or yields a crawler.DoneMsg, fetching and
// scanning every script reference it decides is worth examining, and
// sends every FindingMsg to out. Run sends exactly one StopMsg and then
// returns; it never forwards the crawler's DoneMsg onto out.
func (c *Collector) Run(ctx context.Context, in <-chan crawler.ScriptMsg, out chan<- FindingMsg) {
	defer func() { out <- StopMsg{} }()

	pagesWalked := 0
	for msg := range in {
		switch m := msg.(type) {
		case crawler.ScriptsMsg:
			for _, ref := range m.Scripts {
				c.handleScript(ctx, ref, out)
			}
		case crawler.DidWalkPageMsg:
			pagesWalked++
		case crawler.DoneMsg:
			out <- DidScrapePagesMsg{Count: pagesWalked}
			return
		}
	}
	out <- DidScrapePagesMsg{Count: pagesWalked}
}

// handleScript decides whether ref is worth fetching, fetches and parses
// it if so, and always reports DidScanScriptMsg when done.
func (c *Collector) handleScript(ctx context.Context, ref htmlparse.ScriptRef, out chan<- FindingMsg) {
	defer func() { out <- DidScanScriptMsg{} }()

	source, sourceURL, ok := c.obtain(ctx, ref, out)
	if !ok {
		return
	}

	candidates, err := keyextract.Extract(c.catalog, source)
	if err != nil {
		slog.Warn("script parse failed", "url", sourceURL, "error", err)
		out <- RecoverableFailureMsg{Err: err}
		return
	}
	if len(candidates) == 0 {
		return
	}

	src := &finding.Source{URL: sourceURL, Code: source}
	findings := make([]*finding.Finding, 0, len(candidates))
	for _, cand := range candidates {
		findings = append(findings, &finding.Finding{
			DisplayRuleID: c.catalog.GetDisplayID(cand.RuleID),
			Description:   c.catalog.GetDescription(cand.RuleID),
			Start:         cand.Start,
			End:           cand.End,
			Source:        src,
			KeyName:       cand.KeyName,
			Secret:        cand.Secret,
		})
	}
	out <- KeysMsg{Findings: findings}
}

// obtain resolves ref to its source text and a display URL, fetching it
// over HTTP if it's remote. ok is false if the script was skipped or the
// fetch failed; a RecoverableFailureMsg is sent for fetch/content-type
// failures but not for skip-list drops.
func (c *Collector) obtain(ctx context.Context, ref htmlparse.ScriptRef, out chan<- FindingMsg) (source, sourceURL string, ok bool) {
	if ref.Kind == htmlparse.ScriptInline {
		return ref.Source, ref.PageURL, true
	}
	if shouldSkip(ref.URL) {
		return "", "", false
	}

	resp, err := c.fetcher.Fetch(ctx, &fetch.Request{URL: ref.URL})
	if err != nil {
		slog.Warn("script fetch failed", "url", ref.URL, "error", err)
		out <- RecoverableFailureMsg{Err: err}
		return "", "", false
	}
	if !strings.Contains(resp.ContentType, "javascript") {
		out <- RecoverableFailureMsg{Err: fmt.Errorf("%w: %s (%s)", ErrNotJavascript, ref.URL, resp.ContentType)}
		return "", "", false
	}
	return string(resp.Body), ref.URL, true
}

func shouldSkip(rawURL string) bool {
	host := strings.TrimPrefix(hostOf(rawURL), "www.")
	if skipDomains[host] {
		return true
	}
	for _, sub := range skipPathSubstrings {
		if strings.Contains(rawURL, sub) {
			return true
		}
	}
	return false
}

func hostOf(rawURL string) string {
	idx := strings.Index(rawURL, "://")
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+3:]
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		rest = rest[:slash]
	}
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		rest = rest[at+1:]
	}
	return strings.ToLower(rest)
}
