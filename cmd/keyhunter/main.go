// Command keyhunter scans websites for secrets leaked in client-side
// JavaScript: it crawls a site, collects every script it serves, and
// checks each one against a rule catalog of API key and credential
// patterns.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/corvidscan/keyhunter/cli"
	"github.com/corvidscan/keyhunter/collector"
	"github.com/corvidscan/keyhunter/crawler"
	"github.com/corvidscan/keyhunter/env"
	"github.com/corvidscan/keyhunter/fetch"
	"github.com/corvidscan/keyhunter/finding"
	"github.com/corvidscan/keyhunter/humanize"
	"github.com/corvidscan/keyhunter/rules"
	keyhunterlog "github.com/corvidscan/keyhunter/slog"
	"github.com/corvidscan/keyhunter/web"
)

// Config holds the settings keyhunter reads from the environment, under
// the KEYHUNTER_ prefix. Flags of the same name take precedence when set.
type Config struct {
	// Log is a RUST_LOG-style level filter: one of debug, info, warn, error.
	Log string `env:"LOG" envDefault:"info"`
}

func main() {
	app := cli.New("keyhunter").
		Description("Scan websites for secrets leaked in client-side JavaScript").
		Version("1.0.0")

	app.Command("scan").
		Description("Crawl one or more sites and report secrets found in their scripts").
		Args("urls...").
		Flags(
			cli.Int("max", "m").Default(0).Help("Maximum number of pages to walk per site (0 for unlimited)"),
			cli.Bool("verbose", "v").Help("Log crawl and scan progress"),
			cli.String("format", "f").Default("rich").Enum("rich", "json").Help("Output format for findings"),
			cli.Bool("redact", "r").Default(true).Help("Redact secret values in output"),
			cli.Bool("random-ua", "").Help("Rotate a random User-Agent per request"),
			cli.String("rules", "").Help("Path to a custom rule catalog (TOML); defaults to the built-in catalog"),
			&cli.StringSliceFlag{Name: "header", Short: "H", Help: `Extra request header, "Name: Value" (repeatable)`},
		).
		Run(runScan)

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScan(ctx *cli.Context) error {
	urls := ctx.Args()
	if len(urls) == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	cfg, err := env.Parse[Config](env.WithPrefix("KEYHUNTER"))
	if err != nil {
		return fmt.Errorf("keyhunter: loading config: %w", err)
	}

	level := parseLevel(cfg.Log)
	if ctx.Bool("verbose") {
		level = slog.LevelDebug
	}
	logOpts := keyhunterlog.DefaultOptions()
	logOpts.Level = level
	logger := slog.New(keyhunterlog.NewHandler(os.Stderr, logOpts))

	headers, err := parseHeaders(ctx.StringSlice("header"))
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(ctx.String("rules"))
	if err != nil {
		return err
	}

	format := ctx.String("format")
	redact := ctx.Bool("redact")
	maxWalks := ctx.Int("max")

	var anyFailed bool
	for _, rawURL := range urls {
		entrypoint, err := web.NormalizeURL(rawURL)
		if err != nil {
			ctx.Fail("%s: %v", rawURL, err)
			anyFailed = true
			continue
		}

		fetcher := fetch.NewHTTPFetcher(fetch.HTTPFetcherOptions{
			Headers:         headers,
			RandomUserAgent: ctx.Bool("random-ua"),
		})

		c, err := crawler.New(crawler.Options{
			Fetcher:  fetcher,
			MaxWalks: maxWalks,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("keyhunter: %w", err)
		}

		if failed := scanSite(ctx.Context(), ctx, entrypoint.String(), c, catalog, fetcher, logger, format, redact); failed {
			anyFailed = true
		}
	}

	if anyFailed {
		os.Exit(1)
	}
	return nil
}

// scanSite walks one site end to end, wiring the crawler's ScriptMsg
// stream into a collector.Collector and rendering every finding as it
// arrives. It returns true if any page of the walk failed: a fetch error, a
// robots.txt block, a non-HTML response, or an HTML parse error.
func scanSite(ctx context.Context, cliCtx *cli.Context, entrypoint string, c *crawler.Crawler, catalog *rules.Catalog, fetcher fetch.Fetcher, logger *slog.Logger, format string, redact bool) bool {
	scripts := make(chan crawler.ScriptMsg, 64)
	findings := make(chan collector.FindingMsg, 64)

	col := collector.New(catalog, fetcher)

	go func() {
		defer close(scripts)
		if err := c.Walk(ctx, entrypoint, scripts); err != nil {
			logger.Error("walk failed", "url", entrypoint, "error", err)
		}
	}()
	go func() {
		defer close(findings)
		col.Run(ctx, scripts, findings)
	}()

	var found int
	for msg := range findings {
		switch m := msg.(type) {
		case collector.KeysMsg:
			for _, f := range m.Findings {
				found++
				writeFinding(cliCtx, f, format, redact)
			}
		case collector.RecoverableFailureMsg:
			logger.Warn("recoverable scan failure", "error", m.Err)
		case collector.DidScrapePagesMsg:
			logger.Info("walk complete", "url", entrypoint, "pages", m.Count)
		}
	}

	stats := c.GetStats()
	cliCtx.Info("%s: %s pages walked, %s findings", entrypoint,
		humanize.Number(stats.GetProcessed()), humanize.Number(int64(found)))

	return stats.GetFailed() > 0
}

func writeFinding(cliCtx *cli.Context, f *finding.Finding, format string, redact bool) {
	switch format {
	case "json":
		if err := finding.WriteJSONL(cliCtx.Stdout(), []*finding.Finding{f}, redact); err != nil {
			cliCtx.Errorf("encoding finding: %v", err)
		}
	default:
		cliCtx.Print(finding.Render(f, 2, redact))
	}
}

func loadCatalog(path string) (*rules.Catalog, error) {
	if path == "" {
		catalog, err := rules.Default()
		if err != nil {
			return nil, fmt.Errorf("keyhunter: loading default rule catalog: %w", err)
		}
		return catalog, nil
	}
	catalog, err := rules.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keyhunter: loading rule catalog %s: %w", path, err)
	}
	return catalog, nil
}

// parseHeaders parses "Name: Value" strings into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("keyhunter: invalid header %q, expected \"Name: Value\"", h)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

// parseLevel interprets a RUST_LOG-style level name.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
