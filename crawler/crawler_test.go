package crawler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/corvidscan/keyhunter/assert"
	"github.com/corvidscan/keyhunter/fetch"
)

func htmlResponse(url, body string) *fetch.Response {
	return &fetch.Response{URL: url, StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: []byte(body)}
}

// flakyFetcher fails the entrypoint's first N fetches with a transient
// status code before deferring to the wrapped mock.
type flakyFetcher struct {
	fetch.Fetcher
	flakyURL string
	failures int32
	attempts atomic.Int32
}

func (f *flakyFetcher) Fetch(ctx context.Context, req *fetch.Request) (*fetch.Response, error) {
	if req.URL == f.flakyURL && f.attempts.Add(1) <= f.failures {
		return &fetch.Response{URL: req.URL, StatusCode: 503}, nil
	}
	return f.Fetcher.Fetch(ctx, req)
}

func drainScripts(ch <-chan ScriptMsg) []ScriptMsg {
	var msgs []ScriptMsg
	for m := range ch {
		msgs = append(msgs, m)
	}
	return msgs
}

func TestWalk_FollowsSameSiteLinksAndStopsAtBoundary(t *testing.T) {
	mock := fetch.NewMockFetcher()
	mock.AddResponse("https://example.com", htmlResponse("https://example.com", `
		<html><body>
			<a href="/about">About</a>
			<a href="https://other.com/page">Other</a>
		</body></html>`))
	mock.AddResponse("https://example.com/about", htmlResponse("https://example.com/about", `<html><body>no links here</body></html>`))

	c, err := New(Options{Fetcher: mock, RespectRobotsTxt: BoolPtr(false)})
	assert.NoError(t, err)

	out := make(chan ScriptMsg, 16)
	go func() {
		defer close(out)
		assert.NoError(t, c.Walk(context.Background(), "https://example.com", out))
	}()

	msgs := drainScripts(out)

	var walked, done int
	for _, m := range msgs {
		switch m.(type) {
		case DidWalkPageMsg:
			walked++
		case DoneMsg:
			done++
		}
	}
	assert.Equal(t, 2, walked)
	assert.Equal(t, 1, done)
	assert.Equal(t, int64(2), c.GetStats().GetSucceeded())
}

func TestWalk_EmitsScriptsFoundOnAPage(t *testing.T) {
	mock := fetch.NewMockFetcher()
	mock.AddResponse("https://example.com", htmlResponse("https://example.com", `
		<html><body>
			<script src="/app.js"></script>
			<script>const inline = 1;</script>
		</body></html>`))

	c, err := New(Options{Fetcher: mock, RespectRobotsTxt: BoolPtr(false)})
	assert.NoError(t, err)

	out := make(chan ScriptMsg, 16)
	go func() {
		defer close(out)
		assert.NoError(t, c.Walk(context.Background(), "https://example.com", out))
	}()

	var scripts int
	for _, m := range drainScripts(out) {
		if s, ok := m.(ScriptsMsg); ok {
			scripts += len(s.Scripts)
		}
	}
	assert.Equal(t, 2, scripts)
}

func TestWalk_MaxWalksCapsTotalPages(t *testing.T) {
	mock := fetch.NewMockFetcher()
	mock.AddResponse("https://example.com", htmlResponse("https://example.com", `
		<html><body>
			<a href="/a">A</a>
			<a href="/b">B</a>
			<a href="/c">C</a>
		</body></html>`))
	for _, p := range []string{"/a", "/b", "/c"} {
		mock.AddResponse("https://example.com"+p, htmlResponse("https://example.com"+p, `<html><body></body></html>`))
	}

	c, err := New(Options{Fetcher: mock, RespectRobotsTxt: BoolPtr(false), MaxWalks: 2})
	assert.NoError(t, err)

	out := make(chan ScriptMsg, 16)
	go func() {
		defer close(out)
		assert.NoError(t, c.Walk(context.Background(), "https://example.com", out))
	}()
	drainScripts(out)

	assert.True(t, c.GetStats().GetProcessed() <= 2)
}

func TestWalk_MalformedEntrypointIsFatal(t *testing.T) {
	c, err := New(Options{Fetcher: fetch.NewMockFetcher()})
	assert.NoError(t, err)

	out := make(chan ScriptMsg, 4)
	err = c.Walk(context.Background(), "://not-a-url", out)
	close(out)
	assert.Error(t, err)
}

func TestWalk_FetchFailureIsRecoverable(t *testing.T) {
	mock := fetch.NewMockFetcher()
	mock.AddResponse("https://example.com", htmlResponse("https://example.com", `<html><body><a href="/broken">Broken</a></body></html>`))
	mock.AddError("https://example.com/broken", errors.New("connection refused"))

	c, err := New(Options{Fetcher: mock, RespectRobotsTxt: BoolPtr(false)})
	assert.NoError(t, err)

	out := make(chan ScriptMsg, 16)
	go func() {
		defer close(out)
		assert.NoError(t, c.Walk(context.Background(), "https://example.com", out))
	}()
	drainScripts(out)

	assert.Equal(t, int64(1), c.GetStats().GetFailed())
}

func TestWalk_RetriesTransientFetchFailures(t *testing.T) {
	mock := fetch.NewMockFetcher()
	mock.AddResponse("https://example.com", htmlResponse("https://example.com", `<html><body></body></html>`))
	flaky := &flakyFetcher{Fetcher: mock, flakyURL: "https://example.com", failures: 2}

	c, err := New(Options{Fetcher: flaky, RespectRobotsTxt: BoolPtr(false)})
	assert.NoError(t, err)

	out := make(chan ScriptMsg, 16)
	go func() {
		defer close(out)
		assert.NoError(t, c.Walk(context.Background(), "https://example.com", out))
	}()
	drainScripts(out)

	assert.Equal(t, int64(1), c.GetStats().GetSucceeded())
	assert.Equal(t, int64(0), c.GetStats().GetFailed())
}

func TestWalk_RespectsContextCancellation(t *testing.T) {
	mock := fetch.NewMockFetcher()
	mock.AddResponse("https://example.com", htmlResponse("https://example.com", `<html><body></body></html>`))

	c, err := New(Options{Fetcher: mock, RespectRobotsTxt: BoolPtr(false)})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan ScriptMsg, 4)
	done := make(chan struct{})
	go func() {
		defer close(out)
		c.Walk(ctx, "https://example.com", out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Walk did not return after context cancellation")
	}
}
