package urlcache

import "sync"

// Cache tracks canonical page and script URLs a crawl has already visited.
// Safe for concurrent use: membership checks and inserts are backed by
// sync.Map and use LoadOrStore, so two goroutines racing to record the
// same URL never both observe it as unseen.
type Cache struct {
	pages   sync.Map // map[string]struct{}
	scripts sync.Map // map[string]struct{}
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

// HasSeenPage reports whether rawURL's canonical form has already been
// recorded as a page.
func (c *Cache) HasSeenPage(rawURL string) bool {
	canon, err := Canonicalize(rawURL)
	if err != nil {
		return false
	}
	_, seen := c.pages.Load(canon)
	return seen
}

// RecordPage records rawURL's canonical form as seen, returning true if
// this call is the one that first recorded it (false if another goroutine
// already had).
func (c *Cache) RecordPage(rawURL string) bool {
	canon, err := Canonicalize(rawURL)
	if err != nil {
		return false
	}
	_, alreadySeen := c.pages.LoadOrStore(canon, struct{}{})
	return !alreadySeen
}

// HasSeenScript reports whether rawURL's canonical form has already been
// recorded as a script.
func (c *Cache) HasSeenScript(rawURL string) bool {
	canon, err := Canonicalize(rawURL)
	if err != nil {
		return false
	}
	_, seen := c.scripts.Load(canon)
	return seen
}

// RecordScript records rawURL's canonical form as seen, returning true if
// this call is the one that first recorded it.
func (c *Cache) RecordScript(rawURL string) bool {
	canon, err := Canonicalize(rawURL)
	if err != nil {
		return false
	}
	_, alreadySeen := c.scripts.LoadOrStore(canon, struct{}{})
	return !alreadySeen
}

// Clear discards every recorded page and script URL.
func (c *Cache) Clear() {
	c.pages.Range(func(key, _ any) bool {
		c.pages.Delete(key)
		return true
	})
	c.scripts.Range(func(key, _ any) bool {
		c.scripts.Delete(key)
		return true
	})
}
