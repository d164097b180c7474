package concepts

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long lookup outcomes stay fresh. Concept metadata
// changes rarely; repeated audits during an editing session should not
// re-fetch.
const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	concept  Concept
	resolved bool
	expires  time.Time
}

// Cached wraps a Resolver with a TTL cache over per-reference outcomes,
// including negative ones, so only never-seen references reach the inner
// resolver.
type Cached struct {
	inner Resolver
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// CachedOption configures a Cached resolver.
type CachedOption func(*Cached)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewCached wraps inner with caching.
func NewCached(inner Resolver, opts ...CachedOption) *Cached {
	c := &Cached{
		inner:   inner,
		ttl:     DefaultCacheTTL,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LookupBatch implements Resolver. Cached references are answered locally;
// the rest go to the inner resolver in one batch. An inner failure leaves the
// cache untouched.
func (c *Cached) LookupBatch(ctx context.Context, refs []string) (BatchResult, error) {
	result := BatchResult{}
	var misses []string

	c.mu.Lock()
	now := c.now()
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		entry, ok := c.entries[ref]
		if !ok || now.After(entry.expires) {
			misses = append(misses, ref)
			continue
		}
		if entry.resolved {
			result.Resolved = append(result.Resolved, entry.concept)
		} else {
			result.Unresolved = append(result.Unresolved, ref)
		}
	}
	c.mu.Unlock()

	if len(misses) == 0 {
		return result, nil
	}

	fetched, err := c.inner.LookupBatch(ctx, misses)
	if err != nil {
		return BatchResult{}, err
	}

	c.mu.Lock()
	expires := c.now().Add(c.ttl)
	for _, concept := range fetched.Resolved {
		c.entries[concept.UUID] = cacheEntry{concept: concept, resolved: true, expires: expires}
	}
	for _, ref := range fetched.Unresolved {
		c.entries[ref] = cacheEntry{expires: expires}
	}
	c.mu.Unlock()

	result.Resolved = append(result.Resolved, fetched.Resolved...)
	result.Unresolved = append(result.Unresolved, fetched.Unresolved...)
	return result, nil
}

// Clear drops every cached entry.
func (c *Cached) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

var _ Resolver = (*Cached)(nil)
