package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotLoaded is returned by guarded queries whose discriminator is missing
// (empty slug or keyword, non-positive id). It means "nothing to show yet",
// not a failure.
var ErrNotLoaded = errors.New("query: not loaded")

var queryLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	queryLogger = l
}

type entry struct {
	value     any
	fetchedAt time.Time

	// stale marks the entry for refetch on next access. Invalidation sets it;
	// it never removes the entry or cancels a flight.
	stale bool
}

type flight struct {
	done chan struct{}
	val  any
	err  error

	// invalidated records an Invalidate that arrived while the fetch was in
	// the air: the result still lands, but lands stale.
	invalidated bool
}

// Cache is the process-wide query cache. All reads and writes for a given key
// are linearizable under last-write-wins / last-invalidation-wins.
type Cache struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	inflight map[Key]*flight

	now func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries:  make(map[Key]*entry),
		inflight: make(map[Key]*flight),
		now:      time.Now,
	}
}

// FetchFunc loads a value from the network on a cache miss.
type FetchFunc func(ctx context.Context) (any, error)

// Fetch returns the cached value for key when it is fresh, otherwise loads it
// via fn. freshFor is the staleness window: zero means "always considered
// possibly stale", so any access past the current snapshot refetches. A fetch
// already in flight for the same key is shared, never duplicated; errors are
// shared with the waiters but never cached.
func (c *Cache) Fetch(ctx context.Context, key Key, freshFor time.Duration, fn FetchFunc) (any, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok && !e.stale && freshFor > 0 && c.now().Sub(e.fetchedAt) < freshFor {
		c.mu.Unlock()
		cacheHits.Inc()
		return e.value, nil
	}

	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		cacheDeduped.Inc()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// If a stale (or default always-stale) snapshot exists it stays readable
	// through Peek while we refetch; Fetch itself waits for fresh data.
	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	cacheMisses.Inc()
	val, err := fn(ctx)

	c.mu.Lock()
	delete(c.inflight, key)
	f.val, f.err = val, err
	if err == nil {
		c.entries[key] = &entry{
			value:     val,
			fetchedAt: c.now(),
			stale:     f.invalidated,
		}
	}
	c.mu.Unlock()
	close(f.done)

	return val, err
}

// Invalidate marks every entry under the prefix stale and flags matching
// in-flight fetches so their results land already stale. It is idempotent:
// re-invalidating an invalidated key changes nothing.
func (c *Cache) Invalidate(p Prefix) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, e := range c.entries {
		if p.Matches(k) && !e.stale {
			e.stale = true
			n++
		}
	}
	for k, f := range c.inflight {
		if p.Matches(k) {
			f.invalidated = true
		}
	}

	if n > 0 {
		cacheInvalidations.Add(float64(n))
		queryLogger.Debug().Str("family", string(p.Family)).Int("post_id", p.PostID).Int("entries", n).Msg("Invalidated cache entries")
	}
}

// MarkStale invalidates a single key, for explicit user-triggered refetch.
func (c *Cache) MarkStale(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && !e.stale {
		e.stale = true
		cacheInvalidations.Inc()
	}
}

// Peek returns the cached value for key regardless of staleness.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// IsStale reports whether the entry for key exists and is marked stale.
func (c *Cache) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && e.stale
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fetch is the typed wrapper around Cache.Fetch.
func Fetch[T any](ctx context.Context, c *Cache, key Key, freshFor time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	val, err := c.Fetch(ctx, key, freshFor, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return val.(T), nil
}
