// Package typecache memoizes metadata derived from types for the lifetime of
// the process.
//
// Entries are keyed by a view name and a type identity. They are computed at
// most once per Cache, stored even when empty, and never evicted: the shape
// and members of a type cannot change while the process runs.
package typecache

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"typemeta/meta"
)

// Key identifies one cached view of one type.
type Key struct {
	View string      // e.g., "shape", "enum.names"
	Type meta.TypeID // Type the view was derived from
}

// String returns a human-readable representation of the Key.
func (k Key) String() string {
	return k.View + ":" + k.Type.String()
}

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache is a concurrency-safe, unbounded, never-expiring memo table.
// The zero value is not usable; create one with New.
type Cache struct {
	entries sync.Map // Key -> *entry
	size    atomic.Int64
	hits    atomic.Uint64
	misses  atomic.Uint64
	logger  *zap.Logger
}

// entry holds one value. done is set only after compute returns, so a
// compute that panics leaves the entry empty and the next caller retries.
type entry struct {
	mu    sync.Mutex
	done  atomic.Bool
	value any
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used to report computations.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetOrCompute returns the value stored under key, calling compute to
// produce it on first use. Concurrent first-time callers for the same key
// wait for a single computation and all receive its result. If compute
// panics, nothing is stored and the panic propagates to that caller.
func (c *Cache) GetOrCompute(key Key, compute func() any) any {
	if e, ok := c.entries.Load(key); ok {
		c.hits.Add(1)
		return e.(*entry).get(key, compute, c)
	}

	e, loaded := c.entries.LoadOrStore(key, &entry{})
	if loaded {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
		c.size.Add(1)
	}

	return e.(*entry).get(key, compute, c)
}

func (e *entry) get(key Key, compute func() any, c *Cache) any {
	if e.done.Load() {
		return e.value
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.done.Load() {
		e.value = compute()
		e.done.Store(true)
		c.logger.Debug("computed type metadata", zap.Stringer("key", key))
	}

	return e.value
}

// Get is the typed form of GetOrCompute.
func Get[V any](c *Cache, key Key, compute func() V) V {
	v := c.GetOrCompute(key, func() any { return compute() })
	if v == nil {
		var zero V
		return zero
	}

	return v.(V)
}

// Len returns the number of keys ever requested.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Stats returns a snapshot of the hit and miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
