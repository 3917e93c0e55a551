package recall

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SetOption mutates per-write options.
type SetOption func(*setOptions)

type setOptions struct {
	ttl time.Duration
}

// WithTTL overrides the cache default TTL for one write. Non-positive values
// fall back to the default.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
	}
}

// Cache is a concurrency-safe, capacity-bounded, time-expiring key/value
// store. One instance holds values of a single type V and is identified by
// its namespace.
//
// A cache never reports errors for ordinary use: absent keys, expired keys,
// and operations after Destroy all resolve to absent or empty results.
type Cache[V any] struct {
	namespace     string
	maxEntries    int
	defaultTTL    time.Duration
	strategy      Strategy
	sweepInterval time.Duration
	registry      *Registry
	logger        *slog.Logger
	clock         func() time.Time

	mu        sync.Mutex
	entries   map[string]*entry[V]
	hits      uint64
	misses    uint64
	evictions uint64
	destroyed bool

	cancelSweep context.CancelFunc
	sweepDone   sync.WaitGroup
}

// New constructs a cache from cfg, starts its background sweeper when
// configured, and registers it with the configured registry. It fails fast on
// invalid configuration and never afterward.
func New[V any](cfg Config) (*Cache[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache := &Cache[V]{
		namespace:     cfg.Namespace,
		maxEntries:    cfg.MaxEntries,
		defaultTTL:    cfg.DefaultTTL,
		strategy:      cfg.Strategy,
		sweepInterval: cfg.SweepInterval,
		registry:      cfg.Registry,
		logger:        logger,
		clock:         time.Now,
		entries:       make(map[string]*entry[V]),
	}

	if cache.sweepInterval > 0 {
		cache.startSweeper()
	}
	if cache.registry != nil {
		cache.registry.Register(cache.namespace, cache)
	}

	return cache, nil
}

// Namespace returns the stable cache identifier.
func (c *Cache[V]) Namespace() string {
	return c.namespace
}

// Get returns the live value stored under key. Expired entries are removed on
// access and reported as misses. A hit refreshes the entry access metadata.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return zero, false
	}

	stored, exists := c.entries[key]
	if !exists {
		c.recordMissLocked()
		return zero, false
	}
	if stored.expired(now) {
		delete(c.entries, key)
		c.recordMissLocked()
		return zero, false
	}

	stored.accessedAt = now
	stored.accessCount++
	c.recordHitLocked()

	return stored.value, true
}

// Set inserts or overwrites the value stored under key. Inserting a new key
// into a full cache evicts exactly one victim chosen by the eviction
// strategy; overwriting never evicts and resets the entry metadata.
func (c *Cache[V]) Set(key string, value V, opts ...SetOption) {
	options := setOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	ttl := options.ttl
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	valueBytes := estimateValueBytes(value)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}

	c.entries[key] = &entry[V]{
		value:      value,
		createdAt:  now,
		accessedAt: now,
		expiresAt:  now.Add(ttl),
		valueBytes: valueBytes,
	}
}

// Has reports whether a live value is stored under key. It removes the entry
// when it has expired but never mutates access metadata or hit/miss counters.
func (c *Cache[V]) Has(key string) bool {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return false
	}

	stored, exists := c.entries[key]
	if !exists {
		return false
	}
	if stored.expired(now) {
		delete(c.entries, key)
		return false
	}

	return true
}

// Delete removes the entry stored under key and reports whether it was
// present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return false
	}

	_, exists := c.entries[key]
	delete(c.entries, key)

	return exists
}

// Clear removes all entries and resets the hit, miss, and eviction counters.
// Counters therefore always read "since last clear".
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}

	c.entries = make(map[string]*entry[V])
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// Len returns the number of stored entries, including expired entries that
// have not yet been removed lazily or by the sweeper.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Keys returns a snapshot of all stored keys in unspecified order.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}

	return keys
}

// Destroy permanently retires the cache: it stops the sweeper, clears the
// store, and unregisters from the registry. Destroy is idempotent and safe to
// call while other operations are in flight; every later operation is a no-op
// returning absent or empty results.
func (c *Cache[V]) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	entryCount := len(c.entries)
	c.entries = make(map[string]*entry[V])
	cancel := c.cancelSweep
	c.mu.Unlock()

	// Join the sweeper outside the lock so an in-flight sweep can finish.
	if cancel != nil {
		cancel()
		c.sweepDone.Wait()
	}
	if c.registry != nil {
		c.registry.unregisterInstance(c.namespace, c)
	}

	c.logger.Info("cache destroyed",
		"namespace", c.namespace,
		"entries", entryCount,
	)
}

func (c *Cache[V]) recordHitLocked() {
	c.hits++
	if c.registry != nil {
		c.registry.recordHit()
	}
}

func (c *Cache[V]) recordMissLocked() {
	c.misses++
	if c.registry != nil {
		c.registry.recordMiss()
	}
}

func (c *Cache[V]) now() time.Time {
	return c.clock().UTC()
}

var _ RegisteredCache = (*Cache[any])(nil)
