package recall

import (
	"sync"
	"sync/atomic"
)

// RegisteredCache is the value-type-independent view of a cache that the
// registry tracks. Every *Cache[V] satisfies it.
type RegisteredCache interface {
	Namespace() string
	Len() int
	Clear()
	Destroy()
	Stats() StatsSnapshot
}

// Registry tracks live cache instances by namespace and aggregates global
// hit/miss counters across them. It holds references, never ownership: caches
// are constructed and destroyed by their consumers.
//
// A registry is an explicit object owned by the application startup sequence
// and injected into each cache via Config; there is no package-level
// singleton, so tests can instantiate a fresh registry per case.
type Registry struct {
	mu     sync.RWMutex
	caches map[string]RegisteredCache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRegistry creates an empty cache registry.
func NewRegistry() *Registry {
	return &Registry{
		caches: make(map[string]RegisteredCache),
	}
}

// Register binds a cache to its namespace, replacing any prior association.
// At most one cache is registered per namespace at any instant. New calls
// this for caches constructed with a registry in their config.
func (r *Registry) Register(namespace string, cache RegisteredCache) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.caches[namespace] = cache
}

// Unregister drops the association for namespace, if any.
func (r *Registry) Unregister(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.caches, namespace)
}

// unregisterInstance drops the association for namespace only while cache is
// still the registered instance. A destroyed cache must not unregister a
// replacement registered under the same namespace.
func (r *Registry) unregisterInstance(namespace string, cache RegisteredCache) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, exists := r.caches[namespace]; exists && current == cache {
		delete(r.caches, namespace)
	}
}

// Get returns the cache registered under namespace.
func (r *Registry) Get(namespace string) (RegisteredCache, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cache, exists := r.caches[namespace]

	return cache, exists
}

// All returns a snapshot of every registered cache keyed by namespace.
func (r *Registry) All() map[string]RegisteredCache {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]RegisteredCache, len(r.caches))
	for namespace, cache := range r.caches {
		snapshot[namespace] = cache
	}

	return snapshot
}

// ClearAll clears every registered cache and resets the global hit/miss
// counters.
func (r *Registry) ClearAll() {
	for _, cache := range r.All() {
		cache.Clear()
	}
	r.hits.Store(0)
	r.misses.Store(0)
}

// ClearNamespace clears the cache registered under namespace and reports
// whether one was registered.
func (r *Registry) ClearNamespace(namespace string) bool {
	cache, exists := r.Get(namespace)
	if !exists {
		return false
	}
	cache.Clear()

	return true
}

// StatsAll returns a stats snapshot for every registered cache keyed by
// namespace.
func (r *Registry) StatsAll() map[string]StatsSnapshot {
	caches := r.All()

	stats := make(map[string]StatsSnapshot, len(caches))
	for namespace, cache := range caches {
		stats[namespace] = cache.Stats()
	}

	return stats
}

// GlobalHits returns the aggregate hit count across all caches that report to
// this registry, since construction or the last ClearAll.
func (r *Registry) GlobalHits() uint64 {
	return r.hits.Load()
}

// GlobalMisses returns the aggregate miss count across all caches that report
// to this registry, since construction or the last ClearAll.
func (r *Registry) GlobalMisses() uint64 {
	return r.misses.Load()
}

func (r *Registry) recordHit() {
	r.hits.Add(1)
}

func (r *Registry) recordMiss() {
	r.misses.Add(1)
}
