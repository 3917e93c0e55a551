package recall

import (
	"testing"
	"time"
)

func newRegisteredCache(t *testing.T, registry *Registry, namespace string) *Cache[string] {
	t.Helper()

	cache, err := New[string](Config{
		MaxEntries: 8,
		DefaultTTL: time.Minute,
		Namespace:  namespace,
		Strategy:   StrategyLRU,
		Registry:   registry,
	})
	if err != nil {
		t.Fatalf("new cache %s failed: %v", namespace, err)
	}
	t.Cleanup(cache.Destroy)

	return cache
}

func TestConstructionRegistersCache(t *testing.T) {
	registry := NewRegistry()
	cache := newRegisteredCache(t, registry, "search")

	registered, exists := registry.Get("search")
	if !exists {
		t.Fatal("expected cache to be registered on construction")
	}
	if registered != RegisteredCache(cache) {
		t.Fatal("registered cache is not the constructed instance")
	}
}

func TestDuplicateNamespaceReplacesRegistration(t *testing.T) {
	registry := NewRegistry()
	first := newRegisteredCache(t, registry, "search")
	second := newRegisteredCache(t, registry, "search")

	registered, exists := registry.Get("search")
	if !exists {
		t.Fatal("expected a registration for the namespace")
	}
	if registered != RegisteredCache(second) {
		t.Fatal("expected the later cache to replace the earlier registration")
	}

	// Destroying the replaced instance must not unregister its replacement.
	first.Destroy()
	if _, exists := registry.Get("search"); !exists {
		t.Fatal("expected replacement to stay registered after stale destroy")
	}

	second.Destroy()
	if _, exists := registry.Get("search"); exists {
		t.Fatal("expected destroy to unregister the live instance")
	}
}

func TestGlobalCountersMatchPerCacheSums(t *testing.T) {
	registry := NewRegistry()
	searches := newRegisteredCache(t, registry, "search")
	docs := newRegisteredCache(t, registry, "docs")

	searches.Set("q1", "r1")
	searches.Get("q1")
	searches.Get("q2")
	docs.Get("absent")
	docs.Set("page", "text")
	docs.Get("page")

	var hitSum, missSum uint64
	for _, snapshot := range registry.StatsAll() {
		hitSum += snapshot.Hits
		missSum += snapshot.Misses
	}

	if hitSum != registry.GlobalHits() {
		t.Fatalf("hit sum = %d, global = %d", hitSum, registry.GlobalHits())
	}
	if missSum != registry.GlobalMisses() {
		t.Fatalf("miss sum = %d, global = %d", missSum, registry.GlobalMisses())
	}
	if registry.GlobalHits() != 2 || registry.GlobalMisses() != 2 {
		t.Fatalf("global hits/misses = %d/%d, want 2/2", registry.GlobalHits(), registry.GlobalMisses())
	}
}

func TestClearAllClearsCachesAndGlobalCounters(t *testing.T) {
	registry := NewRegistry()
	searches := newRegisteredCache(t, registry, "search")
	docs := newRegisteredCache(t, registry, "docs")

	searches.Set("a", "1")
	searches.Get("a")
	docs.Set("b", "2")
	docs.Get("absent")

	registry.ClearAll()

	if searches.Len() != 0 || docs.Len() != 0 {
		t.Fatalf("lens = %d/%d, want 0/0 after clear all", searches.Len(), docs.Len())
	}
	if registry.GlobalHits() != 0 || registry.GlobalMisses() != 0 {
		t.Fatalf("global counters = %d/%d, want 0/0 after clear all",
			registry.GlobalHits(), registry.GlobalMisses())
	}
	for namespace, snapshot := range registry.StatsAll() {
		if snapshot.Hits != 0 || snapshot.Misses != 0 {
			t.Fatalf("namespace %s counters = %d/%d, want 0/0", namespace, snapshot.Hits, snapshot.Misses)
		}
	}
}

func TestClearNamespace(t *testing.T) {
	registry := NewRegistry()
	searches := newRegisteredCache(t, registry, "search")
	docs := newRegisteredCache(t, registry, "docs")

	searches.Set("a", "1")
	docs.Set("b", "2")

	if !registry.ClearNamespace("search") {
		t.Fatal("expected clearing a registered namespace to report true")
	}
	if registry.ClearNamespace("unknown") {
		t.Fatal("expected clearing an unknown namespace to report false")
	}

	if searches.Len() != 0 {
		t.Fatalf("search len = %d, want 0", searches.Len())
	}
	if docs.Len() != 1 {
		t.Fatalf("docs len = %d, want untouched 1", docs.Len())
	}
}

func TestStatsAllKeysByNamespace(t *testing.T) {
	registry := NewRegistry()
	newRegisteredCache(t, registry, "search")
	newRegisteredCache(t, registry, "docs")

	stats := registry.StatsAll()
	if len(stats) != 2 {
		t.Fatalf("stats count = %d, want 2", len(stats))
	}
	for namespace, snapshot := range stats {
		if snapshot.Namespace != namespace {
			t.Fatalf("snapshot namespace = %q under key %q", snapshot.Namespace, namespace)
		}
	}
}

func TestUnregisterDropsAssociation(t *testing.T) {
	registry := NewRegistry()
	newRegisteredCache(t, registry, "search")

	registry.Unregister("search")
	if _, exists := registry.Get("search"); exists {
		t.Fatal("expected namespace to be gone after unregister")
	}
	if all := registry.All(); len(all) != 0 {
		t.Fatalf("all = %v, want empty", all)
	}
}

func TestStandaloneCacheWithoutRegistry(t *testing.T) {
	cache, _ := newTestCache(t, Config{})

	cache.Set("a", "1")
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("expected standalone cache to serve hits")
	}
	cache.Destroy()
}
