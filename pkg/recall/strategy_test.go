package recall

import (
	"testing"
	"time"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Strategy
		wantErr bool
	}{
		{name: "lru", raw: "lru", want: StrategyLRU},
		{name: "lfu upper case", raw: "LFU", want: StrategyLFU},
		{name: "simple padded", raw: " simple ", want: StrategySimple},
		{name: "unknown", raw: "arc", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			strategy, err := ParseStrategy(testCase.raw)
			if testCase.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strategy != testCase.want {
				t.Fatalf("strategy = %q, want %q", strategy, testCase.want)
			}
		})
	}
}

func TestLRUEvictsLeastRecentlyAccessed(t *testing.T) {
	cache, clock := newTestCache(t, Config{MaxEntries: 2, Strategy: StrategyLRU})

	cache.Set("a", "1")
	clock.Advance(time.Millisecond)
	cache.Set("b", "2")
	clock.Advance(time.Millisecond)
	cache.Get("a")
	clock.Advance(time.Millisecond)
	cache.Set("c", "3")

	if cache.Has("b") {
		t.Fatal("expected b to be evicted")
	}
	if !cache.Has("a") || !cache.Has("c") {
		t.Fatalf("expected a and c to survive, keys = %v", cache.Keys())
	}
	if stats := cache.Stats(); stats.Evictions != 1 {
		t.Fatalf("evictions = %d, want 1", stats.Evictions)
	}
}

func TestLFUEvictsLeastFrequentlyAccessed(t *testing.T) {
	cache, clock := newTestCache(t, Config{MaxEntries: 2, Strategy: StrategyLFU})

	cache.Set("a", "1")
	clock.Advance(time.Millisecond)
	cache.Set("b", "2")
	clock.Advance(time.Millisecond)
	cache.Get("a")
	cache.Get("a")
	clock.Advance(time.Millisecond)
	cache.Set("c", "3")

	if cache.Has("b") {
		t.Fatal("expected b to be evicted with access count 0")
	}
	if !cache.Has("a") || !cache.Has("c") {
		t.Fatalf("expected a and c to survive, keys = %v", cache.Keys())
	}
}

func TestLFUTieBreaksTowardIdleEntry(t *testing.T) {
	cache, clock := newTestCache(t, Config{MaxEntries: 2, Strategy: StrategyLFU})

	cache.Set("stale", "1")
	cache.Set("fresh", "2")

	// Equal access counts; refresh only one entry's access time.
	clock.Advance(time.Millisecond)
	cache.Get("stale")
	clock.Advance(time.Millisecond)
	cache.Get("fresh")
	clock.Advance(time.Millisecond)
	cache.Set("new", "3")

	if cache.Has("stale") {
		t.Fatal("expected the idler of two equally counted entries to be evicted")
	}
	if !cache.Has("fresh") || !cache.Has("new") {
		t.Fatalf("expected fresh and new to survive, keys = %v", cache.Keys())
	}
}

func TestSimpleEvictsOldestCreated(t *testing.T) {
	cache, clock := newTestCache(t, Config{MaxEntries: 2, Strategy: StrategySimple})

	cache.Set("first", "1")
	clock.Advance(time.Millisecond)
	cache.Set("second", "2")

	// Heavy reads must not protect the oldest entry under the simple policy.
	for idx := 0; idx < 10; idx++ {
		cache.Get("first")
	}
	clock.Advance(time.Millisecond)
	cache.Set("third", "3")

	if cache.Has("first") {
		t.Fatal("expected the oldest created entry to be evicted")
	}
	if !cache.Has("second") || !cache.Has("third") {
		t.Fatalf("expected second and third to survive, keys = %v", cache.Keys())
	}
}

func TestOverwriteNeverEvicts(t *testing.T) {
	cache, clock := newTestCache(t, Config{MaxEntries: 2, Strategy: StrategyLRU})

	cache.Set("a", "1")
	clock.Advance(time.Millisecond)
	cache.Set("b", "2")
	clock.Advance(time.Millisecond)
	cache.Set("a", "updated")

	if cache.Len() != 2 {
		t.Fatalf("len = %d, want 2", cache.Len())
	}
	if stats := cache.Stats(); stats.Evictions != 0 {
		t.Fatalf("evictions = %d, want 0 after overwrite", stats.Evictions)
	}
}

func TestEvictionFreesExactlyOneSlot(t *testing.T) {
	cache, clock := newTestCache(t, Config{MaxEntries: 3, Strategy: StrategySimple})

	cache.Set("a", "1")
	clock.Advance(time.Millisecond)
	cache.Set("b", "2")
	clock.Advance(time.Millisecond)
	cache.Set("c", "3")
	clock.Advance(time.Millisecond)
	cache.Set("d", "4")

	if cache.Len() != 3 {
		t.Fatalf("len = %d, want capacity bound 3", cache.Len())
	}
	if stats := cache.Stats(); stats.Evictions != 1 {
		t.Fatalf("evictions = %d, want exactly 1", stats.Evictions)
	}
}
