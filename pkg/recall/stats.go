package recall

import "time"

// StatsSnapshot is a point-in-time view of one cache's counters and store
// shape. MemoryUsage is a heuristic estimate (fixed per-entry overhead plus
// the serialized size of each value), not an exact byte accounting.
type StatsSnapshot struct {
	Namespace   string     `json:"namespace"`
	Strategy    Strategy   `json:"strategy"`
	Hits        uint64     `json:"hits"`
	Misses      uint64     `json:"misses"`
	HitRate     float64    `json:"hitRate"`
	Size        int        `json:"size"`
	MaxSize     int        `json:"maxSize"`
	Evictions   uint64     `json:"evictions"`
	MemoryUsage int64      `json:"memoryUsage"`
	OldestEntry *time.Time `json:"oldestEntry,omitempty"`
	NewestEntry *time.Time `json:"newestEntry,omitempty"`
}

// Stats returns a consistent snapshot of the cache counters and store shape.
// After Destroy it returns an empty snapshot carrying only identity fields.
func (c *Cache[V]) Stats() StatsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := StatsSnapshot{
		Namespace: c.namespace,
		Strategy:  c.strategy,
		MaxSize:   c.maxEntries,
	}
	if c.destroyed {
		return snapshot
	}

	snapshot.Hits = c.hits
	snapshot.Misses = c.misses
	snapshot.Evictions = c.evictions
	snapshot.Size = len(c.entries)
	if accesses := c.hits + c.misses; accesses > 0 {
		snapshot.HitRate = float64(c.hits) / float64(accesses)
	}

	var oldest, newest time.Time
	var memory int64
	for _, stored := range c.entries {
		memory += entryOverheadBytes + int64(stored.valueBytes)
		if oldest.IsZero() || stored.createdAt.Before(oldest) {
			oldest = stored.createdAt
		}
		if newest.IsZero() || stored.createdAt.After(newest) {
			newest = stored.createdAt
		}
	}
	snapshot.MemoryUsage = memory
	if !oldest.IsZero() {
		snapshot.OldestEntry = &oldest
	}
	if !newest.IsZero() {
		snapshot.NewestEntry = &newest
	}

	return snapshot
}
