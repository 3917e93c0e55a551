package recall

// evictOneLocked removes exactly one victim chosen by the eviction strategy
// and counts the eviction. The scan is bounded by the capacity limit.
func (c *Cache[V]) evictOneLocked() {
	var victimKey string
	var victim *entry[V]

	for key, candidate := range c.entries {
		if victim == nil || outranks(c.strategy, candidate, victim) {
			victimKey = key
			victim = candidate
		}
	}
	if victim == nil {
		return
	}

	delete(c.entries, victimKey)
	c.evictions++
}

// outranks reports whether candidate is a better victim than incumbent under
// the given strategy.
//
// LRU prefers the oldest access time, so entries refreshed by reads survive.
// LFU prefers the lowest access count and breaks ties toward the oldest
// access time, evicting the idler of two equally cold entries. Simple prefers
// the oldest creation time regardless of how the entry has been used.
func outranks[V any](strategy Strategy, candidate, incumbent *entry[V]) bool {
	switch strategy {
	case StrategyLRU:
		return candidate.accessedAt.Before(incumbent.accessedAt)
	case StrategyLFU:
		if candidate.accessCount != incumbent.accessCount {
			return candidate.accessCount < incumbent.accessCount
		}
		return candidate.accessedAt.Before(incumbent.accessedAt)
	default:
		return candidate.createdAt.Before(incumbent.createdAt)
	}
}
