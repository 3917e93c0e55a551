package recall

import (
	"context"
	"time"
)

// sweepBatchSize caps how many deletions happen per lock acquisition so a
// sweep over a large store cannot starve foreground operations.
const sweepBatchSize = 128

func (c *Cache[V]) startSweeper() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelSweep = cancel

	c.sweepDone.Add(1)
	go c.sweepLoop(ctx)
}

func (c *Cache[V]) sweepLoop(ctx context.Context) {
	defer c.sweepDone.Done()

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.sweepExpired(); removed > 0 {
				c.logger.Debug("sweep removed expired entries",
					"namespace", c.namespace,
					"removed", removed,
				)
			}
		}
	}
}

// sweepExpired proactively removes entries whose TTL has elapsed. It exists
// for keys that are written often but read rarely, where lazy expiry on
// access would never trigger.
func (c *Cache[V]) sweepExpired() int {
	now := c.now()

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return 0
	}
	expired := make([]string, 0)
	for key, stored := range c.entries {
		if stored.expired(now) {
			expired = append(expired, key)
		}
	}
	c.mu.Unlock()

	removed := 0
	for start := 0; start < len(expired); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(expired))

		c.mu.Lock()
		if c.destroyed {
			c.mu.Unlock()
			return removed
		}
		for _, key := range expired[start:end] {
			stored, exists := c.entries[key]
			// Re-check: the key may have been overwritten with a fresh
			// TTL between the scan and this batch.
			if exists && stored.expired(now) {
				delete(c.entries, key)
				removed++
			}
		}
		c.mu.Unlock()
	}

	return removed
}
