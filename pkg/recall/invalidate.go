package recall

import (
	"regexp"
	"strings"
	"time"
)

// InvalidatePattern removes every entry whose key matches glob and returns
// the number removed. The glob supports only `*` as a wildcard and is
// anchored at both ends: "user:*" matches "user:123" but not
// "other:user:123".
func (c *Cache[V]) InvalidatePattern(glob string) int {
	matcher := compileGlob(glob)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return 0
	}

	removed := 0
	for key := range c.entries {
		if matcher.MatchString(key) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// InvalidateIdle removes every entry that has not been accessed within
// maxIdle, independent of its TTL, and returns the number removed. It is an
// operational escape hatch distinct from expiry.
func (c *Cache[V]) InvalidateIdle(maxIdle time.Duration) int {
	cutoff := c.now().Add(-maxIdle)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return 0
	}

	removed := 0
	for key, stored := range c.entries {
		if stored.accessedAt.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// compileGlob translates a `*`-only glob into an anchored regular expression.
// Every non-wildcard rune is quoted, so the compiled pattern is always valid.
func compileGlob(glob string) *regexp.Regexp {
	segments := strings.Split(glob, "*")
	quoted := make([]string, len(segments))
	for idx, segment := range segments {
		quoted[idx] = regexp.QuoteMeta(segment)
	}

	return regexp.MustCompile("^" + strings.Join(quoted, ".*") + "$")
}
