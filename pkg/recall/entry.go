package recall

import (
	"encoding/json"
	"fmt"
	"time"
)

// entryOverheadBytes is the fixed per-entry bookkeeping cost charged by the
// memory usage estimate on top of the serialized value size.
const entryOverheadBytes = 112

type entry[V any] struct {
	value       V
	createdAt   time.Time
	accessedAt  time.Time
	expiresAt   time.Time
	accessCount uint64
	valueBytes  int
}

func (e *entry[V]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// estimateValueBytes approximates the serialized size of a cached value.
// Values that cannot be marshaled fall back to string coercion so that stats
// estimation never fails a cache operation.
func estimateValueBytes(value any) int {
	encoded, err := json.Marshal(value)
	if err != nil {
		return len(fmt.Sprint(value))
	}

	return len(encoded)
}
