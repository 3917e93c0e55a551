package recall

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Strategy selects the eviction policy applied when a cache is at capacity.
type Strategy string

const (
	// StrategyLRU evicts the entry with the oldest access time.
	StrategyLRU Strategy = "lru"
	// StrategyLFU evicts the entry with the lowest access count, breaking
	// ties toward the oldest access time.
	StrategyLFU Strategy = "lfu"
	// StrategySimple evicts the entry with the oldest creation time,
	// independent of access patterns.
	StrategySimple Strategy = "simple"
)

// ParseStrategy returns the strategy named by raw.
func ParseStrategy(raw string) (Strategy, error) {
	strategy := Strategy(strings.ToLower(strings.TrimSpace(raw)))
	if !strategy.valid() {
		return "", fmt.Errorf("parse strategy %q: %w", raw, ErrUnknownStrategy)
	}

	return strategy, nil
}

func (s Strategy) valid() bool {
	switch s {
	case StrategyLRU, StrategyLFU, StrategySimple:
		return true
	default:
		return false
	}
}

// Config holds the immutable configuration of one cache instance.
//
// Registry is optional: when set, the cache registers itself under Namespace
// on construction and unregisters on Destroy, and its hits and misses are
// counted toward the registry's global counters alongside its own.
//
// SweepInterval <= 0 disables the background sweeper; lazy expiry on access
// still applies.
type Config struct {
	MaxEntries    int
	DefaultTTL    time.Duration
	Namespace     string
	Strategy      Strategy
	SweepInterval time.Duration
	Registry      *Registry
	Logger        *slog.Logger
}

func (cfg Config) validate() error {
	if cfg.MaxEntries <= 0 {
		return fmt.Errorf("%w: max entries must be positive, got %d", ErrInvalidConfig, cfg.MaxEntries)
	}
	if cfg.DefaultTTL <= 0 {
		return fmt.Errorf("%w: default ttl must be positive, got %s", ErrInvalidConfig, cfg.DefaultTTL)
	}
	if strings.TrimSpace(cfg.Namespace) == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidConfig)
	}
	if !cfg.Strategy.valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownStrategy, cfg.Strategy)
	}

	return nil
}
