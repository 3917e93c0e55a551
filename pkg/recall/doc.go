// Package recall provides a generic in-process memoization cache: a
// concurrency-safe, time-expiring, capacity-bounded key/value store with
// pluggable eviction (LRU, LFU, or creation-order), lazy and proactive
// expiry, glob and idle invalidation, and per-instance stats snapshots.
//
// Unrelated lookup services each construct their own namespaced instance to
// avoid redundant network or model calls; a shared Registry aggregates their
// hit/miss counters and supports bulk clearing and stats export. Caches in
// one process are independent: there is no cross-process coherence and no
// persistence.
package recall
