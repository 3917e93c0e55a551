// Package prometheus exports registry aggregate cache statistics as
// Prometheus metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"recall/pkg/recall"
)

// Collector implements prometheus.Collector over one cache registry. Each
// scrape takes fresh stats snapshots, so no background collection goroutine
// is needed.
type Collector struct {
	registry *recall.Registry

	hits        *prometheus.Desc
	misses      *prometheus.Desc
	evictions   *prometheus.Desc
	entries     *prometheus.Desc
	maxEntries  *prometheus.Desc
	memoryBytes *prometheus.Desc

	globalHits   *prometheus.Desc
	globalMisses *prometheus.Desc
}

// NewCollector creates a collector reading from registry.
func NewCollector(registry *recall.Registry) *Collector {
	namespaceLabel := []string{"namespace"}

	return &Collector{
		registry: registry,

		hits: prometheus.NewDesc(
			"recall_cache_hits_total",
			"Cache hits per namespace since last clear",
			namespaceLabel, nil,
		),
		misses: prometheus.NewDesc(
			"recall_cache_misses_total",
			"Cache misses per namespace since last clear",
			namespaceLabel, nil,
		),
		evictions: prometheus.NewDesc(
			"recall_cache_evictions_total",
			"Capacity evictions per namespace since last clear",
			namespaceLabel, nil,
		),
		entries: prometheus.NewDesc(
			"recall_cache_entries",
			"Current number of stored entries per namespace",
			namespaceLabel, nil,
		),
		maxEntries: prometheus.NewDesc(
			"recall_cache_max_entries",
			"Configured capacity bound per namespace",
			namespaceLabel, nil,
		),
		memoryBytes: prometheus.NewDesc(
			"recall_cache_memory_bytes",
			"Estimated memory usage per namespace",
			namespaceLabel, nil,
		),

		globalHits: prometheus.NewDesc(
			"recall_global_hits_total",
			"Aggregate cache hits across all registered namespaces",
			nil, nil,
		),
		globalMisses: prometheus.NewDesc(
			"recall_global_misses_total",
			"Aggregate cache misses across all registered namespaces",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.entries
	ch <- c.maxEntries
	ch <- c.memoryBytes
	ch <- c.globalHits
	ch <- c.globalMisses
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for namespace, snapshot := range c.registry.StatsAll() {
		ch <- prometheus.MustNewConstMetric(
			c.hits, prometheus.CounterValue, float64(snapshot.Hits), namespace)
		ch <- prometheus.MustNewConstMetric(
			c.misses, prometheus.CounterValue, float64(snapshot.Misses), namespace)
		ch <- prometheus.MustNewConstMetric(
			c.evictions, prometheus.CounterValue, float64(snapshot.Evictions), namespace)
		ch <- prometheus.MustNewConstMetric(
			c.entries, prometheus.GaugeValue, float64(snapshot.Size), namespace)
		ch <- prometheus.MustNewConstMetric(
			c.maxEntries, prometheus.GaugeValue, float64(snapshot.MaxSize), namespace)
		ch <- prometheus.MustNewConstMetric(
			c.memoryBytes, prometheus.GaugeValue, float64(snapshot.MemoryUsage), namespace)
	}

	ch <- prometheus.MustNewConstMetric(
		c.globalHits, prometheus.CounterValue, float64(c.registry.GlobalHits()))
	ch <- prometheus.MustNewConstMetric(
		c.globalMisses, prometheus.CounterValue, float64(c.registry.GlobalMisses()))
}

var _ prometheus.Collector = (*Collector)(nil)
