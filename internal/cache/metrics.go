package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Store metrics. Every series carries a "cache" label equal to the Group set
// in ProviderConfig.
var (
	// HitsTotal counts container lookups that found stored content.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_store_hits_total",
			Help: "Total number of container lookups that found stored content.",
		},
		[]string{"cache"},
	)

	// MissesTotal counts container lookups that found nothing.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_store_misses_total",
			Help: "Total number of container lookups that found nothing.",
		},
		[]string{"cache"},
	)

	// EvictionsTotal counts containers evicted by the memory backend.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_store_evictions_total",
			Help: "Total number of containers evicted from the store.",
		},
		[]string{"cache"},
	)

	entries = &entriesCollector{
		desc: prometheus.NewDesc(
			"showfinder_store_entries",
			"Current number of containers in the store.",
			[]string{"cache"},
			nil,
		),
		groups: make(map[string]func() int),
	}
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		EvictionsTotal,
		entries,
	)
}

// entriesCollector reports the size of every instrumented store by calling
// its Len at scrape time, so Redis-side expiry never leaves a stale gauge.
type entriesCollector struct {
	desc   *prometheus.Desc
	mu     sync.Mutex
	groups map[string]func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for group, lenFunc := range c.groups {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(lenFunc()), group)
	}
}

// registerEntriesCollector starts reporting the size of group. A later call
// for the same group replaces the previous length function.
func registerEntriesCollector(group string, lenFunc func() int) {
	entries.mu.Lock()
	defer entries.mu.Unlock()
	entries.groups[group] = lenFunc
}

// unregisterEntriesCollector stops reporting the size of group.
func unregisterEntriesCollector(group string) {
	entries.mu.Lock()
	defer entries.mu.Unlock()
	delete(entries.groups, group)
}
