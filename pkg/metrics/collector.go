// Package metrics exposes cache statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashpect/cachemgr/pkg/cache"
)

// StatsSource is anything that can report cache stats. *cache.TTLCache satisfies it.
type StatsSource interface {
	Stats() cache.Stats
}

// Collector reads stats from its source on every scrape.
type Collector struct {
	src     StatsSource
	entries *prometheus.Desc
	total   *prometheus.Desc
}

// NewCollector creates a collector with metric names prefixed by namespace.
func NewCollector(namespace string, src StatsSource) *Collector {
	return &Collector{
		src: src,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Number of cache entries by expiry state",
			[]string{"state"}, nil,
		),
		total: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries_total"),
			"Number of stored cache entries, including expired ones not yet removed",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.total
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Active), "active")
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Expired), "expired")
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.Total))
}

// Handler serves the metrics gathered by reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
