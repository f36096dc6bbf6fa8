// Package metrics counts what happens during discovery searches.
//
// A Collector owns a private Prometheus registry, so a one-shot CLI run can
// export its counters to a node_exporter textfile without global state:
//
//	c := metrics.NewCollector()
//	searcher := discovery.NewSearcher(discovery.WithMetrics(c))
//	...
//	if err := c.WriteTextfile("/var/lib/node_exporter/lightssdp.prom"); err != nil {
//	    return err
//	}
//
// Every method is safe on a nil *Collector, which records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lightssdp"

// Collector holds the discovery counters
type Collector struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	queriesSent    prometheus.Counter
	shortWrites    prometheus.Counter
	datagrams      *prometheus.CounterVec
	devices        *prometheus.CounterVec
	lastFound      prometheus.Gauge
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of discovery searches by outcome",
			},
			[]string{"outcome"},
		),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of completed discovery searches",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 10, 30},
		}),
		queriesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_sent_total",
			Help:      "Total number of M-SEARCH transmissions",
		}),
		shortWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_short_writes_total",
			Help:      "Total number of M-SEARCH transmissions that wrote fewer bytes than intended",
		}),
		datagrams: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "datagrams_total",
				Help:      "Total number of parsed datagrams by handling outcome",
			},
			[]string{"outcome"},
		),
		devices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "devices_discovered_total",
				Help:      "Total number of distinct devices discovered by type",
			},
			[]string{"type"},
		),
		lastFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_search_devices",
			Help:      "Number of devices in the most recent search result",
		}),
	}

	c.registry.MustRegister(
		c.searches,
		c.searchDuration,
		c.queriesSent,
		c.shortWrites,
		c.datagrams,
		c.devices,
		c.lastFound,
	)
	return c
}

// Registry exposes the collector's registry, e.g. for promhttp
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// QuerySent records one M-SEARCH transmission
func (c *Collector) QuerySent(short bool) {
	if c == nil {
		return
	}
	c.queriesSent.Inc()
	if short {
		c.shortWrites.Inc()
	}
}

// Datagram records how a parsed datagram was handled
func (c *Collector) Datagram(outcome string) {
	if c == nil {
		return
	}
	c.datagrams.WithLabelValues(outcome).Inc()
}

// DeviceDiscovered records a newly inserted device
func (c *Collector) DeviceDiscovered(deviceType string) {
	if c == nil {
		return
	}
	c.devices.WithLabelValues(deviceType).Inc()
}

// SearchCompleted records a finished search
func (c *Collector) SearchCompleted(found int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.searches.WithLabelValues("completed").Inc()
	c.searchDuration.Observe(elapsed.Seconds())
	c.lastFound.Set(float64(found))
}

// SearchFailed records a search that could not start
func (c *Collector) SearchFailed() {
	if c == nil {
		return
	}
	c.searches.WithLabelValues("failed").Inc()
}

// WriteTextfile writes every metric in the Prometheus text format, atomically
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return fmt.Errorf("no metrics collected")
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
