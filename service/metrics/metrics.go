// Package metrics exposes network execution counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "fbp"
	subsystem = "network"
)

// Metrics holds network level collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	Iterations        prometheus.Counter
	Deliveries        *prometheus.CounterVec
	Failures          *prometheus.CounterVec
	QueueDepth        prometheus.Gauge
	IterationDuration prometheus.Histogram
	registry          *prometheus.Registry
}

// New creates collectors registered with a dedicated registry
func New() *Metrics {
	ret := &Metrics{
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "iterations_total",
			Help:      "Total number of run iterations",
		}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "deliveries_total",
			Help:      "Total number of queued packets delivered",
		}, []string{"process"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "Total number of failed deliveries",
		}, []string{"process"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_depth",
			Help:      "Number of packets pending delivery",
		}),
		IterationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "iteration_duration_seconds",
			Help:      "Run iteration duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}
	ret.registry.MustRegister(ret.Iterations, ret.Deliveries, ret.Failures, ret.QueueDepth, ret.IterationDuration)
	return ret
}

// RecordIteration counts an iteration and observes its duration
func (m *Metrics) RecordIteration(duration time.Duration) {
	if m == nil {
		return
	}
	m.Iterations.Inc()
	m.IterationDuration.Observe(duration.Seconds())
}

// RecordDelivery counts a delivery to process
func (m *Metrics) RecordDelivery(process string) {
	if m == nil {
		return
	}
	m.Deliveries.WithLabelValues(process).Inc()
}

// RecordFailure counts a failed delivery to process
func (m *Metrics) RecordFailure(process string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(process).Inc()
}

// RecordQueueDepth sets the pending queue size
func (m *Metrics) RecordQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(depth))
}

// Registry returns the prometheus registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
