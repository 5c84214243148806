// Package metrics exposes the pipeline's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for one pipeline run.
type Metrics struct {
	FramesProduced     prometheus.Counter
	FramesPersisted    prometheus.Counter
	FramesDropped      prometheus.Counter
	PersistFailures    prometheus.Counter
	GenerationFailures prometheus.Counter

	GenerationSeconds prometheus.Histogram
	PersistSeconds    prometheus.Histogram
	EnqueueSeconds    prometheus.Histogram

	QueueDepth prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a metrics set on a private registry (so repeated runs in
// one process never collide on collector registration).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		reg.MustRegister(c)
		return c
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets})
		reg.MustRegister(h)
		return h
	}

	// Generation and enqueue are sub-millisecond operations; persistence
	// spans real I/O. Buckets sized accordingly.
	fastBuckets := []float64{.00001, .0001, .001, .005, .01, .05, .1}
	ioBuckets := []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

	m := &Metrics{
		FramesProduced:     factory("camsim_frames_produced_total", "Frames generated and pushed by the producer"),
		FramesPersisted:    factory("camsim_frames_persisted_total", "Frames successfully written by the sink"),
		FramesDropped:      factory("camsim_frames_dropped_total", "Frames evicted by the drop-oldest queue"),
		PersistFailures:    factory("camsim_persist_failures_total", "Frames the sink failed to write"),
		GenerationFailures: factory("camsim_generation_failures_total", "Producer cycles skipped due to generator errors"),

		GenerationSeconds: histogram("camsim_generation_seconds", "Frame generation latency", fastBuckets),
		PersistSeconds:    histogram("camsim_persist_seconds", "Frame persistence latency", ioBuckets),
		EnqueueSeconds:    histogram("camsim_enqueue_seconds", "Queue push latency", fastBuckets),

		registry: reg,
	}

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "camsim_queue_depth",
		Help: "Current frame queue depth",
	})
	reg.MustRegister(gauge)
	m.QueueDepth = gauge

	return m
}

// Handler returns an HTTP handler serving this metrics set, for an
// optional /metrics listener.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
