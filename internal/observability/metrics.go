// Package observability records session telemetry with Prometheus
// collectors on a private registry.
package observability

import (
	"fmt"
	"time"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "motionlens"

// Metrics holds the collectors of one process. It implements contract.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	events      *prometheus.CounterVec
	renders     *prometheus.CounterVec
	projections *prometheus.HistogramVec
	records     prometheus.Gauge
}

var _ contract.Recorder = &Metrics{} // Compile-time check

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Number of interaction events grouped by kind and outcome.",
		}, []string{"kind", "outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "renders_total",
			Help:      "Number of view renders grouped by view and result.",
		}, []string{"view", "result"}),
		projections: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "projection_seconds",
			Help:      "Time spent projecting the filter state for a view.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"view"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "records",
			Help:      "Number of records in the loaded dataset.",
		}),
	}
	m.registry.MustRegister(m.events, m.renders, m.projections, m.records)
	return m
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEvent counts one dispatched event.
func (m *Metrics) ObserveEvent(kind schema.EventKind, outcome string) {
	m.events.WithLabelValues(string(kind), outcome).Inc()
}

// ObserveRender counts one render attempt.
func (m *Metrics) ObserveRender(view schema.ViewKind, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.renders.WithLabelValues(string(view), result).Inc()
}

// ObserveProjection records the latency of one projection.
func (m *Metrics) ObserveProjection(view schema.ViewKind, d time.Duration) {
	m.projections.WithLabelValues(string(view)).Observe(d.Seconds())
}

// SetRecords sets the dataset size gauge.
func (m *Metrics) SetRecords(n int) {
	m.records.Set(float64(n))
}

// WriteToFile writes every collected metric in the Prometheus text format.
func (m *Metrics) WriteToFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
