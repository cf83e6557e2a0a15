// Package metrics exposes Prometheus metrics for map-processor evaluation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// EvalMetrics tracks map-processor evaluation activity.
//
// Metrics:
//   - radiusd_mapproc_evaluations_total: evaluations by processor, block, rcode
//   - radiusd_mapproc_evaluation_duration_seconds: evaluation latency by processor
//   - radiusd_mapproc_expansion_failures_total: template expansion failures by block
//   - radiusd_mapproc_registered_processors: current registry size
type EvalMetrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	expansionFailures  *prometheus.CounterVec
	registeredProcs    prometheus.Gauge
}

// NewEvalMetrics creates and registers evaluation metrics with the provided
// registry.
func NewEvalMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *EvalMetrics {
	m := &EvalMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of map processor evaluations",
			},
			[]string{"processor", "block", "rcode"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of map processor evaluations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"processor"},
		),

		expansionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "expansion_failures_total",
				Help:      "Total number of map source template expansion failures",
			},
			[]string{"block"},
		),

		registeredProcs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registered_processors",
				Help:      "Number of map processors currently registered",
			},
		),
	}

	registry.MustRegister(
		m.evaluationsTotal,
		m.evaluationDuration,
		m.expansionFailures,
		m.registeredProcs,
	)

	return m
}

// RecordEvaluation records one completed evaluation.
func (m *EvalMetrics) RecordEvaluation(processor, block string, rcode radius.Rcode, duration time.Duration) {
	if m == nil {
		return
	}
	m.evaluationsTotal.WithLabelValues(processor, block, rcode.String()).Inc()
	m.evaluationDuration.WithLabelValues(processor).Observe(duration.Seconds())
}

// RecordExpansionFailure records a template expansion failure for a block.
func (m *EvalMetrics) RecordExpansionFailure(block string) {
	if m == nil {
		return
	}
	m.expansionFailures.WithLabelValues(block).Inc()
}

// SetRegisteredProcessors updates the registry size gauge.
func (m *EvalMetrics) SetRegisteredProcessors(n int) {
	if m == nil {
		return
	}
	m.registeredProcs.Set(float64(n))
}
