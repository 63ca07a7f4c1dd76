// Package metrics instruments optimization runs with prometheus
// collectors. The engine records every completed run; embedders that
// expose an HTTP surface can mount the Registry on their own handler.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics aggregates the engine's prometheus collectors on a private
// registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	runs        *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	iterations  *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankopt",
			Name:      "runs_total",
			Help:      "Completed optimization runs by method and termination status.",
		}, []string{"method", "status"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankopt",
			Name:      "objective_evaluations_total",
			Help:      "Raw objective evaluations spent, including finite-difference derivative estimates.",
		}, []string{"method"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tankopt",
			Name:      "run_iterations",
			Help:      "Accepted iterations per optimization run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"method"}),
	}
	m.registry.MustRegister(m.runs, m.evaluations, m.iterations)
	return m
}

// ObserveRun records one completed optimization run.
func (m *Metrics) ObserveRun(method, status string, iterations, evaluations int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(method, status).Inc()
	m.evaluations.WithLabelValues(method).Add(float64(evaluations))
	m.iterations.WithLabelValues(method).Observe(float64(iterations))
}

// Registry returns the underlying registry for exposition by embedders.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
