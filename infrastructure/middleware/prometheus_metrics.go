// Package middleware provides cross-cutting concerns for the
// simulation engine.
package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-roundtable/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks turn execution latency, oracle token usage,
// and session-level gauges such as interest scores and task score.
type PrometheusMetrics struct {
	tokensIn         *prometheus.CounterVec
	tokensOut        *prometheus.CounterVec
	executionLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	sessionGauges    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and
// registers all metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		tokensIn: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roundtable_llm_tokens_in_total",
				Help: "Total prompt tokens sent to the LLM oracle.",
			},
			[]string{"model"},
		),
		tokensOut: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roundtable_llm_tokens_out_total",
				Help: "Total completion tokens returned by the LLM oracle.",
			},
			[]string{"model"},
		),
		executionLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roundtable_operation_duration_seconds",
				Help:    "Execution time of scheduler and oracle operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "scenario"},
		),
		operationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roundtable_operations_total",
				Help: "Total operations performed by the session scheduler.",
			},
			[]string{"operation", "status", "scenario"},
		),
		sessionGauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "roundtable_session_state",
				Help: "Current session state values such as turn and task score.",
			},
			[]string{"metric", "scenario"},
		),
	}
}

func scenarioLabel(labels map[string]string) string {
	scenario, ok := labels["scenario"]
	if !ok {
		return "unknown"
	}
	return scenario
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string, seconds float64, labels map[string]string,
) {
	pm.executionLatency.WithLabelValues(operation, scenarioLabel(labels)).Observe(seconds)
}

// RecordCounter implements the MetricsCollector interface by
// incrementing Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "llm_tokens_in_total":
		pm.tokensIn.WithLabelValues(labels["model"]).Add(value)
	case "llm_tokens_out_total":
		pm.tokensOut.WithLabelValues(labels["model"]).Add(value)
	case "llm_request_errors_total":
		pm.operationCounter.WithLabelValues("llm_request", "error", scenarioLabel(labels)).Add(value)
	default:
		status, ok := labels["status"]
		if !ok {
			status = "success"
		}
		pm.operationCounter.WithLabelValues(metric, status, scenarioLabel(labels)).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.sessionGauges.WithLabelValues(metric, scenarioLabel(labels)).Set(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
