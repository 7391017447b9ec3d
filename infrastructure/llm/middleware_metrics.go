package llm

import (
	"context"
	"time"

	"github.com/ahrav/go-roundtable/internal/ports"
)

// metricsMiddleware records latency, token usage, and error counts for
// every request through a ports.MetricsCollector.
type metricsMiddleware struct {
	next      CoreLLM
	collector ports.MetricsCollector
}

// MetricsMiddleware reports request latency, token counts, and
// failures to the given collector, labeled by model.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &metricsMiddleware{next: next, collector: collector}
	}
}

func (m *metricsMiddleware) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	labels := map[string]string{"model": m.next.GetModel()}
	start := time.Now()

	response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)

	m.collector.RecordLatency("llm_request", time.Since(start).Seconds(), labels)
	if err != nil {
		m.collector.RecordCounter("llm_request_errors_total", 1, labels)
		return "", 0, 0, err
	}
	m.collector.RecordCounter("llm_tokens_in_total", float64(tokensIn), labels)
	m.collector.RecordCounter("llm_tokens_out_total", float64(tokensOut), labels)
	return response, tokensIn, tokensOut, nil
}

func (m *metricsMiddleware) GetModel() string { return m.next.GetModel() }
