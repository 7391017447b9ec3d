package llm

import (
	"context"
	"time"
)

// timeoutMiddleware bounds each request with a per-call deadline.
type timeoutMiddleware struct {
	next    CoreLLM
	timeout time.Duration
}

// TimeoutMiddleware enforces a deadline on every request. A timeout of
// zero disables the deadline and passes the context through unchanged.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &timeoutMiddleware{next: next, timeout: timeout}
	}
}

func (m *timeoutMiddleware) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	return m.next.DoRequest(ctx, prompt, opts)
}

func (m *timeoutMiddleware) GetModel() string { return m.next.GetModel() }
