package llm

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// retryMiddleware retries transient provider failures with exponential
// backoff and jitter.
type retryMiddleware struct {
	next       CoreLLM
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// RetryMiddleware retries failed requests up to maxRetries times.
// Delay doubles after each attempt, starting at baseDelay and capped at
// maxDelay, with up to 25% random jitter to avoid thundering herds.
// Only transient failures (rate limits, 5xx) are retried.
func RetryMiddleware(maxRetries int, baseDelay, maxDelay time.Duration) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &retryMiddleware{
			next:       next,
			maxRetries: maxRetries,
			baseDelay:  baseDelay,
			maxDelay:   maxDelay,
		}
	}
}

func (m *retryMiddleware) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	var lastErr error
	delay := m.baseDelay

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			var jitter time.Duration
			if bound := int64(delay) / 4; bound > 0 {
				jitter = time.Duration(rand.Int63n(bound))
			}
			select {
			case <-ctx.Done():
				return "", 0, 0, ctx.Err()
			case <-time.After(delay + jitter):
			}
			delay *= 2
			if delay > m.maxDelay {
				delay = m.maxDelay
			}
		}

		response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)
		if err == nil {
			return response, tokensIn, tokensOut, nil
		}
		lastErr = err

		if !isRetryable(err) {
			break
		}
	}
	return "", 0, 0, lastErr
}

func (m *retryMiddleware) GetModel() string { return m.next.GetModel() }

func isRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable()
	}
	return false
}
