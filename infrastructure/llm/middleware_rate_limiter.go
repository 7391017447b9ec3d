package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimitMiddleware throttles requests with a token bucket.
type rateLimitMiddleware struct {
	next    CoreLLM
	limiter *rate.Limiter
}

// RateLimitMiddleware caps the request rate at rps requests per second
// with the given burst size. Requests block until a token is available
// or the context is cancelled.
func RateLimitMiddleware(rps float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next CoreLLM) CoreLLM {
		return &rateLimitMiddleware{next: next, limiter: limiter}
	}
}

func (m *rateLimitMiddleware) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", 0, 0, err
	}
	return m.next.DoRequest(ctx, prompt, opts)
}

func (m *rateLimitMiddleware) GetModel() string { return m.next.GetModel() }
