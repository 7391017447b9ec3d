package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryMiddleware_RetriesTransientFailures(t *testing.T) {
	rateLimited := &ProviderError{Provider: "stub", StatusCode: 429, Message: "slow down"}
	stub := &stubLLM{
		model: "stub",
		errs:  []error{rateLimited, rateLimited, nil},
	}

	wrapped := RetryMiddleware(3, time.Millisecond, 10*time.Millisecond)(stub)
	response, _, _, err := wrapped.DoRequest(context.Background(), "hi", nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	assert.Equal(t, 3, stub.calls)
}

func TestRetryMiddleware_DoesNotRetryPermanentFailures(t *testing.T) {
	unauthorized := &ProviderError{Provider: "stub", StatusCode: 401, Message: "bad key"}
	stub := &stubLLM{model: "stub", errs: []error{unauthorized, nil}}

	wrapped := RetryMiddleware(3, time.Millisecond, 10*time.Millisecond)(stub)
	_, _, _, err := wrapped.DoRequest(context.Background(), "hi", nil)

	require.Error(t, err)
	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, 401, provErr.StatusCode)
	assert.Equal(t, 1, stub.calls, "permanent failures are not retried")
}

func TestRetryMiddleware_ExhaustsRetries(t *testing.T) {
	serverErr := &ProviderError{Provider: "stub", StatusCode: 503, Message: "unavailable"}
	stub := &stubLLM{model: "stub", errs: []error{serverErr, serverErr, serverErr, serverErr}}

	wrapped := RetryMiddleware(2, time.Millisecond, 10*time.Millisecond)(stub)
	_, _, _, err := wrapped.DoRequest(context.Background(), "hi", nil)

	require.Error(t, err)
	assert.Equal(t, 3, stub.calls, "initial attempt plus two retries")
}

func TestRetryMiddleware_RespectsContextCancellation(t *testing.T) {
	serverErr := &ProviderError{Provider: "stub", StatusCode: 500, Message: "boom"}
	stub := &stubLLM{model: "stub", errs: []error{serverErr, serverErr, serverErr}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wrapped := RetryMiddleware(3, time.Hour, time.Hour)(stub)
	_, _, _, err := wrapped.DoRequest(ctx, "hi", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stub.calls, "cancellation short-circuits the backoff wait")
}

func TestProviderError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{400, false},
		{401, false},
		{404, false},
		{0, false},
	}
	for _, tt := range tests {
		err := &ProviderError{Provider: "p", StatusCode: tt.status}
		assert.Equal(t, tt.want, err.Retryable(), "status %d", tt.status)
	}
}
