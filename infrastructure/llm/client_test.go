package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLLM is a scripted CoreLLM for middleware tests.
type stubLLM struct {
	model     string
	responses []string
	errs      []error
	calls     int
}

func (s *stubLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", 0, 0, s.errs[idx]
	}
	response := "ok"
	if idx < len(s.responses) {
		response = s.responses[idx]
	}
	return response, 10, 5, nil
}

func (s *stubLLM) GetModel() string { return s.model }

func TestNewClient_EmptyAPIKey(t *testing.T) {
	_, err := NewClient("openai", ClientConfig{})
	assert.ErrorIs(t, err, ErrEmptyAPIKey)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient("carrier-pigeon", ClientConfig{APIKey: "key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewClient_KnownProvidersRegistered(t *testing.T) {
	for _, provider := range []string{"openai", "anthropic", "google"} {
		_, ok := providerFactories[provider]
		assert.True(t, ok, provider)
	}
}

func TestClient_MiddlewareOrderOutermostFirst(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next CoreLLM) CoreLLM {
			return coreFunc{fn: func(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
				order = append(order, name)
				return next.DoRequest(ctx, prompt, opts)
			}, model: next.GetModel}
		}
	}

	core := CoreLLM(&stubLLM{model: "stub"})
	middleware := []Middleware{tag("first"), tag("second")}
	for i := len(middleware) - 1; i >= 0; i-- {
		core = middleware[i](core)
	}

	_, _, _, err := core.DoRequest(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

// coreFunc adapts a function to CoreLLM for test middleware.
type coreFunc struct {
	fn    func(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error)
	model func() string
}

func (c coreFunc) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	return c.fn(ctx, prompt, opts)
}

func (c coreFunc) GetModel() string { return c.model() }

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"ab", 1},
		{"exactly16charss!", 4},
		{"a longer sentence with several words in it", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateTokens(tt.text), tt.text)
	}
}
