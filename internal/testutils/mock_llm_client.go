package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/ahrav/go-roundtable/internal/ports"
)

// MockLLMClient implements the LLMClient interface with a queue of
// canned responses, consumed in order. It records every prompt it
// receives so tests can assert on prompt content, and can be primed
// with an error to exercise transport-failure paths.
type MockLLMClient struct {
	mu sync.Mutex

	// model is the mock model identifier.
	model string

	// responses is the response queue; the last entry repeats once the
	// queue would otherwise run dry.
	responses []string

	// err, when set, is returned by every Complete call.
	err error

	// prompts records every prompt passed to Complete, in order.
	prompts []string
}

// NewMockLLMClient creates a mock client that replays the given
// responses in order.
func NewMockLLMClient(model string, responses ...string) *MockLLMClient {
	return &MockLLMClient{model: model, responses: responses}
}

// FailWith makes every subsequent Complete call return err.
func (m *MockLLMClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Prompts returns a copy of every prompt seen so far.
func (m *MockLLMClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Complete implements LLMClient.Complete by replaying the queue.
func (m *MockLLMClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)

	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("mock client has no responses configured")
	}

	response := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return response, nil
}

// EstimateTokens implements LLMClient.EstimateTokens at roughly four
// characters per token.
func (m *MockLLMClient) EstimateTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens, nil
}

// GetModel implements LLMClient.GetModel.
func (m *MockLLMClient) GetModel() string { return m.model }

// Verify interface compliance at compile time.
var _ ports.LLMClient = (*MockLLMClient)(nil)
