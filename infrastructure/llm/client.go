// Package llm provides a unified client for the LLM providers the
// simulation can run against (OpenAI, Anthropic, Google), with
// middleware for retries, timeouts, rate limiting, and metrics.
//
// Providers implement the minimal CoreLLM interface; middleware wraps
// any conforming implementation, so operational concerns compose
// without touching provider logic:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	    Middleware: []llm.Middleware{
//	        llm.RetryMiddleware(3, time.Second, 30*time.Second),
//	        llm.TimeoutMiddleware(60 * time.Second),
//	    },
//	})
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ahrav/go-roundtable/internal/ports"
)

// CoreLLM is the minimal interface a provider must implement. It
// returns the response text plus input and output token counts.
type CoreLLM interface {
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the currently configured model name.
	GetModel() string
}

// Middleware wraps a CoreLLM to add cross-cutting behavior.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds the options for creating an LLM client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model names the model to use; empty picks the provider default.
	Model string

	// BaseURL overrides the provider's default endpoint when set.
	BaseURL string

	// Timeout caps individual requests; zero means no client timeout.
	Timeout time.Duration

	// Middleware is applied in order, first middleware outermost.
	Middleware []Middleware
}

// providerFactory builds a provider-specific CoreLLM from config.
type providerFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]providerFactory{}

// RegisterProviderFactory makes a provider available to NewClient.
// Providers register themselves from init functions.
func RegisterProviderFactory(name string, factory providerFactory) {
	providerFactories[name] = factory
}

// Client implements ports.LLMClient over a middleware-wrapped provider.
type Client struct {
	core CoreLLM
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient assembles a provider and its middleware chain.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Apply in reverse so the first middleware is outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	return &Client{core: core}, nil
}

// Complete sends a completion request through the middleware chain.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.core.DoRequest(ctx, prompt, options)
	return response, err
}

// EstimateTokens approximates the token count of a text at roughly
// four characters per token, the common ratio for English.
func (c *Client) EstimateTokens(text string) (int, error) {
	return EstimateTokens(text), nil
}

// GetModel returns the configured model identifier.
func (c *Client) GetModel() string { return c.core.GetModel() }

// EstimateTokens is the shared fallback estimator used when a provider
// response carries no usage metadata.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}
