package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across providers.
var (
	// ErrEmptyAPIKey indicates a client was configured without credentials.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrEmptyResponse indicates the provider returned no content.
	ErrEmptyResponse = errors.New("empty response from provider")

	// ErrNoResponseChoice indicates the provider returned zero choices.
	ErrNoResponseChoice = errors.New("no response choices returned")
)

// ProviderError wraps a provider failure with enough context to decide
// whether it is worth retrying.
type ProviderError struct {
	// Provider names the backend that failed.
	Provider string

	// StatusCode is the HTTP status when one was available, else 0.
	StatusCode int

	// Message is a short human-readable description.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for ProviderError.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Message, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient: rate limits and
// server-side errors are retried, auth and bad-request errors are not.
func (e *ProviderError) Retryable() bool {
	switch e.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// classifyHTTPError builds a ProviderError from an HTTP status.
func classifyHTTPError(provider string, status int, message string, err error) *ProviderError {
	if message == "" {
		message = "request failed"
	}
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}
