// Package ports defines the interfaces that form the contract between
// the engine and the infrastructure layer. These interfaces enable
// dependency inversion and make the simulation testable without a
// live LLM.
package ports

import (
	"context"

	"github.com/ahrav/go-roundtable/internal/domain"
)

// TurnContext carries everything the oracle may consider when scoring
// interest or choosing an action for one participant on one turn.
type TurnContext struct {
	// Participant is the agent the oracle is acting for.
	Participant domain.Participant

	// Roster is a snapshot of all participants, in roster order.
	Roster domain.Roster

	// Transcript is the dialogue history so far.
	Transcript domain.Transcript

	// Ranking is a read-only view of the current slots, keyed by rank.
	Ranking map[int]domain.SalvageItem

	// Turn is the zero-based index of the turn being decided.
	Turn int

	// Scenario is the session's behavioral framing.
	Scenario domain.Scenario

	// LeaderID is the session leader, 0 outside leadership scenarios.
	LeaderID int

	// History is the rolling interest-score log, context only.
	History []domain.InterestRecord
}

// Oracle is the external scoring/decision service. Implementations
// wrap an LLM; tests use a scripted fake. The engine treats it as an
// opaque function with a JSON-like contract.
type Oracle interface {
	// InterestScore returns the participant's interest level in
	// 0..100 with reasoning. Implementations substitute a neutral
	// default for unparseable output; only transport failures surface
	// as errors.
	InterestScore(ctx context.Context, tc TurnContext) (domain.InterestScore, error)

	// NextAction returns the participant's chosen action step.
	// Unparseable output here is an error, never defaulted: a bad
	// action is fatal to the turn.
	NextAction(ctx context.Context, tc TurnContext) (domain.ActionStep, error)
}

// LLMClient defines the interface for interacting with Large Language
// Model providers. Implementations handle provider-specific details
// like authentication, request formatting, and response parsing.
type LLMClient interface {
	// Complete sends a completion request and returns the generated
	// text. The options map allows provider flexibility; common keys
	// are "temperature" (float64), "max_tokens" (int) and "model".
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens approximates the token count for a text, useful
	// for cost accounting.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier in use, for logging.
	GetModel() string
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations integrate with Prometheus or similar.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	RecordLatency(operation string, seconds float64, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)
}
