// Package oracle adapts an LLM client into the engine's Oracle port:
// it assembles prompts from session state, extracts JSON from raw
// completions, and enforces the parse-failure policy — neutral
// defaulting for interest scores, hard failure for actions.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/ports"
)

var _ ports.Oracle = (*LLMOracle)(nil)

// Default request parameters, matching the discussion's tolerance for
// some variety in agent behavior.
const (
	// NeutralScore is substituted when a score response cannot be
	// parsed. Defaulting happens only here at the fetch boundary; the
	// scheduler itself never defaults.
	NeutralScore = 50

	DefaultTemperature     = 0.7
	DefaultScoreMaxTokens  = 500
	DefaultActionMaxTokens = 1500
)

// Config holds the tunable parameters for the LLM-backed oracle.
type Config struct {
	// MaxTurns is echoed into prompts so agents can pace themselves.
	MaxTurns int `yaml:"max_turns" json:"max_turns" validate:"required,min=1"`

	// Temperature controls randomness in agent behavior (0.0-1.0).
	Temperature float64 `yaml:"temperature" json:"temperature" validate:"min=0.0,max=2.0"`

	// ScoreMaxTokens limits interest-score responses.
	ScoreMaxTokens int `yaml:"score_max_tokens" json:"score_max_tokens" validate:"min=50,max=4000"`

	// ActionMaxTokens limits action responses, which carry messages
	// and ranking changes.
	ActionMaxTokens int `yaml:"action_max_tokens" json:"action_max_tokens" validate:"min=50,max=8000"`
}

// DefaultConfig returns a Config with the stock oracle parameters.
func DefaultConfig(maxTurns int) Config {
	return Config{
		MaxTurns:        maxTurns,
		Temperature:     DefaultTemperature,
		ScoreMaxTokens:  DefaultScoreMaxTokens,
		ActionMaxTokens: DefaultActionMaxTokens,
	}
}

// LLMOracle implements ports.Oracle over a ports.LLMClient.
// It is stateless and safe for the aggregator's parallel fan-out.
type LLMOracle struct {
	client    ports.LLMClient
	catalog   domain.Catalog
	config    Config
	validator *validator.Validate
}

// New creates an LLM-backed oracle.
func New(client ports.LLMClient, catalog domain.Catalog, config Config) (*LLMOracle, error) {
	if client == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}
	v := validator.New()
	if err := v.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &LLMOracle{
		client:    client,
		catalog:   catalog,
		config:    config,
		validator: v,
	}, nil
}

// scoreResponse is the JSON contract for interest-score requests.
type scoreResponse struct {
	InterestScore float64 `json:"interestScore" validate:"min=0,max=100"`
	Reasoning     string  `json:"reasoning"`
}

// actionResponse is the JSON contract for action requests.
type actionResponse struct {
	Thinking       string `json:"thinking"`
	Action         string `json:"action" validate:"required,oneof=speak toggleCamera doNothing"`
	Message        string `json:"message"`
	RankingChanges []struct {
		Item    string `json:"item" validate:"required"`
		NewRank int    `json:"newRank"`
	} `json:"rankingChanges"`
}

// InterestScore asks the LLM how engaged the participant is right now.
// Transport failures surface as ErrOracleUnavailable; unparseable
// output is substituted with the neutral default instead of failing.
func (o *LLMOracle) InterestScore(ctx context.Context, tc ports.TurnContext) (domain.InterestScore, error) {
	prompt, err := o.renderPrompt(scorePromptTemplate, tc)
	if err != nil {
		return domain.InterestScore{}, err
	}

	raw, err := o.client.Complete(ctx, prompt, map[string]any{
		"temperature": o.config.Temperature,
		"max_tokens":  o.config.ScoreMaxTokens,
	})
	if err != nil {
		return domain.InterestScore{}, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}

	var resp scoreResponse
	if err := o.decode(raw, &resp); err != nil {
		return domain.InterestScore{
			ParticipantID: tc.Participant.ID,
			Score:         NeutralScore,
			Reasoning:     "unparseable score response, substituted neutral default",
		}, nil
	}

	return domain.InterestScore{
		ParticipantID: tc.Participant.ID,
		Score:         resp.InterestScore,
		Reasoning:     resp.Reasoning,
	}, nil
}

// NextAction asks the LLM for the participant's action this turn.
// Unlike scores, a response that cannot be parsed or validated is
// fatal: the error propagates and the turn is abandoned.
func (o *LLMOracle) NextAction(ctx context.Context, tc ports.TurnContext) (domain.ActionStep, error) {
	prompt, err := o.renderPrompt(actionPromptTemplate, tc)
	if err != nil {
		return domain.ActionStep{}, err
	}

	raw, err := o.client.Complete(ctx, prompt, map[string]any{
		"temperature": o.config.Temperature,
		"max_tokens":  o.config.ActionMaxTokens,
	})
	if err != nil {
		return domain.ActionStep{}, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}

	var resp actionResponse
	if err := o.decode(raw, &resp); err != nil {
		return domain.ActionStep{}, fmt.Errorf("%w: %v", domain.ErrOracleMalformed, err)
	}

	step := domain.ActionStep{
		ParticipantID: tc.Participant.ID,
		Action:        domain.Action(resp.Action),
		Message:       resp.Message,
		Reasoning:     resp.Thinking,
	}
	for _, rc := range resp.RankingChanges {
		step.Edits = append(step.Edits, domain.RankingEdit{
			Item:       rc.Item,
			TargetRank: rc.NewRank,
		})
	}
	if err := step.Validate(); err != nil {
		return domain.ActionStep{}, err
	}
	return step, nil
}

// decode extracts the first JSON object from a raw completion and
// unmarshals it into out, then validates the result's structure.
func (o *LLMOracle) decode(raw string, out any) error {
	jsonStr := ExtractFirstJSONObject(raw)
	if jsonStr == "" {
		return fmt.Errorf("no JSON object found in response (%d chars)", len(raw))
	}
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return fmt.Errorf("parsing response JSON: %w", err)
	}
	if err := o.validator.Struct(out); err != nil {
		return fmt.Errorf("invalid response structure: %w", err)
	}
	return nil
}

func (o *LLMOracle) renderPrompt(tmpl *template.Template, tc ports.TurnContext) (string, error) {
	var buf bytes.Buffer
	data := buildPromptData(tc, o.catalog, o.config.MaxTurns)
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}
