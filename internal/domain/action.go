package domain

import "fmt"

// Action is the closed set of things a participant can do on its turn.
type Action string

const (
	// ActionSpeak contributes a message to the discussion.
	ActionSpeak Action = "speak"

	// ActionToggleCamera flips the participant's camera state.
	ActionToggleCamera Action = "toggleCamera"

	// ActionDoNothing abstains for the turn.
	ActionDoNothing Action = "doNothing"
)

// Valid reports whether a is one of the three known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionSpeak, ActionToggleCamera, ActionDoNothing:
		return true
	}
	return false
}

// ActionStep is one participant's resolved action for a turn, either
// synthesized by the forced camera-toggle rule or produced by the
// oracle. Immutable once recorded.
type ActionStep struct {
	// ParticipantID identifies who acted.
	ParticipantID int `json:"participant_id"`

	// Action is the variant tag for this step.
	Action Action `json:"action"`

	// Message is the spoken content; required for speak, informational
	// for forced camera toggles, absent otherwise.
	Message string `json:"message,omitempty"`

	// Reasoning is the agent's free-text thinking for this step.
	Reasoning string `json:"reasoning,omitempty"`

	// Edits are ranking moves requested alongside the action.
	Edits []RankingEdit `json:"edits,omitempty"`

	// Forced marks steps synthesized by the camera-threshold rule
	// rather than chosen by the oracle.
	Forced bool `json:"forced,omitempty"`
}

// Validate checks the per-variant required fields. Duck-typed oracle
// payloads are validated here before they enter the scheduler.
func (s ActionStep) Validate() error {
	if !s.Action.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrOracleMalformed, s.Action)
	}
	if s.Action == ActionSpeak && s.Message == "" {
		return fmt.Errorf("%w: speak step has no message", ErrOracleMalformed)
	}
	return nil
}
