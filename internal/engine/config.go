package engine

import (
	"fmt"
	"math/rand"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-roundtable/internal/domain"
)

// Default session parameters.
const (
	// DefaultMaxTurns is the turn budget before forced termination.
	DefaultMaxTurns = 30

	// DefaultCameraThreshold is the interest level (percent) below
	// which a camera should be off and at or above which it should be on.
	DefaultCameraThreshold = 30
)

// Config holds the tunable parameters for one session.
type Config struct {
	// MaxTurns is the hard turn budget.
	MaxTurns int `yaml:"max_turns" json:"max_turns" validate:"required,min=1,max=10000"`

	// CameraThreshold is the forced camera-toggle threshold in 0..100.
	CameraThreshold float64 `yaml:"camera_threshold" json:"camera_threshold" validate:"min=0,max=100"`

	// Scenario selects the behavioral framing for the oracle.
	Scenario domain.Scenario `yaml:"scenario" json:"scenario" validate:"required"`

	// LeaderID pins the session leader for leadership scenarios.
	// Zero picks one at random at session creation.
	LeaderID int `yaml:"leader_id" json:"leader_id" validate:"min=0"`
}

// DefaultConfig returns a Config with the stock simulation parameters.
func DefaultConfig() Config {
	return Config{
		MaxTurns:        DefaultMaxTurns,
		CameraThreshold: DefaultCameraThreshold,
		Scenario:        domain.ScenarioBaseline,
	}
}

// Validate checks the configuration parameters.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if !c.Scenario.Valid() {
		return fmt.Errorf("unknown scenario %q", c.Scenario)
	}
	return nil
}

// validate is the package-level validator instance shared by config
// checks.
var validate = validator.New()

// NewSessionState creates the initial state for a session: the roster,
// an empty ranking, and, for leadership scenarios, a leader assigned
// once here and carried on the state — leadership is an explicit field,
// not ambient.
func NewSessionState(cfg Config, roster domain.Roster) (*domain.SessionState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster cannot be empty")
	}

	state := &domain.SessionState{
		Scenario:     cfg.Scenario,
		Participants: roster.Clone(),
		Ranking:      &domain.Ranking{},
	}

	if cfg.Scenario == domain.ScenarioLeadership {
		state.LeaderID = cfg.LeaderID
		if state.LeaderID == 0 {
			state.LeaderID = roster[rand.Intn(len(roster))].ID
		} else if roster.ByID(state.LeaderID) == nil {
			return nil, fmt.Errorf("leader %d: %w", cfg.LeaderID, domain.ErrParticipantNotFound)
		}
	}

	return state, nil
}
