package domain

// ChangeWindowSize is the number of recent normal-path turns inspected
// by the stagnation end condition.
const ChangeWindowSize = 4

// EndReason explains why a session terminated.
type EndReason string

const (
	// EndReasonMaxTurns means the turn budget ran out.
	EndReasonMaxTurns EndReason = "max_turns"

	// EndReasonNoChanges means the ranking went unchanged for the full
	// change window, the designed proxy for "nothing left to negotiate".
	EndReasonNoChanges EndReason = "no_changes"
)

// Scenario selects the behavioral framing the oracle receives.
type Scenario string

const (
	ScenarioBaseline     Scenario = "baseline"
	ScenarioLeadership   Scenario = "leadership"
	ScenarioSocial       Scenario = "social"
	ScenarioGamification Scenario = "gamification"
)

// Valid reports whether s is a known scenario.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioBaseline, ScenarioLeadership, ScenarioSocial, ScenarioGamification:
		return true
	}
	return false
}

// Utterance is one spoken entry in the session transcript.
type Utterance struct {
	// Turn is the turn index at which the message was spoken.
	Turn int `json:"turn"`

	// ParticipantID identifies the speaker.
	ParticipantID int `json:"participant_id"`

	// Message is the spoken content.
	Message string `json:"message"`
}

// Transcript is the ordered, append-only dialogue history.
type Transcript []Utterance

// LastTurnOf returns the index within the transcript of the given
// participant's most recent utterance, and whether they have spoken at
// all. The index, not the turn number, orders recency for tie-breaks.
func (t Transcript) LastTurnOf(participantID int) (int, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].ParticipantID == participantID {
			return i, true
		}
	}
	return 0, false
}

// SessionState is the complete mutable state of one discussion session.
// It is mutated every turn by the scheduler and becomes immutable once
// Ended is set.
type SessionState struct {
	// CurrentTurn is the number of turns applied so far.
	CurrentTurn int `json:"current_turn"`

	// Scenario is the behavioral framing for this session.
	Scenario Scenario `json:"scenario"`

	// LeaderID is the participant chosen to lead, assigned once at
	// session creation for leadership scenarios and 0 otherwise.
	LeaderID int `json:"leader_id,omitempty"`

	// Participants is the roster, in roster order.
	Participants Roster `json:"participants"`

	// Ranking is the shared fifteen-slot ranking.
	Ranking *Ranking `json:"-"`

	// Transcript is the append-only dialogue history.
	Transcript Transcript `json:"transcript"`

	// Steps records every applied action step in order.
	Steps []ActionStep `json:"steps"`

	// ChangeWindow holds the hadChange flags of the most recent
	// normal-path turns, oldest first, capped at ChangeWindowSize.
	ChangeWindow []bool `json:"change_window"`

	// InterestHistory is the rolling score log used only as oracle
	// input context.
	InterestHistory []InterestRecord `json:"interest_history"`

	// Ended reports whether the session has terminated.
	Ended bool `json:"ended"`

	// EndReason explains the termination, empty while running.
	EndReason EndReason `json:"end_reason,omitempty"`
}

// RecordChange appends a hadChange flag to the rolling window,
// evicting the oldest entry once the window is full.
func (s *SessionState) RecordChange(hadChange bool) {
	s.ChangeWindow = append(s.ChangeWindow, hadChange)
	if len(s.ChangeWindow) > ChangeWindowSize {
		s.ChangeWindow = s.ChangeWindow[len(s.ChangeWindow)-ChangeWindowSize:]
	}
}

// Clone returns a deep copy of the session state. The scheduler applies
// a turn's effects to a clone and commits it only on success, so a
// failed turn never leaves partial effects behind.
func (s *SessionState) Clone() *SessionState {
	out := &SessionState{
		CurrentTurn: s.CurrentTurn,
		Scenario:    s.Scenario,
		LeaderID:    s.LeaderID,
		Ended:       s.Ended,
		EndReason:   s.EndReason,
	}
	out.Participants = s.Participants.Clone()
	if s.Ranking != nil {
		out.Ranking = s.Ranking.Clone()
	}
	out.Transcript = append(Transcript(nil), s.Transcript...)
	out.Steps = append([]ActionStep(nil), s.Steps...)
	out.ChangeWindow = append([]bool(nil), s.ChangeWindow...)
	out.InterestHistory = append([]InterestRecord(nil), s.InterestHistory...)
	return out
}
