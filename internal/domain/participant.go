// Package domain contains pure, dependency-free domain models and types
// for the discussion simulation engine.
package domain

// Participant represents one autonomous agent in the discussion.
// Identity and persona fields are fixed at session creation; the
// counters are mutated only by the scheduler in response to applied
// action steps.
type Participant struct {
	// ID uniquely identifies this participant within a session.
	ID int `json:"id"`

	// Name is the participant's display name.
	Name string `json:"name"`

	// CameraOn reports whether the participant's camera is currently on.
	CameraOn bool `json:"camera_on"`

	// SpeakingStyle describes how this agent phrases its contributions.
	// It is persona data passed to the oracle, never interpreted by the
	// engine itself.
	SpeakingStyle string `json:"speaking_style"`

	// Description is the free-text persona description for this agent.
	Description string `json:"description"`

	// WordsSpoken is the cumulative word count of all spoken messages.
	WordsSpoken int `json:"words_spoken"`

	// CameraToggles counts how many times the camera state flipped.
	CameraToggles int `json:"camera_toggles"`

	// TimesDoingNothing counts turns where the agent abstained.
	TimesDoingNothing int `json:"times_doing_nothing"`

	// Interactions counts turns where the agent spoke.
	Interactions int `json:"interactions"`

	// ParticipationRate is the agent's turns-participated over
	// turns-elapsed ratio, always within [0, 1].
	ParticipationRate float64 `json:"participation_rate"`
}

// Roster is an ordered, fixed set of participants. Roster order is
// significant: the forced camera-toggle rule picks the first candidate
// in roster order.
type Roster []Participant

// ByID returns a pointer to the participant with the given id, or nil
// when no such participant exists.
func (r Roster) ByID(id int) *Participant {
	for i := range r {
		if r[i].ID == id {
			return &r[i]
		}
	}
	return nil
}

// IDs returns the participant ids in roster order.
func (r Roster) IDs() []int {
	ids := make([]int, len(r))
	for i := range r {
		ids[i] = r[i].ID
	}
	return ids
}

// Clone returns an independent copy of the roster.
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	return out
}
