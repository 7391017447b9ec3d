package domain

// InterestScore is one participant's interest level for the current
// turn, produced fresh by the oracle and discarded after selection.
type InterestScore struct {
	// ParticipantID identifies whose interest this is.
	ParticipantID int `json:"participant_id"`

	// Score is the interest level in 0..100.
	Score float64 `json:"score"`

	// Reasoning is the oracle's explanation for the score.
	Reasoning string `json:"reasoning"`
}

// InterestRecord is one entry in the rolling interest history. The
// history is fed back to the oracle as context only; the scheduler's
// own logic never reads it.
type InterestRecord struct {
	Turn          int     `json:"turn"`
	ParticipantID int     `json:"participant_id"`
	Score         float64 `json:"score"`
}
