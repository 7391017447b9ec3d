package domain

import (
	"errors"
	"fmt"
)

// Common domain errors for simulation operations.
var (
	// ErrOracleUnavailable indicates a network or auth failure calling
	// the oracle. Fatal to the in-flight turn; auto-play halts.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrOracleMalformed indicates the oracle returned output the
	// engine could not parse or validate. Fatal for action requests;
	// score requests substitute a neutral default at the fetch boundary.
	ErrOracleMalformed = errors.New("malformed oracle response")

	// ErrParticipantNotFound indicates an internal invariant violation:
	// a step or score referenced an id that is not on the roster.
	// Always fatal; it signals a caller bug.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrSessionEnded indicates an advance was requested on a session
	// that has already terminated.
	ErrSessionEnded = errors.New("session already ended")
)

// InvalidRankError reports a ranking edit whose target is outside the
// valid 1..15 range. The offending edit is rejected; the rest of its
// batch still applies.
type InvalidRankError struct {
	// Item is the raw item name from the rejected edit.
	Item string

	// Rank is the out-of-range target.
	Rank int
}

// Error implements the error interface for InvalidRankError.
func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("invalid rank %d for %q: must be within 1..%d", e.Rank, e.Item, NumSlots)
}
