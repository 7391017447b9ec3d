package engine

import "github.com/ahrav/go-roundtable/internal/domain"

// EndCondition is the monitor's verdict after a turn.
type EndCondition struct {
	// Ended reports whether the session must stop.
	Ended bool `json:"ended"`

	// Reason explains the termination, empty when Ended is false.
	Reason domain.EndReason `json:"reason,omitempty"`
}

// CheckEnd decides whether the session terminates after the turn that
// just completed. The turn budget is checked first, so a session at its
// limit ends with max_turns even if the ranking just changed. The
// stagnation rule fires only once the window holds a full
// ChangeWindowSize entries, all false.
func CheckEnd(turnIndexAfterThisTurn int, changeWindow []bool, maxTurns int) EndCondition {
	if turnIndexAfterThisTurn >= maxTurns {
		return EndCondition{Ended: true, Reason: domain.EndReasonMaxTurns}
	}

	if len(changeWindow) >= domain.ChangeWindowSize {
		stagnant := true
		for _, changed := range changeWindow[len(changeWindow)-domain.ChangeWindowSize:] {
			if changed {
				stagnant = false
				break
			}
		}
		if stagnant {
			return EndCondition{Ended: true, Reason: domain.EndReasonNoChanges}
		}
	}

	return EndCondition{}
}
