package engine

import (
	"strings"

	"github.com/ahrav/go-roundtable/internal/domain"
)

// WordCount counts whitespace-separated words in a message.
func WordCount(message string) int {
	return len(strings.Fields(message))
}

// accumulate applies a step's counter effects to the acting
// participant and recomputes their participation rate. The rate is a
// strictly local recomputation: turns this participant spoke or
// toggled, over all turns elapsed so far including this one. The step
// must already be appended to state.Steps.
func accumulate(state *domain.SessionState, step domain.ActionStep) error {
	p := state.Participants.ByID(step.ParticipantID)
	if p == nil {
		return domain.ErrParticipantNotFound
	}

	switch step.Action {
	case domain.ActionToggleCamera:
		p.CameraOn = !p.CameraOn
		p.CameraToggles++
	case domain.ActionSpeak:
		p.WordsSpoken += WordCount(step.Message)
		p.Interactions++
	case domain.ActionDoNothing:
		p.TimesDoingNothing++
	}

	participated := 0
	for _, s := range state.Steps {
		if s.ParticipantID == p.ID && s.Action != domain.ActionDoNothing {
			participated++
		}
	}
	p.ParticipationRate = float64(participated) / float64(len(state.Steps))

	return nil
}
