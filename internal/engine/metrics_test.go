package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-roundtable/internal/domain"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		message string
		want    int
	}{
		{"", 0},
		{"hello", 1},
		{"hello world", 2},
		{"  spaced   out   words  ", 3},
		{"line\nbreaks\tcount too", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WordCount(tt.message), tt.message)
	}
}

func TestAccumulate_SpeakUpdatesCounters(t *testing.T) {
	state := newTestState(t)
	step := domain.ActionStep{
		ParticipantID: 1,
		Action:        domain.ActionSpeak,
		Message:       "I think the mirror matters most",
	}
	state.Steps = append(state.Steps, step)

	require.NoError(t, accumulate(state, step))

	p := state.Participants.ByID(1)
	assert.Equal(t, 6, p.WordsSpoken)
	assert.Equal(t, 1, p.Interactions)
	assert.Equal(t, 1.0, p.ParticipationRate)
}

func TestAccumulate_ToggleFlipsCamera(t *testing.T) {
	state := newTestState(t)
	require.True(t, state.Participants.ByID(2).CameraOn)

	step := domain.ActionStep{ParticipantID: 2, Action: domain.ActionToggleCamera}
	state.Steps = append(state.Steps, step)
	require.NoError(t, accumulate(state, step))

	p := state.Participants.ByID(2)
	assert.False(t, p.CameraOn)
	assert.Equal(t, 1, p.CameraToggles)

	state.Steps = append(state.Steps, step)
	require.NoError(t, accumulate(state, step))
	assert.True(t, p.CameraOn)
	assert.Equal(t, 2, p.CameraToggles)
}

func TestAccumulate_ParticipationRateOverAllSteps(t *testing.T) {
	state := newTestState(t)

	steps := []domain.ActionStep{
		{ParticipantID: 1, Action: domain.ActionSpeak, Message: "one"},
		{ParticipantID: 2, Action: domain.ActionSpeak, Message: "two"},
		{ParticipantID: 1, Action: domain.ActionDoNothing},
		{ParticipantID: 1, Action: domain.ActionSpeak, Message: "three"},
	}
	for _, step := range steps {
		state.Steps = append(state.Steps, step)
		require.NoError(t, accumulate(state, step))
	}

	// Participant 1 participated in 2 of the 4 elapsed turns; the
	// doNothing turn counts in the denominator but not the numerator.
	p := state.Participants.ByID(1)
	assert.Equal(t, 1, p.TimesDoingNothing)
	assert.InDelta(t, 0.5, p.ParticipationRate, 1e-9)
}

func TestAccumulate_UnknownParticipant(t *testing.T) {
	state := newTestState(t)
	step := domain.ActionStep{ParticipantID: 42, Action: domain.ActionDoNothing}
	state.Steps = append(state.Steps, step)

	err := accumulate(state, step)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}
