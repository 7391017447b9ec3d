package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_RecordChangeCapsWindow(t *testing.T) {
	s := &SessionState{}

	s.RecordChange(true)
	s.RecordChange(false)
	s.RecordChange(false)
	s.RecordChange(false)
	assert.Equal(t, []bool{true, false, false, false}, s.ChangeWindow)

	// The oldest entry is evicted once the window is full.
	s.RecordChange(false)
	assert.Equal(t, []bool{false, false, false, false}, s.ChangeWindow)
	assert.Len(t, s.ChangeWindow, ChangeWindowSize)
}

func TestSessionState_CloneIsDeep(t *testing.T) {
	s := &SessionState{
		CurrentTurn:  3,
		Scenario:     ScenarioLeadership,
		LeaderID:     2,
		Participants: DefaultRoster(),
		Ranking:      &Ranking{},
		Transcript:   Transcript{{Turn: 0, ParticipantID: 1, Message: "hello"}},
		ChangeWindow: []bool{true, false},
	}
	s.Ranking.Place(SalvageItem{Name: "A sextant"}, 1)

	clone := s.Clone()
	clone.Participants[0].WordsSpoken = 99
	clone.Ranking.Place(SalvageItem{Name: "A sextant"}, 5)
	clone.Transcript = append(clone.Transcript, Utterance{Turn: 1, ParticipantID: 2, Message: "hi"})
	clone.ChangeWindow[0] = false

	assert.Equal(t, 0, s.Participants[0].WordsSpoken)
	assert.Equal(t, 1, s.Ranking.RankOf("A sextant"))
	assert.Len(t, s.Transcript, 1)
	assert.True(t, s.ChangeWindow[0])
}

func TestTranscript_LastTurnOf(t *testing.T) {
	transcript := Transcript{
		{Turn: 0, ParticipantID: 1, Message: "a"},
		{Turn: 1, ParticipantID: 2, Message: "b"},
		{Turn: 3, ParticipantID: 1, Message: "c"},
	}

	idx, ok := transcript.LastTurnOf(1)
	require.True(t, ok)
	assert.Equal(t, 2, idx, "index within transcript, not turn number")

	idx, ok = transcript.LastTurnOf(2)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = transcript.LastTurnOf(4)
	assert.False(t, ok)
}

func TestScenario_Valid(t *testing.T) {
	for _, s := range []Scenario{ScenarioBaseline, ScenarioLeadership, ScenarioSocial, ScenarioGamification} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Scenario("competitive").Valid())
}
