package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/ports"
	"github.com/ahrav/go-roundtable/internal/testutils"
)

func newTestState(t *testing.T) *domain.SessionState {
	t.Helper()
	state, err := NewSessionState(DefaultConfig(), domain.DefaultRoster())
	require.NoError(t, err)
	return state
}

func TestInterestAggregator_ScoresInRosterOrder(t *testing.T) {
	oracle := testutils.NewScriptedOracle(0)
	oracle.SetScores(1, 80)
	oracle.SetScores(2, 60)
	oracle.SetScores(3, 40)
	oracle.SetScores(4, 20)

	state := newTestState(t)
	agg := NewInterestAggregator(oracle)

	scores, err := agg.Scores(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, scores, 4)

	// Results land in roster order regardless of call interleaving.
	for i, want := range []float64{80, 60, 40, 20} {
		assert.Equal(t, state.Participants[i].ID, scores[i].ParticipantID)
		assert.Equal(t, want, scores[i].Score)
	}
	assert.Equal(t, 4, oracle.ScoreCalls(), "one call per participant")
}

func TestInterestAggregator_SingleFailureFailsTurn(t *testing.T) {
	boom := errors.New("boom")
	oracle := testutils.NewScriptedOracle(50)
	oracle.ScoreFn = func(ctx context.Context, tc ports.TurnContext) (domain.InterestScore, error) {
		if tc.Participant.ID == 3 {
			return domain.InterestScore{}, boom
		}
		return domain.InterestScore{ParticipantID: tc.Participant.ID, Score: 50}, nil
	}

	agg := NewInterestAggregator(oracle)
	scores, err := agg.Scores(context.Background(), newTestState(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, scores, "no partial results on failure")
}

func TestSelectNext_HighestScoreWins(t *testing.T) {
	scores := []domain.InterestScore{
		{ParticipantID: 1, Score: 40},
		{ParticipantID: 2, Score: 90},
		{ParticipantID: 3, Score: 70},
	}

	id, err := SelectNext(scores, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestSelectNext_TieGoesToLongestSilent(t *testing.T) {
	scores := []domain.InterestScore{
		{ParticipantID: 1, Score: 80},
		{ParticipantID: 2, Score: 80},
		{ParticipantID: 3, Score: 50},
	}
	transcript := domain.Transcript{
		{Turn: 0, ParticipantID: 2, Message: "a"},
		{Turn: 1, ParticipantID: 1, Message: "b"},
	}

	// Both tied; participant 2 spoke earlier than participant 1.
	id, err := SelectNext(scores, transcript)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestSelectNext_NeverSpokenBeatsSpoken(t *testing.T) {
	scores := []domain.InterestScore{
		{ParticipantID: 1, Score: 80},
		{ParticipantID: 2, Score: 80},
	}
	transcript := domain.Transcript{
		{Turn: 0, ParticipantID: 1, Message: "a"},
	}

	id, err := SelectNext(scores, transcript)
	require.NoError(t, err)
	assert.Equal(t, 2, id, "never-spoken participant wins the tie")
}

func TestSelectNext_NoScores(t *testing.T) {
	_, err := SelectNext(nil, nil)
	assert.Error(t, err)
}
