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

func TestAutoPlayer_RunsToSessionEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTurns = 3
	oracle := testutils.NewScriptedOracle(50)
	// An edit each turn keeps the stagnation rule quiet so the budget
	// is what ends the session.
	oracle.ActionFn = func(ctx context.Context, tc ports.TurnContext) (domain.ActionStep, error) {
		return domain.ActionStep{
			ParticipantID: tc.Participant.ID,
			Action:        domain.ActionSpeak,
			Message:       "keep talking",
			Edits:         []domain.RankingEdit{{Item: "sextant", TargetRank: tc.Turn + 1}},
		}, nil
	}

	sched := newTestScheduler(t, cfg, oracle)
	player := NewAutoPlayer(sched, 0, nil)

	require.NoError(t, player.Run(context.Background()))

	state := sched.Session()
	assert.True(t, state.Ended)
	assert.Equal(t, domain.EndReasonMaxTurns, state.EndReason)
	assert.Equal(t, 3, state.CurrentTurn)
}

func TestAutoPlayer_HaltsOnOracleFailure(t *testing.T) {
	boom := errors.New("provider down")
	calls := 0
	oracle := testutils.NewScriptedOracle(50)
	oracle.ActionFn = func(ctx context.Context, tc ports.TurnContext) (domain.ActionStep, error) {
		calls++
		if calls > 2 {
			return domain.ActionStep{}, boom
		}
		return domain.ActionStep{
			ParticipantID: tc.Participant.ID,
			Action:        domain.ActionSpeak,
			Message:       "fine so far",
		}, nil
	}

	sched := newTestScheduler(t, DefaultConfig(), oracle)
	player := NewAutoPlayer(sched, 0, nil)

	err := player.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The failed turn left no trace; only the two good turns applied.
	state := sched.Session()
	assert.Equal(t, 2, state.CurrentTurn)
	assert.False(t, state.Ended)
}

func TestAutoPlayer_StopsWhenPaused(t *testing.T) {
	oracle := testutils.NewScriptedOracle(50)
	sched := newTestScheduler(t, DefaultConfig(), oracle)
	player := NewAutoPlayer(sched, 0, nil)

	player.Pause()
	require.NoError(t, player.Run(context.Background()))
	assert.Equal(t, 0, sched.Session().CurrentTurn, "no turn runs while paused")
	assert.True(t, player.Paused())

	player.Resume()
	assert.False(t, player.Paused())
}

func TestAutoPlayer_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	oracle := testutils.NewScriptedOracle(50)
	sched := newTestScheduler(t, DefaultConfig(), oracle)
	player := NewAutoPlayer(sched, 0, nil)

	err := player.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sched.Session().CurrentTurn)
}
