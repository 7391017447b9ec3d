// Package testutils provides scripted stand-ins for the oracle and LLM
// client so engine behavior can be tested without a live provider.
package testutils

import (
	"context"
	"sync"

	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/ports"
)

// ScriptedOracle implements ports.Oracle with deterministic, scripted
// behavior. Scores come from a per-participant schedule keyed by turn;
// actions come from a queue consumed in order. Optional function hooks
// override the scripted behavior entirely.
type ScriptedOracle struct {
	mu sync.Mutex

	// ScoreFn, when set, replaces the scripted score lookup.
	ScoreFn func(ctx context.Context, tc ports.TurnContext) (domain.InterestScore, error)

	// ActionFn, when set, replaces the scripted action queue.
	ActionFn func(ctx context.Context, tc ports.TurnContext) (domain.ActionStep, error)

	// scores maps participant ID to a turn-indexed score schedule. A
	// participant past the end of their schedule repeats the last entry.
	scores map[int][]float64

	// defaultScore is returned for participants with no schedule.
	defaultScore float64

	// actions is the queue of steps NextAction hands out in order.
	actions []domain.ActionStep

	// scoreCalls counts InterestScore invocations, for fan-out checks.
	scoreCalls int
}

// NewScriptedOracle creates an oracle whose unscripted participants
// all score the given default.
func NewScriptedOracle(defaultScore float64) *ScriptedOracle {
	return &ScriptedOracle{
		scores:       make(map[int][]float64),
		defaultScore: defaultScore,
	}
}

// SetScores assigns a turn-indexed score schedule to a participant.
// Turns past the end of the schedule repeat its last entry.
func (o *ScriptedOracle) SetScores(participantID int, scores ...float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scores[participantID] = scores
}

// QueueAction appends a step to the action queue.
func (o *ScriptedOracle) QueueAction(step domain.ActionStep) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.actions = append(o.actions, step)
}

// ScoreCalls reports how many times InterestScore has been invoked.
func (o *ScriptedOracle) ScoreCalls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scoreCalls
}

// InterestScore implements ports.Oracle.
func (o *ScriptedOracle) InterestScore(ctx context.Context, tc ports.TurnContext) (domain.InterestScore, error) {
	if o.ScoreFn != nil {
		return o.ScoreFn(ctx, tc)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.scoreCalls++

	score := o.defaultScore
	if schedule, ok := o.scores[tc.Participant.ID]; ok && len(schedule) > 0 {
		idx := tc.Turn
		if idx >= len(schedule) {
			idx = len(schedule) - 1
		}
		score = schedule[idx]
	}
	return domain.InterestScore{
		ParticipantID: tc.Participant.ID,
		Score:         score,
		Reasoning:     "scripted",
	}, nil
}

// NextAction implements ports.Oracle. It pops the next queued step and
// stamps it with the selected participant when the script left the ID
// zero. An empty queue yields a doNothing step.
func (o *ScriptedOracle) NextAction(ctx context.Context, tc ports.TurnContext) (domain.ActionStep, error) {
	if o.ActionFn != nil {
		return o.ActionFn(ctx, tc)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.actions) == 0 {
		return domain.ActionStep{
			ParticipantID: tc.Participant.ID,
			Action:        domain.ActionDoNothing,
			Reasoning:     "scripted default",
		}, nil
	}

	step := o.actions[0]
	o.actions = o.actions[1:]
	if step.ParticipantID == 0 {
		step.ParticipantID = tc.Participant.ID
	}
	return step, nil
}

// Verify interface compliance at compile time.
var _ ports.Oracle = (*ScriptedOracle)(nil)
