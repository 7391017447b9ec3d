package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/ports"
)

// Phase is the scheduler's lifecycle state.
type Phase string

const (
	// PhaseIdle means no turn has been advanced yet.
	PhaseIdle Phase = "idle"

	// PhaseRunning means at least one turn has been applied.
	PhaseRunning Phase = "running"

	// PhaseEnded means the session has terminated.
	PhaseEnded Phase = "ended"
)

// ErrTurnInProgress indicates an advance was requested while another
// turn was still in flight. Turns are strictly sequential; callers must
// wait for the previous turn's effects to settle.
var ErrTurnInProgress = errors.New("turn already in progress")

// TurnResult is everything one advance produced.
type TurnResult struct {
	// Step is the applied action step.
	Step domain.ActionStep `json:"step"`

	// Scores are this turn's interest scores in roster order.
	Scores []domain.InterestScore `json:"scores"`

	// Changes are the ranking moves applied with this step.
	Changes []domain.Change `json:"changes,omitempty"`

	// End is the monitor's verdict after this turn.
	End EndCondition `json:"end"`

	// RejectedEdits joins per-edit invalid-rank rejections, nil when
	// the whole batch applied cleanly.
	RejectedEdits error `json:"-"`
}

// Scheduler drives one session: each advance either forces a camera
// toggle via the threshold rule or selects a speaker through the
// aggregator, requests an action from the oracle, and applies its
// effects. All effects of a turn commit atomically or not at all.
type Scheduler struct {
	cfg        Config
	catalog    domain.Catalog
	oracle     ports.Oracle
	aggregator *InterestAggregator
	metrics    ports.MetricsCollector
	tracer     trace.Tracer

	session *domain.SessionState

	// inProgress guards against overlapping advances. There is no
	// other synchronization: turns are strictly sequential.
	inProgress atomic.Bool
	started    atomic.Bool
}

// NewScheduler creates a scheduler for a fresh session. The metrics
// collector may be nil when observability is not wired.
func NewScheduler(
	cfg Config,
	catalog domain.Catalog,
	oracle ports.Oracle,
	metrics ports.MetricsCollector,
	session *domain.SessionState,
) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, fmt.Errorf("oracle cannot be nil")
	}
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}

	return &Scheduler{
		cfg:        cfg,
		catalog:    catalog,
		oracle:     oracle,
		aggregator: NewInterestAggregator(oracle),
		metrics:    metrics,
		tracer:     otel.Tracer("turn-scheduler"),
		session:    session,
	}, nil
}

// Phase returns the scheduler's lifecycle state.
func (s *Scheduler) Phase() Phase {
	switch {
	case s.session.Ended:
		return PhaseEnded
	case s.started.Load():
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

// Session returns a deep copy of the current session state. Callers
// get a consistent snapshot; the scheduler's own state is never handed
// out for mutation.
func (s *Scheduler) Session() *domain.SessionState { return s.session.Clone() }

// TaskScore computes the outcome score of the current ranking.
func (s *Scheduler) TaskScore() int { return TaskScore(s.session.Ranking, s.catalog) }

// AdvanceTurn runs one turn to completion. Errors from the oracle are
// fatal to the turn and leave the session in its pre-turn form; the
// caller decides whether to stop or retry, but auto-play halts.
func (s *Scheduler) AdvanceTurn(ctx context.Context) (*TurnResult, error) {
	if s.session.Ended {
		return nil, domain.ErrSessionEnded
	}
	if !s.inProgress.CompareAndSwap(false, true) {
		return nil, ErrTurnInProgress
	}
	defer s.inProgress.Store(false)
	s.started.Store(true)

	ctx, span := s.tracer.Start(ctx, "Scheduler.AdvanceTurn",
		trace.WithAttributes(
			attribute.Int("session.turn", s.session.CurrentTurn),
			attribute.String("session.scenario", string(s.session.Scenario)),
		),
	)
	defer span.End()
	start := time.Now()

	result, err := s.advance(ctx)
	if err != nil {
		span.RecordError(err)
		s.count("turn_errors_total", map[string]string{"scenario": string(s.cfg.Scenario)})
		return nil, err
	}

	span.SetAttributes(
		attribute.String("turn.action", string(result.Step.Action)),
		attribute.Bool("turn.forced", result.Step.Forced),
		attribute.Bool("turn.ended", result.End.Ended),
	)
	if s.metrics != nil {
		labels := map[string]string{
			"scenario": string(s.cfg.Scenario),
			"action":   string(result.Step.Action),
		}
		s.metrics.RecordCounter("turns_total", 1, labels)
		s.metrics.RecordLatency("advance_turn", time.Since(start).Seconds(), labels)
	}
	return result, nil
}

// advance performs the actual turn against a scratch copy of the
// session and commits it only when every effect succeeded.
func (s *Scheduler) advance(ctx context.Context) (*TurnResult, error) {
	scores, err := s.aggregator.Scores(ctx, s.session)
	if err != nil {
		return nil, err
	}

	scratch := s.session.Clone()
	for _, sc := range scores {
		scratch.InterestHistory = append(scratch.InterestHistory, domain.InterestRecord{
			Turn:          scratch.CurrentTurn,
			ParticipantID: sc.ParticipantID,
			Score:         sc.Score,
		})
	}

	step, err := s.decideStep(ctx, scratch, scores)
	if err != nil {
		return nil, err
	}

	changes, rejected, err := s.applyStep(scratch, step)
	if err != nil {
		return nil, err
	}

	// Forced toggles carry no ranking edits by construction, so they
	// never feed the stagnation window.
	if !step.Forced {
		scratch.RecordChange(len(step.Edits) > 0)
	}

	scratch.CurrentTurn++
	end := CheckEnd(scratch.CurrentTurn, scratch.ChangeWindow, s.cfg.MaxTurns)
	if end.Ended {
		scratch.Ended = true
		scratch.EndReason = end.Reason
	}

	s.session = scratch

	return &TurnResult{
		Step:          step,
		Scores:        scores,
		Changes:       changes,
		End:           end,
		RejectedEdits: rejected,
	}, nil
}

// decideStep resolves which step happens this turn: a forced camera
// toggle when any participant's camera disagrees with the threshold
// rule, otherwise the oracle's action for the aggregator-selected
// speaker.
func (s *Scheduler) decideStep(ctx context.Context, scratch *domain.SessionState, scores []domain.InterestScore) (domain.ActionStep, error) {
	if p, score, ok := s.forcedToggleCandidate(scratch, scores); ok {
		return forcedToggleStep(p, score, s.cfg.CameraThreshold), nil
	}

	nextID, err := SelectNext(scores, scratch.Transcript)
	if err != nil {
		return domain.ActionStep{}, err
	}
	participant := scratch.Participants.ByID(nextID)
	if participant == nil {
		return domain.ActionStep{}, fmt.Errorf("selected participant %d: %w", nextID, domain.ErrParticipantNotFound)
	}

	tc := ports.TurnContext{
		Participant: *participant,
		Roster:      scratch.Participants.Clone(),
		Transcript:  scratch.Transcript,
		Ranking:     scratch.Ranking.Items(),
		Turn:        scratch.CurrentTurn,
		Scenario:    scratch.Scenario,
		LeaderID:    scratch.LeaderID,
		History:     scratch.InterestHistory,
	}
	step, err := s.oracle.NextAction(ctx, tc)
	if err != nil {
		return domain.ActionStep{}, fmt.Errorf("next action for participant %d: %w", nextID, err)
	}
	if step.ParticipantID == 0 {
		step.ParticipantID = nextID
	}
	if step.ParticipantID != nextID {
		return domain.ActionStep{}, fmt.Errorf("%w: oracle acted for participant %d, selected %d",
			domain.ErrOracleMalformed, step.ParticipantID, nextID)
	}
	if err := step.Validate(); err != nil {
		return domain.ActionStep{}, err
	}
	return step, nil
}

// forcedToggleCandidate returns the first participant in roster order
// whose camera state disagrees with the threshold rule: interest below
// the threshold with the camera on, or at/above it with the camera off.
func (s *Scheduler) forcedToggleCandidate(state *domain.SessionState, scores []domain.InterestScore) (domain.Participant, float64, bool) {
	byID := make(map[int]float64, len(scores))
	for _, sc := range scores {
		byID[sc.ParticipantID] = sc.Score
	}
	for _, p := range state.Participants {
		score, ok := byID[p.ID]
		if !ok {
			continue
		}
		if (score < s.cfg.CameraThreshold && p.CameraOn) || (score >= s.cfg.CameraThreshold && !p.CameraOn) {
			return p, score, true
		}
	}
	return domain.Participant{}, 0, false
}

// forcedToggleStep synthesizes the camera-toggle step for a threshold
// violation, bypassing the oracle for this turn.
func forcedToggleStep(p domain.Participant, score, threshold float64) domain.ActionStep {
	direction, movement := "turned on", "rising above"
	relation, change := "above", "turn on"
	if p.CameraOn {
		direction, movement = "turned off", "dropping below"
		relation, change = "below", "turn off"
	}
	return domain.ActionStep{
		ParticipantID: p.ID,
		Action:        domain.ActionToggleCamera,
		Message: fmt.Sprintf("%s %s their camera due to their interest level %s %.0f%%",
			p.Name, direction, movement, threshold),
		Reasoning: fmt.Sprintf("My interest level is %.0f%%, which is %s the threshold of %.0f%%. I should %s my camera.",
			score, relation, threshold, change),
		Forced: true,
	}
}

// applyStep mutates the scratch session with the step's full effects:
// transcript, counters, participation rate, and ranking edits. Only
// invalid-rank rejections are tolerated; they drop individual edits
// while the rest of the batch and the step itself still apply.
func (s *Scheduler) applyStep(scratch *domain.SessionState, step domain.ActionStep) ([]domain.Change, error, error) {
	if scratch.Participants.ByID(step.ParticipantID) == nil {
		return nil, nil, fmt.Errorf("step for participant %d: %w", step.ParticipantID, domain.ErrParticipantNotFound)
	}

	if step.Action == domain.ActionSpeak {
		scratch.Transcript = append(scratch.Transcript, domain.Utterance{
			Turn:          scratch.CurrentTurn,
			ParticipantID: step.ParticipantID,
			Message:       step.Message,
		})
	}

	scratch.Steps = append(scratch.Steps, step)
	if err := accumulate(scratch, step); err != nil {
		return nil, nil, err
	}

	store := NewRankingStore(s.catalog, scratch.Ranking)
	changes, rejected := store.ApplyEdits(step.Edits)
	return changes, rejected, nil
}

func (s *Scheduler) count(metric string, labels map[string]string) {
	if s.metrics != nil {
		s.metrics.RecordCounter(metric, 1, labels)
	}
}
