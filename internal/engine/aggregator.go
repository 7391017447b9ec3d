package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/ports"
)

// InterestAggregator obtains one interest score per participant from
// the oracle each turn and exposes tie-break-aware selection of the
// next speaker.
type InterestAggregator struct {
	oracle ports.Oracle
	tracer trace.Tracer
}

// NewInterestAggregator creates an aggregator over the given oracle.
func NewInterestAggregator(oracle ports.Oracle) *InterestAggregator {
	return &InterestAggregator{
		oracle: oracle,
		tracer: otel.Tracer("interest-aggregator"),
	}
}

// Scores fans out one oracle call per participant and gathers the
// results in roster order. The calls are independent and run in
// parallel; the barrier waits for all of them, and a single failure
// fails the whole turn rather than being retried independently.
func (a *InterestAggregator) Scores(ctx context.Context, state *domain.SessionState) ([]domain.InterestScore, error) {
	ctx, span := a.tracer.Start(ctx, "InterestAggregator.Scores",
		trace.WithAttributes(
			attribute.Int("session.turn", state.CurrentTurn),
			attribute.Int("session.participants", len(state.Participants)),
		),
	)
	defer span.End()

	scores := make([]domain.InterestScore, len(state.Participants))
	g, gctx := errgroup.WithContext(ctx)

	for i, p := range state.Participants {
		g.Go(func() error {
			tc := ports.TurnContext{
				Participant: p,
				Roster:      state.Participants.Clone(),
				Transcript:  state.Transcript,
				Ranking:     state.Ranking.Items(),
				Turn:        state.CurrentTurn,
				Scenario:    state.Scenario,
				LeaderID:    state.LeaderID,
				History:     state.InterestHistory,
			}
			score, err := a.oracle.InterestScore(gctx, tc)
			if err != nil {
				return fmt.Errorf("interest score for participant %d: %w", p.ID, err)
			}
			score.ParticipantID = p.ID
			scores[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return scores, nil
}

// SelectNext picks the speaker for this turn: the participant with the
// strictly highest score, or on an exact tie, the tied participant who
// has gone longest without speaking. A participant who never appears in
// the transcript always wins the tie over anyone who has spoken. Raw
// oracle scores are noisy and ties are common with few participants, so
// recency is the fairness backstop.
func SelectNext(scores []domain.InterestScore, transcript domain.Transcript) (int, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("no scores to select from")
	}

	maxScore := scores[0].Score
	for _, s := range scores[1:] {
		if s.Score > maxScore {
			maxScore = s.Score
		}
	}

	winner := 0
	winnerIdx := 0
	found := false
	for _, s := range scores {
		if s.Score != maxScore {
			continue
		}
		// Never-spoken participants take the implicit index -1, which
		// beats any real transcript index.
		idx := -1
		if last, ok := transcript.LastTurnOf(s.ParticipantID); ok {
			idx = last
		}
		if !found || idx < winnerIdx {
			winner = s.ParticipantID
			winnerIdx = idx
			found = true
		}
	}
	return winner, nil
}
