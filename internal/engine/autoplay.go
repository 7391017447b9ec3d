package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// AutoPlayer advances a session continuously. It is a cooperative
// loop: each turn's full effects, including awaited oracle calls,
// settle before the next turn is scheduled, and pause or stop requests
// take effect only between turns, never mid-turn.
type AutoPlayer struct {
	sched  *Scheduler
	delay  time.Duration
	logger *slog.Logger

	paused atomic.Bool
}

// NewAutoPlayer creates an auto-player over the scheduler. The delay
// is inserted between turns; a nil logger discards output.
func NewAutoPlayer(sched *Scheduler, delay time.Duration, logger *slog.Logger) *AutoPlayer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AutoPlayer{sched: sched, delay: delay, logger: logger}
}

// Pause requests a pause. The in-flight turn, if any, still completes.
func (ap *AutoPlayer) Pause() { ap.paused.Store(true) }

// Resume clears a pause request.
func (ap *AutoPlayer) Resume() { ap.paused.Store(false) }

// Paused reports whether a pause has been requested.
func (ap *AutoPlayer) Paused() bool { return ap.paused.Load() }

// Run advances turns until the session ends, the context is canceled,
// or a turn fails. A single bad turn halts auto-play; the session is
// left in its last-good pre-turn form for the caller to inspect.
func (ap *AutoPlayer) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ap.paused.Load() {
			return nil
		}

		result, err := ap.sched.AdvanceTurn(ctx)
		if err != nil {
			if errors.Is(err, ErrTurnInProgress) {
				// Run is the only driver of this scheduler; an
				// overlapping turn means a second Run was started.
				return err
			}
			ap.logger.Error("auto-play halted",
				"turn", ap.sched.Session().CurrentTurn,
				"error", err)
			return err
		}

		ap.logger.Info("turn applied",
			"turn", ap.sched.Session().CurrentTurn,
			"participant", result.Step.ParticipantID,
			"action", result.Step.Action,
			"forced", result.Step.Forced,
			"edits", len(result.Step.Edits))

		if result.End.Ended {
			ap.logger.Info("session ended", "reason", result.End.Reason)
			return nil
		}

		if ap.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(ap.delay):
			}
		}
	}
}
