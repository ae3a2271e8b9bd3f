package engine

import (
	"connect4/agent"
	"connect4/game"
	"connect4/meta"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Status classifies how a strategy call ended.
type Status int

const (
	Completed Status = iota // strategy answered in time with a valid column
	TimedOut                // budget elapsed first; fallback played
	Invalid                 // strategy answered with an unplayable column; fallback played
	Failed                  // strategy panicked; fallback played
	Cancelled               // caller cancelled the turn; fallback column only
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case TimedOut:
		return "timed out"
	case Invalid:
		return "invalid"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Invocation is the column chosen for one turn and how it was obtained.
type Invocation struct {
	Column  int
	Status  Status
	Elapsed time.Duration
}

type outcome struct {
	column int
	err    error
}

// Invoker runs strategies under a time budget. Whatever a strategy does
// after its budget has elapsed is discarded.
type Invoker struct {
	budget   time.Duration
	fallback agent.Strategy
}

// NewInvoker returns an invoker with the given budget per move. A zero budget
// uses meta.MoveBudget and a nil fallback picks uniformly at random.
func NewInvoker(budget time.Duration, fallback agent.Strategy) *Invoker {
	if budget <= 0 {
		budget = meta.MoveBudget
	}
	if fallback == nil {
		fallback = agent.NewRandom("fallback")
	}
	return &Invoker{budget: budget, fallback: fallback}
}

func (inv *Invoker) Budget() time.Duration {
	return inv.budget
}

// WithFallback returns a copy of inv that substitutes moves with fallback.
func (inv *Invoker) WithFallback(fallback agent.Strategy) *Invoker {
	return &Invoker{budget: inv.budget, fallback: fallback}
}

// Invoke asks strategy for a move on state. The returned column is always
// valid on state, provided state is not terminal.
func (inv *Invoker) Invoke(ctx context.Context, strategy agent.Strategy, state game.Snapshot) Invocation {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, inv.budget)
	defer cancel()

	// Buffered so an abandoned call can finish without blocking.
	results := make(chan outcome, 1)
	go func(snapshot game.Snapshot) {
		defer func() {
			if r := recover(); r != nil {
				results <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		results <- outcome{column: strategy.SelectMove(ctx, snapshot)}
	}(state)

	select {
	case out := <-results:
		elapsed := time.Since(start)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) { // answered, but only after the deadline
			log.Warn().Str("strategy", strategy.Name()).Dur("budget", inv.budget).Msg("strategy timed out, playing fallback move")
			return inv.substitute(state, TimedOut, elapsed)
		}
		if ctx.Err() != nil {
			return inv.cancelled(strategy, state, elapsed)
		}
		if out.err != nil {
			log.Error().Err(out.err).Str("strategy", strategy.Name()).Msg("strategy failed, playing fallback move")
			return inv.substitute(state, Failed, elapsed)
		}
		if !state.IsValidMove(out.column) {
			log.Error().Str("strategy", strategy.Name()).Int("column", out.column).Msg("strategy chose an invalid column, playing fallback move")
			return inv.substitute(state, Invalid, elapsed)
		}
		return Invocation{Column: out.column, Status: Completed, Elapsed: elapsed}
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return inv.cancelled(strategy, state, time.Since(start))
		}
		log.Warn().Str("strategy", strategy.Name()).Dur("budget", inv.budget).Msg("strategy timed out, playing fallback move")
		return inv.substitute(state, TimedOut, time.Since(start))
	}
}

func (inv *Invoker) cancelled(strategy agent.Strategy, state game.Snapshot, elapsed time.Duration) Invocation {
	log.Debug().Str("strategy", strategy.Name()).Msg("move cancelled")
	return inv.substitute(state, Cancelled, elapsed)
}

func (inv *Invoker) substitute(state game.Snapshot, status Status, elapsed time.Duration) Invocation {
	column := inv.fallback.SelectMove(context.Background(), state)
	if !state.IsValidMove(column) {
		if moves := state.ValidMoves(); len(moves) > 0 {
			column = moves[0]
		}
	}
	return Invocation{Column: column, Status: status, Elapsed: elapsed}
}
