package agent

import (
	"connect4/game"
	"context"
	"time"
)

// deadlineMargin is how long before the move deadline a search stops, leaving
// time to pick the move and hand it back.
const deadlineMargin = 20 * time.Millisecond

// Strategy chooses moves for one side. SelectMove receives an independent
// snapshot and must return one of its valid columns. The context carries the
// move deadline; a strategy that ignores it is abandoned when the deadline
// passes. Strategies may be called from several goroutines at once.
type Strategy interface {
	Name() string
	SelectMove(ctx context.Context, state game.Snapshot) int
}

// firstValid is the lowest playable column, or -1 on a full board.
func firstValid(state game.Snapshot) int {
	for col := 0; col < game.Columns; col++ {
		if state.IsValidMove(col) {
			return col
		}
	}
	return -1
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// searchContext bounds a search by limit and by the move deadline of ctx less
// a margin, whichever ends first. A zero limit relies on the deadline alone.
func searchContext(ctx context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		left := remaining - min(deadlineMargin, remaining/4)
		if limit <= 0 || left < limit {
			limit = max(left, 0)
			return context.WithTimeout(ctx, limit)
		}
	}
	if limit <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, limit)
}
