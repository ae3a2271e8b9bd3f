package agent

import (
	"connect4/game"
	"connect4/searcher"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Minimax searches with iterative-deepening negamax until its think time runs
// out or the move deadline draws near, whichever comes first.
type Minimax struct {
	name   string
	think  time.Duration
	search *searcher.Negamax
}

// NewMinimax returns a minimax strategy. A zero think time relies on the
// move deadline alone; maxDepth <= 0 searches to the end of the game.
func NewMinimax(name string, think time.Duration, maxDepth int) *Minimax {
	return &Minimax{
		name:   nameOr(name, KindMinimax),
		think:  think,
		search: searcher.NewNegamax(maxDepth),
	}
}

func (m *Minimax) Name() string {
	return m.name
}

func (m *Minimax) SelectMove(ctx context.Context, state game.Snapshot) int {
	ctx, cancel := searchContext(ctx, m.think)
	defer cancel()

	result, err := m.search.Search(ctx, state)
	if err != nil || !state.IsValidMove(result.Column) {
		log.Debug().Err(err).Str("strategy", m.name).Msg("search incomplete, playing heuristic move")
		return heuristicMove(state)
	}
	log.Debug().
		Str("strategy", m.name).
		Int("column", result.Column).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Int64("nodes", result.Nodes).
		Msg("negamax search")
	return result.Column
}
