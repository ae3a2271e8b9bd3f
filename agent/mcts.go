package agent

import (
	"connect4/game"
	"connect4/searcher"
	"context"
	"math"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// MCTS plays the most visited root move. With a positive temperature it
// samples moves in proportion to visits^(1/temperature) instead.
type MCTS struct {
	name        string
	mcts        *searcher.MCTS
	temperature float64
	mu          sync.Mutex
	rng         *rand.Rand
}

func NewMCTS(name string, mcts *searcher.MCTS, temperature float64) *MCTS {
	return &MCTS{
		name:        nameOr(name, KindMCTS),
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(rand.Uint64())),
	}
}

func (a *MCTS) Name() string {
	return a.name
}

func (a *MCTS) SelectMove(ctx context.Context, state game.Snapshot) int {
	moves := state.ValidMoves()
	if len(moves) <= 1 {
		return firstValid(state)
	}

	searchCtx, cancel := searchContext(ctx, 0)
	policy, metrics := a.mcts.Search(searchCtx, state)
	cancel()
	log.Debug().
		Str("strategy", a.name).
		Int64("episodes", metrics.Episodes).
		Int64("playouts", metrics.FullPlayouts).
		Dur("duration", metrics.Duration).
		Msg("mcts search")
	if len(policy) == 0 {
		return heuristicMove(state)
	}

	if a.temperature > 0 {
		return a.sample(adjustTemperature(policy, a.temperature))
	}
	return findMax(policy)
}

// findMax returns the most visited move, preferring lower columns on ties.
func findMax(policy map[int]float64) int {
	maxMove := -1
	maxVisit := -1.0
	for _, move := range sortedMoves(policy) {
		if visit := policy[move]; visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}

func adjustTemperature(policy map[int]float64, temperature float64) map[int]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[int]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

func (a *MCTS) sample(policy map[int]float64) int {
	a.mu.Lock()
	sampled := a.rng.Float64()
	a.mu.Unlock()

	cumulative := 0.0
	lastMove := -1
	for _, move := range sortedMoves(policy) {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}

func sortedMoves(policy map[int]float64) []int {
	moves := lo.Keys(policy)
	slices.Sort(moves)
	return moves
}
