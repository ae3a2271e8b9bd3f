package agent

import (
	"connect4/game"
	"context"
	"sync"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type RandomOption func(r *Random)

// WithSeed makes the strategy reproducible.
func WithSeed(seed uint64) RandomOption {
	return func(r *Random) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// Random picks uniformly among the valid columns.
type Random struct {
	name string
	mu   sync.Mutex
	rng  *rand.Rand // nil draws from frand
}

func NewRandom(name string, options ...RandomOption) *Random {
	r := &Random{name: nameOr(name, KindRandom)}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *Random) Name() string {
	return r.name
}

func (r *Random) SelectMove(_ context.Context, state game.Snapshot) int {
	moves := state.ValidMoves()
	if len(moves) == 0 {
		panic("random strategy called on a full board")
	}
	return moves[r.intn(len(moves))]
}

func (r *Random) intn(n int) int {
	if r.rng == nil {
		return frand.Intn(n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
