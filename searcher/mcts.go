package searcher

import (
	"connect4/game"
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// MCTS runs tree-parallel Monte Carlo tree search with virtual loss. Each
// Search builds its own tree, so one MCTS may serve concurrent callers.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	metrics    bool
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = true
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateWindows,
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search explores from state until the episode count or the duration runs
// out, or ctx is done, and returns the visit count of each root move.
func (m *MCTS) Search(ctx context.Context, state game.State) (map[int]float64, SearchMetrics) {
	root := newDecision(nil, state.Player().Other(), state)
	collector := NewNoMetricsCollector()
	if m.metrics {
		collector = NewMetricsCollector()
	}

	// Run simulations to collect statistics
	collector.Start(m.goroutines)
	if m.episodes > 0 {
		m.iterate(ctx, root, state, collector)
	} else {
		m.countdown(ctx, root, state, collector)
	}
	metric := collector.Complete()

	return root.Policy(), metric
}

func (m *MCTS) iterate(ctx context.Context, root *decision, state game.State, collector MetricsCollector) {
	var remaining atomic.Int64
	remaining.Store(int64(m.episodes))

	var g errgroup.Group
	for i := 0; i < m.goroutines; i++ {
		g.Go(func() error {
			for remaining.Add(-1) >= 0 {
				if ctx.Err() != nil {
					return nil
				}
				m.simulate(root, state, collector)
				collector.AddEpisode()
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (m *MCTS) countdown(ctx context.Context, root *decision, state game.State, collector MetricsCollector) {
	ctx, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()

	var g errgroup.Group
	for i := 0; i < m.goroutines; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
					m.simulate(root, state, collector)
					collector.AddEpisode()
				}
			}
		})
	}
	_ = g.Wait()
}

func (m *MCTS) simulate(root *decision, state game.State, collector MetricsCollector) {
	newNode, newState := selectThenExpand(root, state)
	player, score := rollout(newState, m.cutoff, m.evaluate, collector)
	backup(newNode, player, score)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

func rollout(state game.State, cutoff int, evaluate game.Evaluate, collector MetricsCollector) (game.Player, float64) {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rand.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		collector.AddFullPlayout()
		return state.Winner(), Win
	}

	// At cutoff state, return an evaluation score from current player's perspective
	return state.Player(), evaluate(state)
}

func backup(newNode *decision, player game.Player, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(player, score)
	}
}
