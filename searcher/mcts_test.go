package searcher

import (
	"connect4/game"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() {
			NewMCTS(1)
		}, "Should require episodes or duration")
	})

	t.Run("ignores invalid options", func(t *testing.T) {
		m := NewMCTS(0, WithEpisodes(10), WithCutoff(-1), WithDuration(-time.Second), WithEvaluationFn(nil))

		require.Equal(t, 1, m.goroutines)
		require.Equal(t, 10, m.episodes)
		require.Equal(t, MaxCutoff, m.cutoff)
		require.Zero(t, m.duration)
		require.NotNil(t, m.evaluate)
	})
}

func TestMCTSSearch(t *testing.T) {
	t.Run("runs the requested number of episodes", func(t *testing.T) {
		m := NewMCTS(4, WithEpisodes(200), WithMetrics())

		policy, metrics := m.Search(context.Background(), game.NewSnapshot())

		require.Equal(t, int64(200), metrics.Episodes)
		require.Equal(t, 4, metrics.Goroutines)
		require.Len(t, policy, game.Columns, "Every column should be explored")
		total := 0.0
		for _, visits := range policy {
			total += visits
		}
		require.Equal(t, 200.0, total, "Each episode should pass through one root move")
	})

	t.Run("finds an immediate win", func(t *testing.T) {
		// Player1 holds columns 0-2 on the bottom row and is to move.
		state := position(0, 6, 1, 6, 2, 5)
		m := NewMCTS(4, WithEpisodes(3000))

		policy, _ := m.Search(context.Background(), state)

		best, most := -1, -1.0
		for move, visits := range policy {
			if visits > most {
				best, most = move, visits
			}
		}
		require.Equal(t, 3, best, "Winning column should be visited most")
	})

	t.Run("cutoff rollouts use the evaluation function", func(t *testing.T) {
		calls := 0
		evaluate := func(game.State) float64 {
			calls++
			return 0
		}
		m := NewMCTS(1, WithEpisodes(50), WithCutoff(1), WithEvaluationFn(evaluate), WithMetrics())

		_, metrics := m.Search(context.Background(), game.NewSnapshot())

		require.Equal(t, 50, calls, "Every rollout from the opening should hit the cutoff")
		require.Zero(t, metrics.FullPlayouts)
	})

	t.Run("stops when the duration elapses", func(t *testing.T) {
		m := NewMCTS(2, WithDuration(20*time.Millisecond))

		start := time.Now()
		policy, _ := m.Search(context.Background(), game.NewSnapshot())

		require.Less(t, time.Since(start), time.Second)
		require.NotEmpty(t, policy)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		m := NewMCTS(2, WithDuration(time.Hour), WithMetrics())
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		m.Search(ctx, game.NewSnapshot())

		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("cancelled context skips all episodes", func(t *testing.T) {
		m := NewMCTS(2, WithEpisodes(1000), WithMetrics())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		policy, metrics := m.Search(ctx, game.NewSnapshot())

		require.Empty(t, policy)
		require.Zero(t, metrics.Episodes)
	})

	t.Run("concurrent searches do not share trees", func(t *testing.T) {
		m := NewMCTS(2, WithEpisodes(100))
		results := make(chan map[int]float64, 2)

		for i := 0; i < 2; i++ {
			go func() {
				policy, _ := m.Search(context.Background(), game.NewSnapshot())
				results <- policy
			}()
		}

		for i := 0; i < 2; i++ {
			total := 0.0
			for _, visits := range <-results {
				total += visits
			}
			require.Equal(t, 100.0, total)
		}
	})
}
