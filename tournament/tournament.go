package tournament

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/game"
	"connect4/meta"
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// TieLabel is the outcome label of a game without a winner.
const TieLabel = "tie"

// progressEvery controls how often progress is logged at info level.
const progressEvery = 100

type Option func(t *Tournament)

// Game is one finished game as seen by a Recorder.
type Game struct {
	ID     int
	Order  [2]string // labels of Player1 and Player2
	Seed   uint64    // fallback seed, zero when unseeded
	Result engine.GameResult
}

// Recorder receives every finished game in order.
type Recorder func(g Game)

// Tournament plays two strategies against each other, swapping who moves
// first after every game.
type Tournament struct {
	strategies [2]agent.Strategy
	labels     [2]string
	games      int
	invoker    *engine.Invoker
	seed       uint64
	recorders  []Recorder
}

func WithGames(games int) Option {
	return func(t *Tournament) {
		if games > 0 {
			t.games = games
		}
	}
}

func WithInvoker(invoker *engine.Invoker) Option {
	return func(t *Tournament) {
		if invoker != nil {
			t.invoker = invoker
		}
	}
}

// WithSeed makes fallback moves reproducible. Each game gets its own seed
// derived from seed and the game number.
func WithSeed(seed uint64) Option {
	return func(t *Tournament) {
		t.seed = seed
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(t *Tournament) {
		if recorder != nil {
			t.recorders = append(t.recorders, recorder)
		}
	}
}

func New(a, b agent.Strategy, options ...Option) *Tournament {
	if a == nil || b == nil {
		panic("tournament needs two strategies")
	}
	t := &Tournament{ // Default values
		strategies: [2]agent.Strategy{a, b},
		labels:     labels(a.Name(), b.Name()),
		games:      meta.Games,
		invoker:    engine.NewInvoker(meta.MoveBudget, nil),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Labels returns the outcome labels of the two strategies. They are the
// strategy names unless those collide with each other or with TieLabel.
func (t *Tournament) Labels() [2]string {
	return t.labels
}

func labels(a, b string) [2]string {
	if a != b && a != TieLabel && b != TieLabel {
		return [2]string{a, b}
	}
	return [2]string{a + "#1", b + "#2"}
}

// Run plays every game and returns the report. When ctx is cancelled the
// report covers the games finished so far and ctx's error is returned.
func (t *Tournament) Run(ctx context.Context) (*Report, error) {
	report := newReport(t.labels, t.games)
	start := time.Now()

	log.Info().Msgf("starting tournament of %d games between %s and %s...", t.games, t.labels[0], t.labels[1])

	for i := 0; i < t.games; i++ {
		// Role reversal after every game
		first, second := 0, 1
		if i%2 == 1 {
			first, second = 1, 0
		}
		order := [2]string{t.labels[first], t.labels[second]}

		invoker, seed := t.gameInvoker(i)
		e := engine.New([2]agent.Strategy{t.strategies[first], t.strategies[second]}, invoker)
		result, err := e.Run(ctx)
		if err != nil {
			report.Elapsed = time.Since(start)
			return report, fmt.Errorf("game %d of %d: %w", i+1, t.games, err)
		}

		outcome := TieLabel
		if result.Winner != game.None {
			outcome = order[result.Winner-1]
		}
		report.add(order, outcome, result)

		for _, recorder := range t.recorders {
			recorder(Game{ID: i + 1, Order: order, Seed: seed, Result: result})
		}

		log.Debug().Msgf("completed game %d of %d with outcome: %s", i+1, t.games, outcome)
		if (i+1)%progressEvery == 0 && i+1 < t.games {
			log.Info().Msgf("completed %d of %d games", i+1, t.games)
		}
	}

	report.Elapsed = time.Since(start)
	log.Info().Msgf("completed tournament in %s", report.Elapsed.Round(time.Millisecond))
	return report, nil
}

func (t *Tournament) gameInvoker(i int) (*engine.Invoker, uint64) {
	if t.seed == 0 {
		return t.invoker, 0
	}
	seed := xxhash.Sum64String(fmt.Sprintf("%d/%d", t.seed, i))
	return t.invoker.WithFallback(agent.NewRandom("fallback", agent.WithSeed(seed))), seed
}
