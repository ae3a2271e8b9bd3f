package config

import (
	"connect4/agent"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)

	c, err := Load(nil)

	is.NoErr(err)
	is.Equal(c.Games, 1000)
	is.Equal(c.MoveBudget, time.Second)
	is.Equal(c.LogLevel, "info")
	is.Equal(c.LogFormat, "console")
	is.Equal(c.Human, 1)
	is.Equal(c.Minimax.Think, 500*time.Millisecond)
	is.Equal(c.MCTS.Goroutines, 4)
	is.Equal(c.Strategies, []agent.Spec{{Kind: agent.KindHeuristic}, {Kind: agent.KindRandom}})
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)

	c, err := Load([]string{
		"--games", "10", "--budget", "250ms", "--seed", "42", "--minimax-think", "100ms",
		"-a", "minimax:deep", "--b", "first",
		"--mcts-temperature", "0.5", "tournament",
	})

	is.NoErr(err)
	is.Equal(c.Games, 10)
	is.Equal(c.MoveBudget, 250*time.Millisecond)
	is.Equal(c.Seed, uint64(42))
	is.Equal(c.MCTS.Temperature, 0.5)
	is.Equal(c.Strategies[0], agent.Spec{Kind: agent.KindMinimax, Name: "deep"})
	is.Equal(c.Strategies[1], agent.Spec{Kind: agent.KindFirst})
	is.Equal(c.Args, []string{"tournament"})
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, "connect4.yaml", `
games: 20
move_budget: 2s
minimax:
  think: 100ms
strategies:
  - kind: mcts
    name: tree
    episodes: 500
  - kind: minimax
`)

	c, err := Load([]string{"--config", path, "--games", "30"})

	is.NoErr(err)
	is.Equal(c.Games, 30) // flags win over the file
	is.Equal(c.MoveBudget, 2*time.Second)
	is.Equal(c.Minimax.Think, 100*time.Millisecond)
	is.Equal(len(c.Strategies), 2)
	is.Equal(c.Strategies[0].Name, "tree")
	is.Equal(c.Strategies[0].Episodes, 500)

	specs := c.StrategySpecs()
	is.Equal(specs[0].Episodes, 500)
	is.Equal(specs[0].Goroutines, 4)
	is.Equal(specs[1].Think, 100*time.Millisecond)
	is.Equal(specs[1].MaxDepth, 12)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("CONNECT4_GAMES", "7")
	t.Setenv("CONNECT4_MCTS_CUTOFF", "12")

	c, err := Load(nil)

	is.NoErr(err)
	is.Equal(c.Games, 7)
	is.Equal(c.MCTS.Cutoff, 12)
}

func TestLoadEnvFile(t *testing.T) {
	is := is.New(t)
	// Registers cleanup of the variable loaded from the file.
	t.Setenv("CONNECT4_LOG_LEVEL", "")
	is.NoErr(os.Unsetenv("CONNECT4_LOG_LEVEL"))
	path := writeFile(t, ".env", "CONNECT4_LOG_LEVEL=debug\n")

	is.NoErr(LoadEnvFile(path))
	is.NoErr(LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	c, err := Load(nil)
	is.NoErr(err)
	is.Equal(c.LogLevel, "debug")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero games", []string{"--games", "0"}},
		{"negative budget", []string{"--budget=-1s"}},
		{"human seat", []string{"--human", "3"}},
		{"log format", []string{"--log-format", "xml"}},
		{"log level", []string{"--log-level", "loud"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)

			_, err := Load(tc.args)

			is.True(errors.Is(err, ErrInvalid))
		})
	}

	t.Run("unknown strategy flag", func(t *testing.T) {
		is := is.New(t)

		_, err := Load([]string{"-a", "oracle"})

		is.True(errors.Is(err, agent.ErrUnknownStrategy))
	})

	t.Run("unknown strategy in file", func(t *testing.T) {
		is := is.New(t)
		path := writeFile(t, "bad.yaml", "strategies:\n  - kind: oracle\n  - kind: random\n")

		_, err := Load([]string{"--config", path})

		is.True(errors.Is(err, ErrInvalid))
		is.True(errors.Is(err, agent.ErrUnknownStrategy))
	})

	t.Run("missing file", func(t *testing.T) {
		is := is.New(t)

		_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})

		is.True(err != nil)
	})
}

func TestStrategySpecsSeedsRandom(t *testing.T) {
	is := is.New(t)
	c := &Config{Seed: 9, Strategies: []agent.Spec{
		{Kind: agent.KindRandom},
		{Kind: agent.KindRandom},
		{Kind: agent.KindRandom, Seed: 3},
	}}

	specs := c.StrategySpecs()

	is.True(specs[0].Seed != 0)
	is.True(specs[0].Seed != specs[1].Seed) // seats draw different sequences
	is.Equal(specs[2].Seed, uint64(3))
	is.Equal(c.StrategySpecs(), specs) // derivation is reproducible

	c.Seed = 0
	is.Equal(c.StrategySpecs()[0].Seed, uint64(0))
}

func TestValidateSearchTimeWithinBudget(t *testing.T) {
	tests := []struct {
		name string
		args []string
		ok   bool
	}{
		{"minimax think exceeds budget", []string{"--budget", "100ms", "-a", "minimax"}, false},
		{"minimax think equals budget", []string{"--budget", "500ms", "-a", "minimax"}, false},
		{"minimax think below budget", []string{"--budget", "100ms", "--minimax-think", "50ms", "-a", "minimax"}, true},
		{"mcts duration exceeds budget", []string{"--budget", "100ms", "-b", "mcts"}, false},
		{"mcts episodes ignore duration", []string{"--budget", "100ms", "--mcts-episodes", "500", "-b", "mcts"}, true},
		{"unused search settings", []string{"--budget", "100ms"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)

			_, err := Load(tc.args)

			if tc.ok {
				is.NoErr(err)
			} else {
				is.True(errors.Is(err, ErrInvalid))
			}
		})
	}
}
