package config

import (
	"connect4/agent"
	"connect4/meta"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

type MinimaxConfig struct {
	Think    time.Duration `mapstructure:"think"`
	MaxDepth int           `mapstructure:"max_depth"`
}

type MCTSConfig struct {
	Goroutines  int           `mapstructure:"goroutines"`
	Duration    time.Duration `mapstructure:"duration"`
	Episodes    int           `mapstructure:"episodes"`
	Cutoff      int           `mapstructure:"cutoff"`
	Temperature float64       `mapstructure:"temperature"`
}

type Config struct {
	Games      int           `mapstructure:"games"`
	MoveBudget time.Duration `mapstructure:"move_budget"`
	Seed       uint64        `mapstructure:"seed"`
	OutputDir  string        `mapstructure:"output_dir"`
	Record     bool          `mapstructure:"record"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"`
	Human      int           `mapstructure:"human"`
	Strategies []agent.Spec  `mapstructure:"strategies"`
	Minimax    MinimaxConfig `mapstructure:"minimax"`
	MCTS       MCTSConfig    `mapstructure:"mcts"`

	// Args holds the positional arguments left after flag parsing.
	Args []string `mapstructure:"-"`
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"games":            "games",
	"budget":           "move_budget",
	"seed":             "seed",
	"output":           "output_dir",
	"record":           "record",
	"log-level":        "log_level",
	"log-format":       "log_format",
	"human":            "human",
	"minimax-think":    "minimax.think",
	"minimax-depth":    "minimax.max_depth",
	"mcts-goroutines":  "mcts.goroutines",
	"mcts-duration":    "mcts.duration",
	"mcts-episodes":    "mcts.episodes",
	"mcts-cutoff":      "mcts.cutoff",
	"mcts-temperature": "mcts.temperature",
}

func flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	flags.SetOutput(io.Discard) // callers report parse errors and usage
	flags.String("config", "", "path to a YAML, JSON or TOML config file")
	flags.Int("games", meta.Games, "number of games in a tournament")
	flags.Duration("budget", meta.MoveBudget, "time a strategy has to choose a move")
	flags.Uint64("seed", 0, "seed for reproducible fallback moves, 0 for none")
	flags.String("output", meta.OutputDir, "directory for tournament records")
	flags.Bool("record", false, "write game and move records")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.Int("human", 1, "seat of the human player in play mode (1 or 2)")
	flags.StringP("a", "a", "", "first strategy as kind[:name]")
	flags.StringP("b", "b", "", "second strategy as kind[:name]")
	flags.Duration("minimax-think", meta.MinimaxThink, "minimax think time per move")
	flags.Int("minimax-depth", meta.MinimaxDepth, "deepest minimax iteration")
	flags.Int("mcts-goroutines", meta.MCTSGoroutines, "MCTS worker goroutines")
	flags.Duration("mcts-duration", meta.MCTSDuration, "MCTS search time per move")
	flags.Int("mcts-episodes", 0, "MCTS episodes per move, overrides the duration")
	flags.Int("mcts-cutoff", 0, "MCTS rollout depth before evaluating, 0 for full playouts")
	flags.Float64("mcts-temperature", 0, "MCTS move sampling temperature, 0 plays the most visited move")
	return flags
}

// Usage returns the flag descriptions.
func Usage() string {
	return flagSet().FlagUsages()
}

// LoadEnvFile loads environment variables from a dotenv file. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load builds the configuration from defaults, an optional config file,
// CONNECT4_* environment variables and command line flags, in increasing
// order of precedence.
func Load(args []string) (*Config, error) {
	flags := flagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(meta.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	c.Args = flags.Args()

	if len(c.Strategies) == 0 {
		c.Strategies = []agent.Spec{{Kind: agent.KindHeuristic}, {Kind: agent.KindRandom}}
	}
	for i, name := range []string{"a", "b"} {
		if !flags.Changed(name) {
			continue
		}
		value, _ := flags.GetString(name)
		spec, err := agent.ParseSpec(value)
		if err != nil {
			return nil, fmt.Errorf("flag --%s: %w", name, err)
		}
		for len(c.Strategies) <= i {
			c.Strategies = append(c.Strategies, agent.Spec{})
		}
		c.Strategies[i] = spec
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings no run can use.
func (c *Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalid, c.Games)
	}
	if c.MoveBudget <= 0 {
		return fmt.Errorf("%w: move budget must be positive, got %s", ErrInvalid, c.MoveBudget)
	}
	if c.Human != 1 && c.Human != 2 {
		return fmt.Errorf("%w: human must be 1 or 2, got %d", ErrInvalid, c.Human)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format must be console or json, got %q", ErrInvalid, c.LogFormat)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Strategies) < 2 {
		return fmt.Errorf("%w: need two strategies, got %d", ErrInvalid, len(c.Strategies))
	}
	for _, spec := range c.Strategies {
		if !lo.Contains(agent.Kinds, spec.Kind) {
			return fmt.Errorf("%w: %w %q", ErrInvalid, agent.ErrUnknownStrategy, spec.Kind)
		}
	}
	for _, spec := range c.StrategySpecs() {
		switch {
		case spec.Kind == agent.KindMinimax && spec.Think >= c.MoveBudget:
			return fmt.Errorf("%w: minimax think time %s must be shorter than the move budget %s", ErrInvalid, spec.Think, c.MoveBudget)
		case spec.Kind == agent.KindMCTS && spec.Episodes == 0 && spec.Duration >= c.MoveBudget:
			return fmt.Errorf("%w: mcts duration %s must be shorter than the move budget %s", ErrInvalid, spec.Duration, c.MoveBudget)
		}
	}
	return nil
}

// StrategySpecs returns the configured strategies with the search settings
// filled in where a strategy does not set its own. Unseeded random strategies
// get a seed derived from Seed and their position.
func (c *Config) StrategySpecs() []agent.Spec {
	return lo.Map(c.Strategies, func(spec agent.Spec, i int) agent.Spec {
		switch spec.Kind {
		case agent.KindRandom:
			if spec.Seed == 0 && c.Seed != 0 {
				// Each seat draws its own sequence
				spec.Seed = xxhash.Sum64String(fmt.Sprintf("%d/seat/%d", c.Seed, i))
			}
		case agent.KindMinimax:
			spec.Think = lo.Ternary(spec.Think > 0, spec.Think, c.Minimax.Think)
			spec.MaxDepth = lo.Ternary(spec.MaxDepth > 0, spec.MaxDepth, c.Minimax.MaxDepth)
		case agent.KindMCTS:
			spec.Goroutines = lo.Ternary(spec.Goroutines > 0, spec.Goroutines, c.MCTS.Goroutines)
			spec.Duration = lo.Ternary(spec.Duration > 0, spec.Duration, c.MCTS.Duration)
			spec.Episodes = lo.Ternary(spec.Episodes > 0, spec.Episodes, c.MCTS.Episodes)
			spec.Cutoff = lo.Ternary(spec.Cutoff > 0, spec.Cutoff, c.MCTS.Cutoff)
			spec.Temperature = lo.Ternary(spec.Temperature > 0, spec.Temperature, c.MCTS.Temperature)
		}
		return spec
	})
}
