package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"connect4/meta"
	"connect4/searcher"

	"github.com/samber/lo"
)

const (
	KindRandom    = "random"
	KindFirst     = "first"
	KindHeuristic = "heuristic"
	KindMinimax   = "minimax"
	KindMCTS      = "mcts"
)

var Kinds = []string{KindRandom, KindFirst, KindHeuristic, KindMinimax, KindMCTS}

var ErrUnknownStrategy = errors.New("unknown strategy")

// Spec describes a strategy to build. Only the fields of the chosen kind are
// read; zero values fall back to the defaults in meta.
type Spec struct {
	Kind string `mapstructure:"kind" yaml:"kind"`
	Name string `mapstructure:"name" yaml:"name,omitempty"`

	Seed uint64 `mapstructure:"seed" yaml:"seed,omitempty"` // random

	Think    time.Duration `mapstructure:"think" yaml:"think,omitempty"`         // minimax
	MaxDepth int           `mapstructure:"max_depth" yaml:"max_depth,omitempty"` // minimax

	Goroutines  int           `mapstructure:"goroutines" yaml:"goroutines,omitempty"`   // mcts
	Duration    time.Duration `mapstructure:"duration" yaml:"duration,omitempty"`       // mcts
	Episodes    int           `mapstructure:"episodes" yaml:"episodes,omitempty"`       // mcts
	Cutoff      int           `mapstructure:"cutoff" yaml:"cutoff,omitempty"`           // mcts
	Temperature float64       `mapstructure:"temperature" yaml:"temperature,omitempty"` // mcts
}

// ParseSpec reads "kind" or "kind:name".
func ParseSpec(s string) (Spec, error) {
	kind, name, _ := strings.Cut(strings.TrimSpace(s), ":")
	spec := Spec{Kind: strings.ToLower(kind), Name: name}
	if !lo.Contains(Kinds, spec.Kind) {
		return Spec{}, fmt.Errorf("%w %q, want one of %s", ErrUnknownStrategy, kind, strings.Join(Kinds, ", "))
	}
	return spec, nil
}

// New builds the strategy described by spec.
func New(spec Spec) (Strategy, error) {
	switch spec.Kind {
	case KindRandom:
		var options []RandomOption
		if spec.Seed != 0 {
			options = append(options, WithSeed(spec.Seed))
		}
		return NewRandom(spec.Name, options...), nil
	case KindFirst:
		return NewFirstValid(spec.Name), nil
	case KindHeuristic:
		return NewHeuristic(spec.Name), nil
	case KindMinimax:
		think := lo.Ternary(spec.Think > 0, spec.Think, meta.MinimaxThink)
		depth := lo.Ternary(spec.MaxDepth > 0, spec.MaxDepth, meta.MinimaxDepth)
		return NewMinimax(spec.Name, think, depth), nil
	case KindMCTS:
		goroutines := lo.Ternary(spec.Goroutines > 0, spec.Goroutines, meta.MCTSGoroutines)
		options := []searcher.Option{searcher.WithCutoff(spec.Cutoff), searcher.WithMetrics()}
		if spec.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(spec.Episodes))
		} else {
			options = append(options, searcher.WithDuration(lo.Ternary(spec.Duration > 0, spec.Duration, meta.MCTSDuration)))
		}
		return NewMCTS(spec.Name, searcher.NewMCTS(goroutines, options...), spec.Temperature), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, spec.Kind)
}
