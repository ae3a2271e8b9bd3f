package main

import (
	"connect4/agent"
	"connect4/config"
	"connect4/engine"
	"connect4/game"
	"connect4/gamemaster"
	"connect4/tournament"
	"connect4/tournament/metrics"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `usage: connect4 [flags] [tournament|play]

  tournament  play strategies a and b against each other (default)
  play        play against strategy a in the terminal

flags:
`

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stderr, usage+config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s%s", err, usage, config.Usage())
		os.Exit(2)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "tournament"
	if len(cfg.Args) > 0 {
		mode = cfg.Args[0]
	}
	switch mode {
	case "tournament":
		err = runTournament(ctx, cfg)
	case "play":
		err = runPlay(ctx, cfg)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("")
	}
}

func setupLogging(cfg *config.Config) {
	level, _ := zerolog.ParseLevel(cfg.LogLevel) // validated by config.Load
	zerolog.SetGlobalLevel(level)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func newStrategies(cfg *config.Config) ([]agent.Spec, [2]agent.Strategy, error) {
	specs := cfg.StrategySpecs()
	var strategies [2]agent.Strategy
	for i := range strategies {
		s, err := agent.New(specs[i])
		if err != nil {
			return nil, strategies, err
		}
		strategies[i] = s
	}
	return specs, strategies, nil
}

func runTournament(ctx context.Context, cfg *config.Config) error {
	specs, strategies, err := newStrategies(cfg)
	if err != nil {
		return err
	}

	options := []tournament.Option{
		tournament.WithGames(cfg.Games),
		tournament.WithInvoker(engine.NewInvoker(cfg.MoveBudget, nil)),
		tournament.WithSeed(cfg.Seed),
	}
	collector := metrics.NewCollector()
	if cfg.Record {
		options = append(options, tournament.WithRecorder(collector.Record))
	}

	t := tournament.New(strategies[0], strategies[1], options...)
	report, runErr := t.Run(ctx)
	if report == nil {
		return runErr
	}
	if err := report.Fprint(os.Stdout); err != nil {
		return err
	}

	if cfg.Record {
		if err := writeRecords(cfg, specs[:2], t.Labels(), collector, report); err != nil {
			return err
		}
	}
	return runErr
}

func writeRecords(cfg *config.Config, specs []agent.Spec, labels [2]string, collector *metrics.Collector, report *tournament.Report) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, fmt.Sprintf("%s-vs-%s", labels[0], labels[1]))
	if err != nil {
		return fmt.Errorf("failed to create records writer: %w", err)
	}

	if err := writer.WriteStrategies(specs); err != nil {
		return fmt.Errorf("failed to store strategies: %w", err)
	}
	if err := writer.WriteGameRecords(collector.Games()); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(collector.Moves()); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteSummary(report.Summary()); err != nil {
		return err
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}

func runPlay(ctx context.Context, cfg *config.Config) error {
	_, strategies, err := newStrategies(cfg)
	if err != nil {
		return err
	}
	opponent := strategies[0]
	human := game.Player(cfg.Human)
	invoker := engine.NewInvoker(cfg.MoveBudget, nil)

	sh, err := newShell(func() *gamemaster.Session {
		return gamemaster.NewSession(opponent, invoker, human)
	})
	if err != nil {
		return err
	}
	return sh.loop(ctx)
}
