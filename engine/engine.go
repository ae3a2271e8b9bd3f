package engine

import (
	"connect4/agent"
	"connect4/game"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrStalled = errors.New("move did not advance the game")

// MoveRecord describes one applied move.
type MoveRecord struct {
	Step     int
	Player   game.Player
	Strategy string
	Column   int
	Status   Status
	Elapsed  time.Duration
}

// GameResult summarizes a finished (or interrupted) game. Seat 0 is Player1.
type GameResult struct {
	Winner     game.Player
	WinnerName string
	Moves      int
	Records    []MoveRecord
	Timeouts   [2]int
	Violations [2]int
	Board      game.Board
}

// Tie reports a game that filled the board without a winner.
func (r GameResult) Tie() bool {
	return r.Winner == game.None && r.Moves == game.Rows*game.Columns
}

// Engine plays a single game between two strategies. The engine owns the
// only GameState; strategies are handed snapshots.
type Engine struct {
	state   *game.GameState
	players [2]agent.Strategy
	invoker *Invoker
}

// New returns an engine for one game. players[0] moves first. A nil invoker
// uses the default budget and fallback.
func New(players [2]agent.Strategy, invoker *Invoker) *Engine {
	if players[0] == nil || players[1] == nil {
		panic("engine needs two strategies")
	}
	if invoker == nil {
		invoker = NewInvoker(0, nil)
	}
	return &Engine{
		state:   game.NewGameState(),
		players: players,
		invoker: invoker,
	}
}

// State returns a snapshot of the game so far.
func (e *Engine) State() game.Snapshot {
	return e.state.Snapshot()
}

// Run executes the game loop until a player connects four or the board is
// full. A cancelled ctx stops the game before the next move is applied.
func (e *Engine) Run(ctx context.Context) (GameResult, error) {
	log.Debug().Msgf("%s (player 1) vs %s (player 2)", e.players[0].Name(), e.players[1].Name())

	result := GameResult{}
	for !e.state.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return e.finish(result), err
		}

		player := e.state.CurrentPlayer()
		seat := seatOf(player)
		strategy := e.players[seat]

		inv := e.invoker.Invoke(ctx, strategy, e.state.Snapshot())
		if err := ctx.Err(); err != nil {
			return e.finish(result), err
		}

		before := e.state.MoveCount()
		e.state.MakeMove(inv.Column)
		if e.state.MoveCount() == before {
			return e.finish(result), fmt.Errorf("%w: %s played column %d", ErrStalled, strategy.Name(), inv.Column)
		}

		switch inv.Status {
		case TimedOut:
			result.Timeouts[seat]++
		case Invalid, Failed:
			result.Violations[seat]++
		}
		result.Records = append(result.Records, MoveRecord{
			Step:     e.state.MoveCount(),
			Player:   player,
			Strategy: strategy.Name(),
			Column:   inv.Column,
			Status:   inv.Status,
			Elapsed:  inv.Elapsed,
		})
	}

	result = e.finish(result)
	if result.Winner != game.None {
		log.Debug().Msgf("%s wins after %d moves", result.WinnerName, result.Moves)
	} else {
		log.Debug().Msgf("tie after %d moves", result.Moves)
	}
	return result, nil
}

func (e *Engine) finish(result GameResult) GameResult {
	result.Winner = e.state.Winner()
	if result.Winner != game.None {
		result.WinnerName = e.players[seatOf(result.Winner)].Name()
	}
	result.Moves = e.state.MoveCount()
	result.Board = e.state.Board()
	return result
}

func seatOf(p game.Player) int {
	if p == game.Player2 {
		return 1
	}
	return 0
}
