package gamemaster

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/game"
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotYourTurn = errors.New("not your turn")
	ErrInvalidMove = errors.New("illegal move")
)

// Update is one applied move together with the position it produced.
type Update struct {
	Player game.Player
	Column int
	State  game.Snapshot
}

// Session is an interactive game between a human and a strategy. The human
// drops pieces through Drop; the strategy answers through Respond. Front ends
// read positions through Snapshot and Updates and never touch the game state.
type Session struct {
	mu       sync.Mutex
	respond  sync.Mutex // serializes Respond
	state    *game.GameState
	human    game.Player
	opponent agent.Strategy
	invoker  *engine.Invoker
	updates  chan Update
}

// NewSession starts a game where human (Player1 or Player2) plays against
// opponent. A nil invoker uses the default move budget.
func NewSession(opponent agent.Strategy, invoker *engine.Invoker, human game.Player) *Session {
	if human != game.Player1 && human != game.Player2 {
		panic("human must be Player1 or Player2")
	}
	if invoker == nil {
		invoker = engine.NewInvoker(0, nil)
	}
	return &Session{
		state:    game.NewGameState(),
		human:    human,
		opponent: opponent,
		invoker:  invoker,
		// One slot per cell so applying a move never blocks
		updates: make(chan Update, game.Rows*game.Columns),
	}
}

func (s *Session) Human() game.Player {
	return s.human
}

func (s *Session) Opponent() agent.Strategy {
	return s.opponent
}

func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Updates delivers every applied move. It is closed once the game is over.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// HumanToMove reports whether the session waits for Drop.
func (s *Session) HumanToMove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.IsTerminal() && s.state.CurrentPlayer() == s.human
}

// Drop plays the human's piece into column.
func (s *Session) Drop(column int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsTerminal() {
		return ErrGameOver
	}
	if s.state.CurrentPlayer() != s.human {
		return ErrNotYourTurn
	}
	if !s.state.IsValidMove(column) {
		return fmt.Errorf("%w: column %d", ErrInvalidMove, column)
	}
	s.apply(column)
	return nil
}

// Respond lets the opponent strategy move under the invoker's budget.
func (s *Session) Respond(ctx context.Context) (engine.Invocation, error) {
	s.respond.Lock()
	defer s.respond.Unlock()

	s.mu.Lock()
	if s.state.IsTerminal() {
		s.mu.Unlock()
		return engine.Invocation{}, ErrGameOver
	}
	if s.state.CurrentPlayer() == s.human {
		s.mu.Unlock()
		return engine.Invocation{}, ErrNotYourTurn
	}
	snapshot := s.state.Snapshot()
	s.mu.Unlock()

	// The human cannot move while it is the opponent's turn, so the
	// position is unchanged when the invocation returns.
	inv := s.invoker.Invoke(ctx, s.opponent, snapshot)
	if err := ctx.Err(); err != nil {
		return inv, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(inv.Column)
	return inv, nil
}

func (s *Session) apply(column int) {
	player := s.state.CurrentPlayer()
	s.state.MakeMove(column)
	s.updates <- Update{Player: player, Column: column, State: s.state.Snapshot()}
	if s.state.IsTerminal() {
		close(s.updates)
	}
}
