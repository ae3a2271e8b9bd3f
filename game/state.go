package game

import "github.com/samber/lo"

type Status int

const (
	InProgress Status = iota
	Won
	Tie
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Tie:
		return "tie"
	}
	return "in progress"
}

// GameState is the authoritative, mutable state of one game. It is changed
// only through MakeMove. Strategies never see a GameState, only Snapshots.
type GameState struct {
	board   Board
	current Player
	winner  Player
	moves   int
	hash    uint64
}

// NewGameState returns an empty board with Player1 to move.
func NewGameState() *GameState {
	return &GameState{current: Player1}
}

// IsValidMove reports whether column is on the board and not yet full.
func (gs *GameState) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return gs.board[0][column] == None
}

// MakeMove drops the current player's piece into column. Invalid columns and
// moves after a win are ignored; callers check IsValidMove and Winner when
// they need feedback. A winning move leaves the current player unchanged.
func (gs *GameState) MakeMove(column int) {
	if !gs.IsValidMove(column) || gs.winner != None {
		return
	}
	row := gs.board.drop(column, gs.current)
	gs.moves++
	gs.hash ^= cellKey(row, column, gs.current)
	if gs.checkWinner(row, column) {
		gs.winner = gs.current
		return
	}
	gs.current = gs.current.Other()
	gs.hash ^= zobrist.secondMove
}

// checkWinner reports whether the current player's piece at (row, col)
// completes a line.
func (gs *GameState) checkWinner(row, col int) bool {
	return connects(&gs.board, row, col, gs.current)
}

func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) CurrentPlayer() Player {
	return gs.current
}

// Winner returns the winning player, or None while nobody has won.
func (gs *GameState) Winner() Player {
	return gs.winner
}

func (gs *GameState) MoveCount() int {
	return gs.moves
}

func (gs *GameState) Hash() StateHash {
	return StateHash(gs.hash)
}

// ValidMoves lists every column that IsValidMove accepts, in ascending order.
func (gs *GameState) ValidMoves() []int {
	return lo.Filter(allColumns, func(col int, _ int) bool {
		return gs.IsValidMove(col)
	})
}

// IsFull reports whether no column accepts another piece.
func (gs *GameState) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if gs.board[0][col] == None {
			return false
		}
	}
	return true
}

// IsTie reports a full board without a winner. The engine does not stop on a
// tie by itself; callers must stop calling MakeMove.
func (gs *GameState) IsTie() bool {
	return gs.winner == None && gs.IsFull()
}

func (gs *GameState) IsTerminal() bool {
	return gs.winner != None || gs.IsFull()
}

func (gs *GameState) Status() Status {
	switch {
	case gs.winner != None:
		return Won
	case gs.IsFull():
		return Tie
	}
	return InProgress
}

// Snapshot returns an independent copy for handing to strategies.
func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{state: *gs}
}

var allColumns = lo.Range(Columns)
