package game

// Snapshot is a read-only copy of a GameState. It shares no memory with the
// state it was taken from, so whatever a strategy does with it cannot reach
// the authoritative game.
type Snapshot struct {
	state GameState
}

// NewSnapshot returns the snapshot of an empty game.
func NewSnapshot() Snapshot {
	return NewGameState().Snapshot()
}

func (s Snapshot) Board() Board {
	return s.state.board
}

func (s Snapshot) Cell(row, col int) Player {
	return s.state.board.Cell(row, col)
}

func (s Snapshot) CurrentPlayer() Player {
	return s.state.current
}

func (s Snapshot) MoveCount() int {
	return s.state.moves
}

func (s Snapshot) Width() int {
	return Columns
}

func (s Snapshot) Height() int {
	return Rows
}

func (s Snapshot) IsValidMove(column int) bool {
	return s.state.IsValidMove(column)
}

func (s Snapshot) ValidMoves() []int {
	return s.state.ValidMoves()
}

func (s Snapshot) IsFull() bool {
	return s.state.IsFull()
}

func (s Snapshot) IsTerminal() bool {
	return s.state.IsTerminal()
}

func (s Snapshot) Status() Status {
	return s.state.Status()
}

// Next returns the snapshot after the current player drops into column.
// Invalid moves yield an unchanged copy, matching MakeMove.
func (s Snapshot) Next(column int) Snapshot {
	s.state.MakeMove(column)
	return s
}

// Wins reports whether p dropping into column would connect. The current
// player is not consulted, so it also answers "can my opponent win there".
func (s Snapshot) Wins(column int, p Player) bool {
	if !s.state.IsValidMove(column) {
		return false
	}
	b := s.state.board
	row := b.drop(column, p)
	return connects(&b, row, column, p)
}

// Player implements State.
func (s Snapshot) Player() Player {
	return s.state.current
}

// LegalMoves implements State. Unlike ValidMoves it is empty once the game
// has been won.
func (s Snapshot) LegalMoves() []int {
	if s.state.winner != None {
		return nil
	}
	return s.state.ValidMoves()
}

// Play implements State.
func (s Snapshot) Play(column int) State {
	return s.Next(column)
}

func (s Snapshot) Hash() StateHash {
	return s.state.Hash()
}

func (s Snapshot) Winner() Player {
	return s.state.winner
}

// Restore returns a fresh authoritative state holding the snapshot's
// position. The snapshot itself is left untouched.
func (s Snapshot) Restore() *GameState {
	gs := s.state
	return &gs
}
