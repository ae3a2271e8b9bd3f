package engine

import (
	"connect4/game"
	"context"
)

// scripted plays its columns in order, then the first valid column.
type scripted struct {
	name    string
	columns []int
	next    int
}

func (s *scripted) Name() string {
	return s.name
}

func (s *scripted) SelectMove(_ context.Context, state game.Snapshot) int {
	if s.next < len(s.columns) {
		col := s.columns[s.next]
		s.next++
		return col
	}
	return state.ValidMoves()[0]
}

type funcStrategy struct {
	name string
	fn   func(ctx context.Context, state game.Snapshot) int
}

func (f funcStrategy) Name() string {
	return f.name
}

func (f funcStrategy) SelectMove(ctx context.Context, state game.Snapshot) int {
	return f.fn(ctx, state)
}

// split deals alternating moves to the two players.
func split(moves []int) ([]int, []int) {
	var first, second []int
	for i, col := range moves {
		if i%2 == 0 {
			first = append(first, col)
		} else {
			second = append(second, col)
		}
	}
	return first, second
}

// tieSequence fills the board without either player connecting four.
var tieSequence = []int{
	4, 3, 6, 0, 1, 4, 5, 5, 1, 1, 5, 0, 1, 6, 0, 1, 5, 5, 1, 0, 4,
	6, 3, 2, 6, 6, 0, 4, 6, 5, 2, 0, 4, 2, 4, 2, 2, 2, 3, 3, 3, 3,
}
