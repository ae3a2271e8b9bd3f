package searcher

import (
	"connect4/game"
	"context"
	"math"
)

// WinScore is the negamax value of connecting four on the next move. Faster
// wins score higher: a win found at ply p is worth WinScore - p.
const WinScore = 1_000_000

const infinity = math.MaxInt32

// SearchResult is the outcome of the deepest completed negamax iteration.
type SearchResult struct {
	Column int
	Score  int
	Depth  int
	Nodes  int64
}

// Decided reports whether the score is a forced win or loss.
func (r SearchResult) Decided() bool {
	return r.Score >= WinScore-game.Rows*game.Columns || r.Score <= -(WinScore-game.Rows*game.Columns)
}

// Negamax is an iterative-deepening alpha-beta search with a transposition
// table. Leaves are scored with game.Score.
type Negamax struct {
	maxDepth int
}

func NewNegamax(maxDepth int) *Negamax {
	if maxDepth <= 0 || maxDepth > game.Rows*game.Columns {
		maxDepth = game.Rows * game.Columns
	}
	return &Negamax{maxDepth: maxDepth}
}

type solver struct {
	ctx   context.Context
	table *transpositionTable
	nodes int64
}

// Search deepens one ply at a time until maxDepth, a decided score, or ctx
// is done. Interrupted iterations are discarded; the error is returned only
// when not even the first iteration completed.
func (n *Negamax) Search(ctx context.Context, root game.Snapshot) (SearchResult, error) {
	moves := root.ValidMoves()
	if len(moves) == 0 || root.Winner() != game.None {
		return SearchResult{Column: -1}, ErrNoMoves
	}

	s := &solver{ctx: ctx, table: newTranspositionTable()}
	best := SearchResult{Column: -1}
	remaining := game.Rows*game.Columns - root.MoveCount()

	for depth := 1; depth <= min(n.maxDepth, remaining); depth++ {
		column, score, err := s.searchRoot(root, depth, best.Column)
		if err != nil {
			if best.Column < 0 {
				return best, err
			}
			break
		}
		best = SearchResult{Column: column, Score: score, Depth: depth, Nodes: s.nodes}
		if best.Decided() {
			break
		}
	}
	best.Nodes = s.nodes
	return best, nil
}

func (s *solver) searchRoot(root game.Snapshot, depth, first int) (int, int, error) {
	me := root.CurrentPlayer()
	alpha, beta := -infinity, infinity
	bestColumn, bestScore := -1, -infinity

	for _, col := range orderMoves(root, first) {
		var value int
		if root.Wins(col, me) {
			value = WinScore - 1
		} else {
			v, err := s.negamax(root.Next(col), depth-1, -beta, -alpha, 1)
			if err != nil {
				return 0, 0, err
			}
			value = -v
		}
		if value > bestScore {
			bestScore, bestColumn = value, col
		}
		alpha = max(alpha, value)
	}
	s.table.store(root.Hash(), depth, bestScore, exact, bestColumn)
	return bestColumn, bestScore, nil
}

func (s *solver) negamax(state game.Snapshot, depth, alpha, beta, ply int) (int, error) {
	s.nodes++
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	if state.IsFull() {
		return 0, nil
	}
	me := state.CurrentPlayer()
	if depth == 0 {
		board := state.Board()
		return game.Score(&board, me), nil
	}

	alphaOrig := alpha
	hint := -1
	if entry, ok := s.table.lookup(state.Hash()); ok {
		hint = entry.move
		if entry.depth >= depth {
			switch entry.flag {
			case exact:
				return entry.score, nil
			case lowerBound:
				alpha = max(alpha, entry.score)
			case upperBound:
				beta = min(beta, entry.score)
			}
			if alpha >= beta {
				return entry.score, nil
			}
		}
	}

	bestScore, bestMove := -infinity, -1
	for _, col := range orderMoves(state, hint) {
		var value int
		if state.Wins(col, me) {
			value = WinScore - ply - 1
		} else {
			v, err := s.negamax(state.Next(col), depth-1, -beta, -alpha, ply+1)
			if err != nil {
				return 0, err
			}
			value = -v
		}
		if value > bestScore {
			bestScore, bestMove = value, col
		}
		alpha = max(alpha, value)
		if alpha >= beta {
			break
		}
	}

	flag := exact
	switch {
	case bestScore <= alphaOrig:
		flag = upperBound
	case bestScore >= beta:
		flag = lowerBound
	}
	s.table.store(state.Hash(), depth, bestScore, flag, bestMove)
	return bestScore, nil
}

// orderMoves returns the valid columns center first, with first (when valid)
// moved to the front.
func orderMoves(state game.Snapshot, first int) []int {
	moves := make([]int, 0, game.Columns)
	if state.IsValidMove(first) {
		moves = append(moves, first)
	}
	for _, col := range game.CenterOrder {
		if col != first && state.IsValidMove(col) {
			moves = append(moves, col)
		}
	}
	return moves
}
