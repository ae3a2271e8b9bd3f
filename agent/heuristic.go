package agent

import (
	"connect4/game"
	"context"
	"math"
)

// blunderPenalty is charged for a move that hands the opponent an immediate
// win.
const blunderPenalty = 10_000

// Heuristic wins when it can, blocks when it must, and otherwise plays the
// column with the best window score one ply ahead.
type Heuristic struct {
	name string
}

func NewHeuristic(name string) *Heuristic {
	return &Heuristic{name: nameOr(name, KindHeuristic)}
}

func (h *Heuristic) Name() string {
	return h.name
}

func (h *Heuristic) SelectMove(_ context.Context, state game.Snapshot) int {
	return heuristicMove(state)
}

func heuristicMove(state game.Snapshot) int {
	me := state.CurrentPlayer()
	opp := me.Other()
	moves := state.ValidMoves()

	for _, col := range moves {
		if state.Wins(col, me) {
			return col
		}
	}
	for _, col := range moves {
		if state.Wins(col, opp) {
			return col
		}
	}

	best, bestScore := -1, math.MinInt
	for _, col := range game.CenterOrder {
		if !state.IsValidMove(col) {
			continue
		}
		next := state.Next(col)
		board := next.Board()
		score := game.Score(&board, me)
		if givesAwayWin(next, opp) {
			score -= blunderPenalty
		}
		if score > bestScore {
			best, bestScore = col, score
		}
	}
	return best
}

func givesAwayWin(state game.Snapshot, opp game.Player) bool {
	for _, col := range state.ValidMoves() {
		if state.Wins(col, opp) {
			return true
		}
	}
	return false
}
