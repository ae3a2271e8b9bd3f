package searcher

import (
	"connect4/game"
	"slices"
)

type mockState struct {
	player game.Player
	moves  []int
	played []int
	winner game.Player
}

func (m mockState) Player() game.Player {
	return m.player
}

func (m mockState) LegalMoves() []int {
	return m.moves
}

func (m mockState) Play(move int) game.State {
	return mockState{player: m.player.Other(), played: append(slices.Clone(m.played), move)}
}

func (m mockState) Hash() game.StateHash {
	return 0
}

func (m mockState) Winner() game.Player {
	return m.winner
}

// position replays columns from the empty board.
func position(columns ...int) game.Snapshot {
	snap := game.NewSnapshot()
	for _, col := range columns {
		snap = snap.Next(col)
	}
	return snap
}
