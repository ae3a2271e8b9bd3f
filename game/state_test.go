package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// tieSequence fills the board without either player connecting four.
var tieSequence = []int{
	4, 3, 6, 0, 1, 4, 5, 5, 1, 1, 5, 0, 1, 6, 0, 1, 5, 5, 1, 0, 4,
	6, 3, 2, 6, 6, 0, 4, 6, 5, 2, 0, 4, 2, 4, 2, 2, 2, 3, 3, 3, 3,
}

func play(t *testing.T, columns ...int) *GameState {
	t.Helper()
	gs := NewGameState()
	for _, col := range columns {
		require.True(t, gs.IsValidMove(col), "column %d should be playable", col)
		gs.MakeMove(col)
	}
	return gs
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	require.Equal(t, Player1, gs.CurrentPlayer(), "Player1 should move first")
	require.Equal(t, None, gs.Winner(), "New game should have no winner")
	require.Equal(t, InProgress, gs.Status())
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, gs.ValidMoves())
	require.Equal(t, StateHash(0), gs.Hash())
}

func TestIsValidMove(t *testing.T) {
	gs := NewGameState()

	for _, col := range []int{-1, Columns, 100, -100} {
		require.False(t, gs.IsValidMove(col), "column %d is off the board", col)
	}
	for col := 0; col < Columns; col++ {
		require.True(t, gs.IsValidMove(col))
	}
}

func TestMakeMove(t *testing.T) {
	t.Run("piece settles in the bottom row", func(t *testing.T) {
		gs := play(t, 3)

		board := gs.Board()
		require.Equal(t, Player1, board[Rows-1][3])
		require.Equal(t, Player2, gs.CurrentPlayer(), "Turn should pass to Player2")
		require.Equal(t, 1, gs.MoveCount())
	})

	t.Run("pieces stack upwards", func(t *testing.T) {
		gs := play(t, 3, 3, 3)

		board := gs.Board()
		require.Equal(t, Player1, board[Rows-1][3])
		require.Equal(t, Player2, board[Rows-2][3])
		require.Equal(t, Player1, board[Rows-3][3])
		require.Equal(t, 3, board.Height(3))
	})

	t.Run("full column is ignored", func(t *testing.T) {
		gs := play(t, 0, 0, 0, 0, 0, 0)
		require.False(t, gs.IsValidMove(0), "Column with six pieces should be full")

		before := *gs
		gs.MakeMove(0)

		require.Equal(t, before, *gs, "Move into a full column should change nothing")
	})

	t.Run("out of range column is ignored", func(t *testing.T) {
		gs := play(t, 1, 2)
		before := *gs

		gs.MakeMove(-1)
		gs.MakeMove(Columns)

		require.Equal(t, before, *gs)
	})

	t.Run("moves after a win are ignored", func(t *testing.T) {
		gs := play(t, 0, 0, 1, 1, 2, 2, 3)
		require.Equal(t, Player1, gs.Winner())
		before := *gs

		gs.MakeMove(4)

		require.Equal(t, before, *gs, "Won game should not accept moves")
	})
}

func TestWinDetection(t *testing.T) {
	tests := []struct {
		name   string
		moves  []int
		winner Player
	}{
		{"horizontal on the bottom row", []int{0, 0, 1, 1, 2, 2, 3}, Player1},
		{"vertical", []int{0, 1, 0, 1, 0, 1, 0}, Player1},
		{"rising diagonal", []int{0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3}, Player1},
		{"falling diagonal", []int{6, 5, 5, 4, 4, 3, 4, 3, 3, 0, 3}, Player1},
		{"second player horizontal", []int{6, 0, 6, 1, 5, 2, 6, 3}, Player2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := NewGameState()
			for i, col := range tc.moves {
				require.Equal(t, None, gs.Winner(), "No winner before move %d", i)
				gs.MakeMove(col)
			}

			require.Equal(t, tc.winner, gs.Winner())
			require.Equal(t, tc.winner, gs.CurrentPlayer(), "Winner should stay the current player")
			require.Equal(t, Won, gs.Status())
			require.True(t, gs.IsTerminal())
		})
	}

	t.Run("three in a row is not a win", func(t *testing.T) {
		gs := play(t, 0, 0, 1, 1, 2)

		require.Equal(t, None, gs.Winner())
		require.Equal(t, Player2, gs.CurrentPlayer())
	})
}

func TestTie(t *testing.T) {
	gs := play(t, tieSequence...)

	require.Equal(t, None, gs.Winner())
	require.True(t, gs.IsFull())
	require.True(t, gs.IsTie())
	require.Equal(t, Tie, gs.Status())
	require.Empty(t, gs.ValidMoves())

	before := *gs
	for col := 0; col < Columns; col++ {
		gs.MakeMove(col)
	}
	require.Equal(t, before, *gs, "Full board should not accept moves")
}

func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		gs := NewGameState()
		for !gs.IsTerminal() {
			moves := gs.ValidMoves()
			require.NotEmpty(t, moves, "Non-terminal state should have a valid move")

			mover := gs.CurrentPlayer()
			gs.MakeMove(moves[rng.Intn(len(moves))])

			board := gs.Board()
			require.True(t, board.Settled(), "Pieces should never float")
			if gs.Winner() == None {
				require.Equal(t, mover.Other(), gs.CurrentPlayer(), "Turn should alternate")
			} else {
				require.Equal(t, mover, gs.Winner(), "Only the mover can win")
			}
		}
		require.True(t, gs.Winner() != None || gs.IsTie(), "Terminal game should be won or tied")
	}
}

func TestHash(t *testing.T) {
	t.Run("transpositions share a hash", func(t *testing.T) {
		a := play(t, 0, 1, 2)
		b := play(t, 2, 1, 0)

		require.Equal(t, a.Board(), b.Board())
		require.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("side to move is part of the hash", func(t *testing.T) {
		a := play(t, 0, 1)
		b := play(t, 0)

		require.NotEqual(t, a.Hash(), b.Hash())
	})
}

func TestCenterOrder(t *testing.T) {
	require.Equal(t, []int{3, 2, 4, 1, 5, 0, 6}, CenterOrder)
}
