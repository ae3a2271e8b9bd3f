package game

// Window weights for the heuristic evaluation.
const (
	ThreeWeight  = 50
	TwoWeight    = 10
	CenterWeight = 6
	BlockPenalty = 40
)

// Score sums every ConnectN window on the board from p's point of view:
// open threes and twos count for p, the opponent's count against, and p is
// rewarded for pieces in the center column. Won positions are not
// special-cased; callers check the winner first.
func Score(b *Board, p Player) int {
	opp := p.Other()
	score := 0

	center := Columns / 2
	for row := 0; row < Rows; row++ {
		switch b[row][center] {
		case p:
			score += CenterWeight
		case opp:
			score -= CenterWeight
		}
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			for _, d := range directions {
				endRow := row + d[0]*(ConnectN-1)
				endCol := col + d[1]*(ConnectN-1)
				if !inBounds(endRow, endCol) {
					continue
				}
				score += scoreWindow(b, row, col, d[0], d[1], p, opp)
			}
		}
	}
	return score
}

func scoreWindow(b *Board, row, col, dr, dc int, p, opp Player) int {
	mine, theirs, empty := 0, 0, 0
	for i := 0; i < ConnectN; i++ {
		switch b[row+dr*i][col+dc*i] {
		case p:
			mine++
		case opp:
			theirs++
		default:
			empty++
		}
	}
	switch {
	case mine == ConnectN-1 && empty == 1:
		return ThreeWeight
	case mine == ConnectN-2 && empty == 2:
		return TwoWeight
	case theirs == ConnectN-1 && empty == 1:
		return -BlockPenalty
	case theirs == ConnectN-2 && empty == 2:
		return -TwoWeight
	}
	return 0
}

// EvaluateWindows normalizes Score into (-1, 1) from the perspective of the
// player to move. A decided game scores 1 or -1.
func EvaluateWindows(s State) float64 {
	player := s.Player()
	if w := s.Winner(); w != None {
		if w == player {
			return 1
		}
		return -1
	}
	snap, ok := s.(Snapshot)
	if !ok {
		panic("unexpected state type")
	}
	b := snap.Board()
	score := float64(Score(&b, player))
	const scale = 200.0
	return score / (abs(score) + scale)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
