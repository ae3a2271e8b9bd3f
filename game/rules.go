package game

// directions checked from the last placed piece: horizontal, vertical and
// both diagonals.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// window is the number of cells scanned along one direction. Any run of
// ConnectN through the centre cell lies within it.
const window = 2*ConnectN - 1

// connects reports whether the piece at (row, col) completes a run of
// ConnectN for p in any direction.
func connects(b *Board, row, col int, p Player) bool {
	for _, d := range directions {
		if checkLine(b, row, col, d[0], d[1], p) {
			return true
		}
	}
	return false
}

func checkLine(b *Board, row, col, dr, dc int, p Player) bool {
	count := 0
	r := row - dr*(ConnectN-1)
	c := col - dc*(ConnectN-1)
	for i := 0; i < window; i++ {
		if inBounds(r, c) && b[r][c] == p {
			count++
			if count == ConnectN {
				return true
			}
		} else {
			count = 0
		}
		r += dr
		c += dc
	}
	return false
}
