package game

import "lukechampine.com/frand"

const bignum = 1<<63 - 2

// zobrist holds one random key per (cell, player) pair plus a key for the
// side to move. Hashes are only comparable within a single process.
var zobrist struct {
	cells      [Rows][Columns][2]uint64
	secondMove uint64
}

func init() {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			zobrist.cells[row][col][0] = frand.Uint64n(bignum) + 1
			zobrist.cells[row][col][1] = frand.Uint64n(bignum) + 1
		}
	}
	zobrist.secondMove = frand.Uint64n(bignum) + 1
}

func cellKey(row, col int, p Player) uint64 {
	return zobrist.cells[row][col][p-1]
}
