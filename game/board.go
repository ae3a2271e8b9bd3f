package game

import "strings"

// Board is the grid of cells. Row 0 is the top row, Rows-1 the bottom.
// Being an array, assigning a Board copies every cell.
type Board [Rows][Columns]Player

// Cell returns the owner of (row, col), or None when out of bounds.
func (b *Board) Cell(row, col int) Player {
	if !inBounds(row, col) {
		return None
	}
	return b[row][col]
}

// Height returns the number of pieces stacked in col.
func (b *Board) Height(col int) int {
	h := 0
	for row := Rows - 1; row >= 0 && b[row][col] != None; row-- {
		h++
	}
	return h
}

// drop places p in the lowest empty cell of col and returns its row, or -1
// if the column is full.
func (b *Board) drop(col int, p Player) int {
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == None {
			b[row][col] = p
			return row
		}
	}
	return -1
}

// Settled reports whether the gravity invariant holds: no piece sits above
// an empty cell in the same column.
func (b *Board) Settled() bool {
	for col := 0; col < Columns; col++ {
		seenPiece := false
		for row := 0; row < Rows; row++ {
			if b[row][col] != None {
				seenPiece = true
			} else if seenPiece {
				return false
			}
		}
	}
	return true
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			switch b[row][col] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
			if col < Columns-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < Columns; col++ {
		sb.WriteByte(byte('0' + col))
		if col < Columns-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}
