package game

const (
	Rows     = 6
	Columns  = 7
	ConnectN = 4
)

// Player identifies the owner of a cell. None doubles as the empty cell.
type Player int8

const (
	None Player = iota
	Player1
	Player2
)

// Other returns the opponent of p. None has no opponent.
func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return None
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "1"
	case Player2:
		return "2"
	}
	return "none"
}

type StateHash uint64

// State is the search-facing view of a position. Play never modifies the
// receiver; it returns a new State.
type State interface {
	Player() Player
	LegalMoves() []int
	Play(column int) State
	Hash() StateHash
	Winner() Player
}

// Evaluate scores a state between -1 and 1 from the perspective of the
// player to move.
type Evaluate func(State) float64

// CenterOrder lists the columns from the center outwards. Searches try moves
// in this order since central pieces take part in the most lines.
var CenterOrder = centerOrder()

func centerOrder() []int {
	order := make([]int, 0, Columns)
	center := Columns / 2
	order = append(order, center)
	for offset := 1; offset <= center; offset++ {
		if center-offset >= 0 {
			order = append(order, center-offset)
		}
		if center+offset < Columns {
			order = append(order, center+offset)
		}
	}
	return order
}
