package searcher

import "errors"

var ErrNoMoves = errors.New("position has no moves to search")
