package searcher

import "connect4/game"

type boundFlag uint8

const (
	exact boundFlag = iota
	lowerBound
	upperBound
)

type ttEntry struct {
	depth int
	score int
	flag  boundFlag
	move  int
}

// maxTableEntries bounds the table; once full, new positions are not stored.
const maxTableEntries = 1 << 20

// transpositionTable caches negamax results for one search. It is not safe
// for concurrent use.
type transpositionTable struct {
	entries map[game.StateHash]ttEntry
}

func newTranspositionTable() *transpositionTable {
	return &transpositionTable{entries: make(map[game.StateHash]ttEntry)}
}

func (t *transpositionTable) lookup(hash game.StateHash) (ttEntry, bool) {
	entry, ok := t.entries[hash]
	return entry, ok
}

// store keeps the deeper of the existing and the new result.
func (t *transpositionTable) store(hash game.StateHash, depth, score int, flag boundFlag, move int) {
	if old, ok := t.entries[hash]; ok {
		if old.depth > depth {
			return
		}
	} else if len(t.entries) >= maxTableEntries {
		return
	}
	t.entries[hash] = ttEntry{depth: depth, score: score, flag: flag, move: move}
}
