package agent

import (
	"connect4/game"
	"context"
)

// FirstValid always plays the lowest-indexed open column.
type FirstValid struct {
	name string
}

func NewFirstValid(name string) *FirstValid {
	return &FirstValid{name: nameOr(name, KindFirst)}
}

func (f *FirstValid) Name() string {
	return f.name
}

func (f *FirstValid) SelectMove(_ context.Context, state game.Snapshot) int {
	return firstValid(state)
}
