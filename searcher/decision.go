package searcher

import (
	"connect4/game"
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

// decision is a search tree node. Its statistics are kept from the
// perspective of mover, the player whose move led here, so that a parent can
// compare its children directly.
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      game.Player
	unexplored []int
	explored   []int
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, mover game.Player, state game.State) *decision {
	moves := state.LegalMoves()
	unexplored := make([]int, len(moves))
	copy(unexplored, moves)
	rand.Shuffle(len(unexplored), func(i, j int) {
		unexplored[i], unexplored[j] = unexplored[j], unexplored[i]
	})

	return &decision{
		parent:     parent,
		mover:      mover,
		unexplored: unexplored,
		explored:   make([]int, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level. It returns the chosen child and its
// state, and whether the child was selected from existing children (true)
// or newly expanded (false). A terminal node returns itself.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		last := len(d.unexplored) - 1
		move := d.unexplored[last]
		d.unexplored = d.unexplored[:last]

		next := state.Play(move)
		child := newDecision(d, state.Player(), next)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) pickChild() int {
	// Children carry at least one visit (real or virtual) once expanded, so
	// their sum is never zero even before the first backup reaches d.
	total := 0.0
	for _, child := range d.children {
		total += child.visitCount()
	}
	policy := newUCT(CSquared, total)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		child.RLock()
		score := policy.evaluate(child.rewards, child.visits)
		child.RUnlock()
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// Backup records the outcome of one episode and returns the parent node.
// player scored score at the end of the rollout; None means a draw.
func (d *decision) Backup(player game.Player, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.mover, player, score)
	d.visits++

	return d.parent
}

func reward(mover, player game.Player, score float64) float64 {
	switch player {
	case game.None:
		return Draw
	case mover:
		return score
	}
	return -score
}

func (d *decision) visitCount() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy maps each explored move to its visit count.
func (d *decision) Policy() map[int]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[int]float64, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.visitCount()
	}
	return policy
}
