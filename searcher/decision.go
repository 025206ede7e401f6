package searcher

import (
	"math"
	"sync"

	"quarto/game"
)

// decision is a node of the parallel search tree. Workers share the tree,
// so stats are guarded by the embedded lock and a virtual loss is applied
// on the way down to spread concurrent episodes across siblings.
type decision struct {
	sync.RWMutex
	parent   *decision
	mover    string // player who played the move leading here, "" at root
	moves    []game.Move
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, mover string, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:   parent,
		mover:    mover,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand walks one step down the tree: expands the next
// unexplored move if any, otherwise selects the max-UCB child. The
// returned flag is true when a new child was added (the descent stops
// there and rolls out).
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.children) < len(d.moves) { // Expandable node
		move := d.moves[len(d.children)]
		childState := state.Play(move)
		child := newDecision(d, state.Player(), childState)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, true
	}

	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.moves[ith]), false
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := CSquared * math.Log(d.visits)

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
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

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

// Backup folds an episode outcome into the node and returns its parent.
// Rewards are credited to the player who moved into the node; a drawn
// episode (empty winner) splits the reward.
func (d *decision) Backup(winner string) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root nodes carry a virtual loss
		d.reverseLoss()
	}

	switch winner {
	case d.mover:
		d.rewards += Win
	case "":
		d.rewards += DrawSplit
	default:
		d.rewards += Loss
	}
	d.visits++

	return d.parent
}

func (d *decision) visitCount() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// bestMove returns the most-visited root move, breaking ties on the
// lowest move index for reproducibility.
func (d *decision) bestMove() (game.Move, bool) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return nil, false
	}

	bestIndex := 0
	maxVisits := d.children[0].visitCount()
	for i, child := range d.children[1:] {
		if v := child.visitCount(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.moves[bestIndex], true
}
