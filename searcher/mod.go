package searcher

import (
	"context"
	"math"
	"time"

	"quarto/game"
)

// Rewards for backed-up outcomes.
const (
	Win       = 1.0
	Loss      = 0.0
	DrawSplit = 0.5
)

// CSquared is the UCB1 exploration constant (c^2).
const CSquared = 2.0

// Strategy chooses an action for the current player of a state. Every
// implementation must return a legal action whenever at least one exists,
// even under an exhausted or zero budget, and must fail with
// game.ErrNoLegalAction only when the state is terminal. Cancelling ctx
// stops the search and returns the best action found so far.
type Strategy interface {
	ChooseAction(ctx context.Context, state game.State, budget time.Duration) (game.Move, error)
}

// firstLegal is the deterministic fallback: the first action in the
// generator's fixed order.
func firstLegal(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalAction
	}
	return moves[0], nil
}

func ucb1(rewards, visits, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(c2LnN/visits)
}
