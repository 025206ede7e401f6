package engine

import (
	"fmt"

	"quarto/game"
)

// Game is the single owner and single point of mutation of a running
// game. Every other component is pure or query-only relative to it:
// actions enter through Apply, which validates against the current phase
// before any state changes, and the tracked state is only handed out by
// copy.
type Game struct {
	state *game.GameState
}

func NewGame(rules game.Rules) *Game {
	return &Game{state: game.NewGameState(rules)}
}

// Resume wraps a previously persisted state, re-checking the piece
// accounting invariant before accepting it.
func Resume(state *game.GameState) (*Game, error) {
	if err := state.CheckAccounting(); err != nil {
		return nil, err
	}
	return &Game{state: state.Copy()}, nil
}

// State returns a copy of the tracked state.
func (g *Game) State() *game.GameState {
	return g.state.Copy()
}

// Over reports whether the game reached a terminal state.
func (g *Game) Over() bool {
	return g.state.Phase == game.GameOver
}

// Result returns the detector verdict for the tracked state.
func (g *Game) Result() game.Result {
	return g.state.Result
}

// Winner returns the winning player, or "" while in progress or drawn.
func (g *Game) Winner() string {
	return g.state.Winner()
}

// Apply validates mv against the current phase and advances the game.
// Errors carry a reason: game.ErrGameFinished, game.ErrWrongPhase,
// game.ErrPieceNotInPool, game.ErrCellOccupied or game.ErrOutOfBounds,
// all matching game.ErrIllegalAction except the latter two. The tracked
// state is untouched on failure.
func (g *Game) Apply(mv game.GameMove) error {
	next, err := g.state.Apply(mv)
	if err != nil {
		return err
	}
	if err := next.CheckAccounting(); err != nil {
		// A transition can never break piece accounting; treat it as
		// a bug, not a recoverable condition.
		panic(fmt.Sprintf("piece accounting broken after %s: %v", mv, err))
	}
	g.state = next
	return nil
}

// Reset returns the game to its initial state under the same rules.
func (g *Game) Reset() {
	g.state.Reset()
}
