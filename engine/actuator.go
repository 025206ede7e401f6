package engine

import (
	"context"

	"quarto/game"
)

// Actuator executes a chosen action in the physical world (a robotic arm,
// or a human operator prompted over a CLI). Execute must not return until
// the action completed or failed: the runner only advances the turn on a
// nil acknowledgment, and halts the game on an error.
type Actuator interface {
	Execute(ctx context.Context, mv game.GameMove) error
}

// noopActuator acknowledges every action immediately. Used when the game
// is purely virtual.
type noopActuator struct{}

func (noopActuator) Execute(context.Context, game.GameMove) error { return nil }
