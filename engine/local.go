package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"quarto/game"
	"quarto/searcher"
)

// maxTurns bounds a runaway loop; a Quarto game applies at most 32
// actions (16 gives interleaved with 16 placements).
const maxTurns = 64

// Runner plays a game to completion by querying one strategy per player.
// Turns are strictly sequenced: the next action is not requested until
// the previous one has been applied and acknowledged by the actuator, so
// no strategy computation ever races a state update.
type Runner struct {
	game       *Game
	strategies [2]searcher.Strategy
	budget     time.Duration
	actuator   Actuator
}

type RunnerOption func(r *Runner)

// WithBudget sets the per-move time budget handed to strategies.
func WithBudget(budget time.Duration) RunnerOption {
	return func(r *Runner) {
		r.budget = budget
	}
}

// WithActuator routes every applied action through an external actuator.
func WithActuator(actuator Actuator) RunnerOption {
	return func(r *Runner) {
		if actuator != nil {
			r.actuator = actuator
		}
	}
}

func NewRunner(g *Game, player1, player2 searcher.Strategy, options ...RunnerOption) *Runner {
	r := &Runner{
		game:       g,
		strategies: [2]searcher.Strategy{player1, player2},
		budget:     time.Second,
		actuator:   noopActuator{},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays until a terminal state and returns the winner ("" on a draw).
func (r *Runner) Run(ctx context.Context) (string, error) {
	log.Info().Str("player", r.game.State().Player()).Msg("game started")

	for turn := 1; !r.game.Over(); turn++ {
		if turn > maxTurns {
			return "", fmt.Errorf("game did not terminate after %d turns", maxTurns)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		state := r.game.State()
		strategy := r.strategies[state.CurrentPlayer-1]

		move, err := strategy.ChooseAction(ctx, state, r.budget)
		if err != nil {
			return "", fmt.Errorf("%s has no action: %w", state.Player(), err)
		}
		gm, ok := move.(game.GameMove)
		if !ok {
			return "", fmt.Errorf("%s returned unexpected move type %T", state.Player(), move)
		}

		if err := r.game.Apply(gm); err != nil {
			if !errors.Is(err, game.ErrIllegalAction) &&
				!errors.Is(err, game.ErrCellOccupied) && !errors.Is(err, game.ErrOutOfBounds) {
				return "", err
			}
			// A strategy-layer failure must not fail the turn: degrade
			// to the first legal action and keep the game moving.
			log.Warn().Str("player", state.Player()).Stringer("move", gm).Err(err).
				Msg("strategy returned an illegal action; falling back to first legal action")
			fallback := state.LegalMoves()
			if len(fallback) == 0 {
				return "", game.ErrNoLegalAction
			}
			gm = fallback[0].(game.GameMove)
			if err := r.game.Apply(gm); err != nil {
				return "", err
			}
		}

		if err := r.actuator.Execute(ctx, gm); err != nil {
			return "", fmt.Errorf("actuator failed on %s: %w", gm, err)
		}

		log.Debug().Int("turn", turn).Str("player", state.Player()).Stringer("move", gm).Msg("applied")
	}

	result := r.game.Result()
	if result.Outcome == game.Win {
		log.Info().Str("winner", r.game.Winner()).Int("line", result.LineIndex).Msg("game over")
	} else {
		log.Info().Msg("game drawn")
	}
	return r.game.Winner(), nil
}
