package engine

import (
	"fmt"

	"quarto/game"
)

// Observation is a board state reported by an external perception source
// (typically computer vision). Cells holds the detected piece per cell or
// game.NoPiece; Uncertain flags cells the detector was not confident
// about, which are excluded from reconciliation.
type Observation struct {
	Cells     [game.BoardSize][game.BoardSize]game.Piece
	Uncertain [game.BoardSize][game.BoardSize]bool
}

// Reconcile validates an observation against the tracked state. It fails
// with game.ErrStateInconsistency when a confident cell contradicts a
// previously placed piece, reports a piece the tracker has elsewhere, or
// duplicates a piece across cells. On inconsistency automated play must
// halt for re-observation or human override; the tracked state is never
// adjusted to match the observation.
func (g *Game) Reconcile(obs Observation) error {
	seen := make(map[game.Piece]game.Cell, game.NumPieces)
	for row := 0; row < game.BoardSize; row++ {
		for col := 0; col < game.BoardSize; col++ {
			if obs.Uncertain[row][col] {
				continue
			}
			observed := obs.Cells[row][col]
			if observed != game.NoPiece && !observed.Valid() {
				return fmt.Errorf("%w: cell (%d,%d) reports piece %d", game.ErrInvalidPiece, row, col, observed)
			}

			if observed != game.NoPiece {
				if prev, dup := seen[observed]; dup {
					return fmt.Errorf("%w: piece %s observed at both %s and (%d,%d)",
						game.ErrStateInconsistency, observed, prev, row, col)
				}
				seen[observed] = game.Cell{Row: row, Col: col}
			}

			tracked, err := g.state.Board.At(row, col)
			if err != nil {
				return err
			}
			if tracked != game.NoPiece && observed != tracked {
				return fmt.Errorf("%w: cell (%d,%d) tracked as %s but observed as %s",
					game.ErrStateInconsistency, row, col, tracked, observed)
			}
			if tracked == game.NoPiece && observed != game.NoPiece {
				// A new piece may only be the active piece just placed
				// by the actuator; anything else contradicts tracking.
				if observed != g.state.Active {
					return fmt.Errorf("%w: cell (%d,%d) observed as %s which is not awaiting placement",
						game.ErrStateInconsistency, row, col, observed)
				}
			}
		}
	}
	return nil
}
