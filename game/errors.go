package game

import (
	"errors"
	"fmt"
)

// Rules-engine errors are always surfaced to the caller, never silently
// corrected. The illegal-action reasons wrap ErrIllegalAction so callers
// can match at either granularity with errors.Is.
var (
	ErrInvalidPiece       = errors.New("invalid piece identifier")
	ErrOutOfBounds        = errors.New("cell coordinates out of bounds")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrIllegalAction      = errors.New("illegal action")
	ErrStateInconsistency = errors.New("inconsistent game state")
	ErrNoLegalAction      = errors.New("no legal action available")
)

var (
	ErrWrongPhase     = fmt.Errorf("%w: wrong turn phase", ErrIllegalAction)
	ErrPieceNotInPool = fmt.Errorf("%w: piece not in pool", ErrIllegalAction)
	ErrGameFinished   = fmt.Errorf("%w: game is already finished", ErrIllegalAction)
)
