// Package store persists game states for resume, replay and audit. The
// encoding is the lossless JSON snapshot of game.GameState.
package store

import (
	"context"
	"errors"

	"quarto/game"
)

var ErrGameNotFound = errors.New("game not found")

type GameStore interface {
	Save(ctx context.Context, id string, state *game.GameState) error
	Load(ctx context.Context, id string) (*game.GameState, error)
	Delete(ctx context.Context, id string) error
}
