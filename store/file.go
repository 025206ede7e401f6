package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"quarto/game"
)

type fileStore struct {
	dir string
}

// NewFileStore persists each game as a JSON file under dir, creating the
// directory if needed.
func NewFileStore(dir string) (GameStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *fileStore) Save(ctx context.Context, id string, state *game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}
	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return fmt.Errorf("failed to write game file: %w", err)
	}
	return nil
}

func (s *fileStore) Load(ctx context.Context, id string) (*game.GameState, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read game %q: %w", id, err)
	}

	var state game.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &state, nil
}

func (s *fileStore) Delete(ctx context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete game %q: %w", id, err)
	}
	return nil
}
