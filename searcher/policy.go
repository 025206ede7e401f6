package searcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"quarto/game"
)

// PolicyArtifact is the deployable form of a trained policy: a mapping
// from state fingerprints to the action the model prefers there. Keys are
// decimal state hashes so the artifact stays a plain JSON object.
type PolicyArtifact struct {
	Name    string                   `json:"name"`
	Actions map[string]game.GameMove `json:"actions"`
}

// Policy is a learned strategy: it maps a state to an action through a
// trained artifact instead of searching. States the artifact has no
// entry for, and entries that turn out illegal against the live
// generator, degrade to the first legal action with a warning rather
// than failing the turn.
type Policy struct {
	name    string
	actions map[game.StateHash]game.GameMove
	metrics MetricsCollector
}

// LoadPolicy reads a policy artifact from a JSON file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy artifact: %w", err)
	}
	var artifact PolicyArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode policy artifact: %w", err)
	}
	return NewPolicy(artifact)
}

// NewPolicy builds a strategy from an in-memory artifact.
func NewPolicy(artifact PolicyArtifact) (*Policy, error) {
	actions := make(map[game.StateHash]game.GameMove, len(artifact.Actions))
	for key, move := range artifact.Actions {
		hash, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("policy artifact key %q: %w", key, err)
		}
		actions[game.StateHash(hash)] = move
	}
	return &Policy{
		name:    artifact.Name,
		actions: actions,
		metrics: NewNoMetricsCollector(),
	}, nil
}

// ChooseAction looks the state up in the artifact. The budget is unused:
// a table lookup completes immediately.
func (p *Policy) ChooseAction(ctx context.Context, state game.State, budget time.Duration) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalAction
	}

	move, ok := p.actions[state.Hash()]
	if ok {
		for _, legal := range moves {
			if legal.Equal(move) {
				return move, nil
			}
		}
		log.Warn().Str("policy", p.name).Stringer("move", move).
			Msg("policy action is illegal in this state; falling back to first legal action")
	} else {
		log.Warn().Str("policy", p.name).Uint64("state", uint64(state.Hash())).
			Msg("no policy entry for state; falling back to first legal action")
	}
	p.metrics.SetFallback()
	return moves[0], nil
}
