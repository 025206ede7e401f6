package searcher

import (
	"fmt"

	"quarto/config"
)

// FromConfig builds a strategy from configuration. Variants form a
// closed set selected at construction time; there is no run-time type
// switching between them.
func FromConfig(cfg config.Strategy) (Strategy, error) {
	switch cfg.Name {
	case "", "minimax":
		return NewMinimax(cfg.Goroutines, WithDepth(cfg.Depth)), nil
	case "mcts":
		return NewMCTS(cfg.Goroutines, WithEpisodes(cfg.Episodes), WithCutoff(cfg.Cutoff)), nil
	case "policy":
		if cfg.PolicyPath == "" {
			return nil, fmt.Errorf("policy strategy requires a policy-path")
		}
		return LoadPolicy(cfg.PolicyPath)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Name)
	}
}
