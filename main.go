package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quarto/config"
	"quarto/engine"
	"quarto/game"
	"quarto/searcher"
	"quarto/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (optional)")
	gameID := flag.String("game-id", "", "persist the finished game under this id")
	flag.Parse()

	cfg := loadConfig(*configPath)
	initLogger(cfg.LogLevel)

	if err := run(cfg, *gameID); err != nil {
		log.Fatal().Err(err).Msg("game run failed")
	}
}

func run(cfg *config.Config, gameID string) error {
	ctx := context.Background()

	rules, err := game.RulesByName(cfg.Rules)
	if err != nil {
		return err
	}

	// Both sides use the configured strategy for a self-play game.
	player1, err := searcher.FromConfig(cfg.Strategy)
	if err != nil {
		return err
	}
	player2, err := searcher.FromConfig(cfg.Strategy)
	if err != nil {
		return err
	}

	g := engine.NewGame(rules)
	runner := engine.NewRunner(g, player1, player2,
		engine.WithBudget(time.Duration(cfg.Strategy.BudgetMs)*time.Millisecond))

	winner, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if winner == "" {
		fmt.Println("Game drawn.")
	} else {
		fmt.Printf("Winner: %s\n", winner)
	}

	if gameID != "" {
		gameStore, err := buildStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		if err := gameStore.Save(ctx, gameID, g.State()); err != nil {
			return err
		}
		log.Info().Str("game", gameID).Msg("game persisted")
	}
	return nil
}

func buildStore(ctx context.Context, cfg config.Store) (store.GameStore, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Path)
	case "redis":
		return store.NewRedisStore(ctx, cfg.Redis.Addr())
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	return config.MustLoad(path)
}

func initLogger(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed)
}
