package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quarto/game"
)

const keyPrefix = "quarto:game:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and returns a store persisting games
// under the quarto:game: key space.
func NewRedisStore(ctx context.Context, addr string) (GameStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &redisStore{client: client}, nil
}

func (s *redisStore) Save(ctx context.Context, id string, state *game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context, id string) (*game.GameState, error) {
	response, err := s.client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %q: %w", id, err)
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(response), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &state, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete game %q: %w", id, err)
	}
	return nil
}
