package searcher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"quarto/game"
)

const defaultCutoff = 24

// MCTS is a Monte Carlo tree search strategy: tree parallelization with
// virtual loss across a fixed pool of worker goroutines, bounded by the
// caller's time budget and/or an episode count.
type MCTS struct {
	goroutines int
	episodes   int
	cutoff     int
	evaluate   game.EvalFunc
	metrics    MetricsCollector
}

type Option func(m *MCTS)

// WithEpisodes bounds the search by a total episode count in addition to
// the caller's time budget.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff truncates rollouts after depth moves and scores the reached
// state with the evaluation function.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.EvalFunc) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics(collector MetricsCollector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines <= 0 {
		goroutines = 1
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     defaultCutoff,
		evaluate:   game.EvaluateThreats,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// ChooseAction runs simulations until the budget expires, ctx is
// cancelled, or the configured episode count is reached, then returns the
// most-visited root action. With no time to search it degrades to the
// first legal action instead of failing the turn.
func (m *MCTS) ChooseAction(ctx context.Context, state game.State, budget time.Duration) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalAction
	}
	if len(moves) == 1 {
		return moves[0], nil
	}

	// A zero budget is an already-expired budget; a negative budget
	// leaves the search bounded by episodes and ctx alone.
	if budget >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	m.metrics.Start()
	root := newDecision(nil, "", state)
	m.search(ctx, root, state)

	move, ok := root.bestMove()
	if !ok {
		log.Warn().Str("player", state.Player()).
			Msg("search budget exhausted before any episode; falling back to first legal action")
		m.metrics.SetFallback()
		return firstLegal(state)
	}
	m.metrics.Complete()
	return move, nil
}

func (m *MCTS) search(ctx context.Context, root *decision, state game.State) {
	var remaining chan struct{}
	if m.episodes > 0 {
		remaining = make(chan struct{}, m.episodes)
		for i := 0; i < m.episodes; i++ {
			remaining <- struct{}{}
		}
		close(remaining)
	}

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if remaining != nil {
					if _, ok := <-remaining; !ok {
						return
					}
				}
				m.simulate(root, state, rng)
				m.metrics.AddEpisode()
			}
		}(uint64(i) + 1)
	}
	wg.Wait()
}

func (m *MCTS) simulate(root *decision, state game.State, rng *rand.Rand) {
	node, reached := selectThenExpand(root, state)
	winner := m.rollout(reached, rng)
	backup(node, winner)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, added := parent.SelectOrExpand(state)
	for !added && child != parent {
		parent = child
		child, state, added = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays random moves to a terminal state or the cutoff depth.
// Cutoff states are mapped to a pseudo-winner by the evaluation sign so
// the backup stays a win/draw/loss signal.
func (m *MCTS) rollout(state game.State, rng *rand.Rand) string {
	depth := 0
	moves := state.LegalMoves()
	for len(moves) > 0 && depth < m.cutoff {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		m.metrics.AddFullPlayout()
		return state.Winner()
	}

	score := m.evaluate(state)
	switch {
	case score > 0:
		return state.Player()
	case score < 0:
		return game.Opponent(state.Player())
	default:
		return ""
	}
}

func backup(node *decision, winner string) {
	for node != nil {
		node = node.Backup(winner)
	}
}
