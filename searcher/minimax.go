package searcher

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"quarto/game"
)

const defaultDepth = 3

// Minimax is the reference search strategy: depth-limited negamax with
// alpha-beta pruning. The root's legal actions are split across a fixed
// pool of worker goroutines, each scoring an independent subtree; results
// merge by best score with a deterministic tie-break on the lowest action
// index. The terminal utility comes from the win/draw detector through
// the state (win +1 for the mover who completed it, draw 0); depth-limit
// leaves use the heuristic evaluation.
type Minimax struct {
	goroutines int
	depth      int
	evaluate   game.EvalFunc
	metrics    MetricsCollector
}

type MinimaxOption func(m *Minimax)

func WithDepth(depth int) MinimaxOption {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithHeuristic(evaluate game.EvalFunc) MinimaxOption {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithSearchMetrics(collector MetricsCollector) MinimaxOption {
	return func(m *Minimax) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMinimax(goroutines int, options ...MinimaxOption) *Minimax {
	if goroutines <= 0 {
		goroutines = 1
	}
	m := &Minimax{
		goroutines: goroutines,
		depth:      defaultDepth,
		evaluate:   game.EvaluateThreats,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

type rootScore struct {
	index    int
	score    float64
	complete bool
}

// ChooseAction scores every root action within the budget and returns the
// best. Subtrees cut off by the deadline contribute their partial score,
// so cancellation returns the best action found so far; with no scored
// action at all it degrades to the first legal action instead of failing
// the turn.
func (m *Minimax) ChooseAction(ctx context.Context, state game.State, budget time.Duration) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, game.ErrNoLegalAction
	}
	if len(moves) == 1 {
		return moves[0], nil
	}

	// A zero budget is an already-expired budget; a negative budget
	// leaves the search bounded by depth and ctx alone.
	if budget >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	m.metrics.Start()

	jobs := make(chan int, len(moves))
	for i := range moves {
		jobs <- i
	}
	close(jobs)

	results := make([]rootScore, len(moves))
	var wg sync.WaitGroup
	for w := 0; w < m.goroutines; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					results[i] = rootScore{index: i, score: math.Inf(-1)}
					continue
				}
				child := state.Play(moves[i])
				score := -m.negamax(ctx, child, m.depth-1, math.Inf(-1), math.Inf(1))
				results[i] = rootScore{index: i, score: score, complete: true}
			}
		}()
	}
	wg.Wait()

	bestIndex := -1
	bestScore := math.Inf(-1)
	for _, r := range results { // Ascending index: ties keep the lowest
		if !r.complete {
			continue
		}
		if r.score > bestScore {
			bestScore = r.score
			bestIndex = r.index
		}
	}
	m.metrics.Complete()

	if bestIndex < 0 {
		log.Warn().Str("player", state.Player()).
			Msg("search budget exhausted before any action was scored; falling back to first legal action")
		m.metrics.SetFallback()
		return firstLegal(state)
	}
	return moves[bestIndex], nil
}

// negamax returns a score from the perspective of state's player to act.
// Players strictly alternate in Quarto, so the child's score negates.
func (m *Minimax) negamax(ctx context.Context, state game.State, depth int, alpha, beta float64) float64 {
	m.metrics.AddNodes(1)

	if winner := state.Winner(); winner != "" {
		// A winning placement does not pass the turn, so a won terminal
		// keeps the winner as the state's player. Negamax scores from
		// the side whose turn it notionally is, i.e. the side that lost.
		if winner == state.Player() {
			return -Win
		}
		return Win
	}

	moves := state.LegalMoves()
	if len(moves) == 0 { // Board full, no winner
		return 0
	}

	if depth <= 0 || ctx.Err() != nil {
		return m.evaluate(state)
	}

	best := math.Inf(-1)
	for _, move := range moves {
		score := -m.negamax(ctx, state.Play(move), depth-1, -beta, -alpha)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
