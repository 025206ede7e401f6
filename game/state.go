package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Phase is the turn-machine phase of a game.
type Phase int

const (
	// AwaitingFirstGive: no piece has been chosen yet; the only legal
	// actions are give-only.
	AwaitingFirstGive Phase = iota
	// AwaitingPlacement: the current player must place the active piece,
	// and give the next one while the pool is non-empty.
	AwaitingPlacement
	// GameOver: the detector reported a win or a draw.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstGive:
		return "awaiting-first-give"
	case AwaitingPlacement:
		return "awaiting-placement"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

const fullPool uint16 = 1<<NumPieces - 1

// GameState is the composite game state: board, pool of unplaced pieces,
// active piece awaiting placement, turn marker and terminal status.
// Transitions are pure: Apply and Play return new values, so states can be
// threaded through concurrent searchers without locks. Invariant: every
// piece is in exactly one of board, pool, or the active slot.
type GameState struct {
	Board         Board
	Pool          uint16 // bit i set: piece i is unplaced and not active
	Active        Piece  // NoPiece when no piece awaits placement
	CurrentPlayer int    // 1 or 2
	Phase         Phase
	Rules         Rules
	Result        Result
	WonBy         int // winning player, 0 while in progress or drawn
	TurnCount     int
}

// NewGameState returns the initial state: empty board, all 16 pieces in
// the pool, no active piece, player 1 to choose the first give.
func NewGameState(rules Rules) *GameState {
	return &GameState{
		Board:         NewBoard(),
		Pool:          fullPool,
		Active:        NoPiece,
		CurrentPlayer: 1,
		Phase:         AwaitingFirstGive,
		Rules:         rules,
		Result:        Result{LineIndex: -1},
	}
}

// Copy returns an independent copy of the state. Board and pool are plain
// values; Rules is shared as an immutable line table.
func (gs *GameState) Copy() *GameState {
	dup := *gs
	return &dup
}

// Reset returns the state to initial conditions under the same rules.
func (gs *GameState) Reset() {
	*gs = *NewGameState(gs.Rules)
}

// PoolContains reports whether piece p is still in the pool.
func (gs *GameState) PoolContains(p Piece) bool {
	return p.Valid() && gs.Pool&(1<<uint(p)) != 0
}

// PoolSize returns the number of pieces in the pool.
func (gs *GameState) PoolSize() int {
	count := 0
	for mask := gs.Pool; mask != 0; mask &= mask - 1 {
		count++
	}
	return count
}

// PoolPieces returns the pool in ascending identifier order.
func (gs *GameState) PoolPieces() []Piece {
	var pieces []Piece
	for p := Piece(0); p < NumPieces; p++ {
		if gs.PoolContains(p) {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Player returns the identifier of the player to act.
func (gs *GameState) Player() string {
	return fmt.Sprintf("Player%d", gs.CurrentPlayer)
}

// Winner returns the identifier of the winning player, or "" while the
// game is in progress or drawn.
func (gs *GameState) Winner() string {
	if gs.WonBy == 0 {
		return ""
	}
	return fmt.Sprintf("Player%d", gs.WonBy)
}

// Opponent returns the identifier of the other player.
func Opponent(player string) string {
	if player == "Player1" {
		return "Player2"
	}
	return "Player1"
}

func (gs *GameState) nextPlayer() int {
	if gs.CurrentPlayer == 1 {
		return 2
	}
	return 1
}

// LegalMoves enumerates the legal actions in a fixed deterministic order:
// give-only moves by ascending piece, placements row-major by cell crossed
// with gives by ascending piece. The sequence is restartable: the same
// state always yields the same slice. Terminal states yield none.
func (gs *GameState) LegalMoves() []Move {
	switch gs.Phase {
	case AwaitingFirstGive:
		moves := make([]Move, 0, NumPieces)
		for _, p := range gs.PoolPieces() {
			moves = append(moves, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: p})
		}
		return moves
	case AwaitingPlacement:
		empty := gs.Board.EmptyCells()
		pool := gs.PoolPieces()
		if len(pool) == 0 {
			moves := make([]Move, 0, len(empty))
			for _, c := range empty {
				moves = append(moves, GameMove{Type: PlaceAction, Row: c.Row, Col: c.Col, Give: NoPiece})
			}
			return moves
		}
		moves := make([]Move, 0, len(empty)*len(pool))
		for _, c := range empty {
			for _, p := range pool {
				moves = append(moves, GameMove{Type: PlaceGiveAction, Row: c.Row, Col: c.Col, Give: p})
			}
		}
		return moves
	default:
		return nil
	}
}

// Apply validates mv against the current phase and returns the successor
// state. The receiver is never mutated, even on failure.
func (gs *GameState) Apply(mv GameMove) (*GameState, error) {
	if gs.Phase == GameOver {
		return nil, ErrGameFinished
	}

	switch gs.Phase {
	case AwaitingFirstGive:
		if mv.Type != GiveAction {
			return nil, fmt.Errorf("%w: expected give, got %s", ErrWrongPhase, mv.Type)
		}
		return gs.applyGive(mv.Give)
	case AwaitingPlacement:
		if mv.Type == GiveAction {
			return nil, fmt.Errorf("%w: expected placement, got %s", ErrWrongPhase, mv.Type)
		}
		return gs.applyPlacement(mv)
	default:
		return nil, fmt.Errorf("%w: phase %s", ErrWrongPhase, gs.Phase)
	}
}

func (gs *GameState) applyGive(give Piece) (*GameState, error) {
	if !give.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPiece, give)
	}
	if !gs.PoolContains(give) {
		return nil, fmt.Errorf("%w: %s", ErrPieceNotInPool, give)
	}
	next := gs.Copy()
	next.Pool &^= 1 << uint(give)
	next.Active = give
	next.CurrentPlayer = gs.nextPlayer()
	next.Phase = AwaitingPlacement
	next.TurnCount++
	return next, nil
}

func (gs *GameState) applyPlacement(mv GameMove) (*GameState, error) {
	if gs.Active == NoPiece {
		return nil, fmt.Errorf("%w: no active piece to place", ErrWrongPhase)
	}

	board, err := gs.Board.Place(mv.Row, mv.Col, gs.Active)
	if err != nil {
		return nil, err
	}

	next := gs.Copy()
	next.Board = board
	next.Active = NoPiece
	next.TurnCount++

	// Re-evaluate all lines after every placement: a single placement
	// can complete several lines at once.
	next.Result = Evaluate(next.Board, next.Rules)
	switch next.Result.Outcome {
	case Win:
		next.Phase = GameOver
		next.WonBy = gs.CurrentPlayer
		return next, nil
	case Draw:
		next.Phase = GameOver
		return next, nil
	}

	if next.Pool == 0 {
		// Final placements proceed with no piece left to give.
		if mv.Type != PlaceAction {
			return nil, fmt.Errorf("%w: pool is empty, nothing to give", ErrWrongPhase)
		}
		next.CurrentPlayer = gs.nextPlayer()
		return next, nil
	}

	if mv.Type != PlaceGiveAction {
		return nil, fmt.Errorf("%w: placement must give a piece while the pool is non-empty", ErrWrongPhase)
	}
	if !mv.Give.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPiece, mv.Give)
	}
	if !next.PoolContains(mv.Give) {
		return nil, fmt.Errorf("%w: %s", ErrPieceNotInPool, mv.Give)
	}
	next.Pool &^= 1 << uint(mv.Give)
	next.Active = mv.Give
	next.CurrentPlayer = gs.nextPlayer()
	return next, nil
}

// Play applies a known-legal move and returns the successor state. It is
// the searcher-facing transition: callers obtain moves from LegalMoves,
// so an error here is a programming bug and panics.
func (gs *GameState) Play(move Move) State {
	gm, ok := move.(GameMove)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", move))
	}
	next, err := gs.Apply(gm)
	if err != nil {
		panic(fmt.Sprintf("illegal move %s: %v", gm, err))
	}
	return next
}

// Hash fingerprints the position: board contents, active piece, pool,
// player to act and phase.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	_ = binary.Write(hasher, binary.LittleEndian, gs.Board.cells)
	_ = binary.Write(hasher, binary.LittleEndian, gs.Active)
	_ = binary.Write(hasher, binary.LittleEndian, gs.Pool)
	_ = binary.Write(hasher, binary.LittleEndian, int8(gs.CurrentPlayer))
	_ = binary.Write(hasher, binary.LittleEndian, int8(gs.Phase))
	return StateHash(hasher.Sum64())
}

// CheckAccounting verifies the piece invariant: every piece is in exactly
// one of board, pool, or the active slot.
func (gs *GameState) CheckAccounting() error {
	var seen [NumPieces]int
	for _, p := range gs.Board.cells {
		if p == NoPiece {
			continue
		}
		if !p.Valid() {
			return fmt.Errorf("%w: board holds %d", ErrInvalidPiece, p)
		}
		seen[p]++
	}
	for p := Piece(0); p < NumPieces; p++ {
		if gs.PoolContains(p) {
			seen[p]++
		}
	}
	if gs.Active != NoPiece {
		if !gs.Active.Valid() {
			return fmt.Errorf("%w: active piece %d", ErrInvalidPiece, gs.Active)
		}
		seen[gs.Active]++
	}
	for p, count := range seen {
		if count != 1 {
			return fmt.Errorf("%w: piece %s appears %d times across board/pool/active",
				ErrStateInconsistency, Piece(p), count)
		}
	}
	return nil
}
