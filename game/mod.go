package game

// Move is the searcher-facing action abstraction. Quarto actions are
// fully deterministic, so the interface only carries the identity needed
// for reproducible tie-breaking.
type Move interface {
	// Equal reports whether two moves denote the same action.
	Equal(Move) bool
}

// StateHash fingerprints a game state for transposition and policy lookup.
type StateHash uint64

// State is the searcher-facing game abstraction. State is immutable:
// Play always returns a new value and never mutates the receiver, so one
// state can be shared read-only across search goroutines.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// EvalFunc scores a state between -1 and 1 indicating how favorable the
// current player's position is to a winning (positive) outcome.
type EvalFunc func(State) float64
