package game

import (
	"encoding/json"
	"fmt"
)

// snapshot is the serialized form of a GameState. The encoding is
// self-contained (rule set by name, pool as an explicit list) so a saved
// game round-trips losslessly for resume and replay.
type snapshot struct {
	Board         [BoardSize][BoardSize]int8 `json:"board"`
	Pool          []int8                     `json:"pool"`
	Active        int8                       `json:"active_piece"`
	CurrentPlayer int                        `json:"current_player"`
	Phase         string                     `json:"phase"`
	Rules         string                     `json:"rules"`
	Outcome       string                     `json:"outcome"`
	WinningLine   int                        `json:"winning_line"`
	WonBy         int                        `json:"won_by"`
	TurnCount     int                        `json:"turn_count"`
}

func (gs *GameState) MarshalJSON() ([]byte, error) {
	snap := snapshot{
		Active:        int8(gs.Active),
		CurrentPlayer: gs.CurrentPlayer,
		Phase:         gs.Phase.String(),
		Rules:         gs.Rules.Name(),
		Outcome:       gs.Result.Outcome.String(),
		WinningLine:   gs.Result.LineIndex,
		WonBy:         gs.WonBy,
		TurnCount:     gs.TurnCount,
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			snap.Board[row][col] = int8(gs.Board.cells[row*BoardSize+col])
		}
	}
	for _, p := range gs.PoolPieces() {
		snap.Pool = append(snap.Pool, int8(p))
	}
	return json.Marshal(snap)
}

func (gs *GameState) UnmarshalJSON(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode game state: %w", err)
	}

	rules, err := RulesByName(snap.Rules)
	if err != nil {
		return fmt.Errorf("decode game state: %w", err)
	}
	phase, err := phaseByName(snap.Phase)
	if err != nil {
		return fmt.Errorf("decode game state: %w", err)
	}

	loaded := GameState{
		Board:         NewBoard(),
		Active:        Piece(snap.Active),
		CurrentPlayer: snap.CurrentPlayer,
		Phase:         phase,
		Rules:         rules,
		WonBy:         snap.WonBy,
		TurnCount:     snap.TurnCount,
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := Piece(snap.Board[row][col])
			if p == NoPiece {
				continue
			}
			if !p.Valid() {
				return fmt.Errorf("decode game state: %w: %d", ErrInvalidPiece, p)
			}
			loaded.Board.cells[row*BoardSize+col] = p
		}
	}
	for _, raw := range snap.Pool {
		p := Piece(raw)
		if !p.Valid() {
			return fmt.Errorf("decode game state: %w: %d", ErrInvalidPiece, p)
		}
		loaded.Pool |= 1 << uint(p)
	}
	if loaded.Active != NoPiece && !loaded.Active.Valid() {
		return fmt.Errorf("decode game state: %w: active %d", ErrInvalidPiece, loaded.Active)
	}
	if loaded.CurrentPlayer != 1 && loaded.CurrentPlayer != 2 {
		return fmt.Errorf("decode game state: unknown player %d", loaded.CurrentPlayer)
	}
	if err := loaded.CheckAccounting(); err != nil {
		return fmt.Errorf("decode game state: %w", err)
	}

	// Phase and active piece must cohere, or the loaded state would
	// generate moves its own transitions reject.
	switch loaded.Phase {
	case AwaitingPlacement:
		if loaded.Active == NoPiece {
			return fmt.Errorf("decode game state: %w: awaiting placement with no active piece", ErrStateInconsistency)
		}
	case AwaitingFirstGive:
		if loaded.Active != NoPiece {
			return fmt.Errorf("decode game state: %w: active piece before the first give", ErrStateInconsistency)
		}
		if loaded.Board.PlacedCount() != 0 {
			return fmt.Errorf("decode game state: %w: occupied board before the first give", ErrStateInconsistency)
		}
	}

	// Recompute the verdict rather than trusting the snapshot.
	loaded.Result = Evaluate(loaded.Board, loaded.Rules)
	if loaded.Phase == GameOver && loaded.Result.Outcome == NoResult {
		return fmt.Errorf("decode game state: %w: terminal snapshot with no result", ErrStateInconsistency)
	}

	*gs = loaded
	return nil
}

func phaseByName(name string) (Phase, error) {
	switch name {
	case AwaitingFirstGive.String():
		return AwaitingFirstGive, nil
	case AwaitingPlacement.String():
		return AwaitingPlacement, nil
	case GameOver.String():
		return GameOver, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", name)
	}
}
