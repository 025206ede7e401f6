package game

import "fmt"

// ActionType distinguishes the three shapes a Quarto turn can take.
type ActionType int

const (
	// GiveAction hands a piece to the opponent without placing: the
	// opening move of a game.
	GiveAction ActionType = iota
	// PlaceGiveAction places the active piece and hands the next piece
	// to the opponent: every regular turn.
	PlaceGiveAction
	// PlaceAction places the active piece with nothing left to give:
	// the final turn, once the pool is empty.
	PlaceAction
)

func (t ActionType) String() string {
	switch t {
	case GiveAction:
		return "give"
	case PlaceGiveAction:
		return "place+give"
	case PlaceAction:
		return "place"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// GameMove is one player action. Row/Col are meaningful for the placing
// action types, Give for the giving ones (NoPiece otherwise).
type GameMove struct {
	Type ActionType `json:"type"`
	Row  int        `json:"row"`
	Col  int        `json:"col"`
	Give Piece      `json:"give"`
}

func (gm GameMove) Equal(other Move) bool {
	o, ok := other.(GameMove)
	return ok && gm == o
}

func (gm GameMove) String() string {
	switch gm.Type {
	case GiveAction:
		return fmt.Sprintf("give %s", gm.Give)
	case PlaceAction:
		return fmt.Sprintf("place (%d,%d)", gm.Row, gm.Col)
	default:
		return fmt.Sprintf("place (%d,%d) give %s", gm.Row, gm.Col, gm.Give)
	}
}
