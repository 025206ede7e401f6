package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, gs *GameState, mv GameMove) *GameState {
	t.Helper()
	next, err := gs.Apply(mv)
	require.NoError(t, err, "move %s", mv)
	return next
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState(NewStandardRules())

	require.Equal(t, AwaitingFirstGive, gs.Phase)
	require.Equal(t, NoPiece, gs.Active)
	require.Equal(t, NumPieces, gs.PoolSize())
	require.Equal(t, "Player1", gs.Player())
	require.Empty(t, gs.Winner())
	require.NoError(t, gs.CheckAccounting())
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening: one give-only action per pool piece", func(t *testing.T) {
		gs := NewGameState(NewStandardRules())
		moves := gs.LegalMoves()

		require.Len(t, moves, NumPieces)
		for i, mv := range moves {
			gm := mv.(GameMove)
			require.Equal(t, GiveAction, gm.Type)
			require.Equal(t, Piece(i), gm.Give, "gives should enumerate ascending")
		}
	})

	t.Run("placement turns cross empty cells with pool pieces", func(t *testing.T) {
		gs := NewGameState(NewStandardRules())
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 4})
		moves := gs.LegalMoves()

		require.Len(t, moves, 16*15, "16 empty cells x 15 pool pieces")
		first := moves[0].(GameMove)
		require.Equal(t, PlaceGiveAction, first.Type)
		require.Equal(t, 0, first.Row)
		require.Equal(t, 0, first.Col)
		require.Equal(t, Piece(0), first.Give)
	})

	t.Run("the sequence is restartable", func(t *testing.T) {
		gs := NewGameState(NewStandardRules())
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 9})

		require.Equal(t, gs.LegalMoves(), gs.LegalMoves(), "re-querying must yield the same sequence")
	})

	t.Run("terminal states yield no moves", func(t *testing.T) {
		gs := playRowWin(t)
		require.Empty(t, gs.LegalMoves())
	})
}

func TestApplyValidation(t *testing.T) {
	rules := NewStandardRules()

	t.Run("placement before the first give is rejected", func(t *testing.T) {
		gs := NewGameState(rules)
		_, err := gs.Apply(GameMove{Type: PlaceGiveAction, Row: 0, Col: 0, Give: 1})
		require.ErrorIs(t, err, ErrWrongPhase)
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("give during a placement turn is rejected", func(t *testing.T) {
		gs := NewGameState(rules)
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
		_, err := gs.Apply(GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 1})
		require.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("giving a piece not in the pool is rejected", func(t *testing.T) {
		gs := NewGameState(rules)
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
		_, err := gs.Apply(GameMove{Type: PlaceGiveAction, Row: 0, Col: 0, Give: 0})
		require.ErrorIs(t, err, ErrPieceNotInPool)
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("placing on an occupied cell is rejected", func(t *testing.T) {
		gs := NewGameState(rules)
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
		gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 1, Col: 1, Give: 1})
		_, err := gs.Apply(GameMove{Type: PlaceGiveAction, Row: 1, Col: 1, Give: 2})
		require.ErrorIs(t, err, ErrCellOccupied)
	})

	t.Run("out of bounds placement is rejected", func(t *testing.T) {
		gs := NewGameState(rules)
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
		_, err := gs.Apply(GameMove{Type: PlaceGiveAction, Row: 4, Col: 0, Give: 1})
		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("acting on a terminal state is rejected", func(t *testing.T) {
		gs := playRowWin(t)
		_, err := gs.Apply(GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 14})
		require.ErrorIs(t, err, ErrGameFinished)
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("place-only while the pool is non-empty is rejected", func(t *testing.T) {
		gs := NewGameState(rules)
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
		_, err := gs.Apply(GameMove{Type: PlaceAction, Row: 3, Col: 3, Give: NoPiece})
		require.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("a failed move leaves the state untouched", func(t *testing.T) {
		gs := NewGameState(rules)
		gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
		before := *gs
		_, err := gs.Apply(GameMove{Type: PlaceGiveAction, Row: 0, Col: 0, Give: 0})
		require.Error(t, err)
		require.Equal(t, before, *gs)
	})
}

// playRowWin plays pieces 1,3,5,7 (all tall) across row 0 and returns the
// terminal state. The final placement is made by Player1.
func playRowWin(t *testing.T) *GameState {
	t.Helper()
	gs := NewGameState(NewStandardRules())
	gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 1})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 0, Col: 0, Give: 3})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 0, Col: 1, Give: 5})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 0, Col: 2, Give: 7})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 0, Col: 3, Give: 0})
	return gs
}

func TestPlayToWin(t *testing.T) {
	gs := playRowWin(t)

	require.Equal(t, GameOver, gs.Phase)
	require.Equal(t, Win, gs.Result.Outcome)
	require.Equal(t, 0, gs.Result.LineIndex, "row 0 completed")
	require.Equal(t, "Player1", gs.Winner(), "the mover who completed the line wins")
	require.NoError(t, gs.CheckAccounting())
}

// playDraw fills the board row-major with the drawGrid arrangement,
// stopping early if a rule set reports a win mid-game, and returns the
// terminal (or last reached) state.
func playDraw(t *testing.T, rules Rules) *GameState {
	t.Helper()
	order := make([]Piece, 0, NumPieces)
	for row := 0; row < BoardSize; row++ {
		order = append(order, drawGrid[row][:]...)
	}

	gs := NewGameState(rules)
	gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: order[0]})
	for i := 0; i < NumPieces && gs.Phase != GameOver; i++ {
		mv := GameMove{Type: PlaceGiveAction, Row: i / BoardSize, Col: i % BoardSize}
		if i == NumPieces-1 {
			mv.Type = PlaceAction
			mv.Give = NoPiece
		} else {
			mv.Give = order[i+1]
		}
		gs = mustApply(t, gs, mv)
	}
	return gs
}

func TestPlayToDraw(t *testing.T) {
	gs := playDraw(t, NewStandardRules())

	require.Equal(t, GameOver, gs.Phase)
	require.Equal(t, Draw, gs.Result.Outcome)
	require.Empty(t, gs.Winner())
	require.True(t, gs.Board.IsFull())
	require.NoError(t, gs.CheckAccounting())
}

func TestExtendedRulesChangeTheVerdict(t *testing.T) {
	// The same piece arrangement that draws under standard rules wins
	// on a 2x2 sub-square when the extended rule set is enabled.
	gs := playDraw(t, NewExtendedRules())

	require.Equal(t, GameOver, gs.Phase)
	require.Equal(t, Win, gs.Result.Outcome)
	require.NotEmpty(t, gs.Winner())
}

func TestMainDiagonalScenario(t *testing.T) {
	// give(0) -> place(0,0)+give(5) -> place(1,1)+give(10) ->
	// place(2,2)+give(15) -> place(3,3): pieces 0,5,10,15 share no
	// attribute, so the main diagonal must not be reported as a win.
	gs := NewGameState(NewStandardRules())
	gs = mustApply(t, gs, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 0, Col: 0, Give: 5})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 1, Col: 1, Give: 10})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 2, Col: 2, Give: 15})
	gs = mustApply(t, gs, GameMove{Type: PlaceGiveAction, Row: 3, Col: 3, Give: 1})

	require.Equal(t, NoResult, gs.Result.Outcome)
	require.Equal(t, AwaitingPlacement, gs.Phase)
	require.Empty(t, gs.Winner())
}

func TestPieceAccountingUnderRandomPlay(t *testing.T) {
	// Property: after every legal transition, each piece is in exactly
	// one of board, pool, or the active slot, and generated moves never
	// reference an occupied cell or an absent pool piece.
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		var state State = NewGameState(NewStandardRules())
		for {
			gs := state.(*GameState)
			require.NoError(t, gs.CheckAccounting())

			moves := state.LegalMoves()
			if len(moves) == 0 {
				require.Equal(t, GameOver, gs.Phase)
				break
			}
			for _, mv := range moves {
				gm := mv.(GameMove)
				if gm.Type != GiveAction {
					got, err := gs.Board.At(gm.Row, gm.Col)
					require.NoError(t, err)
					require.Equal(t, NoPiece, got, "generated placement targets an occupied cell")
				}
				if gm.Type != PlaceAction {
					require.True(t, gs.PoolContains(gm.Give), "generated give references piece %s outside the pool", gm.Give)
				}
			}
			state = state.Play(moves[rng.Intn(len(moves))])
		}
	}
}

func TestHashDistinguishesStates(t *testing.T) {
	a := NewGameState(NewStandardRules())
	b := mustApply(t, a, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 0})
	c := mustApply(t, a, GameMove{Type: GiveAction, Row: -1, Col: -1, Give: 1})

	require.NotEqual(t, a.Hash(), b.Hash())
	require.NotEqual(t, b.Hash(), c.Hash(), "different active pieces must hash differently")
	require.Equal(t, b.Hash(), b.Copy().Hash())
}

func TestOpponent(t *testing.T) {
	require.Equal(t, "Player2", Opponent("Player1"))
	require.Equal(t, "Player1", Opponent("Player2"))
}
