package game

import (
	"fmt"
	"strings"
)

// BoardSize is the side length of the Quarto board.
const BoardSize = 4

// Cell addresses one board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Index returns the row-major index of the cell.
func (c Cell) Index() int {
	return c.Row*BoardSize + c.Col
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a 4x4 grid of cells, each empty or holding exactly one piece.
// Board is a value type: Place returns a new board and never mutates the
// receiver, so boards can be handed to concurrent searchers by copy.
type Board struct {
	cells [BoardSize * BoardSize]Piece
}

// NewBoard returns an empty board.
func NewBoard() Board {
	var b Board
	for i := range b.cells {
		b.cells[i] = NoPiece
	}
	return b
}

// At returns the piece at (row,col), or NoPiece for an empty cell. It
// fails with ErrOutOfBounds for coordinates outside [0,3].
func (b Board) At(row, col int) (Piece, error) {
	c := Cell{Row: row, Col: col}
	if !c.valid() {
		return NoPiece, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return b.cells[c.Index()], nil
}

// Place returns a copy of the board with piece set at (row,col). It fails
// with ErrOutOfBounds or ErrCellOccupied without partial mutation.
func (b Board) Place(row, col int, piece Piece) (Board, error) {
	c := Cell{Row: row, Col: col}
	if !c.valid() {
		return b, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if !piece.Valid() {
		return b, fmt.Errorf("%w: %d", ErrInvalidPiece, piece)
	}
	if b.cells[c.Index()] != NoPiece {
		return b, fmt.Errorf("%w: %s", ErrCellOccupied, c)
	}
	b.cells[c.Index()] = piece
	return b, nil
}

// IsFull reports whether every cell holds a piece.
func (b Board) IsFull() bool {
	for _, p := range b.cells {
		if p == NoPiece {
			return false
		}
	}
	return true
}

// EmptyCells returns the empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var empty []Cell
	for i, p := range b.cells {
		if p == NoPiece {
			empty = append(empty, Cell{Row: i / BoardSize, Col: i % BoardSize})
		}
	}
	return empty
}

// PlacedCount returns the number of occupied cells.
func (b Board) PlacedCount() int {
	count := 0
	for _, p := range b.cells {
		if p != NoPiece {
			count++
		}
	}
	return count
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if col > 0 {
				sb.WriteString(" | ")
			}
			p := b.cells[row*BoardSize+col]
			if p == NoPiece {
				sb.WriteString(".......")
			} else {
				sb.WriteString(p.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
