package game

import "fmt"

// Piece identifies one of the 16 Quarto pieces. The low four bits of the
// identifier encode the attributes: bit 0 tall, bit 1 square, bit 2 light,
// bit 3 solid.
type Piece int8

// NoPiece marks an empty cell or an unset active piece.
const NoPiece Piece = -1

// NumPieces is the number of distinct pieces in a Quarto set.
const NumPieces = 16

// Attributes holds the four binary properties of a piece.
type Attributes struct {
	Tall   bool
	Square bool
	Light  bool
	Solid  bool
}

// Valid reports whether p is one of the 16 playable pieces.
func (p Piece) Valid() bool {
	return p >= 0 && p < NumPieces
}

// AttributesOf decodes the attribute tuple of a piece. It fails with
// ErrInvalidPiece for identifiers outside [0,15].
func AttributesOf(p Piece) (Attributes, error) {
	if !p.Valid() {
		return Attributes{}, fmt.Errorf("%w: %d", ErrInvalidPiece, p)
	}
	return Attributes{
		Tall:   p&1 != 0,
		Square: p&2 != 0,
		Light:  p&4 != 0,
		Solid:  p&8 != 0,
	}, nil
}

// mask returns the attribute bits of a valid piece as a 4-bit value.
func (p Piece) mask() uint8 {
	return uint8(p) & 0xF
}

func (p Piece) String() string {
	if !p.Valid() {
		return "--"
	}
	attrs, _ := AttributesOf(p)
	s := make([]byte, 0, 7)
	s = append(s, pick(attrs.Tall, 'T', 'S'), ':')
	s = append(s, pick(attrs.Square, 'Q', 'R'), ':')
	s = append(s, pick(attrs.Light, 'L', 'D'), ':')
	s = append(s, pick(attrs.Solid, 'S', 'H'))
	return string(s)
}

func pick(b bool, yes, no byte) byte {
	if b {
		return yes
	}
	return no
}

// AllPieces returns the 16 pieces in identifier order.
func AllPieces() []Piece {
	pieces := make([]Piece, NumPieces)
	for i := range pieces {
		pieces[i] = Piece(i)
	}
	return pieces
}
