package game

import "fmt"

// Line is a set of exactly four cells that wins when all four are occupied
// by pieces sharing at least one attribute value.
type Line struct {
	Cells [4]Cell
}

// Rules fixes the set of winning lines for a game. The enumeration order
// is part of the contract: the detector reports the lowest-indexed winning
// line, so implementations must return a stable slice.
type Rules interface {
	// WinningLines returns the candidate lines in their fixed
	// enumeration order: rows 0-3, columns 0-3, main diagonal,
	// anti-diagonal, then any variant-specific lines.
	WinningLines() []Line
	// Name identifies the rule set for logging and persistence.
	Name() string
}

// baseLines holds rows 0-3, columns 0-3, the main diagonal and the
// anti-diagonal, in that order.
var baseLines = buildBaseLines()

// subSquareLines holds the nine 2x2 sub-squares of the extended house
// rule, row-major by top-left corner.
var subSquareLines = buildSubSquareLines()

func buildBaseLines() []Line {
	lines := make([]Line, 0, 10)
	for row := 0; row < BoardSize; row++ {
		var l Line
		for col := 0; col < BoardSize; col++ {
			l.Cells[col] = Cell{Row: row, Col: col}
		}
		lines = append(lines, l)
	}
	for col := 0; col < BoardSize; col++ {
		var l Line
		for row := 0; row < BoardSize; row++ {
			l.Cells[row] = Cell{Row: row, Col: col}
		}
		lines = append(lines, l)
	}
	var main, anti Line
	for i := 0; i < BoardSize; i++ {
		main.Cells[i] = Cell{Row: i, Col: i}
		anti.Cells[i] = Cell{Row: i, Col: BoardSize - 1 - i}
	}
	return append(lines, main, anti)
}

func buildSubSquareLines() []Line {
	lines := make([]Line, 0, 9)
	for row := 0; row < BoardSize-1; row++ {
		for col := 0; col < BoardSize-1; col++ {
			lines = append(lines, Line{Cells: [4]Cell{
				{Row: row, Col: col},
				{Row: row, Col: col + 1},
				{Row: row + 1, Col: col},
				{Row: row + 1, Col: col + 1},
			}})
		}
	}
	return lines
}

// StandardRules wins on the 10 geometric lines.
type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (*StandardRules) WinningLines() []Line {
	return baseLines
}

func (*StandardRules) Name() string {
	return "standard"
}

// ExtendedRules adds the nine 2x2 sub-squares to the standard lines.
type ExtendedRules struct {
	lines []Line
}

func NewExtendedRules() *ExtendedRules {
	lines := make([]Line, 0, len(baseLines)+len(subSquareLines))
	lines = append(lines, baseLines...)
	lines = append(lines, subSquareLines...)
	return &ExtendedRules{lines: lines}
}

func (r *ExtendedRules) WinningLines() []Line {
	return r.lines
}

func (*ExtendedRules) Name() string {
	return "extended"
}

// RulesByName returns the rule set matching a persisted or configured
// name, defaulting to standard for an empty name.
func RulesByName(name string) (Rules, error) {
	switch name {
	case "", "standard":
		return NewStandardRules(), nil
	case "extended":
		return NewExtendedRules(), nil
	default:
		return nil, fmt.Errorf("unknown rule set %q", name)
	}
}
