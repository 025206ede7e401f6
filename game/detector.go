package game

// Outcome classifies a board evaluated against a rule set.
type Outcome int

const (
	NoResult Outcome = iota
	Win
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "no-result"
	}
}

// Result is the detector verdict. On a Win, LineIndex is the index of the
// winning line in the rule set's fixed enumeration and Line holds its
// cells; otherwise LineIndex is -1.
type Result struct {
	Outcome   Outcome
	LineIndex int
	Line      Line
}

const attrMaskAll = 0xF

// Evaluate scans every candidate line of the rule set against the board.
// A line wins iff all four cells are occupied and, for at least one
// attribute position, the AND of that bit over the four pieces equals the
// OR: all-ones (AND survives) or all-zeros (complement of OR survives).
// Lines are scanned exhaustively in enumeration order and the first win
// is reported, so a placement completing several lines at once
// deterministically resolves to the lowest index.
func Evaluate(b Board, rules Rules) Result {
	for i, line := range rules.WinningLines() {
		if lineWins(b, line) {
			return Result{Outcome: Win, LineIndex: i, Line: line}
		}
	}
	if b.IsFull() {
		return Result{Outcome: Draw, LineIndex: -1}
	}
	return Result{Outcome: NoResult, LineIndex: -1}
}

func lineWins(b Board, line Line) bool {
	and := uint8(attrMaskAll)
	or := uint8(0)
	for _, c := range line.Cells {
		p := b.cells[c.Index()]
		if p == NoPiece {
			return false
		}
		and &= p.mask()
		or |= p.mask()
	}
	return and|(^or&attrMaskAll) != 0
}
