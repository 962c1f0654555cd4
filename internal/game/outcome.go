package game

// WinLine is an index triple that ends the game when uniformly marked.
type WinLine [3]int

// WinLines are checked in this order; the first match decides the winner.
var WinLines = [...]WinLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// minMarksForWin is the fewest marks on a board that can hold a triple.
// Alternating play only reaches it on move 5, but ApplyMove does not
// enforce turn order, so the lower bound is used.
const minMarksForWin = 3

type OutcomeKind string

const (
	InProgress OutcomeKind = "in_progress"
	Won        OutcomeKind = "won"
	Draw       OutcomeKind = "draw"
)

// Outcome is the derived state of a board. Winner and Line are set only
// when Kind is Won.
type Outcome struct {
	Kind   OutcomeKind
	Winner Cell
	Line   WinLine
}

func (o Outcome) IsInProgress() bool { return o.Kind == InProgress }
func (o Outcome) IsWon() bool { return o.Kind == Won }
func (o Outcome) IsDraw() bool { return o.Kind == Draw }

func (o Outcome) String() string {
	switch o.Kind {
	case Won:
		return "won by " + string(o.Winner)
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// Outcome evaluates the board. It never mutates b.
func (b *Board) Outcome() Outcome {
	if b.moveCount >= minMarksForWin {
		if line, winner, ok := b.winningLine(); ok {
			return Outcome{Kind: Won, Winner: winner, Line: line}
		}
	}
	if b.IsFull() {
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: InProgress}
}

func (b *Board) winningLine() (WinLine, Cell, bool) {
	for _, line := range WinLines {
		first := b.cells[line[0]]
		if first != Empty && first == b.cells[line[1]] && first == b.cells[line[2]] {
			return line, first, true
		}
	}
	return WinLine{}, Empty, false
}
