package game

import (
	"errors"
	"fmt"
)

// Cell represents the mark of a player (X, O) or an empty cell.
type Cell string

const (
	// Cell marks
	Empty   Cell = ""
	PlayerX Cell = "X"
	PlayerO Cell = "O"

	// Board boundaries: Size cells, indexed IndexMin..IndexMax row-major.
	Size      = 9
	IndexMin  = 0
	IndexMax  = Size - 1
	rowLength = 3
)

var (
	ErrOutOfRange      = errors.New("cell index out of range")
	ErrCellOccupied    = errors.New("cell already occupied")
	ErrGameAlreadyOver = errors.New("game already finished")
	ErrInvalidPlayer   = errors.New("invalid player mark")
)

// Valid reports whether c is a player mark.
func (c Cell) Valid() bool {
	return c == PlayerX || c == PlayerO
}

// Opponent returns the other player's mark, or Empty for Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (c Cell) String() string {
	if c == Empty {
		return "-"
	}
	return string(c)
}

// Board is a 3x3 board stored row-major. The zero value is an empty board.
type Board struct {
	cells     [Size]Cell
	moveCount int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// FromCells builds a board from a row-major snapshot.
func FromCells(cells [Size]Cell) (Board, error) {
	var b Board
	for i, c := range cells {
		if c != Empty && !c.Valid() {
			return Board{}, fmt.Errorf("%w: %q at %d", ErrInvalidPlayer, string(c), i)
		}
		if c != Empty {
			b.moveCount++
		}
	}
	b.cells = cells
	return b, nil
}

// ApplyMove places player's mark at index.
func (b *Board) ApplyMove(index int, player Cell) error {
	if !inRange(index) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	if !player.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, string(player))
	}
	if !b.Outcome().IsInProgress() {
		return ErrGameAlreadyOver
	}
	if b.cells[index] != Empty {
		return fmt.Errorf("%w: %d", ErrCellOccupied, index)
	}

	b.cells[index] = player
	b.moveCount++
	return nil
}

// CellAt returns the mark at index.
func (b *Board) CellAt(index int) (Cell, error) {
	if !inRange(index) {
		return Empty, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return b.cells[index], nil
}

// Reset clears the board for a new game.
func (b *Board) Reset() {
	b.cells = [Size]Cell{}
	b.moveCount = 0
}

// Cells returns a copy of the board contents.
func (b *Board) Cells() [Size]Cell {
	return b.cells
}

// MoveCount is the number of marks placed since the last reset.
func (b *Board) MoveCount() int {
	return b.moveCount
}

// EmptyCells lists the free indices in ascending order.
func (b *Board) EmptyCells() []int {
	free := make([]int, 0, Size-b.moveCount)
	for i, c := range b.cells {
		if c == Empty {
			free = append(free, i)
		}
	}
	return free
}

// IsFull checks if every cell holds a mark.
func (b *Board) IsFull() bool {
	return b.moveCount == Size
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	return *b
}

// Row and Col translate a cell index into grid coordinates.
func Row(index int) int { return index / rowLength }
func Col(index int) int { return index % rowLength }

func inRange(index int) bool {
	return index >= IndexMin && index <= IndexMax
}
