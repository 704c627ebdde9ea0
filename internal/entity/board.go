package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// WinCombos - the three rows, three columns and two diagonals of the grid.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cells is a copy of the grid, row by row.
type Cells [BoardSize]string

// Board owns the grid. A marked cell keeps its marker until Reset.
type Board struct {
	cells Cells
}

func NewBoard() *Board {
	return &Board{}
}

// Cells - returns a copy of the grid, so callers can't mutate the board.
func (that *Board) Cells() Cells {
	return that.cells
}

// SetMark - marks the cell if it's on the board and empty, does nothing otherwise.
func (that *Board) SetMark(cell int, mark string) {
	_ = that.TrySetMark(cell, mark)
}

// TrySetMark - same as SetMark, but tells the caller why the cell was not marked.
func (that *Board) TrySetMark(cell int, mark string) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	if that.cells[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.cells[cell] = mark

	return nil
}

func (that *Board) Reset() {
	that.cells = Cells{}
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Winner - returns the marker of a completed line, or EmptyCell if there is none.
func (that *Board) Winner() string {
	return that.cells.Winner()
}

func (that Cells) Winner() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsValidMark - reports whether the value can sit in a cell.
func IsValidMark(mark string) bool {
	return mark == MarkX || mark == MarkO
}
