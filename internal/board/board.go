// FILE: internal/board/board.go
package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds  = errors.New("position out of bounds")
	ErrOccupiedCell = errors.New("cell already occupied")
)

// Board is the 8x8 grid. Cells are mutated only through Place and Remove.
type Board struct {
	cells [Rows][Cols]*Piece
}

func New() *Board {
	return &Board{}
}

// IsValidPosition reports whether p lies on the grid
func (b *Board) IsValidPosition(p Position) bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// PieceAt returns the occupant of p, nil for an empty cell
func (b *Board) PieceAt(p Position) (*Piece, error) {
	if !b.IsValidPosition(p) {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	return b.cells[p.Row][p.Col], nil
}

// At is PieceAt for callers that already bounds-checked p; off-board reads nil
func (b *Board) At(p Position) *Piece {
	if !b.IsValidPosition(p) {
		return nil
	}
	return b.cells[p.Row][p.Col]
}

func (b *Board) IsOccupied(p Position) bool {
	return b.At(p) != nil
}

// Place stores piece at p and updates its cached position
func (b *Board) Place(piece *Piece, p Position) error {
	if !b.IsValidPosition(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if b.cells[p.Row][p.Col] != nil {
		return fmt.Errorf("%w: %v", ErrOccupiedCell, p)
	}
	b.cells[p.Row][p.Col] = piece
	piece.pos = p
	piece.onBoard = true
	return nil
}

// Remove detaches and returns the occupant of p, or nil if the cell is empty
func (b *Board) Remove(p Position) *Piece {
	if !b.IsValidPosition(p) {
		return nil
	}
	piece := b.cells[p.Row][p.Col]
	if piece == nil {
		return nil
	}
	b.cells[p.Row][p.Col] = nil
	piece.pos = Position{}
	piece.onBoard = false
	return piece
}

// Each calls fn for every occupied cell in row-major order
func (b *Board) Each(fn func(Position, *Piece)) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if piece := b.cells[r][c]; piece != nil {
				fn(Position{Row: r, Col: c}, piece)
			}
		}
	}
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < Rows; r++ {
		sb.WriteString(fmt.Sprintf("%d ", Rows-r))
		for c := 0; c < Cols; c++ {
			piece := b.cells[r][c]
			if piece == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.Symbol()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", Rows-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
