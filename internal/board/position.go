// FILE: internal/board/position.go
package board

import (
	"errors"
	"fmt"
)

const (
	Rows = 8
	Cols = 8
)

var (
	// ErrInvalidSquare represents an unparsable algebraic square.
	ErrInvalidSquare = errors.New("invalid square")
)

// Position is a board cell addressed by row and column. Row 0 is rank 8,
// column 0 is file a.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// ParseSquare converts algebraic notation ("e2") into a Position
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Position{Row: Rows - int(rank-'0'), Col: int(file - 'a')}, nil
}

// MustParseSquare is ParseSquare for literals known to be valid
func MustParseSquare(s string) Position {
	p, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Square returns the algebraic form, or "" when off the board
func (p Position) Square() string {
	if p.Row < 0 || p.Row >= Rows || p.Col < 0 || p.Col >= Cols {
		return ""
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, Rows-p.Row)
}

func (p Position) String() string {
	if sq := p.Square(); sq != "" {
		return sq
	}
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Offset returns the position shifted by dr rows and dc columns
func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}
