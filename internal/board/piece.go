// FILE: internal/board/piece.go
package board

import "chessrules/internal/core"

type Kind int

const (
	Pawn Kind = iota + 1
	Rook
	Knight
	Bishop
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// Letter returns the upper case piece letter used in diagrams
func (k Kind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Rook:
		return 'R'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return '?'
	}
}

// Piece is a chessman. Its position is a mirror of the board cell holding it
// and is written only by Board.Place and Board.Remove.
type Piece struct {
	kind    Kind
	color   core.Color
	pos     Position
	onBoard bool
	moves   int
}

func NewPiece(kind Kind, color core.Color) *Piece {
	return &Piece{kind: kind, color: color}
}

func (p *Piece) Kind() Kind {
	return p.kind
}

func (p *Piece) Color() core.Color {
	return p.color
}

// Position returns the cell holding the piece; ok is false once captured
func (p *Piece) Position() (pos Position, ok bool) {
	return p.pos, p.onBoard
}

// MoveCount is the number of times the piece has moved
func (p *Piece) MoveCount() int {
	return p.moves
}

func (p *Piece) HasMoved() bool {
	return p.moves > 0
}

func (p *Piece) IncrementMoves() {
	p.moves++
}

func (p *Piece) DecrementMoves() {
	if p.moves > 0 {
		p.moves--
	}
}

// Symbol is the diagram letter: upper case for white, lower case for black
func (p *Piece) Symbol() byte {
	l := p.kind.Letter()
	if p.color == core.ColorBlack {
		return l + ('a' - 'A')
	}
	return l
}

func (p *Piece) String() string {
	return p.color.Name() + " " + p.kind.String()
}
