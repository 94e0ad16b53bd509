// FILE: internal/game/ply.go
package game

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Ply records one completed move
type Ply struct {
	Kind      board.Kind
	Color     core.Color
	From      board.Position
	To        board.Position
	Captured  board.Kind // zero when nothing was taken
	Castle    bool
	EnPassant bool
	Promotion bool
	Check     bool
}

// Notation returns coordinate notation: "e2e4", "e7e8q" for a promotion
func (p Ply) Notation() string {
	s := p.From.Square() + p.To.Square()
	if p.Promotion {
		s += "q"
	}
	return s
}

func (p Ply) String() string {
	return p.Notation()
}
