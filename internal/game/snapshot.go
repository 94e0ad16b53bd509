package game

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Cell is one square of a Snapshot; Kind is zero for an empty square
type Cell struct {
	Kind  board.Kind
	Color core.Color
}

// Snapshot is a detached copy of the game state for presentation layers
type Snapshot struct {
	Turn     int
	ToMove   core.Color
	State    core.State
	Check    bool
	Cells    [board.Rows][board.Cols]Cell
	History  []Ply
	Captured map[core.Color][]board.Kind
	ASCII    string
}

// Snapshot copies the current state. The result shares nothing with g.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Turn:    g.turn,
		ToMove:  g.toMove,
		State:   g.state,
		Check:   g.check,
		History: g.History(),
		Captured: map[core.Color][]board.Kind{
			core.ColorWhite: nil,
			core.ColorBlack: nil,
		},
		ASCII: g.board.ToASCII(),
	}
	g.board.Each(func(pos board.Position, p *board.Piece) {
		if p != nil {
			s.Cells[pos.Row][pos.Col] = Cell{Kind: p.Kind(), Color: p.Color()}
		}
	})
	for color := range s.Captured {
		for _, p := range g.Captured(color) {
			s.Captured[color] = append(s.Captured[color], p.Kind())
		}
	}
	return s
}

// At returns the cell at pos, empty when pos is off the board
func (s *Snapshot) At(pos board.Position) Cell {
	if pos.Row < 0 || pos.Row >= board.Rows || pos.Col < 0 || pos.Col >= board.Cols {
		return Cell{}
	}
	return s.Cells[pos.Row][pos.Col]
}

// Moves returns the history in coordinate notation
func (s *Snapshot) Moves() []string {
	out := make([]string, 0, len(s.History))
	for _, p := range s.History {
		out = append(out, p.Notation())
	}
	return out
}

// LastMove returns the most recent ply
func (s *Snapshot) LastMove() (Ply, bool) {
	if len(s.History) == 0 {
		return Ply{}, false
	}
	return s.History[len(s.History)-1], true
}

// Symbol is the diagram letter for the cell, 0 when empty
func (c Cell) Symbol() byte {
	if c.Kind == 0 {
		return 0
	}
	l := c.Kind.Letter()
	if c.Color == core.ColorBlack {
		return l + ('a' - 'A')
	}
	return l
}
