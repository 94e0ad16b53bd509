// FILE: internal/game/game.go
package game

import (
	"fmt"

	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Game is a single chess game. It is not safe for concurrent use; callers
// serialize every command and query.
type Game struct {
	board     *board.Board
	turn      int
	toMove    core.Color
	state     core.State
	check     bool
	enPassant *board.Piece
	pieces    []*board.Piece
	captured  map[*board.Piece]struct{}
	history   []Ply
}

var backRank = [board.Cols]board.Kind{
	board.Rook, board.Knight, board.Bishop, board.Queen,
	board.King, board.Bishop, board.Knight, board.Rook,
}

// New creates a game in the standard initial arrangement
func New() *Game {
	g := newEmpty()
	for col, kind := range backRank {
		file := byte('a' + col)
		g.put(kind, core.ColorWhite, string([]byte{file, '1'}))
		g.put(board.Pawn, core.ColorWhite, string([]byte{file, '2'}))
		g.put(kind, core.ColorBlack, string([]byte{file, '8'}))
		g.put(board.Pawn, core.ColorBlack, string([]byte{file, '7'}))
	}
	return g
}

func newEmpty() *Game {
	return &Game{
		board:    board.New(),
		turn:     1,
		toMove:   core.ColorWhite,
		state:    core.StateOngoing,
		captured: make(map[*board.Piece]struct{}),
	}
}

// put places a new piece on an algebraic square during setup
func (g *Game) put(kind board.Kind, color core.Color, square string) *board.Piece {
	piece := board.NewPiece(kind, color)
	g.mustPlace(piece, board.MustParseSquare(square))
	g.pieces = append(g.pieces, piece)
	return piece
}

// mustPlace panics on a placement the rules never produce
func (g *Game) mustPlace(piece *board.Piece, pos board.Position) {
	if err := g.board.Place(piece, pos); err != nil {
		panic(fmt.Sprintf("board invariant violated placing %v: %v", piece, err))
	}
}

func (g *Game) PieceAt(pos board.Position) (*board.Piece, error) {
	return g.board.PieceAt(pos)
}

// Turn is the ply counter, starting at 1
func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) ActiveColor() core.Color {
	return g.toMove
}

func (g *Game) State() core.State {
	return g.state
}

func (g *Game) IsTerminal() bool {
	return g.state.IsTerminal()
}

// InCheck is the check flag set after the last move
func (g *Game) InCheck() bool {
	return g.check
}

// EnPassant returns the pawn currently vulnerable to en passant, if any
func (g *Game) EnPassant() *board.Piece {
	return g.enPassant
}

func (g *Game) isCaptured(p *board.Piece) bool {
	_, ok := g.captured[p]
	return ok
}

// Pieces returns every piece of color ever placed and not promoted away
func (g *Game) Pieces(color core.Color) []*board.Piece {
	var out []*board.Piece
	for _, p := range g.pieces {
		if p.Color() == color {
			out = append(out, p)
		}
	}
	return out
}

// Captured returns the captured pieces of color
func (g *Game) Captured(color core.Color) []*board.Piece {
	var out []*board.Piece
	for _, p := range g.pieces {
		if p.Color() == color && g.isCaptured(p) {
			out = append(out, p)
		}
	}
	return out
}

// InPlay returns the pieces of color still on the board
func (g *Game) InPlay(color core.Color) []*board.Piece {
	var out []*board.Piece
	for _, p := range g.pieces {
		if p.Color() == color && !g.isCaptured(p) {
			out = append(out, p)
		}
	}
	return out
}

// History returns a copy of the completed plies
func (g *Game) History() []Ply {
	out := make([]Ply, len(g.history))
	copy(out, g.history)
	return out
}

// Moves returns the history in coordinate notation
func (g *Game) Moves() []string {
	moves := make([]string, 0, len(g.history))
	for _, p := range g.history {
		moves = append(moves, p.Notation())
	}
	return moves
}

// LastMove returns the most recent ply
func (g *Game) LastMove() (Ply, bool) {
	if len(g.history) == 0 {
		return Ply{}, false
	}
	return g.history[len(g.history)-1], true
}

// ToASCII renders the board as text
func (g *Game) ToASCII() string {
	return g.board.ToASCII()
}
