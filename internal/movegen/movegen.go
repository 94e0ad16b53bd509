// Package movegen computes per-kind reachability matrices. Generators are pure:
// they read the board and the flags in Context and never mutate anything.
package movegen

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Context carries the game-derived flags move generation depends on
type Context struct {
	// EnPassant is the pawn that double-stepped on the previous ply, if any
	EnPassant *board.Piece
	// InCheck is true when the mover's side is currently in check
	InCheck bool
}

// Direction offsets for piece movement.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// Generate returns the reachability matrix of a piece standing on the board.
// A captured piece yields an empty matrix.
func Generate(b *board.Board, piece *board.Piece, ctx Context) Matrix {
	var m Matrix
	from, ok := piece.Position()
	if !ok {
		return m
	}

	switch piece.Kind() {
	case board.Pawn:
		pawnMoves(b, piece, from, ctx, &m)
	case board.Rook:
		rays(b, piece, from, straightDirs[:], &m)
	case board.Bishop:
		rays(b, piece, from, diagonalDirs[:], &m)
	case board.Queen:
		rays(b, piece, from, straightDirs[:], &m)
		rays(b, piece, from, diagonalDirs[:], &m)
	case board.Knight:
		steps(b, piece, from, knightOffsets[:], &m)
	case board.King:
		steps(b, piece, from, kingOffsets[:], &m)
		castling(b, piece, from, ctx, &m)
	}
	return m
}

// Attacks returns the cells a piece attacks. It differs from Generate for
// pawns (diagonals only, occupied or not) and kings (no castling).
func Attacks(b *board.Board, piece *board.Piece) Matrix {
	var m Matrix
	from, ok := piece.Position()
	if !ok {
		return m
	}

	switch piece.Kind() {
	case board.Pawn:
		dir := Forward(piece.Color())
		for _, dc := range [2]int{-1, 1} {
			if to := from.Offset(dir, dc); b.IsValidPosition(to) {
				m.Set(to)
			}
		}
	case board.King:
		steps(b, piece, from, kingOffsets[:], &m)
	default:
		m = Generate(b, piece, Context{})
	}
	return m
}

// HasAnyMove reports whether the piece has at least one reachable cell.
// The game asks the same of its own matrix, which also drops castles
// through an attacked square.
func HasAnyMove(b *board.Board, piece *board.Piece, ctx Context) bool {
	m := Generate(b, piece, ctx)
	return m.Any()
}

// CanReach reports whether the piece may move to dest, ignoring self-check
// and castling transit attacks
func CanReach(b *board.Board, piece *board.Piece, ctx Context, dest board.Position) bool {
	m := Generate(b, piece, ctx)
	return m.At(dest)
}

// canLand is true for empty cells and cells held by the other color
func canLand(b *board.Board, piece *board.Piece, to board.Position) bool {
	occupant := b.At(to)
	return occupant == nil || occupant.Color() != piece.Color()
}

func steps(b *board.Board, piece *board.Piece, from board.Position, offsets [][2]int, m *Matrix) {
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if b.IsValidPosition(to) && canLand(b, piece, to) {
			m.Set(to)
		}
	}
}

func rays(b *board.Board, piece *board.Piece, from board.Position, dirs [][2]int, m *Matrix) {
	for _, dir := range dirs {
		to := from.Offset(dir[0], dir[1])
		for b.IsValidPosition(to) {
			occupant := b.At(to)
			if occupant != nil {
				if occupant.Color() != piece.Color() {
					m.Set(to)
				}
				break
			}
			m.Set(to)
			to = to.Offset(dir[0], dir[1])
		}
	}
}

// Forward is the row delta of a pawn advance for color
func Forward(c core.Color) int {
	if c == core.ColorWhite {
		return -1
	}
	return 1
}
