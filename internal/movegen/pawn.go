// FILE: internal/movegen/pawn.go
package movegen

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// StartRow is the row pawns of color begin on
func StartRow(c core.Color) int {
	if c == core.ColorWhite {
		return board.Rows - 2
	}
	return 1
}

// PromotionRow is the far rank for pawns of color
func PromotionRow(c core.Color) int {
	if c == core.ColorWhite {
		return 0
	}
	return board.Rows - 1
}

func pawnMoves(b *board.Board, piece *board.Piece, from board.Position, ctx Context, m *Matrix) {
	dir := Forward(piece.Color())

	one := from.Offset(dir, 0)
	if b.IsValidPosition(one) && !b.IsOccupied(one) {
		m.Set(one)

		two := from.Offset(2*dir, 0)
		if from.Row == StartRow(piece.Color()) && b.IsValidPosition(two) && !b.IsOccupied(two) {
			m.Set(two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if !b.IsValidPosition(to) {
			continue
		}
		if occupant := b.At(to); occupant != nil {
			if occupant.Color() != piece.Color() {
				m.Set(to)
			}
			continue
		}
		if enPassantTarget(b, piece, from, dc, ctx) {
			m.Set(to)
		}
	}
}

// enPassantTarget reports whether the pawn beside from, on column offset dc,
// is the one currently vulnerable to en passant
func enPassantTarget(b *board.Board, piece *board.Piece, from board.Position, dc int, ctx Context) bool {
	if ctx.EnPassant == nil || ctx.EnPassant.Color() == piece.Color() {
		return false
	}
	beside := b.At(from.Offset(0, dc))
	return beside != nil && beside == ctx.EnPassant
}
