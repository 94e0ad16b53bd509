// FILE: internal/movegen/king.go
package movegen

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

const (
	kingsideRookOffset  = 3
	queensideRookOffset = -4
)

// castling marks the two-column king destinations. Attacked transit squares
// are not considered here.
func castling(b *board.Board, king *board.Piece, from board.Position, ctx Context, m *Matrix) {
	if king.HasMoved() || ctx.InCheck || from != HomeSquare(king.Color()) {
		return
	}

	if castleRookReady(b, king, from.Offset(0, kingsideRookOffset)) &&
		pathClear(b, from, 1, kingsideRookOffset) {
		m.Set(from.Offset(0, 2))
	}
	if castleRookReady(b, king, from.Offset(0, queensideRookOffset)) &&
		pathClear(b, from, -1, queensideRookOffset) {
		m.Set(from.Offset(0, -2))
	}
}

// HomeSquare is the king's starting cell for color
func HomeSquare(c core.Color) board.Position {
	if c == core.ColorWhite {
		return board.Pos(board.Rows-1, 4)
	}
	return board.Pos(0, 4)
}

func castleRookReady(b *board.Board, king *board.Piece, at board.Position) bool {
	rook := b.At(at)
	return rook != nil && rook.Kind() == board.Rook && rook.Color() == king.Color() && !rook.HasMoved()
}

// pathClear checks every cell strictly between the king and the rook
func pathClear(b *board.Board, from board.Position, step, rookOffset int) bool {
	for dc := step; dc != rookOffset; dc += step {
		if b.IsOccupied(from.Offset(0, dc)) {
			return false
		}
	}
	return true
}

// IsCastle reports whether a king move from -> to is a castling move
func IsCastle(piece *board.Piece, from, to board.Position) bool {
	if piece.Kind() != board.King || from.Row != to.Row {
		return false
	}
	d := to.Col - from.Col
	return d == 2 || d == -2
}

// CastleRook returns where the rook starts and lands for a castling king move
func CastleRook(from, to board.Position) (rookFrom, rookTo board.Position) {
	if to.Col > from.Col {
		return from.Offset(0, kingsideRookOffset), from.Offset(0, 1)
	}
	return from.Offset(0, queensideRookOffset), from.Offset(0, -1)
}
