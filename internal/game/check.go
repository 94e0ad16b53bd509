// FILE: internal/game/check.go
package game

import (
	"fmt"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/movegen"
)

func (g *Game) king(color core.Color) (*board.Piece, error) {
	for _, p := range g.pieces {
		if p.Kind() == board.King && p.Color() == color && !g.isCaptured(p) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingKing, color.Name())
}

// IsInCheck reports whether any enemy piece can reach color's king
func (g *Game) IsInCheck(color core.Color) (bool, error) {
	king, err := g.king(color)
	if err != nil {
		return false, err
	}
	at, ok := king.Position()
	if !ok {
		return false, fmt.Errorf("%w: %s king is off the board", ErrMissingKing, color.Name())
	}

	ctx := movegen.Context{EnPassant: g.enPassant}
	enemy := core.OppositeColor(color)
	for _, p := range g.pieces {
		if p.Color() != enemy || g.isCaptured(p) {
			continue
		}
		m := movegen.Generate(g.board, p, ctx)
		if m.At(at) {
			return true, nil
		}
	}
	return false, nil
}

// IsCheckmate reports whether color is in check with no move that escapes it
func (g *Game) IsCheckmate(color core.Color) (bool, error) {
	check, err := g.IsInCheck(color)
	if err != nil || !check {
		return false, err
	}
	return !g.hasLegalMove(color, true), nil
}

// IsStalemate reports whether color is not in check but cannot move
func (g *Game) IsStalemate(color core.Color) (bool, error) {
	check, err := g.IsInCheck(color)
	if err != nil || check {
		return false, err
	}
	return !g.hasLegalMove(color, false), nil
}

// reachable is the piece's reachability matrix with castling through an
// attacked square removed
func (g *Game) reachable(piece *board.Piece, inCheck bool) movegen.Matrix {
	m := movegen.Generate(g.board, piece, movegen.Context{EnPassant: g.enPassant, InCheck: inCheck})
	if piece.Kind() == board.King && !piece.HasMoved() {
		g.dropUnsafeCastles(piece, &m)
	}
	return m
}

func (g *Game) dropUnsafeCastles(king *board.Piece, m *movegen.Matrix) {
	from, _ := king.Position()
	for _, dc := range [2]int{-2, 2} {
		to := from.Offset(0, dc)
		if !m.At(to) {
			continue
		}
		transit := from.Offset(0, dc/2)
		if g.attacked(transit, core.OppositeColor(king.Color())) {
			m.Clear(to)
		}
	}
}

// attacked reports whether any piece of by attacks pos
func (g *Game) attacked(pos board.Position, by core.Color) bool {
	for _, p := range g.pieces {
		if p.Color() != by || g.isCaptured(p) {
			continue
		}
		m := movegen.Attacks(g.board, p)
		if m.At(pos) {
			return true
		}
	}
	return false
}

// hasLegalMove simulates every candidate move of color and reports whether
// one of them leaves color out of check
func (g *Game) hasLegalMove(color core.Color, inCheck bool) bool {
	for _, p := range g.pieces {
		if p.Color() != color || g.isCaptured(p) {
			continue
		}
		if g.firstLegal(p, inCheck) {
			return true
		}
	}
	return false
}

func (g *Game) firstLegal(p *board.Piece, inCheck bool) bool {
	from, ok := p.Position()
	if !ok {
		return false
	}
	m := g.reachable(p, inCheck)
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			if !m[r][c] {
				continue
			}
			if g.safe(p.Color(), from, board.Pos(r, c)) {
				return true
			}
		}
	}
	return false
}

// safe simulates from -> to and reports whether color's king survives it
func (g *Game) safe(color core.Color, from, to board.Position) bool {
	u := g.execute(from, to)
	check, err := g.IsInCheck(color)
	g.rollback(u)
	return err == nil && !check
}

// LegalDestinations lists where the piece on pos may move, self-check
// filtered. Pieces of the side not to move are evaluated as if it were
// their turn.
func (g *Game) LegalDestinations(pos board.Position) ([]board.Position, error) {
	piece, err := g.board.PieceAt(pos)
	if err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, fmt.Errorf("%w: no piece at %v", ErrInvalidOrigin, pos)
	}
	if g.state.IsTerminal() {
		return nil, nil
	}

	inCheck := g.check
	if piece.Color() != g.toMove {
		if inCheck, err = g.IsInCheck(piece.Color()); err != nil {
			return nil, err
		}
	}

	m := g.reachable(piece, inCheck)
	var out []board.Position
	for _, to := range m.Positions() {
		if g.safe(piece.Color(), pos, to) {
			out = append(out, to)
		}
	}
	return out, nil
}
