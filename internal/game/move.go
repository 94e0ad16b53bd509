// FILE: internal/game/move.go
package game

import (
	"fmt"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/movegen"
)

// undo holds what execute changed so rollback can restore it exactly
type undo struct {
	piece      *board.Piece
	from       board.Position
	to         board.Position
	captured   *board.Piece
	capturedAt board.Position
	castle     bool
	rookFrom   board.Position
	rookTo     board.Position
	enPassant  bool
}

// AttemptMove moves the piece on from to to for the side to move. On error
// the game is left unchanged.
func (g *Game) AttemptMove(from, to board.Position) error {
	if g.state.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}

	piece, err := g.board.PieceAt(from)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	if piece == nil {
		return fmt.Errorf("%w: no piece at %v", ErrInvalidOrigin, from)
	}
	if piece.Color() != g.toMove {
		return fmt.Errorf("%w: piece at %v is not %s's", ErrInvalidOrigin, from, g.toMove.Name())
	}
	reach := g.reachable(piece, g.check)
	if !reach.Any() {
		return fmt.Errorf("%w: no possible moves for piece at %v", ErrInvalidOrigin, from)
	}
	if !reach.At(to) {
		return fmt.Errorf("%w: %v cannot move to %v", ErrInvalidDestination, piece, to)
	}

	u := g.execute(from, to)
	selfCheck, err := g.IsInCheck(g.toMove)
	if err != nil {
		g.rollback(u)
		return err
	}
	if selfCheck {
		g.rollback(u)
		return ErrSelfCheck
	}

	return g.commit(u)
}

// commit finishes a move that passed the self-check test
func (g *Game) commit(u undo) error {
	mover := g.toMove
	opponent := core.OppositeColor(mover)
	ply := Ply{
		Kind:      u.piece.Kind(),
		Color:     mover,
		From:      u.from,
		To:        u.to,
		Castle:    u.castle,
		EnPassant: u.enPassant,
	}
	if u.captured != nil {
		ply.Captured = u.captured.Kind()
	}

	if u.piece.Kind() == board.Pawn && u.to.Row == movegen.PromotionRow(mover) {
		g.promote(u.piece, u.to)
		ply.Promotion = true
	}

	g.enPassant = nil
	if u.piece.Kind() == board.Pawn && abs(u.to.Row-u.from.Row) == 2 {
		g.enPassant = u.piece
	}

	check, err := g.IsInCheck(opponent)
	if err != nil {
		return err
	}
	g.check = check
	ply.Check = check
	g.history = append(g.history, ply)

	if !g.hasLegalMove(opponent, check) {
		if check {
			g.state = core.WinFor(mover)
		} else {
			g.state = core.StateStalemate
		}
		return nil
	}

	g.turn++
	g.toMove = opponent
	return nil
}

// promote swaps the pawn standing on at for a queen of the same color
func (g *Game) promote(pawn *board.Piece, at board.Position) {
	g.board.Remove(at)
	for i, p := range g.pieces {
		if p == pawn {
			g.pieces = append(g.pieces[:i], g.pieces[i+1:]...)
			break
		}
	}
	queen := board.NewPiece(board.Queen, pawn.Color())
	g.mustPlace(queen, at)
	g.pieces = append(g.pieces, queen)
}

// execute performs the move on the board, including castling and en passant
// side effects. It does no legality checks.
func (g *Game) execute(from, to board.Position) undo {
	piece := g.board.Remove(from)
	piece.IncrementMoves()
	u := undo{piece: piece, from: from, to: to, capturedAt: to}

	if captured := g.board.Remove(to); captured != nil {
		u.captured = captured
		g.captured[captured] = struct{}{}
	}
	g.mustPlace(piece, to)

	if movegen.IsCastle(piece, from, to) {
		rookFrom, rookTo := movegen.CastleRook(from, to)
		if rook := g.board.Remove(rookFrom); rook != nil {
			rook.IncrementMoves()
			g.mustPlace(rook, rookTo)
			u.castle = true
			u.rookFrom, u.rookTo = rookFrom, rookTo
		}
	}

	// A diagonal pawn step onto an empty cell takes the pawn beside the origin.
	if piece.Kind() == board.Pawn && from.Col != to.Col && u.captured == nil {
		at := board.Pos(from.Row, to.Col)
		if victim := g.board.Remove(at); victim != nil {
			u.captured = victim
			u.capturedAt = at
			u.enPassant = true
			g.captured[victim] = struct{}{}
		}
	}

	return u
}

// rollback is the exact inverse of execute
func (g *Game) rollback(u undo) {
	piece := g.board.Remove(u.to)
	piece.DecrementMoves()

	if u.castle {
		rook := g.board.Remove(u.rookTo)
		rook.DecrementMoves()
		g.mustPlace(rook, u.rookFrom)
	}
	if u.captured != nil {
		g.mustPlace(u.captured, u.capturedAt)
		delete(g.captured, u.captured)
	}
	g.mustPlace(piece, u.from)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
