// FILE: internal/transport/http/game_handler.go
package http

import (
	"errors"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a game in the standard arrangement
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, _ := c.Locals(localValidatedBody).(*core.CreateGameRequest)
	label := ""
	if req != nil {
		label = req.Label
	}

	v, err := h.svc.CreateGame(label)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(v))
}

// GetGame returns the current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID, err := gameIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// DeleteGame removes a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID, err := gameIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.DeleteGame(gameID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MakeMove applies {"from","to"} for the side to move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID, err := gameIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	req, ok := c.Locals(localValidatedBody).(*core.MoveRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing move")
	}

	// Already validated as squares
	from := board.MustParseSquare(req.From)
	to := board.MustParseSquare(req.To)

	v, err := h.svc.MakeMove(gameID, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// GetDestinations lists the legal destinations of the piece on :square
func (h *HTTPHandler) GetDestinations(c *fiber.Ctx) error {
	gameID, err := gameIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	from, err := board.ParseSquare(c.Params("square"))
	if err != nil {
		return writeError(c, err)
	}

	dests, err := h.svc.LegalDestinations(gameID, from)
	if err != nil {
		return writeError(c, err)
	}

	resp := core.DestinationsResponse{
		Square:       from.Square(),
		Destinations: make([]string, 0, len(dests)),
	}
	for _, d := range dests {
		resp.Destinations = append(resp.Destinations, d.Square())
	}
	return c.JSON(resp)
}

// GetBoard returns every occupied square and an ASCII diagram
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID, err := gameIDParam(c)
	if err != nil {
		return writeError(c, err)
	}
	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(buildBoardResponse(&v.Snapshot))
}

var errBadGameID = errors.New("invalid game id")

func gameIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("gameId")
	if !isValidUUID(id) {
		return "", errBadGameID
	}
	return id, nil
}

// writeError maps service and rule errors to status codes and error codes
func writeError(c *fiber.Ctx, err error) error {
	status, resp := classify(err)
	return c.Status(status).JSON(resp)
}

func classify(err error) (int, core.ErrorResponse) {
	status := fiber.StatusInternalServerError
	resp := core.ErrorResponse{
		Error:   "internal server error",
		Code:    core.ErrInternalError,
		Details: err.Error(),
	}

	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status, resp.Error, resp.Code = fiber.StatusNotFound, "game not found", core.ErrGameNotFound
	case errors.Is(err, errBadGameID):
		status, resp.Error, resp.Code = fiber.StatusBadRequest, "invalid game id", core.ErrInvalidRequest
	case errors.Is(err, service.ErrTooManyGames):
		status, resp.Error, resp.Code = fiber.StatusServiceUnavailable, "too many active games", core.ErrResourceLimit
	case errors.Is(err, game.ErrInvalidOrigin):
		status, resp.Error, resp.Code = fiber.StatusBadRequest, "invalid origin", core.ErrInvalidOrigin
	case errors.Is(err, game.ErrInvalidDestination):
		status, resp.Error, resp.Code = fiber.StatusBadRequest, "invalid destination", core.ErrInvalidDestination
	case errors.Is(err, game.ErrSelfCheck):
		status, resp.Error, resp.Code = fiber.StatusBadRequest, "move leaves king in check", core.ErrSelfCheck
	case errors.Is(err, game.ErrGameOver):
		status, resp.Error, resp.Code = fiber.StatusConflict, "game is over", core.ErrGameOver
	case errors.Is(err, board.ErrInvalidSquare), errors.Is(err, board.ErrOutOfBounds):
		status, resp.Error, resp.Code = fiber.StatusBadRequest, "invalid square", core.ErrInvalidSquare
	}
	return status, resp
}

func buildGameResponse(v service.GameView) core.GameResponse {
	resp := core.GameResponse{
		GameID: v.ID,
		Label:  v.Label,
		Turn:   v.Turn,
		ToMove: v.ToMove.String(),
		State:  v.State.String(),
		Check:  v.Check,
		Moves:  v.Moves(),
		Captured: core.CapturedPieces{
			White: kindNames(v.Captured[core.ColorWhite]),
			Black: kindNames(v.Captured[core.ColorBlack]),
		},
	}

	if last, ok := v.LastMove(); ok {
		info := &core.MoveInfo{
			Move:        last.Notation(),
			PlayerColor: last.Color.String(),
			Castle:      last.Castle,
			EnPassant:   last.EnPassant,
			Promotion:   last.Promotion,
		}
		if last.Captured != 0 {
			info.Capture = last.Captured.String()
		}
		resp.LastMove = info
	}
	return resp
}

func buildBoardResponse(s *game.Snapshot) core.BoardResponse {
	resp := core.BoardResponse{
		Rows:    board.Rows,
		Cols:    board.Cols,
		Squares: []core.SquareInfo{},
		Board:   s.ASCII,
	}
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			pos := board.Pos(r, c)
			cell := s.At(pos)
			if cell.Kind == 0 {
				continue
			}
			resp.Squares = append(resp.Squares, core.SquareInfo{
				Square: pos.Square(),
				Kind:   cell.Kind.String(),
				Color:  cell.Color.String(),
			})
		}
	}
	return resp
}

func kindNames(kinds []board.Kind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.String())
	}
	return out
}
