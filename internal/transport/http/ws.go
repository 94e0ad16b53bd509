// FILE: internal/transport/http/ws.go
package http

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"chessrules/internal/board"
	"chessrules/internal/core"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// MessageType tags frames on the game stream
type MessageType string

const (
	MessageTypeState MessageType = "gameState"
	MessageTypeMove  MessageType = "move"
	MessageTypeError MessageType = "error"
	MessageTypeGone  MessageType = "gameDeleted"
)

// Message is one websocket frame in either direction
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// wsUpgrade rejects plain HTTP on /ws routes
func wsUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// StreamGame pushes the game state on connect and after every change.
// Clients may send {"type":"move","payload":{"from":"e2","to":"e4"}}.
func (h *HTTPHandler) StreamGame() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		gameID := conn.Params("gameId")
		if !isValidUUID(gameID) {
			h.sendError(conn, nil, core.ErrorResponse{Error: "invalid game id", Code: core.ErrInvalidRequest})
			conn.Close()
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		var writeMu sync.Mutex
		pushed := make(chan struct{})

		go func() {
			defer close(pushed)
			h.pushState(ctx, conn, gameID, &writeMu)
		}()

		h.readMoves(conn, gameID, &writeMu)

		// conn goes back to the pool once this handler returns
		cancel()
		<-pushed
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	})
}

// pushState writes a state frame per change until ctx ends. When the game
// disappears or a write fails it closes conn so the read loop returns.
func (h *HTTPHandler) pushState(ctx context.Context, conn *websocket.Conn, gameID string, writeMu *sync.Mutex) {
	for {
		v, err := h.svc.GetGame(gameID)
		if err != nil {
			h.closeGone(ctx, conn, writeMu)
			return
		}
		payload, _ := json.Marshal(buildGameResponse(v))
		if err := h.send(conn, writeMu, Message{Type: MessageTypeState, Payload: payload}); err != nil {
			conn.Close()
			return
		}

		changed, err := h.svc.WaitForChange(ctx, gameID, len(v.History))
		if err != nil {
			h.closeGone(ctx, conn, writeMu)
			return
		}
		<-changed
		if ctx.Err() != nil {
			return
		}
	}
}

func (h *HTTPHandler) closeGone(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex) {
	if ctx.Err() != nil {
		return
	}
	h.send(conn, writeMu, Message{Type: MessageTypeGone})
	conn.Close()
}

// readMoves applies incoming move frames until the connection is closed
func (h *HTTPHandler) readMoves(conn *websocket.Conn, gameID string, writeMu *sync.Mutex) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(conn, writeMu, core.ErrorResponse{Error: "invalid message", Code: core.ErrInvalidRequest, Details: err.Error()})
			continue
		}
		if msg.Type != MessageTypeMove {
			h.sendError(conn, writeMu, core.ErrorResponse{Error: "unknown message type", Code: core.ErrInvalidRequest, Details: string(msg.Type)})
			continue
		}

		var req core.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			h.sendError(conn, writeMu, core.ErrorResponse{Error: "invalid move", Code: core.ErrInvalidRequest, Details: err.Error()})
			continue
		}
		if err := validate.Struct(&req); err != nil {
			h.sendError(conn, writeMu, core.ErrorResponse{Error: "validation failed", Code: core.ErrInvalidRequest, Details: describeValidation(err)})
			continue
		}

		// The state frame follows from the change notification
		if _, err := h.svc.MakeMove(gameID, board.MustParseSquare(req.From), board.MustParseSquare(req.To)); err != nil {
			h.sendError(conn, writeMu, moveErrorResponse(err))
		}
	}
}

func (h *HTTPHandler) send(conn *websocket.Conn, writeMu *sync.Mutex, msg Message) error {
	if writeMu != nil {
		writeMu.Lock()
		defer writeMu.Unlock()
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("websocket write error: %v", err)
		return err
	}
	return nil
}

func (h *HTTPHandler) sendError(conn *websocket.Conn, writeMu *sync.Mutex, resp core.ErrorResponse) {
	payload, _ := json.Marshal(resp)
	h.send(conn, writeMu, Message{Type: MessageTypeError, Payload: payload})
}

func moveErrorResponse(err error) core.ErrorResponse {
	_, resp := classify(err)
	return resp
}
