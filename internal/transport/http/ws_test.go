package http

import (
	"encoding/json"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/service"

	"github.com/fasthttp/websocket"
)

// startServer serves the app on a loopback listener and returns the ws base URL
func startServer(t *testing.T) (*service.Service, string) {
	t.Helper()
	svc := service.New(nil)
	app := NewFiberApp(svc, true)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() {
		app.ShutdownWithTimeout(2 * time.Second)
		svc.Shutdown()
	})
	return svc, "ws://" + ln.Addr().String()
}

func dialStream(t *testing.T, base, gameID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(base+"/ws/games/"+gameID, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) core.GameResponse {
	t.Helper()
	msg := readFrame(t, conn)
	if msg.Type != MessageTypeState {
		t.Fatalf("got frame %q want %q", msg.Type, MessageTypeState)
	}
	var g core.GameResponse
	if err := json.Unmarshal(msg.Payload, &g); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return g
}

func moveFrame(from, to string) Message {
	payload, _ := json.Marshal(core.MoveRequest{From: from, To: to})
	return Message{Type: MessageTypeMove, Payload: payload}
}

func TestStreamStateAndMoves(t *testing.T) {
	t.Parallel()
	svc, base := startServer(t)

	v, err := svc.CreateGame("stream")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	conn := dialStream(t, base, v.ID)

	g := readState(t, conn)
	if g.GameID != v.ID || g.Turn != 1 || g.ToMove != "w" {
		t.Fatalf("initial state: got=%+v", g)
	}

	if err := conn.WriteJSON(moveFrame("e2", "e4")); err != nil {
		t.Fatalf("write: %v", err)
	}
	g = readState(t, conn)
	if g.Turn != 2 || g.ToMove != "b" {
		t.Errorf("after e2e4: got turn=%d toMove=%s want turn=2 toMove=b", g.Turn, g.ToMove)
	}

	// black to move, a white piece is not a valid origin
	if err := conn.WriteJSON(moveFrame("d2", "d4")); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readFrame(t, conn)
	if msg.Type != MessageTypeError {
		t.Fatalf("got frame %q want %q", msg.Type, MessageTypeError)
	}
	var resp core.ErrorResponse
	if err := json.Unmarshal(msg.Payload, &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Code != core.ErrInvalidOrigin {
		t.Errorf("got code=%s want %s", resp.Code, core.ErrInvalidOrigin)
	}

	// a move made through the service reaches the stream too
	if _, err := svc.MakeMove(v.ID, board.MustParseSquare("e7"), board.MustParseSquare("e5")); err != nil {
		t.Fatalf("move: %v", err)
	}
	if g := readState(t, conn); g.Turn != 3 || g.ToMove != "w" {
		t.Errorf("after e7e5: got turn=%d toMove=%s want turn=3 toMove=w", g.Turn, g.ToMove)
	}

	if err := conn.WriteJSON(Message{Type: "chat"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readFrame(t, conn); msg.Type != MessageTypeError {
		t.Errorf("unknown type: got frame %q want %q", msg.Type, MessageTypeError)
	}
}

func TestStreamDeleteDuringMoves(t *testing.T) {
	t.Parallel()
	svc, base := startServer(t)

	for i := 0; i < 25; i++ {
		v, err := svc.CreateGame("flood")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		conn := dialStream(t, base, v.ID)
		readState(t, conn)

		stop := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			frames := []Message{moveFrame("e2", "e4"), moveFrame("e7", "e5"), moveFrame("a2", "a5")}
			for n := 0; ; n++ {
				select {
				case <-stop:
					return
				default:
				}
				conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
				if err := conn.WriteJSON(frames[n%len(frames)]); err != nil {
					return
				}
			}
		}()

		time.Sleep(time.Millisecond)
		if err := svc.DeleteGame(v.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		gone := false
		for {
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			var msg Message
			err := conn.ReadJSON(&msg)
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					t.Fatalf("round %d: stream stayed open after delete", i)
				}
				break
			}
			if msg.Type == MessageTypeGone {
				gone = true
			}
		}
		close(stop)
		wg.Wait()
		conn.Close()

		if !gone {
			t.Errorf("round %d: no %q frame before close", i, MessageTypeGone)
		}
	}

	// recycled connections must serve their own game only
	v, err := svc.CreateGame("after")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	conn := dialStream(t, base, v.ID)
	if g := readState(t, conn); g.GameID != v.ID || g.Turn != 1 {
		t.Errorf("fresh stream: got id=%s turn=%d want id=%s turn=1", g.GameID, g.Turn, v.ID)
	}
}
