package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chessrules/internal/core"
	"chessrules/internal/service"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Shutdown() })
	return NewFiberApp(svc, true)
}

// do sends a request and decodes a JSON response into out when non-nil
func do(t *testing.T, app *fiber.App, method, path, body string, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App) core.GameResponse {
	t.Helper()
	var g core.GameResponse
	if code := do(t, app, "POST", "/api/v1/games", `{"label":"test"}`, &g); code != http.StatusCreated {
		t.Fatalf("create: unexpected status %d", code)
	}
	return g
}

func move(t *testing.T, app *fiber.App, id, from, to string, out interface{}) int {
	t.Helper()
	return do(t, app, "POST", "/api/v1/games/"+id+"/moves", `{"from":"`+from+`","to":"`+to+`"}`, out)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	var body map[string]interface{}
	if code := do(t, app, "GET", "/health", "", &body); code != http.StatusOK {
		t.Fatalf("unexpected status: %d", code)
	}
	if body["status"] != "healthy" || body["storage"] != "disabled" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestCreateAndGetGame(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	g := createGame(t, app)
	if g.GameID == "" || g.Label != "test" || g.Turn != 1 || g.ToMove != "w" || g.State != "ongoing" {
		t.Errorf("unexpected game: %+v", g)
	}

	var got core.GameResponse
	if code := do(t, app, "GET", "/api/v1/games/"+g.GameID, "", &got); code != http.StatusOK {
		t.Fatalf("get: unexpected status %d", code)
	}
	if got.GameID != g.GameID || len(got.Moves) != 0 {
		t.Errorf("unexpected game: %+v", got)
	}

	// empty body uses defaults
	var bare core.GameResponse
	if code := do(t, app, "POST", "/api/v1/games", "", &bare); code != http.StatusCreated || bare.Label != "" {
		t.Errorf("bare create: status=%d game=%+v", code, bare)
	}
}

func TestMakeMoves(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	g := createGame(t, app)

	var resp core.GameResponse
	for _, m := range []string{"e2e4", "f7f5", "d1h5"} {
		if code := move(t, app, g.GameID, m[:2], m[2:], &resp); code != http.StatusOK {
			t.Fatalf("move %s: unexpected status %d", m, code)
		}
	}
	if !resp.Check || resp.ToMove != "b" || resp.Turn != 4 {
		t.Errorf("unexpected state after check: %+v", resp)
	}
	if resp.LastMove == nil || resp.LastMove.Move != "d1h5" || resp.LastMove.PlayerColor != "w" {
		t.Errorf("unexpected last move: %+v", resp.LastMove)
	}

	var dests core.DestinationsResponse
	if code := do(t, app, "GET", "/api/v1/games/"+g.GameID+"/moves/g7", "", &dests); code != http.StatusOK {
		t.Fatalf("destinations: unexpected status %d", code)
	}
	if strings.Join(dests.Destinations, ",") != "g6" {
		t.Errorf("unexpected destinations: %+v", dests)
	}
}

func TestMoveErrors(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	g := createGame(t, app)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"wrong color", `{"from":"e7","to":"e5"}`, http.StatusBadRequest, core.ErrInvalidOrigin},
		{"unreachable", `{"from":"e2","to":"e5"}`, http.StatusBadRequest, core.ErrInvalidDestination},
		{"bad square", `{"from":"e9","to":"e5"}`, http.StatusBadRequest, core.ErrInvalidRequest},
		{"missing field", `{"from":"e2"}`, http.StatusBadRequest, core.ErrInvalidRequest},
		{"not json", `{`, http.StatusBadRequest, core.ErrInvalidRequest},
	}
	for _, tt := range tests {
		var resp core.ErrorResponse
		code := do(t, app, "POST", "/api/v1/games/"+g.GameID+"/moves", tt.body, &resp)
		if code != tt.status || resp.Code != tt.code {
			t.Errorf("%s: got=%d/%s want=%d/%s (%s)", tt.name, code, resp.Code, tt.status, tt.code, resp.Details)
		}
	}
}

func TestGameOver(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	g := createGame(t, app)

	var resp core.GameResponse
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if code := move(t, app, g.GameID, m[:2], m[2:], &resp); code != http.StatusOK {
			t.Fatalf("move %s: unexpected status %d", m, code)
		}
	}
	if resp.State != core.StateBlackWins.String() {
		t.Fatalf("unexpected state: %s", resp.State)
	}

	var errResp core.ErrorResponse
	if code := move(t, app, g.GameID, "a2", "a3", &errResp); code != http.StatusConflict || errResp.Code != core.ErrGameOver {
		t.Errorf("move after mate: got=%d/%s", code, errResp.Code)
	}
}

func TestBoard(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	g := createGame(t, app)

	var b core.BoardResponse
	if code := do(t, app, "GET", "/api/v1/games/"+g.GameID+"/board", "", &b); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if b.Rows != 8 || b.Cols != 8 || len(b.Squares) != 32 {
		t.Errorf("unexpected board: rows=%d cols=%d squares=%d", b.Rows, b.Cols, len(b.Squares))
	}
	if b.Squares[4].Square != "e8" || b.Squares[4].Kind != "king" || b.Squares[4].Color != "b" {
		t.Errorf("unexpected e8: %+v", b.Squares[4])
	}
	if !strings.Contains(b.Board, "1 R N B Q K B N R  1") {
		t.Errorf("unexpected diagram:\n%s", b.Board)
	}
}

func TestNotFoundAndDelete(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	g := createGame(t, app)

	var resp core.ErrorResponse
	if code := do(t, app, "GET", "/api/v1/games/not-a-uuid", "", &resp); code != http.StatusBadRequest || resp.Code != core.ErrInvalidRequest {
		t.Errorf("bad id: got=%d/%s", code, resp.Code)
	}
	if code := do(t, app, "DELETE", "/api/v1/games/"+g.GameID, "", nil); code != http.StatusNoContent {
		t.Errorf("delete: unexpected status %d", code)
	}
	if code := do(t, app, "GET", "/api/v1/games/"+g.GameID, "", &resp); code != http.StatusNotFound || resp.Code != core.ErrGameNotFound {
		t.Errorf("deleted game: got=%d/%s", code, resp.Code)
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/games", strings.NewReader("label=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
}

func TestStreamRequiresUpgrade(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	g := createGame(t, app)

	var resp core.ErrorResponse
	if code := do(t, app, "GET", "/ws/games/"+g.GameID, "", &resp); code != http.StatusUpgradeRequired {
		t.Errorf("unexpected status: %d", code)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	limited := false
	for i := 0; i < RateLimit(true)+5; i++ {
		if code := do(t, app, "GET", "/api/v1/games/00000000-0000-0000-0000-000000000000", "", nil); code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("rate limit never reached")
	}
}
