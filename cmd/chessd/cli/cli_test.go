package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chessrules/internal/storage"
)

func TestInitQueryDelete(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "games.db")
	var out bytes.Buffer

	if err := run([]string{"init", "-path", path}, &out); err != nil {
		t.Fatalf("init: %v", err)
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store.RecordNewGame(storage.GameRecord{GameID: "g-1", Label: "club", StartTimeUTC: time.Now().UTC()})
	store.RecordMove(storage.MoveRecord{GameID: "g-1", MoveNumber: 1, Move: "e2e4", PlayerColor: "w", MoveTimeUTC: time.Now().UTC()})
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out.Reset()
	if err := run([]string{"query", "-path", path, "-label", "club"}, &out); err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out.String(), "g-1") || !strings.Contains(out.String(), "Found 1 game(s)") {
		t.Errorf("unexpected query output:\n%s", out.String())
	}

	out.Reset()
	if err := run([]string{"moves", "-path", path, "-gameId", "g-1"}, &out); err != nil {
		t.Fatalf("moves: %v", err)
	}
	if !strings.Contains(out.String(), "1. w e2e4") {
		t.Errorf("unexpected moves output:\n%s", out.String())
	}

	if err := run([]string{"delete", "-path", path}, &out); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	for _, args := range [][]string{nil, {"bogus"}, {"init"}, {"moves", "-path", filepath.Join(t.TempDir(), "x.db")}} {
		if err := run(args, &out); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}
