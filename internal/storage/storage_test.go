package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return s
}

func TestRecordAndQuery(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "games.db")
	now := time.Now().UTC()

	s := openStore(t, path)
	s.RecordNewGame(GameRecord{GameID: "g1", Label: "friendly", StartTimeUTC: now})
	s.RecordNewGame(GameRecord{GameID: "g2", StartTimeUTC: now.Add(time.Second)})
	s.RecordMove(MoveRecord{GameID: "g1", MoveNumber: 1, Move: "e2e4", PlayerColor: "w", MoveTimeUTC: now})
	s.RecordMove(MoveRecord{GameID: "g1", MoveNumber: 2, Move: "f7f5", PlayerColor: "b", MoveTimeUTC: now})
	s.RecordMove(MoveRecord{GameID: "g1", MoveNumber: 3, Move: "d1h5", PlayerColor: "w", IsCheck: true, MoveTimeUTC: now})
	s.RecordResult("g2", "stalemate")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	s = openStore(t, path)
	defer s.Close()

	games, err := s.QueryGames("*", "")
	if err != nil {
		t.Fatalf("query games: %v", err)
	}
	if len(games) != 2 || games[0].GameID != "g2" {
		t.Fatalf("unexpected games: %+v", games)
	}
	if games[0].Result != "stalemate" || games[1].Result != "ongoing" {
		t.Errorf("unexpected results: %q %q", games[0].Result, games[1].Result)
	}

	labelled, err := s.QueryGames("", "friendly")
	if err != nil || len(labelled) != 1 || labelled[0].GameID != "g1" {
		t.Errorf("label filter: got=%+v err=%v", labelled, err)
	}

	moves, err := s.QueryMoves("g1")
	if err != nil {
		t.Fatalf("query moves: %v", err)
	}
	if len(moves) != 3 {
		t.Fatalf("unexpected move count: got=%d want=3", len(moves))
	}
	if moves[0].Move != "e2e4" || moves[2].Move != "d1h5" || !moves[2].IsCheck || moves[1].PlayerColor != "b" {
		t.Errorf("unexpected moves: %+v", moves)
	}
	if !s.IsHealthy() {
		t.Error("store reported degraded")
	}
}

func TestDegradedOnConstraintViolation(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "games.db")

	s := openStore(t, path)
	// move for a game that does not exist breaks the foreign key
	s.RecordMove(MoveRecord{GameID: "missing", MoveNumber: 1, Move: "e2e4", PlayerColor: "w", MoveTimeUTC: time.Now()})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if s.IsHealthy() {
		t.Error("expected degraded store")
	}
}

func TestDeleteDB(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "games.db")

	s := openStore(t, path)
	if err := s.DeleteDB(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("database file still present: %v", err)
	}
}
