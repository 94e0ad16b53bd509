// FILE: internal/storage/schema.go
package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string    `db:"game_id"`
	Label        string    `db:"label"`
	Result       string    `db:"result"` // core.State string, "ongoing" until the game ends
	StartTimeUTC time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID      int64     `db:"move_id"`
	GameID      string    `db:"game_id"`
	MoveNumber  int       `db:"move_number"`
	Move        string    `db:"move"`         // coordinate notation, e.g. "e2e4", "e7e8q"
	PlayerColor string    `db:"player_color"` // "w" or "b"
	IsCheck     bool      `db:"is_check"`
	MoveTimeUTC time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	label TEXT NOT NULL DEFAULT '',
	result TEXT NOT NULL DEFAULT 'ongoing',
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	is_check INTEGER NOT NULL DEFAULT 0,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_label ON games(label);
`
