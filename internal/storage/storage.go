// FILE: internal/storage/storage.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize = 1000
	drainTimeout   = 2 * time.Second
)

// Store is the SQLite game log. Writes are queued and applied by a single
// writer goroutine; a failed write marks the store degraded and later writes
// are dropped.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
	closeErr     error
}

// NewStore opens the database and starts the async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// One connection keeps PRAGMA settings and serializes sqlite writers
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan func(*sql.Tx) error, writeQueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain what is already queued
			deadline := time.After(drainTimeout)
			for {
				select {
				case fn := <-s.writeChan:
					if s.healthStatus.Load() {
						s.executeWrite(fn)
					}
				case <-deadline:
					return
				default:
					return
				}
			}

		case fn := <-s.writeChan:
			if !s.healthStatus.Load() {
				continue
			}
			s.executeWrite(fn)
		}
	}
}

func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

// enqueue hands a write to the writer, dropping it when degraded or full
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}
	select {
	case s.writeChan <- fn:
	default:
		log.Printf("Storage write queue full, dropping %s", what)
	}
}

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		result := record.Result
		if result == "" {
			result = "ongoing"
		}
		_, err := tx.Exec(
			`INSERT INTO games (game_id, label, result, start_time_utc) VALUES (?, ?, ?, ?)`,
			record.GameID, record.Label, result, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO moves (
				game_id, move_number, move, player_color, is_check, move_time_utc
			) VALUES (?, ?, ?, ?, ?, ?)`,
			record.GameID, record.MoveNumber, record.Move,
			record.PlayerColor, record.IsCheck, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordResult asynchronously stores the final state of a game
func (s *Store) RecordResult(gameID, result string) {
	s.enqueue("result update", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET result = ? WHERE game_id = ?`, result, gameID)
		return err
	})
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close drains queued writes and closes the database. Safe to call twice.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(drainTimeout):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	// ☣ DESTRUCTIVE: Removes database file
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}

// QueryGames retrieves games, newest first. Empty or "*" filters match all.
func (s *Store) QueryGames(gameID, label string) ([]GameRecord, error) {
	query := `SELECT game_id, label, result, start_time_utc FROM games WHERE 1=1`
	var args []interface{}

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	if label != "" && label != "*" {
		query += " AND label = ?"
		args = append(args, label)
	}
	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.Label, &g.Result, &g.StartTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the moves of a game in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(
		`SELECT move_id, game_id, move_number, move, player_color, is_check, move_time_utc
		FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.GameID, &m.MoveNumber, &m.Move, &m.PlayerColor, &m.IsCheck, &m.MoveTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
