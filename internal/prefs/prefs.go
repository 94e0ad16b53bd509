// Package prefs keeps CLI preferences and local results in a badger store
package prefs

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"chessrules/internal/core"
)

const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// Preferences stores user settings for the CLI
type Preferences struct {
	Theme      string    `json:"theme"`
	ShowCoords bool      `json:"show_coords"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns the settings used before anything is saved
func DefaultPreferences() *Preferences {
	return &Preferences{
		Theme:      "off",
		ShowCoords: true,
	}
}

// Stats counts finished local games
type Stats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Stalemates  int `json:"stalemates"`
}

// Store wraps BadgerDB for persistent preferences
type Store struct {
	db *badger.DB
}

// Open opens the store in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes key into v, leaving v untouched when the key is absent
func (s *Store) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Store) SavePreferences(p *Preferences) error {
	p.LastPlayed = time.Now()
	return s.put(keyPreferences, p)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Store) LoadPreferences() (*Preferences, error) {
	p := DefaultPreferences()
	err := s.get(keyPreferences, p)
	return p, err
}

// LoadStats loads the result counters
func (s *Store) LoadStats() (*Stats, error) {
	stats := &Stats{}
	err := s.get(keyStats, stats)
	return stats, err
}

// RecordResult counts a finished game; non-terminal states are ignored
func (s *Store) RecordResult(state core.State) error {
	if !state.IsTerminal() {
		return nil
	}
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	switch state {
	case core.StateWhiteWins:
		stats.WhiteWins++
	case core.StateBlackWins:
		stats.BlackWins++
	case core.StateStalemate:
		stats.Stalemates++
	}
	return s.put(keyStats, stats)
}
