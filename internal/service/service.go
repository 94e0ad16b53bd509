// FILE: internal/service/service.go
package service

import (
	"errors"
	"sync"
	"time"

	"chessrules/internal/game"
	"chessrules/internal/storage"
)

// MaxGames caps the number of live games
const MaxGames = 10000

var (
	// ErrGameNotFound is returned for an unknown game id
	ErrGameNotFound = errors.New("game not found")
	// ErrTooManyGames is returned by CreateGame once MaxGames are live
	ErrTooManyGames = errors.New("too many active games")
)

// Service owns the live games. The map is guarded by mu and each game by its
// entry's own lock, so a simulated position inside AttemptMove is never seen
// by a concurrent reader.
type Service struct {
	games  map[string]*entry
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

type entry struct {
	mu      sync.Mutex
	game    *game.Game
	label   string
	created time.Time
}

// New creates a service with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*entry),
		store:  store,
		waiter: NewWaitRegistry(),
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GameCount returns the number of live games
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Shutdown releases waiters, drops all games and closes storage
func (s *Service) Shutdown() error {
	var errs []error
	s.waiter.Shutdown()

	s.mu.Lock()
	s.games = make(map[string]*entry)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
