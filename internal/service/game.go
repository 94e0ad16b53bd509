// FILE: internal/service/game.go
package service

import (
	"context"
	"fmt"
	"time"

	"chessrules/internal/board"
	"chessrules/internal/game"
	"chessrules/internal/storage"

	"github.com/google/uuid"
)

// GameView is a game snapshot together with its service metadata
type GameView struct {
	ID      string
	Label   string
	Created time.Time
	game.Snapshot
}

// CreateGame starts a game in the standard arrangement and returns its view
func (s *Service) CreateGame(label string) (GameView, error) {
	e := &entry{
		game:    game.New(),
		label:   label,
		created: time.Now().UTC(),
	}

	s.mu.Lock()
	if len(s.games) >= MaxGames {
		s.mu.Unlock()
		return GameView{}, ErrTooManyGames
	}
	id := s.generateGameID()
	s.games[id] = e
	s.mu.Unlock()

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			Label:        label,
			StartTimeUTC: e.created,
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view(id), nil
}

// generateGameID must be called with s.mu held
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

func (s *Service) lookup(gameID string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e, nil
}

func (e *entry) view(id string) GameView {
	return GameView{
		ID:       id,
		Label:    e.label,
		Created:  e.created,
		Snapshot: e.game.Snapshot(),
	}
}

// GetGame returns the current view of a game
func (s *Service) GetGame(gameID string) (GameView, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return GameView{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view(gameID), nil
}

// MakeMove applies a move and returns the resulting view. Rule violations
// come back as the game package's sentinel errors with the game unchanged.
func (s *Service) MakeMove(gameID string, from, to board.Position) (GameView, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return GameView{}, err
	}

	e.mu.Lock()
	if err := e.game.AttemptMove(from, to); err != nil {
		e.mu.Unlock()
		return GameView{}, err
	}
	v := e.view(gameID)
	e.mu.Unlock()

	if s.store != nil {
		last, _ := v.LastMove()
		s.store.RecordMove(storage.MoveRecord{
			GameID:      gameID,
			MoveNumber:  len(v.History),
			Move:        last.Notation(),
			PlayerColor: last.Color.String(),
			IsCheck:     last.Check,
			MoveTimeUTC: time.Now().UTC(),
		})
		if v.State.IsTerminal() {
			s.store.RecordResult(gameID, v.State.String())
		}
	}

	s.waiter.NotifyGame(gameID, len(v.History))
	return v, nil
}

// LegalDestinations lists where the piece on pos may move
func (s *Service) LegalDestinations(gameID string, pos board.Position) ([]board.Position, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.LegalDestinations(pos)
}

// DeleteGame removes a game from memory. The persisted log is kept.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	if _, ok := s.games[gameID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(s.games, gameID)
	s.mu.Unlock()

	s.waiter.RemoveGame(gameID)
	return nil
}

// WaitForChange returns a channel signalled when the game has a move count
// other than moveCount, when it is deleted, or on timeout
func (s *Service) WaitForChange(ctx context.Context, gameID string, moveCount int) (<-chan struct{}, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}

	ch := s.waiter.RegisterWait(ctx, gameID, moveCount)

	// A move may have landed between the caller's read and registration
	e.mu.Lock()
	current := len(e.game.History())
	e.mu.Unlock()
	if current != moveCount {
		s.waiter.NotifyGame(gameID, current)
	}
	return ch, nil
}
