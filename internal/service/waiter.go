// FILE: internal/service/waiter.go
package service

import (
	"context"
	"sync"
	"time"
)

// WaitTimeout is the maximum time a client waits before it is released
// without a change
const WaitTimeout = 25 * time.Second

// WaitRegistry tracks clients waiting for a game's move count to change
type WaitRegistry struct {
	mu      sync.Mutex
	waiters map[string]map[*waitRequest]struct{} // gameID → waiting clients
	closed  bool
}

type waitRequest struct {
	moveCount int
	done      chan struct{}
	once      sync.Once
	timer     *time.Timer
	stopCtx   func() bool
}

// release wakes the client exactly once
func (r *waitRequest) release() {
	r.once.Do(func() {
		close(r.done)
		if r.timer != nil {
			r.timer.Stop()
		}
		if r.stopCtx != nil {
			r.stopCtx()
		}
	})
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters: make(map[string]map[*waitRequest]struct{}),
	}
}

// RegisterWait returns a channel closed when the game moves past moveCount,
// the game is removed, the wait times out, ctx ends, or the registry shuts
// down
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	req := &waitRequest{
		moveCount: moveCount,
		done:      make(chan struct{}),
	}

	expire := func() {
		w.removeWaiter(gameID, req)
		req.release()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		req.release()
		return req.done
	}

	// Callbacks take w.mu, so they run only after the request is registered
	req.timer = time.AfterFunc(WaitTimeout, expire)
	req.stopCtx = context.AfterFunc(ctx, expire)
	if w.waiters[gameID] == nil {
		w.waiters[gameID] = make(map[*waitRequest]struct{})
	}
	w.waiters[gameID][req] = struct{}{}

	return req.done
}

// NotifyGame releases every waiter whose known move count differs from
// currentMoveCount
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	var fire []*waitRequest

	w.mu.Lock()
	for req := range w.waiters[gameID] {
		if req.moveCount != currentMoveCount {
			fire = append(fire, req)
			delete(w.waiters[gameID], req)
		}
	}
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
	w.mu.Unlock()

	for _, req := range fire {
		req.release()
	}
}

// RemoveGame releases all waiters for a deleted game
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for req := range waitList {
		req.release()
	}
}

// Waiting returns the number of clients waiting on a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown releases every waiter; later registrations return immediately
func (w *WaitRegistry) Shutdown() {
	w.mu.Lock()
	w.closed = true
	all := w.waiters
	w.waiters = make(map[string]map[*waitRequest]struct{})
	w.mu.Unlock()

	for _, waitList := range all {
		for req := range waitList {
			req.release()
		}
	}
}

func (w *WaitRegistry) removeWaiter(gameID string, req *waitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.waiters[gameID], req)
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
