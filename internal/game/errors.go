// FILE: internal/game/errors.go
package game

import "errors"

var (
	ErrInvalidOrigin      = errors.New("invalid origin")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrSelfCheck          = errors.New("move leaves own king in check")
	ErrMissingKing        = errors.New("king missing from board")
	ErrGameOver           = errors.New("game is over")
)
