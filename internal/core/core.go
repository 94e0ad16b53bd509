// FILE: internal/core/core.go
package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
	StateStalemate
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateStalemate:
		return "stalemate"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further moves are accepted in this state
func (s State) IsTerminal() bool {
	return s != StateOngoing
}

// WinFor returns the terminal state for a checkmate delivered by color
func WinFor(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorBlack:
		return "b"
	default:
		return "-"
	}
}

// Name returns the long form used in messages
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}
