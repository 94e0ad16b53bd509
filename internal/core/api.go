// FILE: internal/core/api.go
package core

// Request types

type CreateGameRequest struct {
	Label string `json:"label,omitempty" validate:"omitempty,max=64,printascii"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,len=2,square"`
	To   string `json:"to" validate:"required,len=2,square"`
}

// Response types

type GameResponse struct {
	GameID   string         `json:"gameId"`
	Label    string         `json:"label,omitempty"`
	Turn     int            `json:"turn"`
	ToMove   string         `json:"toMove"` // "w" or "b"
	State    string         `json:"state"`  // "ongoing", "white wins", ...
	Check    bool           `json:"check"`
	Moves    []string       `json:"moves"`
	Captured CapturedPieces `json:"captured"`
	LastMove *MoveInfo      `json:"lastMove,omitempty"`
}

type CapturedPieces struct {
	White []string `json:"white"`
	Black []string `json:"black"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Capture     string `json:"capture,omitempty"`
	Castle      bool   `json:"castle,omitempty"`
	EnPassant   bool   `json:"enPassant,omitempty"`
	Promotion   bool   `json:"promotion,omitempty"`
}

type BoardResponse struct {
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Squares []SquareInfo `json:"squares"`
	Board   string       `json:"board"` // ASCII representation
}

type SquareInfo struct {
	Square string `json:"square"`
	Kind   string `json:"kind"`
	Color  string `json:"color"`
}

type DestinationsResponse struct {
	Square       string   `json:"square"`
	Destinations []string `json:"destinations"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
