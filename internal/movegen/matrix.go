// FILE: internal/movegen/matrix.go
package movegen

import "chessrules/internal/board"

// Matrix marks the cells a piece may move to, ignoring self-check safety.
type Matrix [board.Rows][board.Cols]bool

// At reports whether p is marked; off-board positions are never marked
func (m *Matrix) At(p board.Position) bool {
	if p.Row < 0 || p.Row >= board.Rows || p.Col < 0 || p.Col >= board.Cols {
		return false
	}
	return m[p.Row][p.Col]
}

func (m *Matrix) Set(p board.Position) {
	m[p.Row][p.Col] = true
}

func (m *Matrix) Clear(p board.Position) {
	m[p.Row][p.Col] = false
}

// Any reports whether at least one cell is marked
func (m *Matrix) Any() bool {
	for r := range m {
		for c := range m[r] {
			if m[r][c] {
				return true
			}
		}
	}
	return false
}

func (m *Matrix) Count() int {
	n := 0
	for r := range m {
		for c := range m[r] {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

// Positions lists marked cells in row-major order
func (m *Matrix) Positions() []board.Position {
	var out []board.Position
	for r := range m {
		for c := range m[r] {
			if m[r][c] {
				out = append(out, board.Pos(r, c))
			}
		}
	}
	return out
}
