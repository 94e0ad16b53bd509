package board

import (
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		square  string
		want    Position
		wantErr error
	}{
		{name: "ok a8", square: "a8", want: Pos(0, 0)},
		{name: "ok h1", square: "h1", want: Pos(7, 7)},
		{name: "ok e2", square: "e2", want: Pos(6, 4)},
		{name: "ok upper case file", square: "E4", want: Pos(4, 4)},
		{name: "bad empty", square: "", wantErr: ErrInvalidSquare},
		{name: "bad short", square: "e", wantErr: ErrInvalidSquare},
		{name: "bad file", square: "i4", wantErr: ErrInvalidSquare},
		{name: "bad rank 0", square: "e0", wantErr: ErrInvalidSquare},
		{name: "bad rank 9", square: "e9", wantErr: ErrInvalidSquare},
		{name: "bad long", square: "e22", wantErr: ErrInvalidSquare},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSquare(tt.square)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestSquareRoundTrip(t *testing.T) {
	t.Parallel()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := Pos(r, c)
			got, err := ParseSquare(p.Square())
			if err != nil {
				t.Fatalf("parse %q: %v", p.Square(), err)
			}
			if got != p {
				t.Errorf("round trip of %v gave %v", p, got)
			}
		}
	}
}

func TestSquareOffBoard(t *testing.T) {
	t.Parallel()
	if got := Pos(-1, 0).Square(); got != "" {
		t.Errorf("unexpected square for off-board position: %q", got)
	}
	if got := Pos(0, 8).String(); got != "(0,8)" {
		t.Errorf("unexpected string for off-board position: %q", got)
	}
}
