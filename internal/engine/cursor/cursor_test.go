package cursor

import (
	"testing"

	"github.com/dshills/linestorm/internal/engine/lines"
)

func setup(t *testing.T, text string) (*lines.Arena, []lines.ID) {
	t.Helper()
	a := lines.NewArena()
	seq := a.Parse([]byte(text))
	var ids []lines.ID
	for line := seq.Top; line != lines.None; line = a.Next(line) {
		ids = append(ids, line)
	}
	return a, ids
}

func TestCompare(t *testing.T) {
	a, ids := setup(t, "abc\ndef\nghi")

	tests := []struct {
		name string
		p, q Position
		want int
	}{
		{"equal", At(ids[1], 2), At(ids[1], 2), 0},
		{"same line before", At(ids[1], 0), At(ids[1], 2), -1},
		{"same line after", At(ids[1], 3), At(ids[1], 2), 1},
		{"earlier line", At(ids[0], 3), At(ids[1], 0), -1},
		{"later line", At(ids[2], 0), At(ids[0], 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(a, tt.p, tt.q); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Before(a, tt.p, tt.q); got != (tt.want < 0) {
				t.Errorf("Before() = %v", got)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	a, ids := setup(t, "one\ntwo\nthree")

	t.Run("mark before cursor", func(t *testing.T) {
		mark, cur := At(ids[0], 1), At(ids[2], 2)
		r := Order(a, cur, mark)
		if r.Top != mark || r.Bot != cur {
			t.Errorf("got %v..%v", r.Top, r.Bot)
		}
		if !r.RightSideUp {
			t.Error("expected RightSideUp")
		}
	})

	t.Run("cursor before mark", func(t *testing.T) {
		cur, mark := At(ids[0], 1), At(ids[1], 0)
		r := Order(a, cur, mark)
		if r.Top != cur || r.Bot != mark {
			t.Errorf("got %v..%v", r.Top, r.Bot)
		}
		if r.RightSideUp {
			t.Error("expected upside down region")
		}
	})

	t.Run("coincident", func(t *testing.T) {
		p := At(ids[1], 1)
		r := Order(a, p, p)
		if !r.IsEmpty() || !r.SingleLine() || r.RightSideUp {
			t.Errorf("unexpected region %+v", r)
		}
	})
}

func TestPointOf(t *testing.T) {
	a, ids := setup(t, "a\nb\nc")
	got := PointOf(a, At(ids[2], 1))
	if got != (Point{Line: 3, X: 1}) {
		t.Errorf("PointOf() = %v", got)
	}
	if got.String() != "(3:1)" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestBoundaries(t *testing.T) {
	// "e" + combining acute accent forms one character.
	data := []byte("ae\u0301日b")

	tests := []struct {
		name string
		x    int
		next int
		prev int
	}{
		{"start", 0, 1, 0},
		{"before cluster", 1, 4, 0},
		{"before wide", 4, 7, 1},
		{"before last", 7, 8, 4},
		{"end", 8, 8, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextBoundary(data, tt.x); got != tt.next {
				t.Errorf("NextBoundary(%d) = %d, want %d", tt.x, got, tt.next)
			}
			if got := PrevBoundary(data, tt.x); got != tt.prev {
				t.Errorf("PrevBoundary(%d) = %d, want %d", tt.x, got, tt.prev)
			}
		})
	}
}

func TestIsBoundary(t *testing.T) {
	data := []byte("a日")
	for x, want := range map[int]bool{-1: false, 0: true, 1: true, 2: false, 3: false, 4: true, 5: false} {
		if got := IsBoundary(data, x); got != want {
			t.Errorf("IsBoundary(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestColumnRoundTrip(t *testing.T) {
	data := []byte("xe\u0301日z")
	for col := 0; col <= 4; col++ {
		x := OffsetOf(data, col)
		if got := Column(data, x); got != col {
			t.Errorf("Column(OffsetOf(%d)) = %d", col, got)
		}
	}
	if got := OffsetOf(data, 99); got != len(data) {
		t.Errorf("OffsetOf clamps to %d, want %d", got, len(data))
	}
}
