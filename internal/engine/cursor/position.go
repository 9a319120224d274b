package cursor

import (
	"fmt"

	"github.com/dshills/linestorm/internal/engine/lines"
)

// Numberer resolves a line handle to its 1-based sequence number.
type Numberer interface {
	Number(id lines.ID) int
}

// Position is a line handle plus a byte offset into that line.
type Position struct {
	Line lines.ID
	X    int
}

// At creates a position.
func At(line lines.ID, x int) Position {
	return Position{Line: line, X: x}
}

// String returns a debugging representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(#%d:%d)", p.Line, p.X)
}

// IsZero reports whether the position references no line.
func (p Position) IsZero() bool {
	return p.Line == lines.None
}

// Compare returns -1 if a is before b, 0 if equal, 1 if a is after b.
func Compare(n Numberer, a, b Position) int {
	if a.Line != b.Line {
		na, nb := n.Number(a.Line), n.Number(b.Line)
		if na < nb {
			return -1
		}
		if na > nb {
			return 1
		}
	}
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	default:
		return 0
	}
}

// Before reports whether a comes strictly before b.
func Before(n Numberer, a, b Position) bool {
	return Compare(n, a, b) < 0
}

// Point is a position expressed by line number rather than handle. It is the
// form positions take once they leave the engine.
type Point struct {
	Line int
	X    int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.X)
}

// PointOf converts a position to a point.
func PointOf(n Numberer, p Position) Point {
	return Point{Line: n.Number(p.Line), X: p.X}
}
