package cursor

// Region is a normalized span between two positions.
type Region struct {
	Top Position
	Bot Position

	// RightSideUp is true when the mark is the top of the region.
	RightSideUp bool
}

// Order normalizes a cursor and a mark into a region. When the cursor lies
// after the mark, the mark becomes the top and RightSideUp is set; otherwise
// the cursor is the top.
func Order(n Numberer, cur, mark Position) Region {
	if Compare(n, cur, mark) > 0 {
		return Region{Top: mark, Bot: cur, RightSideUp: true}
	}
	return Region{Top: cur, Bot: mark}
}

// IsEmpty reports whether the region covers no text.
func (r Region) IsEmpty() bool {
	return r.Top == r.Bot
}

// SingleLine reports whether both ends are on the same line.
func (r Region) SingleLine() bool {
	return r.Top.Line == r.Bot.Line
}
