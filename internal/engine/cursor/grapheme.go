package cursor

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// NextBoundary returns the offset just past the character that starts at x.
// At or beyond the end of data it returns len(data).
func NextBoundary(data []byte, x int) int {
	if x >= len(data) {
		return len(data)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(data[x:], -1)
	if len(cluster) == 0 {
		return x + 1
	}
	return x + len(cluster)
}

// PrevBoundary returns the start of the character that ends at x.
// At the start of data it returns 0.
func PrevBoundary(data []byte, x int) int {
	if x <= 0 {
		return 0
	}
	if x > len(data) {
		x = len(data)
	}
	prev, pos := 0, 0
	state := -1
	rest := data[:x]
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.FirstGraphemeCluster(rest, state)
		prev = pos
		pos += len(cluster)
	}
	return prev
}

// CharLen returns the byte length of the character starting at x.
func CharLen(data []byte, x int) int {
	return NextBoundary(data, x) - x
}

// IsBoundary reports whether x is a valid cursor offset in data: in range
// and not inside a multi-byte encoding.
func IsBoundary(data []byte, x int) bool {
	if x < 0 || x > len(data) {
		return false
	}
	return x == len(data) || utf8.RuneStart(data[x])
}

// Column returns the number of characters before offset x.
func Column(data []byte, x int) int {
	if x > len(data) {
		x = len(data)
	}
	n := 0
	for pos := 0; pos < x; n++ {
		pos = NextBoundary(data, pos)
	}
	return n
}

// OffsetOf returns the offset of the col-th character, clamped to the end.
func OffsetOf(data []byte, col int) int {
	x := 0
	for ; col > 0 && x < len(data); col-- {
		x = NextBoundary(data, x)
	}
	return x
}
