// Package cursor provides the cursor and mark model of the text engine.
//
// A Position is a (line, byte offset) pair. The offset always sits on a
// character boundary of the line's content, 0 <= X <= len(line).
//
// Ordering:
//
// Positions on different lines compare by the sequence number of their lines;
// positions on the same line compare by offset. Line numbers come from a
// Numberer, normally the line arena.
//
// Regions:
//
// The cursor and an optional mark define a region. Order normalizes the
// unordered pair into a Region with a top and a bottom and reports whether the
// region is right side up, that is whether the mark is its upper boundary.
// Operations that consume the mark use that flag to restore cursor and mark
// roles afterwards.
//
//	region := cursor.Order(arena, cur, mark)
//	if region.RightSideUp {
//	    // mark was placed before the cursor
//	}
//
// Character boundaries:
//
// NextBoundary and PrevBoundary step over one user-perceived character
// (grapheme cluster) so a single deletion never splits a combining sequence.
package cursor
