package buffer

import (
	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
)

const defaultRows = 24

// moved settles shared state after a cursor movement. Movement ends both a
// run of typing and a run of cuts.
func (b *Buffer) moved() {
	b.lastAction = history.Other
	b.breakCutRun()
}

// Left moves the cursor one character left, wrapping to the previous line.
func (b *Buffer) Left() {
	defer b.finish()
	b.stepLeft()
	b.moved()
}

// Right moves the cursor one character right, wrapping to the next line.
func (b *Buffer) Right() {
	defer b.finish()
	b.stepRight()
	b.moved()
}

// Up moves the cursor to the previous line, keeping the wanted column.
func (b *Buffer) Up() {
	defer b.finish()
	if prev := b.arena.Prev(b.cur.Line); prev != lines.None {
		b.toColumn(prev)
	}
	b.moved()
}

// Down moves the cursor to the next line, keeping the wanted column.
func (b *Buffer) Down() {
	defer b.finish()
	if next := b.arena.Next(b.cur.Line); next != lines.None {
		b.toColumn(next)
	}
	b.moved()
}

// toColumn puts the cursor on line at the wanted column, or at the end of a
// shorter line.
func (b *Buffer) toColumn(line lines.ID) {
	b.cur = cursor.At(line, cursor.OffsetOf(b.arena.Data(line), b.want))
}

// Home moves the cursor to the start of the line.
func (b *Buffer) Home() {
	defer b.finish()
	b.cur.X = 0
	b.want = 0
	b.moved()
}

// End moves the cursor to the end of the line.
func (b *Buffer) End() {
	defer b.finish()
	data := b.arena.Data(b.cur.Line)
	b.cur.X = len(data)
	b.want = cursor.Column(data, b.cur.X)
	b.moved()
}

// GotoLine moves the cursor to offset x of line n. Both are clamped to the
// buffer, and x is moved back onto a character boundary.
func (b *Buffer) GotoLine(n, x int) {
	defer b.finish()
	n = max(1, min(n, b.LineCount()))
	line := b.lineAt(n)
	data := b.arena.Data(line)
	x = max(0, min(x, len(data)))
	for x > 0 && !cursor.IsBoundary(data, x) {
		x--
	}
	b.gotoLine(n, x)
	b.moved()
}

// SetMark anchors the mark at the cursor.
func (b *Buffer) SetMark() {
	defer b.finish()
	b.mark = b.cur
	b.markSet = true
	b.moved()
}

// ClearMark removes the mark.
func (b *Buffer) ClearMark() {
	defer b.finish()
	b.markSet = false
	b.moved()
}

// ToggleMark sets the mark at the cursor, or removes it when set. It reports
// whether the mark is now set.
func (b *Buffer) ToggleMark() bool {
	if b.markSet {
		b.ClearMark()
	} else {
		b.SetMark()
	}
	return b.markSet
}

// SetViewportHeight sets the number of visible rows.
func (b *Buffer) SetViewportHeight(rows int) {
	if rows < 1 {
		rows = 1
	}
	b.rows = rows
	b.keepViewport()
}

// SetViewportTop scrolls the viewport so line n is first, clamped to the
// buffer. The cursor is pulled into view.
func (b *Buffer) SetViewportTop(n int) {
	defer b.finish()
	n = max(1, min(n, b.LineCount()))
	b.edittop = b.lineAt(n)

	cur := b.lineno(b.cur.Line)
	switch {
	case cur < n:
		b.toColumn(b.edittop)
	case cur >= n+b.rows:
		b.toColumn(b.lineAt(min(n+b.rows-1, b.LineCount())))
	}
	b.refresh = true
	b.moved()
}

// keepViewport scrolls the viewport the least amount that shows the cursor.
func (b *Buffer) keepViewport() {
	if !b.arena.Valid(b.edittop) {
		b.edittop = b.top
		b.refresh = true
	}
	top := b.lineno(b.edittop)
	cur := b.lineno(b.cur.Line)
	switch {
	case cur < top:
		b.edittop = b.cur.Line
	case cur >= top+b.rows:
		b.edittop = b.lineAt(cur - b.rows + 1)
	default:
		return
	}
	b.refresh = true
}
