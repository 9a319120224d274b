package buffer

import (
	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
)

// Cut moves text into the cutbuffer: the marked region when the mark is set,
// the rest of the line when CutFromCursor is on, or else the whole line.
// Consecutive line cuts accumulate.
func (b *Buffer) Cut() error {
	defer b.finish()

	if !b.isCuttable(b.opts.CutFromCursor && !b.markSet) {
		return ErrNothingCut
	}

	u := b.undo.Current()
	if b.lastAction != history.Cut || b.markSet || u == nil ||
		u.MarkLine != b.lineno(b.cur.Line) || !b.clip.keep {
		b.clip.keep = false
		b.addUndo(history.Cut)
	}
	b.clip.prepare(b.markSet, false)
	b.cutText(&b.clip.seq, false, false)
	b.updateUndo(history.Cut)
	return nil
}

// CutToEOF moves everything from the cursor to the end of the buffer into
// the cutbuffer, replacing its content.
func (b *Buffer) CutToEOF() error {
	defer b.finish()
	b.breakCutRun()

	a := b.arena
	cur := b.cur
	if (cur.Line == b.bot && a.Len(cur.Line) == 0) ||
		(!b.noNewlines() && a.Next(cur.Line) == b.bot && cur.X == a.Len(cur.Line)) {
		return ErrNothingCut
	}

	b.addUndo(history.CutToEOF)
	b.clip.prepare(false, true)
	b.cutText(&b.clip.seq, false, true)
	b.updateUndo(history.CutToEOF)
	return nil
}

// Zap erases the marked region or the current line. The text is kept only
// by the undo record, never by the cutbuffer.
func (b *Buffer) Zap() error {
	defer b.finish()
	return b.zap()
}

func (b *Buffer) zap() error {
	b.breakCutRun()
	if !b.isCuttable(b.opts.CutFromCursor && !b.markSet) {
		return ErrNothingCut
	}

	u := b.undo.Current()
	if b.lastAction != history.Zap || b.markSet || u == nil ||
		u.MarkLine != b.lineno(b.cur.Line) ||
		u.Flags&(history.MarkWasSet|history.WasMarkedForward) != 0 {
		b.addUndo(history.Zap)
	}
	u = b.undo.Current()
	b.cutText(&u.Cut, false, false)
	b.updateUndo(history.Zap)
	return nil
}

// Copy places the text Cut would take into the cutbuffer without changing
// the buffer. Copies of consecutive lines without a mark accumulate. With a
// mark, the viewport and cursor are restored afterwards and the mark is
// cleared.
func (b *Buffer) Copy() error {
	defer b.finish()

	if !b.isCuttable(b.opts.CutFromCursor && !b.markSet) {
		return ErrNothingCut
	}

	a := b.arena
	marked := b.markSet
	editNum := b.lineno(b.edittop)
	curNum, curX := b.lineno(b.cur.Line), b.cur.X

	if marked || b.cur.Line != b.clip.nextLine || b.clip.owner != b {
		b.clip.keep = false
	}

	b.clip.prepare(marked, false)
	b.cutText(&b.clip.seq, true, false)

	if marked {
		b.clip.nextLine, b.clip.owner = lines.None, nil
		b.edittop = b.lineAt(editNum)
		b.gotoLine(curNum, curX)
	} else {
		b.clip.nextLine, b.clip.owner = b.cur.Line, b
	}
	b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
	b.lastAction = history.Other
	return nil
}

// Paste inserts a copy of the cutbuffer at the cursor and leaves the cursor
// after it.
func (b *Buffer) Paste() error {
	defer b.finish()
	b.breakCutRun()

	if b.clip.IsEmpty() {
		return ErrCutbufferEmpty
	}

	b.addUndo(history.Paste)
	b.copyFrom(b.clip.seq.Top)
	b.updateUndo(history.Paste)

	b.want = cursor.Column(b.arena.Data(b.cur.Line), b.cur.X)
	b.setModified()
	return nil
}

// isCuttable reports whether a cut would remove anything: not on a lone
// empty last line without a mark, not with a zero-width mark, and, when
// testCliff is set, not when only the magic line would go.
func (b *Buffer) isCuttable(testCliff bool) bool {
	a := b.arena
	cur := b.cur
	atEOL := cur.X == a.Len(cur.Line)

	switch {
	case a.Next(cur.Line) == lines.None && a.Len(cur.Line) == 0 && !b.markSet:
		return false
	case b.markSet && b.mark == cur:
		return false
	case testCliff && atEOL && b.noNewlines() && cur.Line == b.bot:
		return false
	case testCliff && atEOL && !b.noNewlines() && cur.Line == a.Prev(b.bot):
		return false
	}
	return true
}

// cutText moves text into dest: to the end of the buffer when tillEOF is
// set, otherwise the marked region, the rest of the line, or the whole line.
// With copyText the text is put straight back. It reports whether a marked
// region was right side up.
func (b *Buffer) cutText(dest *lines.Seq, copyText, tillEOF bool) bool {
	a := b.arena
	rightSideUp := true

	var saveLine lines.ID
	saveLen := 0
	if copyText {
		if !dest.IsEmpty() {
			saveLine = dest.Bot
			saveLen = a.Len(dest.Bot)
		}
		b.nomagic = true
		defer func() { b.nomagic = false }()
	}

	switch {
	case tillEOF:
		b.cutToEOF(dest)
	case b.markSet:
		rightSideUp = b.cutMarked(dest)
		b.markSet = false
	case b.opts.CutFromCursor:
		b.cutToEOL(dest)
	default:
		b.cutLine(dest)
	}

	if copyText {
		if !dest.IsEmpty() {
			if saveLine != lines.None {
				seq := a.CopySeq(saveLine)
				a.SetData(seq.Top, clone(a.Data(seq.Top)[saveLen:]))
				b.ingraft(seq)
			} else {
				b.copyFrom(dest.Top)
			}
		}
	} else {
		b.setModified()
	}
	b.refresh = true
	return rightSideUp
}

// cutLine takes the whole current line including its separator, or just its
// text on the last line.
func (b *Buffer) cutLine(dest *lines.Seq) {
	cur := b.cur.Line
	if cur != b.bot {
		b.extract(dest, cursor.At(cur, 0), cursor.At(b.arena.Next(cur), 0))
	} else {
		b.extract(dest, cursor.At(cur, 0), cursor.At(cur, b.arena.Len(cur)))
	}
	b.want = 0
}

// cutMarked takes the region between cursor and mark.
func (b *Buffer) cutMarked(dest *lines.Seq) bool {
	r := cursor.Order(b.arena, b.cur, b.mark)
	b.extract(dest, r.Top, r.Bot)
	b.want = cursor.Column(b.arena.Data(b.cur.Line), b.cur.X)
	return r.RightSideUp
}

// cutToEOL takes the rest of the line, or the separator when already at the
// end of the line.
func (b *Buffer) cutToEOL(dest *lines.Seq) {
	a := b.arena
	cur := b.cur
	n := a.Len(cur.Line)
	if cur.X < n {
		b.extract(dest, cur, cursor.At(cur.Line, n))
	} else if cur.Line != b.bot {
		b.extract(dest, cur, cursor.At(a.Next(cur.Line), 0))
		b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
	}
}

// cutToEOF takes everything from the cursor to the end of the buffer.
func (b *Buffer) cutToEOF(dest *lines.Seq) {
	b.extract(dest, b.cur, cursor.At(b.bot, b.arena.Len(b.bot)))
}
