package buffer

import (
	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
)

// addUndo pushes a new record for an edit of the given kind that is about
// to happen at the cursor.
func (b *Buffer) addUndo(kind history.Kind) {
	a := b.arena
	cur := b.cur
	num := b.lineno(cur.Line)

	u := &history.Record{
		Kind:     kind,
		Line:     num,
		X:        cur.X,
		MarkLine: num,
		MarkX:    cur.X,
		WasSize:  b.totsize,
		NewSize:  b.totsize,
	}
	b.undo.Push(u)

	switch kind {
	case history.Add, history.Insert:
		if cur.Line == b.bot {
			u.Set(history.WasFinalLine)
		}
	case history.Back, history.Del:
		data := a.Data(cur.Line)
		if kind == history.Back && a.Next(cur.Line) == b.bot && len(data) != 0 {
			u.Set(history.WasFinalBackspace)
		}
		if cur.X < len(data) {
			ch := data[cur.X:cursor.NextBoundary(data, cur.X)]
			u.Text = clone(ch)
			if kind == history.Back {
				u.MarkX += len(ch)
			}
			break
		}
		b.recordJoin(u)
		kind = history.Join
	case history.Join:
		b.recordJoin(u)
	case history.Replace:
		u.Text = clone(a.Data(cur.Line))
	case history.CutToEOF:
		u.Set(history.WasFinalLine)
	case history.Cut, history.Zap:
		if b.markSet {
			u.MarkLine = b.lineno(b.mark.Line)
			u.MarkX = b.mark.X
			u.Set(history.MarkWasSet)
			if cur.Line == b.bot || b.mark.Line == b.bot {
				u.Set(history.WasFinalLine)
			}
		} else if !b.opts.CutFromCursor {
			u.X = 0
			u.Set(history.WasWholeLine)
		}
	case history.Paste:
		u.Cut = a.CopySeq(b.clip.seq.Top)
		if cur.Line == b.bot {
			u.Set(history.WasFinalLine)
		}
	}

	b.lastAction = kind
}

// recordJoin fills a record for joining the cursor's line with the next.
func (b *Buffer) recordJoin(u *history.Record) {
	a := b.arena
	next := a.Next(b.cur.Line)
	if next != lines.None {
		if u.Kind == history.Back {
			u.Line = b.lineno(next)
			u.X = 0
		}
		u.Text = clone(a.Data(next))
	}
	u.Kind = history.Join
}

// updateUndo extends the current record after an edit of the given kind.
func (b *Buffer) updateUndo(kind history.Kind) {
	u := b.undo.Current()
	if u == nil || u.Kind != kind {
		b.log.Warn("undo record mismatch: have %v, updating %v", u, kind)
		return
	}
	a := b.arena
	u.NewSize = b.totsize

	switch kind {
	case history.Add:
		u.MarkLine = b.lineno(b.cur.Line)
		u.MarkX = b.cur.X
	case history.Enter:
		u.Text = clone(a.Data(b.cur.Line))
		u.MarkX = b.cur.X
	case history.Replace, history.Paste:
		u.Line = b.lineno(b.cur.Line)
		u.X = b.cur.X
	case history.Insert:
		u.MarkLine = b.lineno(b.cur.Line)
		u.MarkX = b.cur.X
	case history.Cut, history.CutToEOF, history.Zap:
		b.updateCutUndo(u)
	}
}

// updateCutUndo stores the cut text and the far end of the cut region.
func (b *Buffer) updateCutUndo(u *history.Record) {
	a := b.arena
	if u.Kind == history.Zap {
		if u.Cut.IsEmpty() {
			return
		}
	} else {
		if b.clip.IsEmpty() {
			return
		}
		b.releaseRecord(u)
		u.Cut = a.CopySeq(b.clip.seq.Top)
	}

	if u.Flags.Has(history.MarkWasSet) {
		if u.Line < u.MarkLine || (u.Line == u.MarkLine && u.X < u.MarkX) {
			u.Line, u.MarkLine = u.MarkLine, u.Line
			u.X, u.MarkX = u.MarkX, u.X
		} else {
			u.Set(history.WasMarkedForward)
		}
		return
	}

	last := a.Last(u.Cut.Top)
	u.Line = u.MarkLine + a.Count(u.Cut.Top) - 1
	if b.opts.CutFromCursor || u.Kind == history.CutToEOF {
		u.X = a.Len(last)
		if u.Line == u.MarkLine {
			u.X += u.MarkX
		}
	} else if b.cur.Line == b.bot && b.noNewlines() {
		u.X = a.Len(last)
	}
}

// Undo reverts the most recent edit and reports its kind. The mark is
// cleared unless the edit consumed a marked region, in which case the mark
// is reinstated.
func (b *Buffer) Undo() (history.Kind, error) {
	defer b.finish()
	b.breakCutRun()

	u, err := b.undo.Undo()
	if err != nil {
		return history.Other, ErrNothingToUndo
	}
	b.markSet = false

	switch u.Kind {
	case history.Add:
		if u.Flags.Has(history.WasFinalLine) && !b.noNewlines() {
			b.removeMagicLine()
		}
		f := b.lineAt(u.MarkLine)
		data := b.arena.Data(f)
		b.arena.SetData(f, concat(data[:u.X], data[u.X+len(u.Text):]))
		b.gotoLine(u.Line, u.X)
	case history.Enter:
		fromX, toX := u.MarkX, u.X
		if u.X == 0 {
			fromX, toX = 0, u.MarkX
		}
		f := b.lineAt(u.MarkLine)
		b.arena.SetData(f, concat(b.arena.Data(f), u.Text[fromX:]))
		b.unlinkLine(b.arena.Next(f))
		b.arena.Renumber(f)
		b.gotoLine(u.Line, toX)
	case history.Back, history.Del:
		f := b.lineAt(u.MarkLine)
		b.insertAt(f, u.X, u.Text)
		b.gotoLine(u.MarkLine, u.MarkX)
	case history.Join:
		if u.Flags.Has(history.WasFinalBackspace) && !b.noNewlines() {
			b.gotoLine(b.lineno(b.bot), 0)
			break
		}
		f := b.lineAt(u.MarkLine)
		b.splitAt(f, u.MarkX, u.Text)
		b.gotoLine(u.Line, u.X)
	case history.Replace:
		if u.Flags.Has(history.WasFinalLine) && !b.noNewlines() {
			b.removeMagicLine()
		}
		f := b.lineAt(u.MarkLine)
		b.swapLine(f, u)
		b.gotoLine(u.MarkLine, u.MarkX)
	case history.Cut, history.CutToEOF, history.Zap:
		b.undoCut(u)
	case history.Paste:
		b.redoCut(u)
		b.dropAddedMagicLine(u)
	case history.Insert:
		var removed lines.Seq
		b.mark = cursor.At(b.lineAt(u.MarkLine), u.MarkX)
		b.markSet = true
		b.gotoLine(u.Line, u.X)
		b.cutMarked(&removed)
		b.markSet = false
		b.releaseRecord(u)
		u.Cut = removed
		b.dropAddedMagicLine(u)
	case history.Indent:
		b.replayIndent(u, true, true)
	case history.Unindent:
		b.replayIndent(u, true, false)
	case history.Comment:
		b.replayComment(u, true, true)
	case history.Uncomment:
		b.replayComment(u, true, false)
	}

	b.afterReplay(u.WasSize)
	b.log.Debug("undid %s", u.Kind.Noun())
	return u.Kind, nil
}

// Redo reapplies the most recently undone edit and reports its kind.
func (b *Buffer) Redo() (history.Kind, error) {
	defer b.finish()
	b.breakCutRun()

	u, err := b.undo.Redo()
	if err != nil {
		return history.Other, ErrNothingToRedo
	}
	b.markSet = false

	switch u.Kind {
	case history.Add:
		if u.Flags.Has(history.WasFinalLine) && !b.noNewlines() {
			b.newMagicLine()
		}
		f := b.lineAt(u.Line)
		b.insertAt(f, u.X, u.Text)
		b.gotoLine(u.MarkLine, u.MarkX)
	case history.Enter:
		f := b.lineAt(u.MarkLine)
		b.splitAt(f, u.X, u.Text)
		b.gotoLine(u.Line+1, u.MarkX)
	case history.Back, history.Del:
		f := b.lineAt(u.MarkLine)
		data := b.arena.Data(f)
		b.arena.SetData(f, concat(data[:u.X], data[u.X+len(u.Text):]))
		b.gotoLine(u.Line, u.X)
	case history.Join:
		if u.Flags.Has(history.WasFinalBackspace) && !b.noNewlines() {
			b.gotoLine(u.MarkLine, u.MarkX)
			break
		}
		f := b.lineAt(u.MarkLine)
		b.arena.SetData(f, concat(b.arena.Data(f), u.Text))
		b.unlinkLine(b.arena.Next(f))
		b.arena.Renumber(f)
		b.gotoLine(u.MarkLine, u.MarkX)
	case history.Replace:
		if u.Flags.Has(history.WasFinalLine) && !b.noNewlines() {
			b.newMagicLine()
		}
		f := b.lineAt(u.MarkLine)
		b.swapLine(f, u)
		b.gotoLine(u.Line, u.X)
	case history.Cut, history.CutToEOF, history.Zap:
		b.redoCut(u)
	case history.Paste:
		b.undoCut(u)
	case history.Insert:
		b.gotoLine(u.Line, u.X)
		seq := u.Cut
		u.Cut = lines.Seq{}
		b.ingraft(seq)
	case history.Indent:
		b.replayIndent(u, false, true)
	case history.Unindent:
		b.replayIndent(u, false, false)
	case history.Comment:
		b.replayComment(u, false, true)
	case history.Uncomment:
		b.replayComment(u, false, false)
	}

	b.afterReplay(u.NewSize)
	b.log.Debug("redid %s", u.Kind.Noun())
	return u.Kind, nil
}

// afterReplay settles shared state after an undo or redo.
func (b *Buffer) afterReplay(size int) {
	b.lastAction = history.Other
	b.want = cursor.Column(b.arena.Data(b.cur.Line), b.cur.X)
	b.totsize = size
	b.modified = !b.undo.AtSaved()
	b.refresh = true
	b.keepViewport()
}

// undoCut puts cut text back, or repeats a paste.
func (b *Buffer) undoCut(u *history.Record) {
	if u.Flags.Has(history.WasWholeLine) {
		b.gotoLine(u.MarkLine, 0)
	} else {
		b.gotoLine(u.MarkLine, u.MarkX)
	}
	if u.Cut.IsEmpty() {
		return
	}

	b.copyFrom(u.Cut.Top)
	if u.Kind == history.Paste {
		return
	}
	if u.Flags.Has(history.WasFinalLine) && !b.noNewlines() && b.cur.Line != b.bot {
		b.removeMagicLine()
	}
	end := b.cur
	forward := u.Flags.Has(history.WasMarkedForward)
	if !forward {
		b.gotoLine(u.MarkLine, u.MarkX)
	}
	if u.Flags.Has(history.MarkWasSet) {
		b.markSet = true
		if forward {
			b.mark = cursor.At(b.lineAt(u.MarkLine), u.MarkX)
		} else {
			b.mark = end
		}
	}
}

// redoCut cuts the recorded region again, or takes back a paste. The text
// goes into a scratch sequence that is then freed.
func (b *Buffer) redoCut(u *history.Record) {
	b.gotoLine(u.Line, u.X)
	if u.Cut.IsEmpty() {
		return
	}

	markX := u.MarkX
	if u.Flags.Has(history.WasWholeLine) {
		markX = 0
	}
	b.mark = cursor.At(b.lineAt(u.MarkLine), markX)
	b.markSet = true

	var scratch lines.Seq
	b.cutText(&scratch, false, false)
	if !scratch.IsEmpty() {
		b.arena.FreeSeq(scratch.Top)
	}
}

// dropAddedMagicLine removes a magic line that inserting text onto the last
// line created, once that text is gone again.
func (b *Buffer) dropAddedMagicLine(u *history.Record) {
	if u.Flags.Has(history.WasFinalLine) && !b.noNewlines() && b.cur.Line != b.bot {
		b.removeMagicLine()
	}
}

// insertAt inserts text into line at offset x.
func (b *Buffer) insertAt(line lines.ID, x int, text []byte) {
	data := b.arena.Data(line)
	out := make([]byte, 0, len(data)+len(text))
	out = append(out, data[:x]...)
	out = append(out, text...)
	out = append(out, data[x:]...)
	b.arena.SetData(line, out)
}

// splitAt truncates line at x and links a new line holding text after it.
func (b *Buffer) splitAt(line lines.ID, x int, text []byte) {
	a := b.arena
	next := a.NewText(line, text)
	a.SetData(line, clone(a.Data(line)[:x]))
	a.Splice(line, next)
	if line == b.bot {
		b.bot = next
	}
	a.Renumber(next)
}

// swapLine exchanges a line's content with the text saved in a record.
func (b *Buffer) swapLine(line lines.ID, u *history.Record) {
	old := b.arena.Data(line)
	b.arena.SetData(line, u.Text)
	u.Text = old
}
