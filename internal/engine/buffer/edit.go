package buffer

import (
	"unicode/utf8"

	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
)

// InsertText types text at the cursor. A '\n' breaks the line; other ASCII
// control characters except tab are dropped. Typing contiguous text on one
// line extends a single undo record.
func (b *Buffer) InsertText(text []byte) {
	defer b.finish()
	b.breakCutRun()

	for len(text) > 0 {
		_, size := utf8.DecodeRune(text)
		ch := text[:size]
		text = text[size:]

		if ch[0] == '\n' {
			b.enter()
			continue
		}
		if size == 1 && isControl(ch[0]) && ch[0] != '\t' {
			continue
		}
		b.insertChar(ch)
	}
}

func isControl(c byte) bool {
	return c < 0x20 || c == 0x7f
}

// insertChar puts one encoded character at the cursor.
func (b *Buffer) insertChar(ch []byte) {
	line := b.cur.Line
	num := b.lineno(line)

	u := b.undo.Current()
	if b.lastAction != history.Add || u == nil ||
		u.MarkLine != num || u.MarkX != b.cur.X {
		b.addUndo(history.Add)
		u = b.undo.Current()
	}

	b.insertAt(line, b.cur.X, ch)
	b.totsize += utf8.RuneCount(ch)
	b.setModified()

	if b.markSet && b.mark.Line == line && b.cur.X < b.mark.X {
		b.mark.X += len(ch)
	}
	b.cur.X += len(ch)
	u.Text = append(u.Text, ch...)

	if line == b.bot && !b.noNewlines() {
		b.newMagicLine()
	}
	b.updateUndo(history.Add)
	b.want = cursor.Column(b.arena.Data(line), b.cur.X)
}

// Enter breaks the line at the cursor. With AutoIndent the new line starts
// with the current line's leading whitespace.
func (b *Buffer) Enter() {
	defer b.finish()
	b.breakCutRun()
	b.enter()
}

func (b *Buffer) enter() {
	a := b.arena
	line := b.cur.Line
	data := a.Data(line)

	extra := 0
	allBlanks := false
	if b.opts.AutoIndent {
		extra = indentLength(data)
		if extra > b.cur.X {
			extra = b.cur.X
		} else if extra == b.cur.X {
			allBlanks = true
		}
	}

	origX := b.cur.X
	rest := concat(data[:extra], data[origX:])
	if allBlanks {
		b.cur.X = 0
	}
	a.SetData(line, clone(data[:b.cur.X]))

	b.addUndo(history.Enter)

	newLine := a.NewText(line, rest)
	if b.markSet && b.mark.Line == line && b.mark.X > b.cur.X {
		b.mark.Line = newLine
		b.mark.X += extra - origX
	}

	a.Splice(line, newLine)
	if line == b.bot {
		b.bot = newLine
	}
	a.Renumber(newLine)

	b.cur = cursor.At(newLine, extra)
	b.totsize++
	if b.opts.AutoIndent && !allBlanks {
		b.totsize += utf8.RuneCount(rest[:extra])
	}
	b.setModified()
	b.updateUndo(history.Enter)
	b.want = cursor.Column(rest, extra)
	b.refresh = true
}

// indentLength returns the byte length of the leading blanks of data.
func indentLength(data []byte) int {
	n := 0
	for n < len(data) && (data[n] == ' ' || data[n] == '\t') {
		n++
	}
	return n
}

// DeleteForward deletes the character under the cursor, joining the next
// line when at the end of a line. With LetThemZap and a mark set, the marked
// region is erased instead.
func (b *Buffer) DeleteForward() error {
	defer b.finish()
	if b.markSet && b.opts.LetThemZap {
		return b.zap()
	}
	b.breakCutRun()
	b.deletion(history.Del)
	return nil
}

// Backspace deletes the character before the cursor, joining with the
// previous line at the start of a line. With LetThemZap and a mark set, the
// marked region is erased instead.
func (b *Buffer) Backspace() error {
	defer b.finish()
	if b.markSet && b.opts.LetThemZap {
		return b.zap()
	}
	b.breakCutRun()
	if b.cur.Line != b.top || b.cur.X > 0 {
		b.stepLeft()
		b.deletion(history.Back)
	}
	return nil
}

// deletion removes the character at the cursor or joins the next line.
func (b *Buffer) deletion(kind history.Kind) {
	a := b.arena
	line := b.cur.Line
	data := a.Data(line)
	x := b.cur.X

	if x < len(data) {
		end := cursor.NextBoundary(data, x)
		ch := data[x:end]
		n := len(ch)

		u := b.undo.Current()
		switch {
		case kind != b.lastAction || u == nil || b.lineno(line) != u.Line:
			b.addUndo(kind)
		case x == u.X:
			// Deleting forward from the same spot.
			u.Text = append(u.Text, ch...)
			u.MarkX = x
		case x == u.X-n:
			// Backspacing further.
			u.Text = concat(ch, u.Text)
			u.X = x
		default:
			b.addUndo(kind)
		}

		b.totsize -= utf8.RuneCount(ch)
		a.SetData(line, concat(data[:x], data[end:]))
		if b.markSet && b.mark.Line == line && b.mark.X > x {
			if b.mark.X < end {
				b.mark.X = x
			} else {
				b.mark.X -= n
			}
		}
	} else if line != b.bot {
		joining := a.Next(line)
		if joining == b.bot && x != 0 && !b.noNewlines() {
			if kind == history.Back {
				b.addUndo(history.Back)
			}
			return
		}

		b.addUndo(kind)
		a.SetData(line, concat(data, a.Data(joining)))
		if b.markSet && b.mark.Line == joining {
			b.mark = cursor.At(line, b.mark.X+x)
		}
		b.unlinkLine(joining)
		a.Renumber(line)
		b.totsize--
		b.refresh = true
	} else {
		return
	}

	b.undo.Current().NewSize = b.totsize
	b.setModified()
}

// Replace substitutes n bytes at the cursor on the current line with text,
// leaving the cursor after it. The replaced span is clipped to the line and
// extended to the end of a partly covered character. Search-and-replace
// uses it.
func (b *Buffer) Replace(n int, text []byte) {
	defer b.finish()
	b.breakCutRun()

	a := b.arena
	line := b.cur.Line
	data := a.Data(line)
	x := b.cur.X
	end := min(x+max(n, 0), len(data))
	for !cursor.IsBoundary(data, end) {
		end++
	}
	if end == x && len(text) == 0 {
		return
	}

	b.addUndo(history.Replace)

	removed := data[x:end]
	b.totsize += utf8.RuneCount(text) - utf8.RuneCount(removed)
	out := make([]byte, 0, len(data)-len(removed)+len(text))
	out = append(out, data[:x]...)
	out = append(out, text...)
	out = append(out, data[end:]...)
	a.SetData(line, out)

	if b.markSet && b.mark.Line == line && b.mark.X > x {
		if b.mark.X >= end {
			b.mark.X += len(text) - len(removed)
		} else {
			b.mark.X = x
		}
	}
	b.cur.X = x + len(text)
	if line == b.bot && !b.noNewlines() && len(out) > 0 {
		b.undo.Current().Set(history.WasFinalLine)
		b.newMagicLine()
	}
	b.setModified()
	b.updateUndo(history.Replace)
	b.want = cursor.Column(out, b.cur.X)
}

// InsertDocument splices parsed document text in at the cursor, leaving the
// cursor after it. Inserting a file uses it.
func (b *Buffer) InsertDocument(data []byte) {
	defer b.finish()
	b.breakCutRun()

	seq := b.arena.Parse(normalize(data, DetectLineEnding(data)))
	if b.arena.Size(seq.Top, seq.Bot) == 0 {
		b.arena.FreeSeq(seq.Top)
		return
	}

	b.addUndo(history.Insert)
	b.ingraft(seq)
	b.updateUndo(history.Insert)
	b.setModified()
}

// stepLeft moves the cursor one character left, wrapping to the end of the
// previous line.
func (b *Buffer) stepLeft() {
	a := b.arena
	if b.cur.X > 0 {
		b.cur.X = cursor.PrevBoundary(a.Data(b.cur.Line), b.cur.X)
	} else if prev := a.Prev(b.cur.Line); prev != lines.None {
		b.cur = cursor.At(prev, a.Len(prev))
	}
	b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
}

// stepRight moves the cursor one character right, wrapping to the start of
// the next line.
func (b *Buffer) stepRight() {
	a := b.arena
	if n := a.Len(b.cur.Line); b.cur.X < n {
		b.cur.X = cursor.NextBoundary(a.Data(b.cur.Line), b.cur.X)
	} else if next := a.Next(b.cur.Line); next != lines.None {
		b.cur = cursor.At(next, 0)
	}
	b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
}
