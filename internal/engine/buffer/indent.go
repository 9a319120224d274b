package buffer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
)

// selectedLines returns the first and last line of the selection: the lines
// of the marked region, or the current line. A region ending at the start of
// a line does not include that line.
func (b *Buffer) selectedLines() (top, bot lines.ID) {
	if !b.markSet {
		return b.cur.Line, b.cur.Line
	}
	r := cursor.Order(b.arena, b.cur, b.mark)
	top, bot = r.Top.Line, r.Bot.Line
	if r.Bot.X == 0 && bot != top {
		bot = b.arena.Prev(bot)
	}
	return top, bot
}

// Indent adds one level of indentation to every non-empty selected line.
func (b *Buffer) Indent() error {
	defer b.finish()
	b.breakCutRun()

	a := b.arena
	top, bot := b.selectedLines()
	stop := a.Next(bot)
	for top != stop && a.Len(top) == 0 {
		top = a.Next(top)
	}
	if top == stop {
		return ErrNothingToIndent
	}

	indent := []byte("\t")
	if b.opts.TabsToSpaces {
		indent = bytes.Repeat([]byte(" "), b.opts.TabSize)
	}

	b.addUndo(history.Indent)
	u := b.undo.Current()
	for line := top; line != stop; line = a.Next(line) {
		add := indent
		if a.Len(line) == 0 {
			add = nil
		}
		b.indentLine(line, add)
		u.AddGroupLine(b.lineno(line), add)
	}
	u.NewSize = b.totsize

	b.setModified()
	b.refresh = true
	b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
	return nil
}

// Unindent removes one level of indentation from the selected lines. It
// refuses when a selected line has text but no leading blank.
func (b *Buffer) Unindent() error {
	defer b.finish()
	b.breakCutRun()

	a := b.arena
	top, bot := b.selectedLines()
	stop := a.Next(bot)
	for top != stop && b.whiteLength(a.Data(top)) == 0 {
		top = a.Next(top)
	}
	if top == stop {
		return ErrNothingToIndent
	}
	for line := top; line != stop; line = a.Next(line) {
		data := a.Data(line)
		if b.whiteLength(data) == 0 && !isBlank(data) {
			return ErrNothingToIndent
		}
	}

	b.addUndo(history.Unindent)
	u := b.undo.Current()
	for line := top; line != stop; line = a.Next(line) {
		n := b.whiteLength(a.Data(line))
		removed := clone(a.Data(line)[:n])
		b.unindentLine(line, n)
		u.AddGroupLine(b.lineno(line), removed)
	}
	u.NewSize = b.totsize

	b.setModified()
	b.refresh = true
	b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
	return nil
}

// whiteLength returns the length of the leading blanks worth one level of
// indentation: a single tab, or up to TabSize spaces.
func (b *Buffer) whiteLength(data []byte) int {
	n := 0
	for _, c := range data {
		if c == '\t' {
			return n + 1
		}
		if c != ' ' {
			return n
		}
		n++
		if n == b.opts.TabSize {
			return n
		}
	}
	return n
}

func isBlank(data []byte) bool {
	return len(bytes.TrimLeft(data, " \t")) == 0
}

// indentLine prefixes line with indent, shifting cursor and mark.
func (b *Buffer) indentLine(line lines.ID, indent []byte) {
	if len(indent) == 0 {
		return
	}
	b.arena.SetData(line, concat(indent, b.arena.Data(line)))
	b.totsize += utf8.RuneCount(indent)
	if b.markSet && b.mark.Line == line {
		b.mark.X += len(indent)
	}
	if b.cur.Line == line {
		b.cur.X += len(indent)
	}
}

// unindentLine drops the first n bytes of line, shifting cursor and mark.
func (b *Buffer) unindentLine(line lines.ID, n int) {
	if n == 0 {
		return
	}
	data := b.arena.Data(line)
	b.totsize -= utf8.RuneCount(data[:n])
	b.arena.SetData(line, clone(data[n:]))
	b.shiftLeft(line, n)
}

// shiftLeft moves cursor and mark left by n on line, stopping at zero.
func (b *Buffer) shiftLeft(line lines.ID, n int) {
	if b.markSet && b.mark.Line == line {
		b.mark.X = max(b.mark.X-n, 0)
	}
	if b.cur.Line == line {
		b.cur.X = max(b.cur.X-n, 0)
	}
}

// replayIndent redoes or reverts the indentation recorded in u.
func (b *Buffer) replayIndent(u *history.Record, undoing, addIndent bool) {
	if !undoing {
		b.gotoLine(u.Line, u.X)
	}
	for _, g := range u.Groups {
		line := b.lineAt(g.Top)
		for n := g.Top; line != lines.None && n <= g.Bottom; n++ {
			indent := g.Indents[n-g.Top]
			if undoing != addIndent {
				b.indentLine(line, indent)
			} else {
				b.unindentLine(line, len(indent))
			}
			line = b.arena.Next(line)
		}
	}
	if undoing {
		b.gotoLine(u.Line, u.X)
	}
}

// commentParts splits a comment sequence into its prefix and postfix.
func commentParts(seq string) (pre, post []byte) {
	p, q, _ := strings.Cut(seq, "|")
	return []byte(p), []byte(q)
}

// Comment comments the selected lines, or uncomments them when every
// non-blank selected line is already commented.
func (b *Buffer) Comment() error {
	defer b.finish()
	b.breakCutRun()

	seq := b.opts.CommentSeq
	if seq == "" {
		return ErrCannotComment
	}
	a := b.arena
	top, bot := b.selectedLines()
	if top == bot && bot == b.bot && !b.noNewlines() {
		return ErrCannotComment
	}

	kind := history.Uncomment
	allBlank := true
	stop := a.Next(bot)
	for line := top; line != stop; line = a.Next(line) {
		blank := isBlank(a.Data(line))
		if !blank && !b.isCommented(line, seq) {
			kind = history.Comment
			break
		}
		allBlank = allBlank && blank
	}
	if allBlank {
		kind = history.Comment
	}

	b.addUndo(kind)
	u := b.undo.Current()
	u.Text = []byte(seq)
	for line := top; line != stop; line = a.Next(line) {
		if b.commentLine(kind, line, seq) {
			u.AddGroupLine(b.lineno(line), nil)
		}
	}
	u.NewSize = b.totsize

	b.setModified()
	b.refresh = true
	b.want = cursor.Column(a.Data(b.cur.Line), b.cur.X)
	return nil
}

// isCommented reports whether line carries the comment sequence.
func (b *Buffer) isCommented(line lines.ID, seq string) bool {
	if !b.noNewlines() && line == b.bot {
		return false
	}
	pre, post := commentParts(seq)
	data := b.arena.Data(line)
	return bytes.HasPrefix(data, pre) && len(data) >= len(pre)+len(post) &&
		bytes.HasSuffix(data, post)
}

// commentLine adds or removes the comment sequence on line and reports
// whether the line changed. The magic line is never touched.
func (b *Buffer) commentLine(kind history.Kind, line lines.ID, seq string) bool {
	if !b.noNewlines() && line == b.bot {
		return false
	}
	a := b.arena
	pre, post := commentParts(seq)
	data := a.Data(line)

	if kind == history.Comment {
		out := make([]byte, 0, len(pre)+len(data)+len(post))
		out = append(out, pre...)
		out = append(out, data...)
		out = append(out, post...)
		a.SetData(line, out)
		b.totsize += utf8.RuneCount(pre) + utf8.RuneCount(post)
		if b.markSet && b.mark.Line == line && b.mark.X > 0 {
			b.mark.X += len(pre)
		}
		if b.cur.Line == line && b.cur.X > 0 {
			b.cur.X += len(pre)
		}
		return true
	}

	if !b.isCommented(line, seq) {
		return false
	}
	a.SetData(line, clone(data[len(pre):len(data)-len(post)]))
	b.totsize -= utf8.RuneCount(pre) + utf8.RuneCount(post)
	b.shiftLeft(line, len(pre))
	if n := a.Len(line); b.cur.Line == line && b.cur.X > n {
		b.cur.X = n
	}
	if n := a.Len(line); b.markSet && b.mark.Line == line && b.mark.X > n {
		b.mark.X = n
	}
	return true
}

// replayComment redoes or reverts the commenting recorded in u, using the
// comment sequence stored with it.
func (b *Buffer) replayComment(u *history.Record, undoing, addComment bool) {
	if !undoing {
		b.gotoLine(u.Line, u.X)
	}
	kind := history.Uncomment
	if undoing != addComment {
		kind = history.Comment
	}
	seq := string(u.Text)
	for _, g := range u.Groups {
		line := b.lineAt(g.Top)
		for n := g.Top; line != lines.None && n <= g.Bottom; n++ {
			b.commentLine(kind, line, seq)
			line = b.arena.Next(line)
		}
	}
	if undoing {
		b.gotoLine(u.Line, u.X)
	}
}
