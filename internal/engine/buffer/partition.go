package buffer

import (
	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/lines"
)

// partition is the saved outer shape of a partitioned buffer.
type partition struct {
	// outerTop and outerBot are the real first and last lines when they
	// differ from the partition's, otherwise None.
	outerTop lines.ID
	outerBot lines.ID

	topPrev lines.ID
	botNext lines.ID

	// topData is the text before the range start, botData the text after
	// the range end.
	topData []byte
	botData []byte
}

// Partitioned reports whether a partition is outstanding.
func (b *Buffer) Partitioned() bool {
	return b.part != nil
}

// RestorePartition undoes an outstanding partition and renumbers. It does
// nothing when the buffer is whole.
func (b *Buffer) RestorePartition() {
	if b.part == nil {
		return
	}
	b.unpartition()
	b.arena.Renumber(b.top)
}

// partition makes the buffer appear to run from top to bot. top must not be
// after bot.
func (b *Buffer) partition(top, bot cursor.Position) {
	if b.part != nil {
		panic("buffer: nested partition")
	}
	a := b.arena
	p := &partition{}

	if top.Line != b.top {
		p.outerTop = b.top
		b.top = top.Line
	}
	if bot.Line != b.bot {
		p.outerBot = b.bot
		b.bot = bot.Line
	}

	p.topPrev = a.Prev(top.Line)
	a.SetPrev(top.Line, lines.None)
	p.botNext = a.Next(bot.Line)
	a.SetNext(bot.Line, lines.None)

	data := a.Data(bot.Line)
	p.botData = clone(data[bot.X:])
	a.SetData(bot.Line, clone(data[:bot.X]))

	data = a.Data(top.Line)
	p.topData = clone(data[:top.X])
	a.SetData(top.Line, clone(data[top.X:]))

	b.part = p
}

// unpartition reattaches the outer lines and boundary text saved by
// partition. Lines are not renumbered.
func (b *Buffer) unpartition() {
	p := b.part
	a := b.arena

	a.SetPrev(b.top, p.topPrev)
	if p.topPrev != lines.None {
		a.SetNext(p.topPrev, b.top)
	}
	a.SetData(b.top, concat(p.topData, a.Data(b.top)))

	a.SetNext(b.bot, p.botNext)
	if p.botNext != lines.None {
		a.SetPrev(p.botNext, b.bot)
	}
	a.SetData(b.bot, concat(a.Data(b.bot), p.botData))

	if p.outerTop != lines.None {
		b.top = p.outerTop
	}
	if p.outerBot != lines.None {
		b.bot = p.outerBot
	}
	b.part = nil
}

// withPartition runs fn with the buffer partitioned to top..bot and restores
// it afterwards, including when fn panics.
func (b *Buffer) withPartition(top, bot cursor.Position, fn func()) {
	b.partition(top, bot)
	defer b.unpartition()
	fn()
}

// extract moves the text between top and bot into dest, appending to it when
// dest is not empty. The removed range is replaced by nothing; cursor, mark,
// and viewport are moved off removed lines.
func (b *Buffer) extract(dest *lines.Seq, top, bot cursor.Position) {
	if top == bot {
		return
	}
	a := b.arena
	var topSave lines.ID

	b.withPartition(top, bot, func() {
		topNum, botNum := b.lineno(b.top), b.lineno(b.bot)
		editNum := b.lineno(b.edittop)
		edittopInside := editNum >= topNum && editNum <= botNum

		var markInside, markSameLine, markAfter bool
		if b.markSet {
			n := b.lineno(b.mark.Line)
			markInside = n >= topNum && n <= botNum &&
				(b.mark.Line != b.top || b.mark.X >= top.X) &&
				(b.mark.Line != b.bot || b.mark.X <= bot.X)
			markSameLine = b.mark.Line == b.top
			markAfter = !markInside && b.mark.Line == b.bot && b.mark.X > bot.X
		}

		b.totsize -= a.Size(b.top, b.bot)

		if dest.IsEmpty() {
			*dest = lines.Seq{Top: b.top, Bot: b.bot}
			a.Renumber(dest.Top)
		} else {
			botSave := dest.Bot
			a.SetData(dest.Bot, concat(a.Data(dest.Bot), a.Data(b.top)))
			next := a.Next(b.top)
			a.SetNext(dest.Bot, next)
			if next != lines.None {
				a.SetPrev(next, dest.Bot)
				dest.Bot = b.bot
			}
			a.Delete(b.top)
			a.Renumber(botSave)
		}

		empty := a.New(lines.None)
		b.top, b.bot = empty, empty

		b.cur = cursor.At(empty, top.X)
		switch {
		case markInside:
			b.mark = b.cur
		case markAfter:
			b.mark = cursor.At(empty, top.X+b.mark.X-bot.X)
		case markSameLine:
			b.mark.Line = empty
		}
		if edittopInside {
			b.edittop = empty
		}
		topSave = empty
	})

	a.Renumber(topSave)
	if !b.noNewlines() && a.Len(b.bot) != 0 {
		b.newMagicLine()
	}
	b.refresh = true
}

// ingraft splices src into the buffer at the cursor and takes ownership of
// it. The cursor ends after the inserted text.
func (b *Buffer) ingraft(src lines.Seq) {
	if src.IsEmpty() {
		return
	}
	a := b.arena
	curX := b.cur.X

	var rightSideUp, singleLine bool
	if b.markSet {
		r := cursor.Order(a, b.cur, b.mark)
		rightSideUp = r.RightSideUp
		singleLine = r.SingleLine()
	}

	var topSave lines.ID
	b.withPartition(b.cur, b.cur, func() {
		edittopInside := b.edittop == b.top
		a.FreeSeq(b.top)

		b.top = src.Top
		b.bot = a.Last(src.Top)
		b.cur = cursor.At(b.bot, a.Len(b.bot))

		if b.top == b.bot {
			if b.markSet && singleLine {
				b.mark.Line = b.cur.Line
				if !rightSideUp {
					b.mark.X += b.cur.X
				}
			}
			b.cur.X += curX
		} else if b.markSet && singleLine {
			if rightSideUp {
				b.mark.Line = b.top
			} else {
				b.mark.Line = b.cur.Line
				b.mark.X += b.cur.X - curX
			}
		}

		b.totsize += a.Size(b.top, b.bot)
		if edittopInside {
			b.edittop = b.top
		}
		topSave = b.top
	})

	a.Renumber(topSave)
	if !b.noNewlines() && a.Len(b.bot) != 0 {
		b.newMagicLine()
	}
	b.refresh = true
}

// copyFrom ingrafts a duplicate of the sequence starting at top.
func (b *Buffer) copyFrom(top lines.ID) {
	b.ingraft(b.arena.CopySeq(top))
}
