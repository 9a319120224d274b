package buffer

import (
	"fmt"

	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/lines"
)

// Validate checks the buffer's structural invariants: links and numbering,
// the cached size, the magic line, and that cursor, mark, and viewport sit
// on live lines at character boundaries. Violations wrap ErrInvariant.
func (b *Buffer) Validate() error {
	if b.part != nil {
		return fmt.Errorf("%w: partition outstanding", ErrInvariant)
	}
	a := b.arena
	if !a.Valid(b.top) || !a.Valid(b.bot) {
		return fmt.Errorf("%w: missing first or last line", ErrInvariant)
	}
	if a.Prev(b.top) != lines.None {
		return fmt.Errorf("%w: first line has a predecessor", ErrInvariant)
	}

	var seenCur, seenMark, seenEdit bool
	num := 0
	prev := lines.None
	line := b.top
	for ; line != lines.None; line = a.Next(line) {
		num++
		if !a.Valid(line) {
			return fmt.Errorf("%w: freed line %d linked at %d", ErrInvariant, line, num)
		}
		if a.Prev(line) != prev {
			return fmt.Errorf("%w: line %d has a broken back link", ErrInvariant, num)
		}
		if a.Number(line) != num {
			return fmt.Errorf("%w: line %d is numbered %d", ErrInvariant, num, a.Number(line))
		}
		seenCur = seenCur || line == b.cur.Line
		seenMark = seenMark || line == b.mark.Line
		seenEdit = seenEdit || line == b.edittop
		prev = line
	}
	if prev != b.bot {
		return fmt.Errorf("%w: last line is not the bottom", ErrInvariant)
	}

	if size := a.Size(b.top, b.bot); size != b.totsize {
		return fmt.Errorf("%w: size %d, counted %d", ErrInvariant, b.totsize, size)
	}
	if !b.opts.NoNewlines && a.Len(b.bot) != 0 {
		return fmt.Errorf("%w: last line is not empty", ErrInvariant)
	}

	if !seenCur {
		return fmt.Errorf("%w: cursor off the buffer", ErrInvariant)
	}
	if err := b.checkPosition("cursor", b.cur); err != nil {
		return err
	}
	if b.markSet {
		if !seenMark {
			return fmt.Errorf("%w: mark off the buffer", ErrInvariant)
		}
		if err := b.checkPosition("mark", b.mark); err != nil {
			return err
		}
	}
	if !seenEdit {
		return fmt.Errorf("%w: viewport off the buffer", ErrInvariant)
	}
	return nil
}

func (b *Buffer) checkPosition(what string, p cursor.Position) error {
	data := b.arena.Data(p.Line)
	if p.X < 0 || p.X > len(data) {
		return fmt.Errorf("%w: %s offset %d past line length %d",
			ErrInvariant, what, p.X, len(data))
	}
	if !cursor.IsBoundary(data, p.X) {
		return fmt.Errorf("%w: %s offset %d inside a character", ErrInvariant, what, p.X)
	}
	return nil
}
