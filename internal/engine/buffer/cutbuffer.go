package buffer

import (
	"github.com/dshills/linestorm/internal/engine/lines"
)

// Cutbuffer holds the most recently cut or copied text. One cutbuffer is
// shared by every buffer of a session; its lines live in the same arena.
type Cutbuffer struct {
	arena *lines.Arena
	seq   lines.Seq

	// keep is set after a line cut so the next contiguous cut appends.
	keep bool

	// nextLine and owner locate where a following line copy must start to
	// extend the previous one.
	nextLine lines.ID
	owner    *Buffer
}

// NewCutbuffer creates an empty cutbuffer in arena.
func NewCutbuffer(a *lines.Arena) *Cutbuffer {
	return &Cutbuffer{arena: a}
}

// IsEmpty reports whether the cutbuffer holds no lines.
func (c *Cutbuffer) IsEmpty() bool {
	return c.seq.IsEmpty()
}

// Lines returns the content of each line held.
func (c *Cutbuffer) Lines() []string {
	if c.seq.IsEmpty() {
		return nil
	}
	return c.arena.Lines(c.seq.Top)
}

// Bytes returns the held text joined with '\n'.
func (c *Cutbuffer) Bytes() []byte {
	if c.seq.IsEmpty() {
		return nil
	}
	return c.arena.Bytes(c.seq.Top)
}

// Text returns the held text as a string.
func (c *Cutbuffer) Text() string {
	return string(c.Bytes())
}

// Size returns the number of characters held.
func (c *Cutbuffer) Size() int {
	return c.arena.Size(c.seq.Top, c.seq.Bot)
}

// Seq returns the held line sequence. The lines remain owned by the
// cutbuffer.
func (c *Cutbuffer) Seq() lines.Seq {
	return c.seq
}

// Clear frees the held lines and ends any run of contiguous cuts.
func (c *Cutbuffer) Clear() {
	c.free()
	c.keep = false
	c.nextLine = lines.None
	c.owner = nil
}

// BreakRun ends a run of contiguous cuts so the next cut replaces the
// content.
func (c *Cutbuffer) BreakRun() {
	c.keep = false
}

// SetText replaces the content with text split on '\n'.
func (c *Cutbuffer) SetText(text []byte) {
	c.Clear()
	c.seq = c.arena.Parse(text)
}

func (c *Cutbuffer) free() {
	if !c.seq.IsEmpty() {
		c.arena.FreeSeq(c.seq.Top)
		c.seq = lines.Seq{}
	}
}

// prepare clears the content unless this cut continues a run of line cuts.
func (c *Cutbuffer) prepare(marked, tillEOF bool) {
	if !c.keep || marked || tillEOF {
		c.free()
		c.keep = !marked && !tillEOF
	}
}

// forget drops references to a closing buffer.
func (c *Cutbuffer) forget(b *Buffer) {
	if c.owner == b {
		c.owner = nil
		c.nextLine = lines.None
	}
}
