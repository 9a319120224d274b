package buffer

import (
	"bytes"

	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
	"github.com/dshills/linestorm/internal/logging"
)

// Buffer is one open document.
type Buffer struct {
	arena *lines.Arena

	top lines.ID
	bot lines.ID

	// edittop is the first line of the viewport, rows its height.
	edittop lines.ID
	rows    int

	cur     cursor.Position
	mark    cursor.Position
	markSet bool

	// want is the column Up and Down try to keep.
	want int

	totsize  int
	modified bool
	refresh  bool

	undo       *history.Stack
	lastAction history.Kind

	clip *Cutbuffer
	part *partition

	// nomagic suspends the magic line while copying.
	nomagic bool

	opts        Options
	ending      LineEnding
	fixedEnding bool

	log *logging.Logger
}

// New creates a buffer holding a single empty line.
func New(opts ...Option) *Buffer {
	return NewFromText(nil, opts...)
}

// NewFromText creates a buffer from document bytes. The separator style is
// detected and normalized to '\n'. Unless NoNewlines is set, a trailing
// empty line is added when the text does not end with a separator.
func NewFromText(data []byte, opts ...Option) *Buffer {
	b := &Buffer{
		opts: DefaultOptions(),
		rows: defaultRows,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.arena == nil {
		b.arena = lines.NewArena()
	}
	if b.clip == nil {
		b.clip = NewCutbuffer(b.arena)
	}
	if !b.fixedEnding {
		b.ending = DetectLineEnding(data)
	}
	b.undo = history.NewStack(b.opts.UndoLimit, b.releaseRecord)

	seq := b.arena.Parse(normalize(data, b.ending))
	b.top, b.bot = seq.Top, seq.Bot
	b.edittop = b.top
	b.cur = cursor.At(b.top, 0)
	b.totsize = b.arena.Size(b.top, b.bot)
	if !b.noNewlines() && b.arena.Len(b.bot) != 0 {
		b.newMagicLine()
	}
	b.lastAction = history.Other
	return b
}

// releaseRecord frees the lines held by a discarded undo record.
func (b *Buffer) releaseRecord(r *history.Record) {
	if !r.Cut.IsEmpty() {
		b.arena.FreeSeq(r.Cut.Top)
		r.Cut = lines.Seq{}
	}
}

// Close frees every line the buffer owns. The buffer must not be used after.
func (b *Buffer) Close() {
	b.RestorePartition()
	b.undo.Clear()
	b.clip.forget(b)
	b.arena.FreeSeq(b.top)
	b.top, b.bot, b.edittop = lines.None, lines.None, lines.None
}

func (b *Buffer) noNewlines() bool {
	return b.opts.NoNewlines || b.nomagic
}

// Options returns the buffer's editing options.
func (b *Buffer) Options() Options {
	return b.opts
}

// SetOptions replaces the editing options. Turning off NoNewlines restores
// the magic line at once.
func (b *Buffer) SetOptions(o Options) {
	b.opts = o.normalized()
	b.undo.SetLimit(b.opts.UndoLimit)
	if !b.noNewlines() && b.arena.Len(b.bot) != 0 {
		b.newMagicLine()
	}
}

// Arena returns the arena holding the buffer's lines.
func (b *Buffer) Arena() *lines.Arena {
	return b.arena
}

// Cutbuffer returns the cutbuffer the buffer cuts into.
func (b *Buffer) Cutbuffer() *Cutbuffer {
	return b.clip
}

// Top returns the first line.
func (b *Buffer) Top() lines.ID {
	return b.top
}

// Bottom returns the last line.
func (b *Buffer) Bottom() lines.ID {
	return b.bot
}

// Current returns the line holding the cursor.
func (b *Buffer) Current() lines.ID {
	return b.cur.Line
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() cursor.Position {
	return b.cur
}

// CursorPoint returns the cursor as a line number and offset.
func (b *Buffer) CursorPoint() cursor.Point {
	return cursor.PointOf(b.arena, b.cur)
}

// Mark returns the mark and whether it is set.
func (b *Buffer) Mark() (cursor.Position, bool) {
	return b.mark, b.markSet
}

// MarkPoint returns the mark as a line number and offset.
func (b *Buffer) MarkPoint() (cursor.Point, bool) {
	if !b.markSet {
		return cursor.Point{}, false
	}
	return cursor.PointOf(b.arena, b.mark), true
}

// ViewportTop returns the line number of the first visible line.
func (b *Buffer) ViewportTop() int {
	return b.arena.Number(b.edittop)
}

// TotalSize returns the number of characters in the buffer, counting one
// per line separator.
func (b *Buffer) TotalSize() int {
	return b.totsize
}

// Modified reports whether the buffer differs from its last saved state.
func (b *Buffer) Modified() bool {
	return b.modified
}

// LastAction returns the kind of the last recorded edit.
func (b *Buffer) LastAction() history.Kind {
	return b.lastAction
}

// LineEnding returns the separator the document was read with.
func (b *Buffer) LineEnding() LineEnding {
	return b.ending
}

// TakeRefresh reports whether the display needs a full redraw since the
// last call, and resets the signal.
func (b *Buffer) TakeRefresh() bool {
	r := b.refresh
	b.refresh = false
	return r
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.arena.Number(b.bot)
}

// Line returns the line numbered n.
func (b *Buffer) Line(n int) (lines.ID, error) {
	if n < 1 || n > b.LineCount() {
		return lines.None, ErrLineOutOfRange
	}
	return b.lineAt(n), nil
}

// LineText returns the content of the line numbered n.
func (b *Buffer) LineText(n int) (string, error) {
	id, err := b.Line(n)
	if err != nil {
		return "", err
	}
	return b.arena.Text(id), nil
}

// CurrentText returns the content of the cursor's line.
func (b *Buffer) CurrentText() string {
	return b.arena.Text(b.cur.Line)
}

// Lines returns the content of every line.
func (b *Buffer) Lines() []string {
	return b.arena.Lines(b.top)
}

// Bytes serializes the buffer with '\n' separators.
func (b *Buffer) Bytes() []byte {
	return b.arena.Bytes(b.top)
}

// Text returns the buffer content as a string.
func (b *Buffer) Text() string {
	return string(b.Bytes())
}

// Encoded serializes the buffer with the separator it was read with.
func (b *Buffer) Encoded() []byte {
	data := b.Bytes()
	if b.ending == LineEndingLF {
		return data
	}
	return bytes.ReplaceAll(data, []byte("\n"), b.ending.Sequence())
}

// MarkSaved records the current state as saved and clears Modified.
func (b *Buffer) MarkSaved() {
	b.undo.MarkSaved()
	b.modified = false
}

// History returns the undo stack.
func (b *Buffer) History() *history.Stack {
	return b.undo
}

// lineAt returns the line numbered n, or None.
func (b *Buffer) lineAt(n int) lines.ID {
	return b.arena.Find(b.top, n)
}

func (b *Buffer) lineno(id lines.ID) int {
	return b.arena.Number(id)
}

// gotoLine places the cursor at offset x of line n, clamping both.
func (b *Buffer) gotoLine(n, x int) {
	line := b.lineAt(n)
	if line == lines.None {
		line = b.bot
	}
	if l := b.arena.Len(line); x > l {
		x = l
	}
	b.cur = cursor.At(line, x)
	b.want = cursor.Column(b.arena.Data(line), x)
}

// setModified flags the buffer as changed.
func (b *Buffer) setModified() {
	b.modified = true
}

// newMagicLine appends an empty line to the buffer.
func (b *Buffer) newMagicLine() {
	line := b.arena.New(b.bot)
	b.arena.SetNext(b.bot, line)
	b.bot = line
	b.totsize++
}

// removeMagicLine drops a trailing empty line if there is more than one line.
func (b *Buffer) removeMagicLine() {
	if b.arena.Len(b.bot) != 0 || b.bot == b.top {
		return
	}
	prev := b.arena.Prev(b.bot)
	b.unlinkLine(b.bot)
	b.bot = prev
	b.totsize--
}

// unlinkLine removes a line from the buffer, moving anything that referenced
// it to the preceding line.
func (b *Buffer) unlinkLine(id lines.ID) {
	prev := b.arena.Prev(id)
	if id == b.bot {
		b.bot = prev
	}
	if b.edittop == id {
		b.edittop = prev
	}
	if b.cur.Line == id {
		b.cur = cursor.At(prev, b.arena.Len(prev))
	}
	if b.markSet && b.mark.Line == id {
		b.mark = cursor.At(prev, b.arena.Len(prev))
	}
	b.arena.Unlink(id)
}

// breakCutRun ends a run of contiguous cuts.
func (b *Buffer) breakCutRun() {
	b.clip.keep = false
}

// finish runs after every public operation.
func (b *Buffer) finish() {
	if b.part == nil && b.top != lines.None {
		b.keepViewport()
	}
	if !b.opts.CheckInvariants {
		return
	}
	if err := b.Validate(); err != nil {
		b.log.Error("%v", err)
	}
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
