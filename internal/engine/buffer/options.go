package buffer

import (
	"github.com/dshills/linestorm/internal/engine/lines"
	"github.com/dshills/linestorm/internal/logging"
)

// Options holds the editing behaviors a buffer honors.
type Options struct {
	// NoNewlines disables the trailing magic line.
	NoNewlines bool

	// CutFromCursor makes Cut take the text from the cursor to the end of the
	// line instead of the whole line.
	CutFromCursor bool

	// LetThemZap makes DeleteForward and Backspace erase a marked region.
	LetThemZap bool

	// TabSize is the indentation width in columns.
	TabSize int

	// TabsToSpaces makes Indent insert spaces instead of a tab.
	TabsToSpaces bool

	// AutoIndent copies the current line's indentation on Enter.
	AutoIndent bool

	// CommentSeq is the comment marker, or "pre|post" for bracketing comments.
	CommentSeq string

	// UndoLimit caps the number of undo records; 0 means unlimited.
	UndoLimit int

	// CheckInvariants validates the buffer after every operation and logs
	// violations.
	CheckInvariants bool
}

// DefaultOptions returns the default buffer options.
func DefaultOptions() Options {
	return Options{
		TabSize:    8,
		CommentSeq: "#",
	}
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithOptions sets the editing options.
func WithOptions(o Options) Option {
	return func(b *Buffer) {
		b.opts = o.normalized()
	}
}

// WithArena stores the buffer's lines in a shared arena.
func WithArena(a *lines.Arena) Option {
	return func(b *Buffer) {
		if a != nil {
			b.arena = a
		}
	}
}

// WithCutbuffer shares a cutbuffer with other buffers. The cutbuffer must
// use the same arena as the buffer.
func WithCutbuffer(c *Cutbuffer) Option {
	return func(b *Buffer) {
		b.clip = c
	}
}

// WithLogger sets the logger used for invariant reports.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.log = l
		}
	}
}

// WithLF stores text with Unix line endings regardless of the input.
func WithLF() Option {
	return func(b *Buffer) {
		b.ending = LineEndingLF
		b.fixedEnding = true
	}
}

func (o Options) normalized() Options {
	if o.TabSize <= 0 {
		o.TabSize = 8
	}
	if o.UndoLimit < 0 {
		o.UndoLimit = 0
	}
	return o
}
