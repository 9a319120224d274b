package buffer

import (
	"errors"

	"github.com/dshills/linestorm/internal/engine/history"
)

// Status errors. None of them indicates a change to the buffer.
var (
	// ErrNothingCut is returned when a cut, zap, or copy would remove nothing.
	ErrNothingCut = errors.New("nothing was cut")

	// ErrCutbufferEmpty is returned when pasting an empty cutbuffer.
	ErrCutbufferEmpty = errors.New("cutbuffer is empty")

	// ErrNothingToUndo is returned when the undo stack is exhausted.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo is returned when there is nothing undone to reapply.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrNothingToIndent is returned when no selected line can be indented
	// or unindented.
	ErrNothingToIndent = errors.New("nothing to indent")

	// ErrCannotComment is returned when commenting is unsupported or the
	// selection covers only the magic line.
	ErrCannotComment = errors.New("cannot comment")

	// ErrLineOutOfRange is returned for a line number outside the buffer.
	ErrLineOutOfRange = errors.New("line out of range")
)

// ErrInvariant wraps every invariant violation reported by Validate.
var ErrInvariant = errors.New("buffer invariant violated")
