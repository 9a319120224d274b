package engine

import (
	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/logging"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithOptions sets the editing options given to every buffer.
func WithOptions(o buffer.Options) Option {
	return func(e *Engine) {
		e.opts = o
	}
}

// WithLogger sets the engine logger. Buffers log through a child logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClipboard mirrors every cut and copy to sink.
func WithClipboard(sink Clipboard) Option {
	return func(e *Engine) {
		e.clipboard = sink
	}
}

// WithSaver sets where emergency saves are written.
func WithSaver(s Saver) Option {
	return func(e *Engine) {
		e.saver = s
	}
}

// WithViewportHeight sets the number of rows each buffer keeps in view.
func WithViewportHeight(rows int) Option {
	return func(e *Engine) {
		if rows > 0 {
			e.rows = rows
		}
	}
}
