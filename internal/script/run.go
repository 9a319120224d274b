package script

import (
	"context"
	"fmt"
	"slices"

	"github.com/dshills/linestorm/internal/engine"
	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/logging"
)

// Report summarizes a run.
type Report struct {
	// Commands is the number of commands applied.
	Commands int

	// Refused counts commands the engine refused.
	Refused int

	// Last is the result of the last command.
	Last engine.Result
}

// Runner applies scripts to an engine.
type Runner struct {
	eng *engine.Engine
	log *logging.Logger
}

// NewRunner creates a runner for eng. A nil logger discards messages.
func NewRunner(eng *engine.Engine, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{eng: eng, log: log.WithComponent("script")}
}

// Run applies every step to the active buffer. It calls the engine's
// SafePoint after each command and stops when ctx is done.
func (r *Runner) Run(ctx context.Context, s *Script) (Report, error) {
	var rep Report
	r.log.Debug("running %s: %d steps", s.Name, len(s.Steps))

	for i, step := range s.Steps {
		if step.Expect != nil {
			if err := r.check(step.Expect, rep.Last); err != nil {
				return rep, fmt.Errorf("%s step %d: %w", s.Name, i+1, err)
			}
			continue
		}

		for n := 0; n < step.Times; n++ {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			res := r.eng.Do(step.Command)
			rep.Commands++
			rep.Last = res
			if res.Err != nil {
				rep.Refused++
				r.log.Debug("step %d: %s: %s", i+1, step.Command.Kind, res.Status)
				if s.Strict {
					return rep, fmt.Errorf("%s step %d: %w: %s: %w", s.Name, i+1, ErrRefused, step.Command.Kind, res.Err)
				}
			}
			if err := r.eng.SafePoint(ctx); err != nil {
				return rep, err
			}
		}
	}
	return rep, nil
}

func (r *Runner) check(want *Expectation, last engine.Result) error {
	var (
		text     string
		cur      engine.Point
		modified bool
	)
	err := r.eng.View(func(b *buffer.Buffer) {
		text = b.Text()
		cur = b.CursorPoint()
		modified = b.Modified()
	})
	if err != nil {
		return err
	}

	if want.Text != nil && text != *want.Text {
		return fmt.Errorf("%w: text = %q, want %q", ErrExpectation, text, *want.Text)
	}
	if want.Cursor != nil && !slices.Equal(want.Cursor, []int{cur.Line, cur.X}) {
		return fmt.Errorf("%w: cursor = %v, want (%d:%d)", ErrExpectation, cur, want.Cursor[0], want.Cursor[1])
	}
	if want.Status != nil && last.Status != *want.Status {
		return fmt.Errorf("%w: status = %q, want %q", ErrExpectation, last.Status, *want.Status)
	}
	if want.Modified != nil && modified != *want.Modified {
		return fmt.Errorf("%w: modified = %v, want %v", ErrExpectation, modified, *want.Modified)
	}
	return nil
}
