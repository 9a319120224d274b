package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/engine/cursor"
	"github.com/dshills/linestorm/internal/engine/history"
	"github.com/dshills/linestorm/internal/engine/lines"
	"github.com/dshills/linestorm/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Options holds the editing behaviors every buffer honors.
	Options = buffer.Options

	// Point is a 1-based line number and byte offset.
	Point = cursor.Point

	// UndoKind identifies the operation an undo record reverts.
	UndoKind = history.Kind
)

// DefaultOptions returns the default editing options.
func DefaultOptions() Options {
	return buffer.DefaultOptions()
}

// Clipboard mirrors the cutbuffer outside the editor.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// BufferInfo describes an open buffer.
type BufferInfo struct {
	ID       uuid.UUID
	Name     string
	Modified bool
	Active   bool
}

type entry struct {
	name string
	buf  *buffer.Buffer
}

// Engine is an editing session: a set of buffers that share one line arena
// and one cutbuffer. Commands apply to the active buffer.
//
// All operations are safe for concurrent use. NotifyResize and
// RequestEmergencySave only set flags and may be called from a signal
// handling goroutine; the flags take effect at the next SafePoint.
type Engine struct {
	mu sync.RWMutex

	arena   *lines.Arena
	clip    *buffer.Cutbuffer
	buffers map[uuid.UUID]*entry
	order   []uuid.UUID
	active  uuid.UUID

	opts buffer.Options
	rows int

	log       *logging.Logger
	clipboard Clipboard
	saver     Saver

	pendingRows atomic.Int32
	emergency   atomic.Bool
}

// New creates an engine with no buffers.
func New(opts ...Option) *Engine {
	e := &Engine{
		arena:   lines.NewArena(),
		buffers: make(map[uuid.UUID]*entry),
		opts:    buffer.DefaultOptions(),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.clip = buffer.NewCutbuffer(e.arena)
	e.log = e.log.WithComponent("engine")
	return e
}

// Open creates a buffer from document bytes and makes it active.
func (e *Engine) Open(name string, data []byte) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("open %s: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	opts := []buffer.Option{
		buffer.WithOptions(e.opts),
		buffer.WithArena(e.arena),
		buffer.WithCutbuffer(e.clip),
		buffer.WithLogger(e.log.WithField("buffer", name)),
	}
	b := buffer.NewFromText(data, opts...)
	if e.rows > 0 {
		b.SetViewportHeight(e.rows)
	}
	e.buffers[id] = &entry{name: name, buf: b}
	e.order = append(e.order, id)
	e.switchTo(id)
	e.log.Debug("opened %s: %d lines", name, b.LineCount())
	return id, nil
}

// Close frees a buffer. When it was active, the most recently opened
// remaining buffer becomes active.
func (e *Engine) Close(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.buffers[id]
	if !ok {
		return ErrNoBuffer
	}
	ent.buf.Close()
	delete(e.buffers, id)
	for i, o := range e.order {
		if o == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if e.active == id {
		e.active = uuid.Nil
		if n := len(e.order); n > 0 {
			e.switchTo(e.order[n-1])
		}
	}
	e.log.Debug("closed %s", ent.name)
	return nil
}

// Switch makes the buffer id active.
func (e *Engine) Switch(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.buffers[id]; !ok {
		return ErrNoBuffer
	}
	e.switchTo(id)
	return nil
}

// switchTo activates id. Cuts never accumulate across buffers.
func (e *Engine) switchTo(id uuid.UUID) {
	if e.active != id {
		e.clip.BreakRun()
	}
	e.active = id
}

// Active returns the id of the active buffer.
func (e *Engine) Active() (uuid.UUID, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active, e.active != uuid.Nil
}

// Buffers lists the open buffers in the order they were opened.
func (e *Engine) Buffers() []BufferInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	infos := make([]BufferInfo, 0, len(e.order))
	for _, id := range e.order {
		ent := e.buffers[id]
		infos = append(infos, BufferInfo{
			ID:       id,
			Name:     ent.name,
			Modified: ent.buf.Modified(),
			Active:   id == e.active,
		})
	}
	return infos
}

// View calls fn with the active buffer. fn must not modify the buffer or
// keep it after returning.
func (e *Engine) View(fn func(b *buffer.Buffer)) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ent := e.buffers[e.active]
	if ent == nil {
		return ErrNoBuffer
	}
	fn(ent.buf)
	return nil
}

// Contents returns the encoded document of buffer id.
func (e *Engine) Contents(id uuid.UUID) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ent, ok := e.buffers[id]
	if !ok {
		return nil, ErrNoBuffer
	}
	return ent.buf.Encoded(), nil
}

// MarkSaved records that buffer id was written out.
func (e *Engine) MarkSaved(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent, ok := e.buffers[id]
	if !ok {
		return ErrNoBuffer
	}
	ent.buf.MarkSaved()
	return nil
}

// Cutbuffer returns the text held by the shared cutbuffer.
func (e *Engine) Cutbuffer() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clip.Text()
}

// ApplyOptions replaces the editing options of the engine and every open
// buffer.
func (e *Engine) ApplyOptions(o buffer.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts = o
	for _, id := range e.order {
		e.buffers[id].buf.SetOptions(o)
	}
	e.log.Debug("options applied to %d buffers", len(e.order))
}

// Do applies cmd to the active buffer and reports the result. A refused
// command leaves the buffer unchanged and sets Result.Err.
func (e *Engine) Do(cmd Command) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent := e.buffers[e.active]
	if ent == nil {
		return Result{Err: ErrNoBuffer, Status: statusOf(ErrNoBuffer)}
	}
	b := ent.buf

	status, err := e.apply(b, cmd)
	if err != nil {
		e.log.Debug("%s refused: %v", cmd.Kind, err)
		status = statusOf(err)
	}

	res := Result{
		Status:    status,
		Err:       err,
		Modified:  b.Modified(),
		TotalSize: b.TotalSize(),
		Cursor:    b.CursorPoint(),
		Refresh:   b.TakeRefresh(),
	}
	res.Mark, res.MarkSet = b.MarkPoint()
	return res
}

func (e *Engine) apply(b *buffer.Buffer, cmd Command) (string, error) {
	switch cmd.Kind {
	case CmdInsertText:
		b.InsertText(cmd.Text)
	case CmdEnter:
		b.Enter()
	case CmdDeleteForward:
		return "", b.DeleteForward()
	case CmdBackspace:
		return "", b.Backspace()
	case CmdCut:
		return "", e.mirror(b.Cut())
	case CmdCutToEOF:
		return "", e.mirror(b.CutToEOF())
	case CmdZap:
		return "", b.Zap()
	case CmdCopy:
		if err := e.mirror(b.Copy()); err != nil {
			return "", err
		}
		return "Copied", nil
	case CmdPaste:
		return "", b.Paste()
	case CmdPasteClipboard:
		if err := e.pullClipboard(); err != nil {
			return "", err
		}
		return "", b.Paste()
	case CmdUndo:
		kind, err := b.Undo()
		if err != nil {
			return "", err
		}
		return "Undid " + kind.Noun(), nil
	case CmdRedo:
		kind, err := b.Redo()
		if err != nil {
			return "", err
		}
		return "Redid " + kind.Noun(), nil
	case CmdReplace:
		b.Replace(cmd.N, cmd.Text)
	case CmdInsertDocument:
		b.InsertDocument(cmd.Text)
	case CmdIndent:
		return "", b.Indent()
	case CmdUnindent:
		return "", b.Unindent()
	case CmdComment:
		return "", b.Comment()
	case CmdLeft:
		b.Left()
	case CmdRight:
		b.Right()
	case CmdUp:
		b.Up()
	case CmdDown:
		b.Down()
	case CmdHome:
		b.Home()
	case CmdEnd:
		b.End()
	case CmdGotoLine:
		b.GotoLine(cmd.Line, cmd.X)
	case CmdSetMark:
		b.SetMark()
		return "Mark Set", nil
	case CmdClearMark:
		b.ClearMark()
		return "Mark Unset", nil
	case CmdToggleMark:
		if b.ToggleMark() {
			return "Mark Set", nil
		}
		return "Mark Unset", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	return "", nil
}

// mirror copies the cutbuffer to the clipboard after a successful cut or
// copy. Clipboard failures are logged, never returned.
func (e *Engine) mirror(err error) error {
	if err != nil || e.clipboard == nil {
		return err
	}
	if werr := e.clipboard.WriteAll(e.clip.Text()); werr != nil {
		e.log.Warn("clipboard write: %v", werr)
	}
	return nil
}

// pullClipboard replaces the cutbuffer with the clipboard content.
func (e *Engine) pullClipboard() error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	text, err := e.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("clipboard read: %w", err)
	}
	if text == "" {
		return buffer.ErrCutbufferEmpty
	}
	data := bytes.ReplaceAll([]byte(text), []byte("\r\n"), []byte("\n"))
	e.clip.SetText(data)
	return nil
}

// NotifyResize records a new terminal height. It only sets a flag; the
// buffers learn the height at the next SafePoint.
func (e *Engine) NotifyResize(rows int) {
	if rows > 0 {
		e.pendingRows.Store(int32(rows))
	}
}

// RequestEmergencySave asks for modified buffers to be saved at the next
// SafePoint. It only sets a flag.
func (e *Engine) RequestEmergencySave() {
	e.emergency.Store(true)
}

// SafePoint acts on flags set by NotifyResize and RequestEmergencySave.
// Callers invoke it between commands, where no operation is in flight.
func (e *Engine) SafePoint(ctx context.Context) error {
	if rows := e.pendingRows.Swap(0); rows > 0 {
		e.resize(int(rows))
	}
	if e.emergency.Swap(false) {
		return e.emergencySave(ctx)
	}
	return nil
}

func (e *Engine) resize(rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rows = rows
	for _, id := range e.order {
		e.buffers[id].buf.SetViewportHeight(rows)
	}
	e.log.Debug("viewport height %d", rows)
}

// emergencySave restores every buffer to a whole state and hands each
// modified one to the saver.
func (e *Engine) emergencySave(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for _, id := range e.order {
		ent := e.buffers[id]
		ent.buf.RestorePartition()
		if !ent.buf.Modified() {
			continue
		}
		if e.saver == nil {
			e.log.Warn("no saver configured, %s not saved", ent.name)
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := e.saver.Save(ctx, ent.name, ent.buf.Encoded()); err != nil {
			e.log.Error("emergency save of %s: %v", ent.name, err)
			errs = append(errs, fmt.Errorf("save %s: %w", ent.name, err))
			continue
		}
		e.log.Info("emergency save of %s done", ent.name)
	}
	return errors.Join(errs...)
}

// statusOf turns an error into a status bar message.
func statusOf(err error) string {
	msg := err.Error()
	r, n := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[n:]
}
