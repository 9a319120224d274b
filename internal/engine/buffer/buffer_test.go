package buffer

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/dshills/linestorm/internal/engine/cursor"
)

// newTestBuffer creates a buffer with invariant checking enabled.
func newTestBuffer(t *testing.T, text string, configure func(*Options)) *Buffer {
	t.Helper()
	o := DefaultOptions()
	o.CheckInvariants = true
	if configure != nil {
		configure(&o)
	}
	return NewFromText([]byte(text), WithOptions(o))
}

func checkValid(t *testing.T, b *Buffer) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func checkLines(t *testing.T, b *Buffer, want ...string) {
	t.Helper()
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
}

func checkCursor(t *testing.T, b *Buffer, line, x int) {
	t.Helper()
	if got := b.CursorPoint(); got != (cursor.Point{Line: line, X: x}) {
		t.Fatalf("CursorPoint() = %v, want (%d:%d)", got, line, x)
	}
}

func noNewlines(o *Options) { o.NoNewlines = true }

func TestNewFromText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		configure func(*Options)
		want      []string
		size      int
		ending    LineEnding
	}{
		{"empty", "", nil, []string{""}, 0, LineEndingLF},
		{"no trailing newline", "abc", nil, []string{"abc", ""}, 4, LineEndingLF},
		{"trailing newline", "abc\n", nil, []string{"abc", ""}, 4, LineEndingLF},
		{"crlf", "a\r\nb\r\n", nil, []string{"a", "b", ""}, 4, LineEndingCRLF},
		{"no newlines", "abc", noNewlines, []string{"abc"}, 3, LineEndingLF},
		{"multibyte", "日本\n", nil, []string{"日本", ""}, 3, LineEndingLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, tt.text, tt.configure)
			checkValid(t, b)
			checkLines(t, b, tt.want...)
			if b.TotalSize() != tt.size {
				t.Errorf("TotalSize() = %d, want %d", b.TotalSize(), tt.size)
			}
			if b.LineEnding() != tt.ending {
				t.Errorf("LineEnding() = %v, want %v", b.LineEnding(), tt.ending)
			}
			if b.Modified() {
				t.Error("new buffer should not be modified")
			}
			checkCursor(t, b, 1, 0)
		})
	}
}

func TestEncodedKeepsLineEnding(t *testing.T) {
	b := newTestBuffer(t, "a\r\nb\r\n", nil)
	if got := string(b.Encoded()); got != "a\r\nb\r\n" {
		t.Errorf("Encoded() = %q", got)
	}
	if got := b.Text(); got != "a\nb\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestInsertText(t *testing.T) {
	b := newTestBuffer(t, "", nil)
	b.InsertText([]byte("abc"))
	checkValid(t, b)
	checkLines(t, b, "abc", "")
	checkCursor(t, b, 1, 3)
	if b.TotalSize() != 4 {
		t.Errorf("TotalSize() = %d, want 4", b.TotalSize())
	}
	if !b.Modified() {
		t.Error("buffer should be modified")
	}
	if n := b.History().Len(); n != 1 {
		t.Errorf("typing produced %d undo records, want 1", n)
	}
}

func TestInsertTextNewlinesAndControls(t *testing.T) {
	b := newTestBuffer(t, "", nil)
	b.InsertText([]byte("a\x01b\nc\td"))
	checkValid(t, b)
	checkLines(t, b, "ab", "c\td", "")
	checkCursor(t, b, 2, 3)
}

func TestTypingAfterMoveStartsNewRecord(t *testing.T) {
	b := newTestBuffer(t, "", nil)
	b.InsertText([]byte("a"))
	b.InsertText([]byte("b"))
	b.Left()
	b.Right()
	b.InsertText([]byte("c"))
	checkLines(t, b, "abc", "")
	if n := b.History().Len(); n != 2 {
		t.Fatalf("History().Len() = %d, want 2", n)
	}

	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "ab", "")
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "")
	if b.Modified() {
		t.Error("undo back to the saved state should clear Modified")
	}
}

func TestEnter(t *testing.T) {
	b := newTestBuffer(t, "abcd", nil)
	b.GotoLine(1, 2)
	b.Enter()
	checkValid(t, b)
	checkLines(t, b, "ab", "cd", "")
	checkCursor(t, b, 2, 0)
	if b.TotalSize() != 6 {
		t.Errorf("TotalSize() = %d, want 6", b.TotalSize())
	}
}

func TestEnterAutoIndent(t *testing.T) {
	b := newTestBuffer(t, "  ab", func(o *Options) { o.AutoIndent = true })
	b.End()
	b.Enter()
	checkValid(t, b)
	checkLines(t, b, "  ab", "  ", "")
	checkCursor(t, b, 2, 2)

	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "  ab", "")
	checkCursor(t, b, 1, 4)
}

func TestEnterAutoIndentInsideBlanksKeepsMark(t *testing.T) {
	b := newTestBuffer(t, "  x\n", func(o *Options) { o.AutoIndent = true })
	b.GotoLine(1, 3)
	b.SetMark()
	b.GotoLine(1, 2)
	b.Enter()
	checkValid(t, b)
	checkLines(t, b, "", "  x", "")
	checkCursor(t, b, 2, 2)
	mark, set := b.MarkPoint()
	if !set || mark != (cursor.Point{Line: 2, X: 3}) {
		t.Fatalf("MarkPoint() = %v, %v, want (2:3), true", mark, set)
	}

	if err := b.Cut(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "", "  ", "")
	if got := b.Cutbuffer().Text(); got != "x" {
		t.Errorf("cutbuffer = %q, want %q", got, "x")
	}
}

func TestBackspace(t *testing.T) {
	b := newTestBuffer(t, "abc", nil)
	b.End()
	for iter := 0; iter < 2; iter++ {
		if err := b.Backspace(); err != nil {
			t.Fatal(err)
		}
	}
	checkValid(t, b)
	checkLines(t, b, "a", "")
	if n := b.History().Len(); n != 1 {
		t.Errorf("History().Len() = %d, want 1", n)
	}

	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "abc", "")
	checkCursor(t, b, 1, 3)
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := newTestBuffer(t, "ab\ncd\n", nil)
	b.GotoLine(2, 0)
	if err := b.Backspace(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "abcd", "")
	checkCursor(t, b, 1, 2)

	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "ab", "cd", "")
	checkCursor(t, b, 2, 0)
}

func TestBackspaceAtStart(t *testing.T) {
	b := newTestBuffer(t, "ab", nil)
	if err := b.Backspace(); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "ab", "")
	if b.History().Len() != 0 {
		t.Error("backspace at the start should record nothing")
	}
}

func TestDeleteKeepsMagicLine(t *testing.T) {
	b := newTestBuffer(t, "ab", nil)
	b.End()
	if err := b.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "ab", "")
	if _, err := b.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
}

func TestDeleteGraphemeCluster(t *testing.T) {
	b := newTestBuffer(t, "xe\u0301y", nil)
	b.GotoLine(1, 1)
	if err := b.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "xy", "")
	if b.TotalSize() != 3 {
		t.Errorf("TotalSize() = %d, want 3", b.TotalSize())
	}
}

func TestReplace(t *testing.T) {
	b := newTestBuffer(t, "hello world", nil)
	b.GotoLine(1, 6)
	b.Replace(5, []byte("there"))
	checkValid(t, b)
	checkLines(t, b, "hello there", "")
	checkCursor(t, b, 1, 11)
}

func TestReplaceEdges(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		configure func(*Options)
		line, x   int
		n         int
		with      string
		want      []string
		cur       cursor.Point
	}{
		{"count ends inside a character", "h\u00e9llo", nil, 1, 0, 2, "XY", []string{"XYllo", ""}, cursor.Point{Line: 1, X: 2}},
		{"negative count inserts", "abc", nil, 1, 1, -1, "x", []string{"axbc", ""}, cursor.Point{Line: 1, X: 2}},
		{"count past line end", "ab", nil, 1, 1, 10, "z", []string{"az", ""}, cursor.Point{Line: 1, X: 2}},
		{"on the magic line", "foo\n", nil, 2, 0, 0, "x", []string{"foo", "x", ""}, cursor.Point{Line: 2, X: 1}},
		{"last line without newlines", "foo", noNewlines, 1, 3, 0, "x", []string{"foox"}, cursor.Point{Line: 1, X: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, tt.text, tt.configure)
			before := stateOf(b)
			b.GotoLine(tt.line, tt.x)
			b.Replace(tt.n, []byte(tt.with))
			checkValid(t, b)
			checkLines(t, b, tt.want...)
			if got := b.CursorPoint(); got != tt.cur {
				t.Errorf("CursorPoint() = %v, want %v", got, tt.cur)
			}
			after := stateOf(b)

			if _, err := b.Undo(); err != nil {
				t.Fatal(err)
			}
			checkValid(t, b)
			checkLines(t, b, before.Lines...)
			if b.TotalSize() != before.Size {
				t.Errorf("TotalSize() after undo = %d, want %d", b.TotalSize(), before.Size)
			}

			if _, err := b.Redo(); err != nil {
				t.Fatal(err)
			}
			checkValid(t, b)
			checkLines(t, b, after.Lines...)
			if b.TotalSize() != after.Size {
				t.Errorf("TotalSize() after redo = %d, want %d", b.TotalSize(), after.Size)
			}
		})
	}
}

func TestInsertDocument(t *testing.T) {
	b := newTestBuffer(t, "abc", nil)
	b.GotoLine(1, 1)
	b.InsertDocument([]byte("x\r\ny"))
	checkValid(t, b)
	checkLines(t, b, "ax", "ybc", "")
	checkCursor(t, b, 2, 1)
}

func TestSizeTracksEdits(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	texts := []string{"a", "xyz", "\t", "日", "é", "\n", "ab\ncd"}
	ops := []struct {
		name string
		fn   func(b *Buffer)
	}{
		{"insert", func(b *Buffer) { b.InsertText([]byte(texts[r.Intn(len(texts))])) }},
		{"enter", func(b *Buffer) { b.Enter() }},
		{"backspace", func(b *Buffer) { _ = b.Backspace() }},
		{"delete", func(b *Buffer) { _ = b.DeleteForward() }},
		{"left", func(b *Buffer) { b.Left() }},
		{"right", func(b *Buffer) { b.Right() }},
		{"up", func(b *Buffer) { b.Up() }},
		{"down", func(b *Buffer) { b.Down() }},
		{"home", func(b *Buffer) { b.Home() }},
		{"end", func(b *Buffer) { b.End() }},
	}

	for _, configure := range []func(*Options){nil, noNewlines} {
		b := newTestBuffer(t, "start\nof text\n", configure)
		for i := 0; i < 500; i++ {
			op := ops[r.Intn(len(ops))]
			op.fn(b)
			if err := b.Validate(); err != nil {
				t.Fatalf("step %d (%s): %v", i, op.name, err)
			}
			if got := b.Arena().Size(b.Top(), b.Bottom()); got != b.TotalSize() {
				t.Fatalf("step %d (%s): TotalSize() = %d, counted %d", i, op.name, b.TotalSize(), got)
			}
		}
	}
}
