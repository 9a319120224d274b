package history

import (
	"errors"
	"testing"
)

func rec(k Kind) *Record {
	return &Record{Kind: k}
}

func TestStackUndoRedo(t *testing.T) {
	s := NewStack(0, nil)

	if _, err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Undo on empty = %v", err)
	}
	if _, err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("Redo on empty = %v", err)
	}

	a, b := rec(Add), rec(Del)
	s.Push(a)
	s.Push(b)
	if s.Current() != b {
		t.Fatal("Current should be the last push")
	}

	got, err := s.Undo()
	if err != nil || got != b {
		t.Fatalf("Undo() = %v, %v", got, err)
	}
	if s.Current() != a {
		t.Error("Current should step down after undo")
	}
	if !s.CanRedo() || s.RedoCount() != 1 {
		t.Error("redo should be available")
	}

	got, err = s.Redo()
	if err != nil || got != b {
		t.Fatalf("Redo() = %v, %v", got, err)
	}
	if s.CanRedo() {
		t.Error("nothing left to redo")
	}
}

func TestPushTruncatesRedo(t *testing.T) {
	var released []*Record
	s := NewStack(0, func(r *Record) { released = append(released, r) })

	a, b, c := rec(Add), rec(Cut), rec(Paste)
	s.Push(a)
	s.Push(b)
	s.Undo()
	s.Push(c)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.CanRedo() {
		t.Error("redo history should be gone")
	}
	if len(released) != 1 || released[0] != b {
		t.Errorf("released = %v, want [b]", released)
	}
}

func TestSavePoint(t *testing.T) {
	s := NewStack(0, nil)
	if !s.AtSaved() {
		t.Fatal("new stack is at its saved state")
	}

	s.Push(rec(Add))
	if s.AtSaved() {
		t.Error("push leaves the saved state")
	}
	s.Undo()
	if !s.AtSaved() {
		t.Error("undo back to the save should be at saved state")
	}

	s.Push(rec(Add))
	s.MarkSaved()
	s.Undo()
	s.Push(rec(Del))
	if s.AtSaved() {
		t.Error("saved state was truncated and must be unreachable")
	}
	s.Undo()
	if s.AtSaved() {
		t.Error("saved state must stay unreachable")
	}
}

func TestLimit(t *testing.T) {
	dropped := 0
	s := NewStack(2, func(*Record) { dropped++ })

	for i := 0; i < 5; i++ {
		s.Push(rec(Add))
	}
	if s.Len() != 2 || s.UndoCount() != 2 {
		t.Errorf("Len() = %d, UndoCount() = %d", s.Len(), s.UndoCount())
	}
	if dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}
	if s.AtSaved() {
		t.Error("initial save point was dropped")
	}
}

func TestClear(t *testing.T) {
	dropped := 0
	s := NewStack(0, func(*Record) { dropped++ })
	s.Push(rec(Add))
	s.Push(rec(Add))
	s.Undo()
	s.Clear()

	if dropped != 2 || s.Len() != 0 || s.CanUndo() || s.CanRedo() {
		t.Errorf("Clear left state: dropped=%d len=%d", dropped, s.Len())
	}
}

func TestAddGroupLine(t *testing.T) {
	r := rec(Indent)
	r.AddGroupLine(3, []byte("\t"))
	r.AddGroupLine(4, []byte(""))
	r.AddGroupLine(7, []byte("  "))

	if len(r.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(r.Groups))
	}
	g := r.Groups[0]
	if g.Top != 3 || g.Bottom != 4 || len(g.Indents) != 2 {
		t.Errorf("first group = %+v", g)
	}
	if !g.Contains(4) || g.Contains(5) {
		t.Error("Contains mismatch")
	}
	if string(r.Groups[1].Indents[0]) != "  " {
		t.Errorf("second group indent = %q", r.Groups[1].Indents[0])
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		noun  string
		lined bool
	}{
		{Add, "add", "addition", true},
		{Back, "back", "deletion", true},
		{Replace, "replace", "replacement", true},
		{Insert, "insert", "insertion", false},
		{CutToEOF, "cut-to-eof", "cut", false},
		{Zap, "zap", "erasure", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.kind.String() != tt.name {
				t.Errorf("String() = %q", tt.kind.String())
			}
			if tt.kind.Noun() != tt.noun {
				t.Errorf("Noun() = %q", tt.kind.Noun())
			}
			if tt.kind.LineBased() != tt.lined {
				t.Errorf("LineBased() = %v", tt.kind.LineBased())
			}
		})
	}
}

func TestFlags(t *testing.T) {
	r := rec(Cut)
	r.Set(MarkWasSet)
	r.Set(WasMarkedForward)
	if !r.Flags.Has(MarkWasSet | WasMarkedForward) {
		t.Error("flags not set")
	}
	if r.Flags.Has(WasWholeLine) {
		t.Error("unexpected flag")
	}
}
