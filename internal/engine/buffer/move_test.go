package buffer

import (
	"strings"
	"testing"
)

func TestVerticalMovementKeepsColumn(t *testing.T) {
	b := newTestBuffer(t, "abcdef\nab\nabcdef\n", nil)
	b.GotoLine(1, 5)
	b.Down()
	checkCursor(t, b, 2, 2)
	b.Down()
	checkCursor(t, b, 3, 5)
	b.Up()
	b.Up()
	checkCursor(t, b, 1, 5)
	b.Up()
	checkCursor(t, b, 1, 5)
}

func TestHorizontalMovementWraps(t *testing.T) {
	b := newTestBuffer(t, "ab\ncd\n", nil)
	b.GotoLine(2, 0)
	b.Left()
	checkCursor(t, b, 1, 2)
	b.Right()
	checkCursor(t, b, 2, 0)
	b.Home()
	b.Left()
	b.Home()
	b.Left()
	checkCursor(t, b, 1, 0)
	b.End()
	checkCursor(t, b, 1, 2)
}

func TestMovementStepsOverClusters(t *testing.T) {
	b := newTestBuffer(t, "ae\u0301b", nil)
	b.GotoLine(1, 1)
	b.Right()
	checkCursor(t, b, 1, 4)
	b.Left()
	checkCursor(t, b, 1, 1)
}

func TestGotoLineClamps(t *testing.T) {
	b := newTestBuffer(t, "abc\n日本\n", nil)
	b.GotoLine(99, 99)
	checkCursor(t, b, 3, 0)
	b.GotoLine(-1, 2)
	checkCursor(t, b, 1, 2)
	b.GotoLine(2, 4)
	checkCursor(t, b, 2, 3)
	checkValid(t, b)
}

func TestToggleMark(t *testing.T) {
	b := newTestBuffer(t, "abc", nil)
	b.GotoLine(1, 1)
	if !b.ToggleMark() {
		t.Fatal("ToggleMark() should set the mark")
	}
	mark, set := b.MarkPoint()
	if !set || mark.Line != 1 || mark.X != 1 {
		t.Errorf("MarkPoint() = %v, %v", mark, set)
	}
	if b.ToggleMark() {
		t.Error("ToggleMark() should clear the mark")
	}
}

func TestMovementEndsCutRun(t *testing.T) {
	b := newTestBuffer(t, "a\nb\n", nil)
	if err := b.Cut(); err != nil {
		t.Fatal(err)
	}
	b.Home()
	if err := b.Cut(); err != nil {
		t.Fatal(err)
	}
	if got := b.Cutbuffer().Text(); got != "b\n" {
		t.Errorf("cutbuffer = %q, want %q", got, "b\n")
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	b := newTestBuffer(t, strings.Repeat("x\n", 50), nil)
	b.SetViewportHeight(10)

	b.GotoLine(30, 0)
	if got := b.ViewportTop(); got != 21 {
		t.Errorf("ViewportTop() = %d, want 21", got)
	}
	b.GotoLine(5, 0)
	if got := b.ViewportTop(); got != 5 {
		t.Errorf("ViewportTop() = %d, want 5", got)
	}

	b.SetViewportTop(40)
	if got := b.ViewportTop(); got != 40 {
		t.Errorf("ViewportTop() = %d, want 40", got)
	}
	checkCursor(t, b, 40, 0)
	checkValid(t, b)
}

func TestViewportSurvivesCut(t *testing.T) {
	b := newTestBuffer(t, strings.Repeat("x\n", 20), nil)
	b.SetViewportHeight(5)
	b.GotoLine(10, 0)
	b.SetMark()
	b.GotoLine(1, 0)
	if err := b.Cut(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	if got := b.ViewportTop(); got != 1 {
		t.Errorf("ViewportTop() = %d, want 1", got)
	}
}
