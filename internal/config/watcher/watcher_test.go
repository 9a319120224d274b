package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNew(t *testing.T) {
	w := newWatcher(t)
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = newWatcher(t, WithDebounce(50*time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	w := newWatcher(t)

	for _, name := range []string{"a.toml", "missing.toml", "a.toml"} {
		if err := w.Watch(filepath.Join(tmpDir, name)); err != nil {
			t.Fatalf("Watch(%s) error = %v", name, err)
		}
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}

	if err := w.Unwatch(filepath.Join(tmpDir, "a.toml")); err != nil {
		t.Fatal(err)
	}
	if got := len(w.WatchedFiles()); got != 1 {
		t.Errorf("WatchedFiles() after Unwatch = %d files, want 1", got)
	}

	if err := w.Watch(filepath.Join(tmpDir, "no", "such", "dir.toml")); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(10*time.Millisecond))
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	events := make(chan Event, 16)
	w.OnChange(func(e Event) { events <- e })
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Changes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		abs, _ := filepath.Abs(path)
		if e.Path != abs {
			t.Errorf("event path = %q, want %q", e.Path, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for a write to the watched file")
	}
}

func TestWatcher_QueueEventCoalesces(t *testing.T) {
	w := newWatcher(t)
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now.Add(time.Millisecond)})
	if got := w.pendingFiles["/a"].Op; got != OpCreate {
		t.Errorf("create + write = %v, want create", got)
	}

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: now.Add(2 * time.Millisecond)})
	if got := w.pendingFiles["/a"].Op; got != OpRemove {
		t.Errorf("create + remove = %v, want remove", got)
	}
}

func TestWatcher_HandlerPanicRecovered(t *testing.T) {
	w := newWatcher(t)
	called := false
	w.OnChange(func(Event) { panic("handler") })
	w.OnChange(func(Event) { called = true })

	w.emitEvent(Event{Path: "/a", Op: OpWrite})
	if !called {
		t.Error("second handler not called after the first panicked")
	}
}

func TestWatcher_Closed(t *testing.T) {
	w := newWatcher(t)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrClosed) {
		t.Errorf("Watch() after Close = %v, want ErrClosed", err)
	}
	if err := w.Start(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Start() after Close = %v, want ErrClosed", err)
	}
}
