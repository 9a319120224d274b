package clipboard

import (
	"errors"
	"testing"
)

func TestMemory(t *testing.T) {
	var m Memory
	if got, err := m.ReadAll(); err != nil || got != "" {
		t.Fatalf("ReadAll() = %q, %v", got, err)
	}
	if err := m.WriteAll("one\ntwo"); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.ReadAll(); got != "one\ntwo" {
		t.Errorf("ReadAll() = %q", got)
	}
}

func TestSystemUnsupported(t *testing.T) {
	s := System{}
	if s.Available() {
		t.Skip("system clipboard available")
	}
	if _, err := s.ReadAll(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ReadAll() = %v, want ErrUnsupported", err)
	}
	if err := s.WriteAll("x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("WriteAll() = %v, want ErrUnsupported", err)
	}
}

func TestBest(t *testing.T) {
	c := Best()
	if _, ok := c.(System); ok != (System{}).Available() {
		t.Errorf("Best() = %T with Available() = %v", c, (System{}).Available())
	}
}
