// Package clipboard connects the shared cutbuffer to a clipboard outside
// the editor.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unsupported")

// Sink reads and writes clipboard text.
type Sink interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System uses the operating system clipboard.
type System struct{}

// Available reports whether a system clipboard can be used.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// ReadAll returns the clipboard text.
func (s System) ReadAll() (string, error) {
	if !s.Available() {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (s System) WriteAll(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// ReadAll returns the stored text.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Best returns the system clipboard when one is available and a Memory
// clipboard otherwise.
func Best() Sink {
	if (System{}).Available() {
		return System{}
	}
	return &Memory{}
}
