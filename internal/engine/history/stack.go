package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// noSavePoint marks a saved state that can no longer be reached.
const noSavePoint = -1

// Stack is a linear undo stack.
//
// Records below the current position have been applied; records at or above
// it have been undone and can be redone. Stack is not safe for concurrent use.
type Stack struct {
	items []*Record
	cur   int
	saved int

	// limit caps the number of records kept; 0 means unlimited.
	limit int

	release func(*Record)
}

// NewStack creates a stack. release, if non-nil, is called for every record
// the stack drops.
func NewStack(limit int, release func(*Record)) *Stack {
	if limit < 0 {
		limit = 0
	}
	return &Stack{limit: limit, release: release}
}

// Push adds a record as the new current one, discarding any undone records
// above the current position.
func (s *Stack) Push(r *Record) {
	s.truncate()
	s.items = append(s.items, r)
	s.cur++

	if s.limit > 0 && len(s.items) > s.limit {
		excess := len(s.items) - s.limit
		for _, old := range s.items[:excess] {
			s.drop(old)
		}
		s.items = append(s.items[:0], s.items[excess:]...)
		s.cur -= excess
		if s.saved != noSavePoint {
			s.saved -= excess
			if s.saved < 0 {
				s.saved = noSavePoint
			}
		}
	}
}

// truncate drops every record above the current position.
func (s *Stack) truncate() {
	if s.cur == len(s.items) {
		return
	}
	for _, r := range s.items[s.cur:] {
		s.drop(r)
	}
	for i := s.cur; i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = s.items[:s.cur]
	if s.saved > s.cur {
		s.saved = noSavePoint
	}
}

func (s *Stack) drop(r *Record) {
	if s.release != nil {
		s.release(r)
	}
}

// Current returns the most recently applied record, or nil.
func (s *Stack) Current() *Record {
	if s.cur == 0 {
		return nil
	}
	return s.items[s.cur-1]
}

// Undo steps below the current record and returns it.
func (s *Stack) Undo() (*Record, error) {
	if s.cur == 0 {
		return nil, ErrNothingToUndo
	}
	s.cur--
	return s.items[s.cur], nil
}

// Redo steps above the current position and returns the record to reapply.
func (s *Stack) Redo() (*Record, error) {
	if s.cur == len(s.items) {
		return nil, ErrNothingToRedo
	}
	r := s.items[s.cur]
	s.cur++
	return r, nil
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	return s.cur > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	return s.cur < len(s.items)
}

// UndoCount returns the number of records that can be undone.
func (s *Stack) UndoCount() int {
	return s.cur
}

// RedoCount returns the number of records that can be redone.
func (s *Stack) RedoCount() int {
	return len(s.items) - s.cur
}

// Len returns the total number of records held.
func (s *Stack) Len() int {
	return len(s.items)
}

// MarkSaved records the current position as the saved state.
func (s *Stack) MarkSaved() {
	s.saved = s.cur
}

// AtSaved reports whether the current position is the saved state.
func (s *Stack) AtSaved() bool {
	return s.saved == s.cur
}

// SetLimit changes the record cap. Excess records are dropped on the next Push.
func (s *Stack) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.limit = limit
}

// Clear drops every record.
func (s *Stack) Clear() {
	for _, r := range s.items {
		s.drop(r)
	}
	s.items = nil
	s.cur = 0
	s.saved = 0
}
