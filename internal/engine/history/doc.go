// Package history provides the undo records and the linear undo stack of the
// text engine.
//
// # Records
//
// A Record describes one logical edit: its Kind, where it began and ended
// (by line number, since lines may be freed and recreated between undo and
// redo), the buffer size before and after, and the data needed to replay the
// edit in either direction. Destructive edits keep the removed text, either as
// bytes in Text or as a line sequence in Cut.
//
// Records are created at the start of an edit and updated as it grows, so a
// run of typed characters on one line shares a single record.
//
// # Stack
//
// The Stack is linear: Undo moves the current position down, Redo moves it up,
// and pushing a record while positioned below the top discards everything
// above. The stack also remembers where the buffer was last saved so callers
// can tell whether undoing or redoing brought the text back to its saved state.
//
//	stack := history.NewStack(0, release)
//	stack.Push(&history.Record{Kind: history.Add})
//	rec, err := stack.Undo()
//
// Line sequences held by discarded records are handed to the release callback
// so the owning arena can reclaim them.
package history
