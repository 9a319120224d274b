// Package buffer provides the editable document of the text engine: a line
// sequence stored in a shared arena, a cursor and optional mark, the running
// character count, and the undo history.
//
// The buffer package provides:
//
//   - Direct line mutators: typing, line breaks, deletion, joins, replacement
//   - Region operations built on partitioning: cut, copy, paste, zap, and
//     document insertion
//   - Linear undo and redo over typed records from the history package
//   - Line-wise indentation and commenting
//   - Cursor movement and mark handling
//
// Basic usage:
//
//	arena := lines.NewArena()
//	clip := buffer.NewCutbuffer(arena)
//	buf := buffer.NewFromText([]byte("foo\nbar\n"),
//	    buffer.WithArena(arena),
//	    buffer.WithCutbuffer(clip),
//	)
//
//	_ = buf.Cut()   // "foo" moves to the cutbuffer
//	_ = buf.Paste() // and back again
//	_, _ = buf.Undo()
//
// Partitioning:
//
// Region operations temporarily reshape the buffer so that an arbitrary
// (line, offset) range appears to be the whole document, operate on it, and
// restore the original shape. The reshaping is confined to a closure whose
// deferred restore runs on every exit path; Partitioned reports whether a
// partition is outstanding and RestorePartition undoes one from outside.
//
// Size accounting:
//
// TotalSize counts characters (code points), with one separator between
// consecutive lines. Cursor and mark offsets are byte offsets that always fall
// on a character boundary.
//
// Magic line:
//
// Unless NoNewlines is set, the last line of a buffer is kept empty so the
// document always ends with a line separator.
//
// A Buffer is not safe for concurrent use; the engine serializes access.
package buffer
