// Package lines provides the line store of the text engine.
//
// Every line of every buffer, of the cutbuffer, and of saved undo text lives
// in a single Arena. Lines are addressed by stable ID handles and linked into
// ordered sequences through prev/next IDs, so splicing and unlinking are O(1)
// and no ownership cycles exist between Go values.
//
// # Sequences
//
// A sequence is a run of lines from a head whose prev is None to a tail whose
// next is None. Line numbers are 1-based and contiguous within a sequence;
// callers restore that after structural edits with Renumber.
//
//	a := lines.NewArena()
//	seq := a.Parse([]byte("one\ntwo"))
//	a.Text(seq.Top) // "one"
//	a.Number(seq.Bot) // 2
//
// # Handles
//
// The zero ID is None. A freed ID may be reused by a later allocation, so
// holders must drop handles to lines they free. Valid reports whether a
// handle currently refers to a live line.
//
// The Arena is not safe for concurrent use. The engine serializes access.
package lines
