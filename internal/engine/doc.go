// Package engine provides the editing session for Linestorm.
//
// An Engine owns a set of buffers that share one line arena and one
// cutbuffer, so text cut in one buffer can be pasted into another. Editing
// requests arrive as Command values and are applied to the active buffer by
// Do, which returns a Result describing the buffer afterwards.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - lines: arena of line records with stable handles and prev/next links
//   - cursor: positions, regions, and grapheme cluster stepping
//   - history: undo records and the linear undo stack
//   - buffer: one open document with its partition, cut, paste, and undo engines
//
// # Commands
//
// Every command is a tagged value:
//
//	e := engine.New()
//	id, _ := e.Open("notes.txt", data)
//
//	e.Do(engine.Command{Kind: engine.CmdInsertText, Text: []byte("hello")})
//	e.Do(engine.Command{Kind: engine.CmdCut})
//	res := e.Do(engine.Command{Kind: engine.CmdUndo})
//	fmt.Println(res.Status) // "Undid cut"
//
// A refused command, such as a cut with nothing to cut, leaves the buffer
// unchanged and reports the reason in Result.Err and Result.Status.
//
// # Signals
//
// NotifyResize and RequestEmergencySave may be called from a signal handler
// goroutine. They only set flags. The main loop calls SafePoint between
// commands, where the engine applies the new height or restores any
// outstanding partition and writes modified buffers through the Saver.
//
// # Thread Safety
//
// All Engine operations are safe for concurrent use. Reads through View and
// Contents share a read lock; Do and the other mutators are serialized.
package engine
