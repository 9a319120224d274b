package history

import (
	"fmt"

	"github.com/dshills/linestorm/internal/engine/lines"
)

// Kind identifies the type of edit a record describes.
type Kind uint8

// Edit kinds.
const (
	Other Kind = iota
	Add
	Enter
	Back
	Del
	Join
	Replace
	Insert
	Cut
	CutToEOF
	Paste
	Zap
	Indent
	Unindent
	Comment
	Uncomment
)

var kindNames = [...]string{
	Other:     "other",
	Add:       "add",
	Enter:     "enter",
	Back:      "back",
	Del:       "del",
	Join:      "join",
	Replace:   "replace",
	Insert:    "insert",
	Cut:       "cut",
	CutToEOF:  "cut-to-eof",
	Paste:     "paste",
	Zap:       "zap",
	Indent:    "indent",
	Unindent:  "unindent",
	Comment:   "comment",
	Uncomment: "uncomment",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Noun describes the kind for status messages such as "Undid deletion".
func (k Kind) Noun() string {
	switch k {
	case Add:
		return "addition"
	case Enter:
		return "line break"
	case Back, Del:
		return "deletion"
	case Join:
		return "line join"
	case Replace:
		return "replacement"
	case Insert:
		return "insertion"
	case Cut, CutToEOF:
		return "cut"
	case Paste:
		return "paste"
	case Zap:
		return "erasure"
	case Indent:
		return "indent"
	case Unindent:
		return "unindent"
	case Comment:
		return "comment"
	case Uncomment:
		return "uncomment"
	default:
		return "action"
	}
}

// LineBased reports whether the kind edits a single line in place, so that
// replaying it only needs the line at MarkLine.
func (k Kind) LineBased() bool {
	return k >= Add && k <= Replace
}

// Flags carry extra facts about the buffer at the time of the edit.
type Flags uint8

const (
	// WasFinalLine is set when the edit touched the last line of the buffer.
	WasFinalLine Flags = 1 << iota
	// WasWholeLine is set when a cut took a whole line.
	WasWholeLine
	// MarkWasSet is set when the edit consumed a marked region.
	MarkWasSet
	// WasMarkedForward is set when the mark was before the cursor.
	WasMarkedForward
	// WasFinalBackspace is set for a backspace that would join the magic line.
	WasFinalBackspace
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Group is a run of consecutive lines changed by one multi-line edit, with the
// whitespace added to or removed from each.
type Group struct {
	Top     int
	Bottom  int
	Indents [][]byte
}

// Contains reports whether line number n is inside the group.
func (g *Group) Contains(n int) bool {
	return n >= g.Top && n <= g.Bottom
}

// Record is one entry on the undo stack.
type Record struct {
	Kind Kind

	// Line and X locate where the edit began.
	Line int
	X    int

	// MarkLine and MarkX locate the other end of the edit: the end of typed
	// text, or the start of a cut region.
	MarkLine int
	MarkX    int

	// WasSize and NewSize are the buffer's size before and after the edit.
	WasSize int
	NewSize int

	// Text holds bytes removed or inserted within a line, a whole line's
	// previous content, or the comment sequence used.
	Text []byte

	// Cut holds removed or inserted lines. It is owned by the record.
	Cut lines.Seq

	Flags  Flags
	Groups []Group
}

// Set adds flags to the record.
func (r *Record) Set(f Flags) {
	r.Flags |= f
}

// AddGroupLine records the indentation affecting line n. A line directly
// below the last group extends it; otherwise a new group is started.
func (r *Record) AddGroupLine(n int, indent []byte) {
	ind := append([]byte(nil), indent...)
	if k := len(r.Groups); k > 0 && r.Groups[k-1].Bottom+1 == n {
		g := &r.Groups[k-1]
		g.Bottom = n
		g.Indents = append(g.Indents, ind)
		return
	}
	r.Groups = append(r.Groups, Group{Top: n, Bottom: n, Indents: [][]byte{ind}})
}

// String returns a debugging representation of the record.
func (r *Record) String() string {
	return fmt.Sprintf("%s@%d:%d mark=%d:%d size=%d->%d", r.Kind, r.Line, r.X,
		r.MarkLine, r.MarkX, r.WasSize, r.NewSize)
}
