package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/linestorm/internal/engine/cursor"
)

// CommandKind identifies an editing command.
type CommandKind uint8

// Command kinds.
const (
	CmdNone CommandKind = iota
	CmdInsertText
	CmdEnter
	CmdDeleteForward
	CmdBackspace
	CmdCut
	CmdCutToEOF
	CmdZap
	CmdCopy
	CmdPaste
	CmdPasteClipboard
	CmdUndo
	CmdRedo
	CmdReplace
	CmdInsertDocument
	CmdIndent
	CmdUnindent
	CmdComment
	CmdLeft
	CmdRight
	CmdUp
	CmdDown
	CmdHome
	CmdEnd
	CmdGotoLine
	CmdSetMark
	CmdToggleMark
	CmdClearMark
	cmdCount
)

var commandNames = [cmdCount]string{
	CmdNone:           "none",
	CmdInsertText:     "insert_text",
	CmdEnter:          "enter",
	CmdDeleteForward:  "delete",
	CmdBackspace:      "backspace",
	CmdCut:            "cut",
	CmdCutToEOF:       "cut_to_eof",
	CmdZap:            "zap",
	CmdCopy:           "copy",
	CmdPaste:          "paste",
	CmdPasteClipboard: "paste_clipboard",
	CmdUndo:           "undo",
	CmdRedo:           "redo",
	CmdReplace:        "replace",
	CmdInsertDocument: "insert_document",
	CmdIndent:         "indent",
	CmdUnindent:       "unindent",
	CmdComment:        "comment",
	CmdLeft:           "left",
	CmdRight:          "right",
	CmdUp:             "up",
	CmdDown:           "down",
	CmdHome:           "home",
	CmdEnd:            "end",
	CmdGotoLine:       "goto_line",
	CmdSetMark:        "set_mark",
	CmdToggleMark:     "toggle_mark",
	CmdClearMark:      "clear_mark",
}

// String returns the command name used in scripts.
func (k CommandKind) String() string {
	if k < cmdCount {
		return commandNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// ParseCommandKind returns the kind named s. Case and dashes are ignored.
func ParseCommandKind(s string) (CommandKind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, n := range commandNames {
		if n == name && CommandKind(k) != CmdNone {
			return CommandKind(k), nil
		}
	}
	return CmdNone, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Modifies reports whether commands of this kind may change buffer content.
func (k CommandKind) Modifies() bool {
	switch k {
	case CmdInsertText, CmdEnter, CmdDeleteForward, CmdBackspace, CmdCut,
		CmdCutToEOF, CmdZap, CmdPaste, CmdPasteClipboard, CmdUndo, CmdRedo,
		CmdReplace, CmdInsertDocument, CmdIndent, CmdUnindent, CmdComment:
		return true
	}
	return false
}

// Command is one editing request.
type Command struct {
	Kind CommandKind

	// Text is the payload of InsertText, Replace, and InsertDocument.
	Text []byte

	// N is the number of characters Replace overwrites.
	N int

	// Line and X are the 1-based line and byte offset for GotoLine.
	Line int
	X    int
}

// Result reports the state of the active buffer after a command.
type Result struct {
	// Status is a short message for the status bar. It is empty when the
	// command needs no comment.
	Status string

	// Err is set when the command was refused. The buffer is unchanged.
	Err error

	Modified  bool
	TotalSize int
	Cursor    cursor.Point
	Mark      cursor.Point
	MarkSet   bool

	// Refresh is set when the whole view must be redrawn.
	Refresh bool
}
