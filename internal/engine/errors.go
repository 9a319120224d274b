package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNoBuffer indicates there is no open buffer, or the given id is unknown.
	ErrNoBuffer = errors.New("no such buffer")

	// ErrUnknownCommand indicates a command kind the engine does not handle.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoClipboard indicates a clipboard command with no clipboard configured.
	ErrNoClipboard = errors.New("no clipboard configured")
)
