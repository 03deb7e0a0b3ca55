package search

import "errors"

// Sentinel error kinds raised by the engine. Callers compare with errors.Is;
// call sites wrap these with fmt.Errorf("...: %w", ErrXxx) for context.
var (
	// ErrInvalidArgument covers a negative or duplicate document id, text
	// (document, stop-word, or query) containing a control byte, and a
	// query with a bare "-" or "--" prefixed term.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange covers Match called against an unknown document id.
	ErrOutOfRange = errors.New("out of range")
)
