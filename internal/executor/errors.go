package executor

import (
	"errors"
)

// Errors for a missing source. The host reports these and aborts.
var (
	ErrNotPython   = errors.New("no active Python editor")
	ErrNoCell      = errors.New("no cell at cursor")
	ErrNoSelection = errors.New("no text selected")
)

// UserMessage returns the text shown to the user for err
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotPython):
		return "No active Python editor found"
	case errors.Is(err, ErrNoCell):
		return "No Python cell found at cursor position"
	case errors.Is(err, ErrNoSelection):
		return "No text selected"
	default:
		return "Error executing code: " + err.Error()
	}
}
