// Package session finds or creates the terminal that hosts the interactive
// interpreter.
package session

import (
	"context"
	"strings"
)

// Handle identifies one terminal hosting a session
type Handle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Terminal is the capability a terminal host exposes to the locator and
// the dispatch strategies.
type Terminal interface {
	// Focused returns the terminal that currently has focus, if any
	Focused(ctx context.Context) (Handle, bool, error)

	// List returns every open terminal in host order
	List(ctx context.Context) ([]Handle, error)

	// Create opens a new terminal labeled label
	Create(ctx context.Context, label string) (Handle, error)

	// Show brings h to the front
	Show(ctx context.Context, h Handle) error

	// Send types text into h, followed by a line terminator when enter is true
	Send(ctx context.Context, h Handle, text string, enter bool) error
}

// Selector decides whether a terminal is the session target
type Selector interface {
	Matches(h Handle) bool
}

// NameSelector matches terminals whose name contains Match, ignoring case
type NameSelector struct {
	Match string
}

// Matches reports whether h's name contains the selector's label
func (s NameSelector) Matches(h Handle) bool {
	if s.Match == "" {
		return false
	}
	return strings.Contains(strings.ToLower(h.Name), strings.ToLower(s.Match))
}

// IDSelector matches exactly one terminal by its host id
type IDSelector struct {
	ID string
}

// Matches reports whether h is the tracked terminal
func (s IDSelector) Matches(h Handle) bool {
	return s.ID != "" && h.ID == s.ID
}
