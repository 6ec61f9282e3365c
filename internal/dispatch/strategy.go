// Package dispatch turns a Code Unit into the keystrokes and commands that
// make an interactive session execute it.
//
// Three transports exist: clipboard paste (%paste -q), line-by-line typing,
// and a temp file the session sources or runs. A fourth, direct send, is the
// debugger fast path for a bare expression. Select picks one from the mode
// and the shape of the code, and Queue serializes dispatches per terminal so
// two executions never interleave their keystrokes.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/itsmostafa/ipycell/internal/session"
)

// Sender delivers text to a terminal
type Sender interface {
	Send(ctx context.Context, h session.Handle, text string, enter bool) error
}

// Strategy serializes a Code Unit into terminal operations. Nothing is read
// back from the session.
type Strategy interface {
	// Name identifies the strategy in logs and responses
	Name() string

	// Dispatch sends code to h
	Dispatch(ctx context.Context, s Sender, h session.Handle, code string) error
}

// TransportError wraps a clipboard or file failure that should be shown to
// the user
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
