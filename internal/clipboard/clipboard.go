// Package clipboard writes Code Units where the session's paste command can
// read them.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Writer stores text on a clipboard
type Writer interface {
	Write(text string) error
}

// ErrUnsupported is returned when no system clipboard utility is available
var ErrUnsupported = errors.New("system clipboard not supported (install xclip, xsel or wl-clipboard)")

// System writes to the OS clipboard, which is where IPython's %paste reads
type System struct{}

// Write implements Writer
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// OSC52 writes an OSC 52 escape sequence so the outer terminal emulator
// sets its clipboard. Useful over SSH where no clipboard utility exists.
type OSC52 struct {
	// Out is the controlling terminal (default stderr)
	Out io.Writer
	// Tmux wraps the sequence in a tmux passthrough
	Tmux bool
}

// Write implements Writer
func (o OSC52) Write(text string) error {
	w := o.Out
	if w == nil {
		w = os.Stderr
	}
	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}

// Memory keeps the last written text; used for dry runs
type Memory struct {
	mu   sync.Mutex
	last string
}

// Write implements Writer
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = text
	return nil
}

// Last returns the most recently written text
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// New returns the writer for a backend name: "system" or "osc52"
func New(backend string, out io.Writer) (Writer, error) {
	switch backend {
	case "", "system":
		return System{}, nil
	case "osc52":
		return OSC52{Out: out, Tmux: os.Getenv("TMUX") != ""}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend: %q (valid options: system, osc52)", backend)
	}
}
