package mode

import (
	"fmt"
	"strings"
)

// Mode represents which kind of session the dispatched code targets
type Mode string

const (
	// Interactive is the default mode targeting an IPython read-eval-print loop
	Interactive Mode = "interactive"
	// Debug targets a line-oriented debugger (pdb, ipdb) paused inside the session
	Debug Mode = "debug"
)

// Parse checks if the given mode string is valid and returns the Mode
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Interactive), "ipython":
		return Interactive, nil
	case string(Debug), "pdb":
		return Debug, nil
	default:
		return "", fmt.Errorf("unknown mode: %q (valid options: interactive, debug)", s)
	}
}

// Toggled returns the other mode
func (m Mode) Toggled() Mode {
	if m == Debug {
		return Interactive
	}
	return Debug
}

// Label is the short status text for the mode
func (m Mode) Label() string {
	if m == Debug {
		return "PDB Mode"
	}
	return "IPython Mode"
}
