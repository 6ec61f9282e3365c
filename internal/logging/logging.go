// Package logging builds the diagnostic channel shared by every component.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures the diagnostic logger
type Options struct {
	// Output receives log lines (default stderr)
	Output io.Writer
	// Verbose enables debug-level output
	Verbose bool
}

// New creates the diagnostic logger
func New(opts Options) *log.Logger {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	level := log.WarnLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "ipycell",
		ReportTimestamp: true,
	})
}

// OrDiscard returns l, or a logger that drops everything when l is nil
func OrDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
