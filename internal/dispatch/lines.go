package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/session"
)

// Debugger pacing. pdb reads one line at a time; typing ahead corrupts its
// state, so each line waits for the previous one.
const (
	DebugTerminatorDelay = 50 * time.Millisecond
	DebugLineDelay       = 100 * time.Millisecond
)

// Lines types the Code Unit one line at a time, each followed by a
// separate terminator. Blank lines are skipped entirely.
type Lines struct {
	// TerminatorDelay is the pause between a line's text and its Enter
	TerminatorDelay time.Duration
	// LineDelay is the pause after an Enter before the next line
	LineDelay time.Duration
	Logger    *log.Logger
}

// Name implements Strategy
func (l *Lines) Name() string {
	if l.TerminatorDelay > 0 || l.LineDelay > 0 {
		return "lines-paced"
	}
	return "lines"
}

// Dispatch implements Strategy
func (l *Lines) Dispatch(ctx context.Context, s Sender, h session.Handle, code string) error {
	logger := logging.OrDiscard(l.Logger)

	lines := SplitLines(code)
	sent := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if sent > 0 {
			if err := Sleep(ctx, l.LineDelay); err != nil {
				return err
			}
		}

		logger.Debug("Sending line", "line", line)
		if err := s.Send(ctx, h, line, false); err != nil {
			return err
		}
		if err := Sleep(ctx, l.TerminatorDelay); err != nil {
			return err
		}
		if err := s.Send(ctx, h, "", true); err != nil {
			return err
		}
		sent++
	}

	logger.Debug("Sent lines", "count", sent)
	return nil
}

// SplitLines splits code on line breaks, accepting both LF and CRLF
func SplitLines(code string) []string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
