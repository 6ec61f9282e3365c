package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/clipboard"
	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/session"
)

// DefaultPasteCommand pastes the clipboard into IPython without echoing it
const DefaultPasteCommand = "%paste -q"

// Paste copies the Code Unit to the clipboard and asks the session to paste
// it. The command and its terminator are sent as two operations because
// not every transport appends a newline to the command text.
type Paste struct {
	Clipboard clipboard.Writer
	// Command is the session's paste command (default DefaultPasteCommand)
	Command string
	// TerminatorDelay separates the command text from its Enter
	TerminatorDelay time.Duration
	Logger          *log.Logger
}

// Name implements Strategy
func (p *Paste) Name() string {
	return "paste"
}

// Dispatch implements Strategy
func (p *Paste) Dispatch(ctx context.Context, s Sender, h session.Handle, code string) error {
	logger := logging.OrDiscard(p.Logger)

	if p.Clipboard == nil {
		return &TransportError{Op: "clipboard write", Err: fmt.Errorf("no clipboard configured")}
	}
	if err := p.Clipboard.Write(code); err != nil {
		return &TransportError{Op: "clipboard write", Err: err}
	}
	logger.Debug("Code copied to clipboard for execution", "chars", len(code))

	command := p.Command
	if command == "" {
		command = DefaultPasteCommand
	}
	logger.Debug("Executing code with paste command", "command", command)
	if err := s.Send(ctx, h, command, false); err != nil {
		return err
	}

	if err := Sleep(ctx, p.TerminatorDelay); err != nil {
		return err
	}
	return s.Send(ctx, h, "", true)
}
