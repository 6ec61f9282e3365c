// Package executor runs cells and selections in the session terminal. It is
// the only place the mode flag, the strategy set and the session meet.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/cell"
	"github.com/itsmostafa/ipycell/internal/dispatch"
	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/mode"
	"github.com/itsmostafa/ipycell/internal/session"
)

// Focuser returns keyboard focus to the editor after a dispatch
type Focuser interface {
	Refocus(ctx context.Context) error
}

// Config wires an Executor
type Config struct {
	Terminal session.Terminal
	Locator  *session.Locator
	Mode     *mode.Controller
	Set      *dispatch.Set
	Queue    *dispatch.Queue
	// Cleaner is waited on by Close; usually the one shared by Set
	Cleaner *dispatch.Cleaner
	// Focuser is optional
	Focuser      Focuser
	RefocusDelay time.Duration

	Marker   string
	Language string
	Logger   *log.Logger
}

// Executor is safe for concurrent use
type Executor struct {
	cfg Config
	log *log.Logger
}

// Submission describes an accepted execution
type Submission struct {
	Ticket   *dispatch.Ticket
	Handle   session.Handle
	Kind     dispatch.Kind
	Mode     mode.Mode
	Strategy string
	Code     string
}

// Wait blocks until the dispatch has been delivered
func (s *Submission) Wait(ctx context.Context) error {
	return s.Ticket.Wait(ctx)
}

// New creates an executor. Terminal, Locator, Mode, Set and Queue are
// required.
func New(cfg Config) *Executor {
	if cfg.Marker == "" {
		cfg.Marker = cell.DefaultMarker
	}
	if cfg.Language == "" {
		cfg.Language = cell.LanguagePython
	}
	return &Executor{cfg: cfg, log: logging.OrDiscard(cfg.Logger)}
}

// Mode returns the mode controller
func (e *Executor) Mode() *mode.Controller {
	return e.cfg.Mode
}

// ToggleMode flips between interactive and debug mode
func (e *Executor) ToggleMode() mode.Mode {
	m := e.cfg.Mode.Toggle()
	e.log.Info("Mode switched", "mode", m, "label", m.Label())
	return m
}

// ExecuteCell runs the cell under cursor
func (e *Executor) ExecuteCell(ctx context.Context, doc cell.Document, cursor cell.Position) (*Submission, error) {
	if err := e.checkLanguage(doc); err != nil {
		return nil, err
	}

	c, ok := cell.CurrentCell(doc, cursor, e.cfg.Marker)
	if !ok {
		return nil, ErrNoCell
	}
	e.log.Debug("Resolved cell", "cell", c, "cursor", cursor.Line)

	return e.submit(ctx, dispatch.KindCell, doc.CellBody(c, e.cfg.Marker))
}

// ExecuteSelection runs the text between start and end
func (e *Executor) ExecuteSelection(ctx context.Context, doc cell.Document, start, end cell.Position) (*Submission, error) {
	if err := e.checkLanguage(doc); err != nil {
		return nil, err
	}

	code := doc.TextRange(start, end)
	if code == "" {
		return nil, ErrNoSelection
	}

	return e.submit(ctx, dispatch.KindSelection, code)
}

// Close waits for queued dispatches and pending temp-file cleanups
func (e *Executor) Close() {
	e.cfg.Queue.Close()
	if e.cfg.Cleaner != nil {
		e.cfg.Cleaner.Wait()
	}
}

func (e *Executor) checkLanguage(doc cell.Document) error {
	if !strings.EqualFold(doc.LanguageID, e.cfg.Language) {
		return fmt.Errorf("%w: language %q", ErrNotPython, doc.LanguageID)
	}
	return nil
}

func (e *Executor) submit(ctx context.Context, kind dispatch.Kind, code string) (*Submission, error) {
	m := e.cfg.Mode.Current()

	plan, err := e.cfg.Set.Select(m, kind, code)
	if err != nil {
		return nil, fmt.Errorf("failed to choose strategy: %w", err)
	}

	h, err := e.cfg.Locator.Locate(ctx)
	if err != nil {
		return nil, err
	}

	e.log.Debug("Code to execute", "kind", kind, "mode", m, "chars", len(plan.Code))
	e.log.Debug("---CODE START---\n" + plan.Code + "\n---CODE END---")
	if plan.Normalized {
		e.log.Debug("Normalized for debugger", "before", len(code), "after", len(plan.Code))
	}
	e.log.Info("Dispatching", "strategy", plan.Strategy.Name(), "terminal", h.ID)

	ticket, err := e.cfg.Queue.Submit(ctx, h, func(ctx context.Context) error {
		return e.run(ctx, h, plan)
	})
	if err != nil {
		return nil, err
	}

	return &Submission{
		Ticket:   ticket,
		Handle:   h,
		Kind:     kind,
		Mode:     m,
		Strategy: plan.Strategy.Name(),
		Code:     plan.Code,
	}, nil
}

// run is one queued job: reveal, deliver, then hand focus back
func (e *Executor) run(ctx context.Context, h session.Handle, plan dispatch.Plan) error {
	if err := e.cfg.Terminal.Show(ctx, h); err != nil {
		return fmt.Errorf("failed to show terminal %s: %w", h.ID, err)
	}
	if err := plan.Strategy.Dispatch(ctx, e.cfg.Terminal, h, plan.Code); err != nil {
		return err
	}

	if e.cfg.Focuser == nil {
		return nil
	}
	if err := dispatch.Sleep(ctx, e.cfg.RefocusDelay); err != nil {
		return err
	}
	if err := e.cfg.Focuser.Refocus(ctx); err != nil {
		e.log.Warn("Failed to refocus editor", "err", err)
	}
	return nil
}
