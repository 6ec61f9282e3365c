package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/itsmostafa/ipycell/internal/logging"
)

// Defaults for the IPython session
const (
	DefaultLabel         = "IPython"
	DefaultMatch         = "ipython"
	DefaultLaunchCommand = "ipython"
)

// LocatorConfig configures how the session terminal is found and started
type LocatorConfig struct {
	// Label names a newly created terminal
	Label string
	// LaunchCommand starts the interpreter in a new terminal
	LaunchCommand string
	// Selector picks existing terminals; defaults to NameSelector{DefaultMatch}
	Selector Selector
	Logger   *log.Logger
}

// Locator finds or creates the terminal used for dispatch. It never closes
// or restarts an existing terminal.
type Locator struct {
	term   Terminal
	cfg    LocatorConfig
	log    *log.Logger
	flight singleflight.Group
}

// NewLocator creates a locator over term
func NewLocator(term Terminal, cfg LocatorConfig) *Locator {
	if cfg.Label == "" {
		cfg.Label = DefaultLabel
	}
	if cfg.LaunchCommand == "" {
		cfg.LaunchCommand = DefaultLaunchCommand
	}
	if cfg.Selector == nil {
		cfg.Selector = NameSelector{Match: DefaultMatch}
	}
	return &Locator{
		term: term,
		cfg:  cfg,
		log:  logging.OrDiscard(cfg.Logger),
	}
}

// Locate returns the session terminal. Concurrent calls share one lookup so
// simultaneous executions cannot each create their own terminal.
func (l *Locator) Locate(ctx context.Context) (Handle, error) {
	v, err, shared := l.flight.Do("locate", func() (any, error) {
		return l.locate(ctx)
	})
	if err != nil {
		return Handle{}, err
	}
	if shared {
		l.log.Debug("Shared in-flight session lookup")
	}
	return v.(Handle), nil
}

func (l *Locator) locate(ctx context.Context) (Handle, error) {
	// Prefer the focused terminal when it is already a session
	if h, ok, err := l.term.Focused(ctx); err != nil {
		l.log.Debug("Could not read focused terminal", "err", err)
	} else if ok && l.cfg.Selector.Matches(h) {
		l.log.Debug("Reusing focused terminal", "id", h.ID, "name", h.Name)
		return h, nil
	}

	terminals, err := l.term.List(ctx)
	if err != nil {
		return Handle{}, fmt.Errorf("failed to list terminals: %w", err)
	}
	for _, h := range terminals {
		if !l.cfg.Selector.Matches(h) {
			continue
		}
		if err := l.term.Show(ctx, h); err != nil {
			return Handle{}, fmt.Errorf("failed to show terminal %s: %w", h.ID, err)
		}
		l.log.Debug("Reusing open terminal", "id", h.ID, "name", h.Name)
		return h, nil
	}

	// None found: start a fresh interpreter
	h, err := l.term.Create(ctx, l.cfg.Label)
	if err != nil {
		return Handle{}, fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := l.term.Send(ctx, h, l.cfg.LaunchCommand, true); err != nil {
		return Handle{}, fmt.Errorf("failed to launch %s: %w", l.cfg.LaunchCommand, err)
	}
	l.log.Info("Created session terminal", "id", h.ID, "name", h.Name, "command", l.cfg.LaunchCommand)
	return h, nil
}
