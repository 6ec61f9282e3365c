// Package tmux hosts the interpreter session in a tmux window
package tmux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/itsmostafa/ipycell/internal/runner"
	"github.com/itsmostafa/ipycell/internal/session"
)

// DefaultSessionName is used when a tmux server has to be started
const DefaultSessionName = "ipycell"

const windowFormat = "#{window_id}\t#{window_name}"

// Host implements session.Terminal on top of the tmux CLI
type Host struct {
	run runner.Runner

	// SessionName names the tmux session created when no server is running
	SessionName string
	// OriginPane is the editor's pane, returned to by Refocus
	OriginPane string
}

// NewHost creates a tmux host. The origin pane is read from $TMUX_PANE so
// focus can return to the editor after dispatch.
func NewHost(r runner.Runner) *Host {
	if r == nil {
		r = runner.Exec{}
	}
	return &Host{
		run:         r,
		SessionName: DefaultSessionName,
		OriginPane:  os.Getenv("TMUX_PANE"),
	}
}

// Focused returns the current window of the attached client
func (h *Host) Focused(ctx context.Context) (session.Handle, bool, error) {
	out, err := h.tmux(ctx, "display-message", "-p", windowFormat)
	if err != nil {
		if isNoServer(err) {
			return session.Handle{}, false, nil
		}
		return session.Handle{}, false, err
	}
	handles := parseWindows(out)
	if len(handles) == 0 {
		return session.Handle{}, false, nil
	}
	return handles[0], true, nil
}

// List returns every window across all sessions
func (h *Host) List(ctx context.Context) ([]session.Handle, error) {
	out, err := h.tmux(ctx, "list-windows", "-a", "-F", windowFormat)
	if err != nil {
		// No sessions exist
		if isNoServer(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	return parseWindows(out), nil
}

// Create opens a detached window named label. When no server is running a
// new detached session is started instead.
func (h *Host) Create(ctx context.Context, label string) (session.Handle, error) {
	out, err := h.tmux(ctx, "new-window", "-d", "-P", "-F", "#{window_id}", "-n", label)
	if err != nil && isNoServer(err) {
		out, err = h.tmux(ctx, "new-session", "-d", "-s", h.SessionName, "-n", label, "-P", "-F", "#{window_id}")
	}
	if err != nil {
		return session.Handle{}, fmt.Errorf("failed to create window: %w", err)
	}

	id := strings.TrimSpace(string(out))
	if id == "" {
		return session.Handle{}, errors.New("tmux returned no window id")
	}
	return session.Handle{ID: id, Name: label}, nil
}

// Show selects the window
func (h *Host) Show(ctx context.Context, w session.Handle) error {
	if _, err := h.tmux(ctx, "select-window", "-t", w.ID); err != nil {
		return fmt.Errorf("failed to select window %s: %w", w.ID, err)
	}
	return nil
}

// Send types text literally and then, as a separate key press, Enter. The
// -l flag keeps tmux from interpreting words like "Enter" in the text.
func (h *Host) Send(ctx context.Context, w session.Handle, text string, enter bool) error {
	if text != "" {
		if _, err := h.tmux(ctx, "send-keys", "-t", w.ID, "-l", "--", text); err != nil {
			return fmt.Errorf("failed to send keys to %s: %w", w.ID, err)
		}
	}
	if enter {
		if _, err := h.tmux(ctx, "send-keys", "-t", w.ID, "Enter"); err != nil {
			return fmt.Errorf("failed to send Enter to %s: %w", w.ID, err)
		}
	}
	return nil
}

// Refocus returns focus to the editor pane. It is a no-op when the editor
// is not running inside tmux.
func (h *Host) Refocus(ctx context.Context) error {
	if h.OriginPane == "" {
		return nil
	}
	if _, err := h.tmux(ctx, "select-window", "-t", h.OriginPane); err != nil {
		return fmt.Errorf("failed to refocus editor window: %w", err)
	}
	if _, err := h.tmux(ctx, "select-pane", "-t", h.OriginPane); err != nil {
		return fmt.Errorf("failed to refocus editor pane: %w", err)
	}
	return nil
}

func (h *Host) tmux(ctx context.Context, args ...string) ([]byte, error) {
	return h.run.Run(ctx, "tmux", args...)
}

func parseWindows(out []byte) []session.Handle {
	var handles []session.Handle
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		id, name, ok := strings.Cut(line, "\t")
		if !ok || id == "" {
			continue
		}
		handles = append(handles, session.Handle{ID: id, Name: name})
	}
	return handles
}

func isNoServer(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no server running") ||
		strings.Contains(msg, "no sessions") ||
		strings.Contains(msg, "no current client") ||
		strings.Contains(msg, "error connecting to")
}
