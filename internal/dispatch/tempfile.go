package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/session"
)

// Session commands that read a file. {path} is replaced with the temp path.
const (
	DefaultSourceCommand = "source {path}"
	DefaultRunCommand    = `%run "{path}"`
)

// DefaultCleanupDelay leaves the session time to read the file before it is removed
const DefaultCleanupDelay = 1500 * time.Millisecond

// PathPlaceholder marks where the temp file path goes in a command
const PathPlaceholder = "{path}"

// TempFile writes the Code Unit to a uniquely named file in a scratch
// directory and asks the session to read it.
type TempFile struct {
	// Dir is the scratch directory (default os.TempDir())
	Dir string
	// Prefix starts every file name: <prefix>_<unixnano>.py
	Prefix string
	// Command is sent to the session with {path} substituted
	Command string
	// ForwardSlashes rewrites Windows separators to '/' instead of doubling them
	ForwardSlashes bool
	// CleanupDelay is how long the file lives after the command is sent
	CleanupDelay time.Duration
	// Cleaner tracks scheduled removals; nil uses a shared untracked cleaner
	Cleaner *Cleaner
	Logger  *log.Logger

	// goos overrides runtime.GOOS in tests
	goos string
}

// Name implements Strategy
func (t *TempFile) Name() string {
	if strings.HasPrefix(strings.TrimSpace(t.Command), "%run") {
		return "file-run"
	}
	return "file-source"
}

// Dispatch implements Strategy
func (t *TempFile) Dispatch(ctx context.Context, s Sender, h session.Handle, code string) error {
	logger := logging.OrDiscard(t.Logger)

	path, err := t.write(code)
	if err != nil {
		return &TransportError{Op: "temp file write", Err: err}
	}
	logger.Debug("Code written to temporary file", "path", path)

	// Removal is scheduled even if the send fails so the file never lingers
	delay := t.CleanupDelay
	if delay <= 0 {
		delay = DefaultCleanupDelay
	}
	t.cleaner().Schedule(path, delay)

	command := t.formatCommand(path)
	if err := s.Send(ctx, h, command, true); err != nil {
		return err
	}
	logger.Debug("Sent file command", "command", command)
	return nil
}

// write creates the file with O_EXCL so two rapid dispatches can never
// share a name, bumping the timestamp on collision.
func (t *TempFile) write(code string) (string, error) {
	dir := t.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	prefix := t.Prefix
	if prefix == "" {
		prefix = "ipycell_exec"
	}

	stamp := time.Now().UnixNano()
	for attempt := 0; attempt < 100; attempt++ {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.py", prefix, stamp+int64(attempt)))

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create temp file: %w", err)
		}

		if _, err := f.WriteString(code); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("failed to close temp file: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("failed to find a free temp file name in %s", dir)
}

func (t *TempFile) formatCommand(path string) string {
	command := t.Command
	if command == "" {
		command = DefaultSourceCommand
	}
	return strings.ReplaceAll(command, PathPlaceholder, NormalizePath(path, t.platform(), t.ForwardSlashes))
}

func (t *TempFile) platform() string {
	if t.goos != "" {
		return t.goos
	}
	return runtime.GOOS
}

func (t *TempFile) cleaner() *Cleaner {
	if t.Cleaner == nil {
		return defaultCleaner
	}
	return t.Cleaner
}

// NormalizePath prepares a path for a session command. On Windows the
// separators are doubled for pdb's source, or turned into '/' when
// forwardSlashes is set. Other platforms get the path unchanged.
func NormalizePath(path, goos string, forwardSlashes bool) string {
	if goos != "windows" {
		return path
	}
	if forwardSlashes {
		return strings.ReplaceAll(path, `\`, "/")
	}
	return strings.ReplaceAll(path, `\`, `\\`)
}

var defaultCleaner = NewCleaner(nil)

// Cleaner removes temp files after a delay. Removal failures are logged and
// never returned: the file is simply orphaned.
type Cleaner struct {
	wg  sync.WaitGroup
	log *log.Logger
}

// NewCleaner creates a cleaner logging to logger
func NewCleaner(logger *log.Logger) *Cleaner {
	return &Cleaner{log: logging.OrDiscard(logger)}
}

// Schedule removes path once delay has passed
func (c *Cleaner) Schedule(path string, delay time.Duration) {
	c.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer c.wg.Done()
		if err := os.Remove(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				c.log.Warn("Error removing temp file", "path", path, "err", err)
			}
			return
		}
		c.log.Debug("Removed temporary file", "path", path)
	})
}

// Wait blocks until every scheduled removal has run
func (c *Cleaner) Wait() {
	c.wg.Wait()
}
