package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/cell"
	"github.com/itsmostafa/ipycell/internal/clipboard"
	"github.com/itsmostafa/ipycell/internal/config"
	"github.com/itsmostafa/ipycell/internal/dispatch"
	"github.com/itsmostafa/ipycell/internal/executor"
	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/mode"
	"github.com/itsmostafa/ipycell/internal/runner"
	"github.com/itsmostafa/ipycell/internal/session"
	"github.com/itsmostafa/ipycell/internal/tmux"
)

// app is everything a command needs, built from flags and config
type app struct {
	cfg    config.Config
	log    *log.Logger
	exec   *executor.Executor
	closer io.Closer
}

// appOptions are per-command inputs to newApp
type appOptions struct {
	// Out receives dry-run operations
	Out       io.Writer
	Mode      mode.Mode
	Indicator mode.Indicator
}

func newApp(opts appOptions) (*app, error) {
	a := &app{}

	logOut := io.Writer(os.Stderr)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logOut = f
		a.closer = f
	}
	a.log = logging.New(logging.Options{Output: logOut, Verbose: verbose})

	cfg, source, err := config.Load(configPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cfg = cfg
	a.log.Debug("Loaded config", "source", source)

	var (
		term    session.Terminal
		focuser executor.Focuser
		clip    clipboard.Writer
	)
	if dryRun {
		rec := session.NewRecorder()
		rec.Out = opts.Out
		term = rec
		clip = &clipboard.Memory{}
	} else {
		host := tmux.NewHost(runner.Exec{})
		if cfg.Session.TmuxSession != "" {
			host.SessionName = cfg.Session.TmuxSession
		}
		term = host
		focuser = host
		clip, err = clipboard.New(cfg.Clipboard, os.Stderr)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	dopts := cfg.DispatchOptions()
	dopts.Clipboard = clip
	dopts.Logger = a.log
	dopts.Cleaner = dispatch.NewCleaner(a.log)

	a.exec = executor.New(executor.Config{
		Terminal: term,
		Locator: session.NewLocator(term, session.LocatorConfig{
			Label:         cfg.Session.Label,
			LaunchCommand: cfg.Session.LaunchCommand,
			Selector:      session.NameSelector{Match: cfg.Session.Match},
			Logger:        a.log,
		}),
		Mode:         mode.NewController(opts.Mode, opts.Indicator, tooltips(cfg)),
		Set:          dispatch.NewSet(dopts),
		Queue:        dispatch.NewQueue(a.log),
		Cleaner:      dopts.Cleaner,
		Focuser:      focuser,
		RefocusDelay: cfg.Editor.RefocusDelay.Duration,
		Marker:       cfg.Marker,
		Language:     cfg.Language,
		Logger:       a.log,
	})
	return a, nil
}

// Close drains pending dispatches and cleanups
func (a *app) Close() {
	if a.exec != nil {
		a.exec.Close()
	}
	if a.closer != nil {
		a.closer.Close()
	}
}

// tooltips describes the configured transports
func tooltips(cfg config.Config) mode.Tooltips {
	t := mode.DefaultTooltips
	switch dispatch.Transport(cfg.Interactive.CellTransport) {
	case dispatch.TransportFile:
		t.Interactive = "Using %run of a temp file for cells, line-by-line for selections"
	case dispatch.TransportLines:
		t.Interactive = "Using line-by-line execution for cells and selections"
	}
	if dispatch.Transport(cfg.Debug.Transport) == dispatch.TransportFile {
		t.Debug = "Using source of a temp file for PDB"
	}
	return t
}

// readDocument loads path as an editor document
func readDocument(path string) (cell.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cell.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cell.NewDocument(string(data), languageOf(path)), nil
}

// languageOf returns --language, or the language implied by the extension
func languageOf(path string) string {
	if language != "" {
		return language
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".py", ".pyw", ".ipy":
		return cell.LanguagePython
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

func startMode(debug bool) mode.Mode {
	if debug {
		return mode.Debug
	}
	return mode.Interactive
}
