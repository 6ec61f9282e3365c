package dispatch

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/clipboard"
)

// Options configures NewSet. Empty strings fall back to the package
// defaults; a zero delay means no pause.
type Options struct {
	Clipboard            clipboard.Writer
	PasteCommand         string
	PasteTerminatorDelay time.Duration

	DebugTerminatorDelay time.Duration
	DebugLineDelay       time.Duration

	ScratchDir    string
	SourcePrefix  string
	RunPrefix     string
	SourceCommand string
	RunCommand    string
	CleanupDelay  time.Duration
	Cleaner       *Cleaner

	CellTransport  Transport
	DebugTransport Transport

	Logger *log.Logger
}

// DefaultPasteTerminatorDelay separates "%paste -q" from its Enter
const DefaultPasteTerminatorDelay = 100 * time.Millisecond

// NewSet builds every strategy from opts
func NewSet(opts Options) *Set {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}
	if opts.SourcePrefix == "" {
		opts.SourcePrefix = "pdb_exec"
	}
	if opts.RunPrefix == "" {
		opts.RunPrefix = "ipython_run"
	}
	if opts.SourceCommand == "" {
		opts.SourceCommand = DefaultSourceCommand
	}
	if opts.RunCommand == "" {
		opts.RunCommand = DefaultRunCommand
	}
	if opts.Cleaner == nil {
		opts.Cleaner = NewCleaner(opts.Logger)
	}

	return &Set{
		Paste: &Paste{
			Clipboard:       opts.Clipboard,
			Command:         opts.PasteCommand,
			TerminatorDelay: opts.PasteTerminatorDelay,
			Logger:          opts.Logger,
		},
		Lines: &Lines{Logger: opts.Logger},
		DebugLines: &Lines{
			TerminatorDelay: opts.DebugTerminatorDelay,
			LineDelay:       opts.DebugLineDelay,
			Logger:          opts.Logger,
		},
		Run: &TempFile{
			Dir:            opts.ScratchDir,
			Prefix:         opts.RunPrefix,
			Command:        opts.RunCommand,
			ForwardSlashes: true,
			CleanupDelay:   opts.CleanupDelay,
			Cleaner:        opts.Cleaner,
			Logger:         opts.Logger,
		},
		Source: &TempFile{
			Dir:          opts.ScratchDir,
			Prefix:       opts.SourcePrefix,
			Command:      opts.SourceCommand,
			CleanupDelay: opts.CleanupDelay,
			Cleaner:      opts.Cleaner,
			Logger:       opts.Logger,
		},
		CellTransport:  opts.CellTransport,
		DebugTransport: opts.DebugTransport,
	}
}
