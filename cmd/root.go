package cmd

import (
	"os"

	"github.com/itsmostafa/ipycell/internal/executor"
	"github.com/itsmostafa/ipycell/internal/ui"
	"github.com/itsmostafa/ipycell/internal/version"
	"github.com/spf13/cobra"
)

var configPath string
var logFile string
var verbose bool
var dryRun bool
var language string

var rootCmd = &cobra.Command{
	Use:   "ipycell",
	Short: "Run Python cells and selections in an IPython or pdb session",
	Long: `ipycell sends the #%% cell under the cursor, or the selected text, to an
IPython session running in a tmux window.

In IPython mode cells are pasted with %paste -q and selections are typed line
by line. In PDB mode code is normalized for the debugger (indentation
stripped, backslash continuations joined) and typed with pacing, while a
single expression is sent as-is.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Template("ipycell"))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an ipycell.toml config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write diagnostic output to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print terminal operations instead of driving tmux")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "Language of the document (default: inferred from the file extension)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.NewNotifier(os.Stderr).Error(err.Error())
		os.Exit(1)
	}
}

// executionError carries the user-facing text for a failed execution
type executionError struct {
	err error
}

func (e *executionError) Error() string {
	return executor.UserMessage(e.err)
}

func (e *executionError) Unwrap() error {
	return e.err
}

func reportExecution(err error) error {
	if err == nil {
		return nil
	}
	return &executionError{err: err}
}
