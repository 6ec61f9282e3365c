package cmd

import (
	"os"
	"os/signal"

	"github.com/itsmostafa/ipycell/internal/serve"
	"github.com/itsmostafa/ipycell/internal/ui"
	"github.com/spf13/cobra"
)

var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve editor requests over stdin and stdout",
	Long: `Read JSON requests from stdin, one per line, and answer each with one JSON
line on stdout. The mode flag lives for the lifetime of the process.

Commands: executeCell, executeSelection, toggleMode, status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries protocol responses, so dry-run operations and the
		// mode badge go to stderr
		a, err := newApp(appOptions{
			Out:       cmd.ErrOrStderr(),
			Mode:      startMode(serveDebug),
			Indicator: ui.NewStatusLine(cmd.ErrOrStderr()),
		})
		if err != nil {
			return err
		}
		defer a.Close()

		return serve.New(a.exec, a.log).Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Start in PDB mode")
	rootCmd.AddCommand(serveCmd)
}
