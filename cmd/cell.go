package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/itsmostafa/ipycell/internal/cell"
	"github.com/itsmostafa/ipycell/internal/executor"
	"github.com/itsmostafa/ipycell/internal/ui"
	"github.com/spf13/cobra"
)

var cellLine int
var cellColumn int
var cellDebug bool

var selStart string
var selEnd string
var selDebug bool

var cellCmd = &cobra.Command{
	Use:   "cell FILE",
	Short: "Execute the cell under the cursor",
	Long: `Execute the #%% cell containing --line in the IPython session.

Lines and columns are 1-based. When the line is itself a cell marker the cell
starting there runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cellLine < 1 {
			return fmt.Errorf("--line must be 1 or greater")
		}
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		cursor := cell.Position{Line: cellLine - 1, Column: max(cellColumn-1, 0)}

		return execute(cmd, cellDebug, func(ctx context.Context, e *executor.Executor) (*executor.Submission, error) {
			return e.ExecuteCell(ctx, doc, cursor)
		})
	},
}

var selectionCmd = &cobra.Command{
	Use:   "selection FILE",
	Short: "Execute the selected text",
	Long: `Execute the text between --start and --end in the IPython session.

Positions are LINE:COLUMN, 1-based, with the end column exclusive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parsePosition(selStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := parsePosition(selEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}

		return execute(cmd, selDebug, func(ctx context.Context, e *executor.Executor) (*executor.Submission, error) {
			return e.ExecuteSelection(ctx, doc, start, end)
		})
	},
}

func init() {
	cellCmd.Flags().IntVarP(&cellLine, "line", "l", 0, "Cursor line (1-based)")
	cellCmd.Flags().IntVarP(&cellColumn, "column", "c", 1, "Cursor column (1-based)")
	cellCmd.Flags().BoolVar(&cellDebug, "debug", false, "Send to pdb instead of IPython")
	cellCmd.MarkFlagRequired("line")

	selectionCmd.Flags().StringVar(&selStart, "start", "", "Selection start as LINE:COLUMN")
	selectionCmd.Flags().StringVar(&selEnd, "end", "", "Selection end as LINE:COLUMN")
	selectionCmd.Flags().BoolVar(&selDebug, "debug", false, "Send to pdb instead of IPython")
	selectionCmd.MarkFlagRequired("start")
	selectionCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(cellCmd)
	rootCmd.AddCommand(selectionCmd)
}

type executeFunc func(ctx context.Context, e *executor.Executor) (*executor.Submission, error)

// execute runs one execution and waits until it has been delivered
func execute(cmd *cobra.Command, debug bool, run executeFunc) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := newApp(appOptions{Out: cmd.OutOrStdout(), Mode: startMode(debug)})
	if err != nil {
		return err
	}
	defer a.Close()

	sub, err := run(ctx, a.exec)
	if err != nil {
		return reportExecution(err)
	}
	a.log.Info("Submitted", "strategy", sub.Strategy, "mode", sub.Mode, "terminal", sub.Handle.ID)
	if dryRun {
		ui.FormatCode(cmd.OutOrStdout(), sub.Code)
	}
	return reportExecution(sub.Wait(ctx))
}

// parsePosition parses a 1-based "LINE:COLUMN" into a zero-based position.
// A bare line means column 1.
func parsePosition(s string) (cell.Position, error) {
	lineStr, colStr, hasCol := strings.Cut(s, ":")

	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return cell.Position{}, fmt.Errorf("line must be a positive number, got %q", lineStr)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return cell.Position{}, fmt.Errorf("column must be a positive number, got %q", colStr)
		}
	}
	return cell.Position{Line: line - 1, Column: col - 1}, nil
}
