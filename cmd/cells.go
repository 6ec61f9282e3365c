package cmd

import (
	"github.com/itsmostafa/ipycell/internal/cell"
	"github.com/itsmostafa/ipycell/internal/config"
	"github.com/itsmostafa/ipycell/internal/ui"
	"github.com/spf13/cobra"
)

var cellsCmd = &cobra.Command{
	Use:   "cells FILE",
	Short: "List the cells of a file",
	Long:  `Print how FILE is split into #%% cells, with 1-based line ranges.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.Load(configPath)
		if err != nil {
			return err
		}
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}

		cells := cell.Segment(doc.Lines, cfg.Marker)
		ui.FormatCells(cmd.OutOrStdout(), doc, cells, cfg.Marker)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cellsCmd)
}
