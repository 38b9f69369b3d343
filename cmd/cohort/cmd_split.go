package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/cohort/export"
)

var flagSplitOut string

// splitCmd writes the per-branch ZIP archive
var splitCmd = &cobra.Command{
	Use:   "split <roster>",
	Short: "Split a roster into one CSV per branch, packed in a ZIP",
	Long: `Loads a roster and writes a ZIP archive holding one CSV per branch
({code}_students.csv), each with the roster's records for that branch in
original order.

Example:
  cohort split students.xlsx --out branches.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&flagRollColumn, "roll-column", "", "Source column holding roll numbers")
	splitCmd.Flags().StringVar(&flagSheet, "sheet", "", "Worksheet name for spreadsheet sources")
	splitCmd.Flags().StringVar(&flagSplitOut, "out", "", "Archive path (default: <roster>_branches.zip)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	source := args[0]
	roster, warnings, err := buildGrouper(source).Roster()
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	out := flagSplitOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		out = filepath.Join(cfg.Export.Dir, base+"_branches.zip")
	}

	if err := export.WriteBranchArchiveFile(out, roster.Records); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	logger.Info("wrote branch archive",
		zap.String("path", out),
		zap.Int("records", roster.Len()))
	fmt.Printf("Wrote archive: %s\n", out)
	return nil
}
