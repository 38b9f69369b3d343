package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/cohort/branch"
)

// branchesCmd tallies records per branch
var branchesCmd = &cobra.Command{
	Use:   "branches <roster>",
	Short: "Print the per-branch student tally of a roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranches,
}

func init() {
	branchesCmd.Flags().StringVar(&flagRollColumn, "roll-column", "", "Source column holding roll numbers")
	branchesCmd.Flags().StringVar(&flagSheet, "sheet", "", "Worksheet name for spreadsheet sources")
}

func runBranches(cmd *cobra.Command, args []string) error {
	roster, warnings, err := buildGrouper(args[0]).Roster()
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	logger.Debug("roster loaded",
		zap.String("source", args[0]),
		zap.Int("records", roster.Len()))

	printBranchCounts(branch.Codes(roster.Records), branch.Counts(roster.Records))
	return nil
}
