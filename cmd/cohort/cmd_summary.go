package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/cohort/allocate"
)

var flagPolicy string

// summaryCmd prints summary matrices without writing anything
var summaryCmd = &cobra.Command{
	Use:   "summary <roster>",
	Short: "Print the per-branch summary of an allocation",
	Long: `Loads a roster, allocates it, and prints the group-by-branch summary
matrix. Use --policy to restrict output to one policy.

Example:
  cohort summary students.xlsx --policy branchwise`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVarP(&flagGroups, "groups", "n", 0, "Number of groups (default from config)")
	summaryCmd.Flags().StringSliceVar(&flagPriority, "priority", nil, "Branch draw order, e.g. CS,EC,MM")
	summaryCmd.Flags().StringVar(&flagRollColumn, "roll-column", "", "Source column holding roll numbers")
	summaryCmd.Flags().StringVar(&flagSheet, "sheet", "", "Worksheet name for spreadsheet sources")
	summaryCmd.Flags().StringVar(&flagPolicy, "policy", "both", "Policy to summarize: branchwise, uniform or both")
}

func runSummary(cmd *cobra.Command, args []string) error {
	grouper := buildGrouper(args[0])

	switch flagPolicy {
	case "branchwise":
		alloc, warnings, err := grouper.Branchwise()
		if err != nil {
			return err
		}
		reportWarnings(warnings)
		printSummary("Branchwise allocation", allocate.Summarize(alloc))

	case "uniform":
		alloc, warnings, err := grouper.Uniform()
		if err != nil {
			return err
		}
		reportWarnings(warnings)
		printSummary("Uniform allocation", allocate.Summarize(alloc))

	case "both":
		res, warnings, err := grouper.Result()
		if err != nil {
			return err
		}
		reportWarnings(warnings)
		printSummary("Branchwise allocation", res.BranchwiseSummary)
		printSummary("Uniform allocation", res.UniformSummary)

	default:
		return fmt.Errorf("unknown policy %q: want branchwise, uniform or both", flagPolicy)
	}
	return nil
}
