package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/tsawler/cohort"
	"github.com/tsawler/cohort/model"
)

// Roster selection flags shared by every roster-consuming command.
var (
	flagGroups     int
	flagPriority   []string
	flagRollColumn string
	flagSheet      string
)

// buildGrouper assembles the fluent chain from config defaults and flags.
func buildGrouper(path string) *cohort.Grouper {
	g := cohort.Load(path).
		Groups(pickGroups()).
		Priority(pickPriority()...).
		RollColumn(pickString(flagRollColumn, cfg.Columns.Roll))

	if cfg.Columns.Name != "" {
		g = g.NameColumn(cfg.Columns.Name)
	}
	if cfg.Columns.Email != "" {
		g = g.EmailColumn(cfg.Columns.Email)
	}
	if flagSheet != "" {
		g = g.Sheet(flagSheet)
	}
	return g
}

func pickGroups() int {
	if flagGroups != 0 {
		return flagGroups
	}
	return cfg.Groups
}

func pickPriority() []string {
	if len(flagPriority) > 0 {
		return flagPriority
	}
	return cfg.Priority
}

func pickString(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

// reportWarnings prints non-fatal loading issues to stderr and logs them.
func reportWarnings(warnings []cohort.Warning) {
	for _, w := range warnings {
		logger.Warn("roster warning", zap.String("code", w.Code.String()), zap.String("detail", w.Message))
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// printSummary renders a summary matrix as a terminal table.
func printSummary(title string, summary *model.Summary) {
	fmt.Printf("\n%s\n", title)
	renderTable(os.Stdout, summary.Header(), summary.Cells())
}

// printBranchCounts renders a per-branch tally as a terminal table.
func printBranchCounts(codes []string, counts map[string]int) {
	rows := make([][]string, 0, len(codes)+1)
	total := 0
	for _, code := range codes {
		rows = append(rows, []string{code, fmt.Sprintf("%d", counts[code])})
		total += counts[code]
	}
	rows = append(rows, []string{"Total", fmt.Sprintf("%d", total)})
	renderTable(os.Stdout, []string{"Branch", "Students"}, rows)
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	var table = tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
