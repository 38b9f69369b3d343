package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/cohort"
	"github.com/tsawler/cohort/export"
)

var (
	flagOut     string
	flagArchive string
	flagFormats []string
)

// groupCmd runs both allocation policies over a roster
var groupCmd = &cobra.Command{
	Use:   "group <roster>",
	Short: "Allocate a roster into groups under both policies",
	Long: `Loads a roster, runs both the branchwise and the uniform allocation
policy, and prints the per-branch summary of each. With --out, the full
result is written as a multi-sheet XLSX workbook; --format adds flat
exports (csv, tsv, json, markdown) alongside it.

Example:
  cohort group students.xlsx -n 8 --out result.xlsx --archive branches.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().IntVarP(&flagGroups, "groups", "n", 0, "Number of groups (default from config)")
	groupCmd.Flags().StringSliceVar(&flagPriority, "priority", nil, "Branch draw order, e.g. CS,EC,MM")
	groupCmd.Flags().StringVar(&flagRollColumn, "roll-column", "", "Source column holding roll numbers")
	groupCmd.Flags().StringVar(&flagSheet, "sheet", "", "Worksheet name for spreadsheet sources")
	groupCmd.Flags().StringVar(&flagOut, "out", "", "Write the result workbook to this file")
	groupCmd.Flags().StringVar(&flagArchive, "archive", "", "Write a per-branch ZIP archive to this file")
	groupCmd.Flags().StringSliceVar(&flagFormats, "format", nil, "Additional export formats (csv, tsv, json, markdown)")
}

func runGroup(cmd *cobra.Command, args []string) error {
	source := args[0]
	logger.Info("allocating roster",
		zap.String("source", source),
		zap.Int("groups", pickGroups()))

	grouper := buildGrouper(source)
	res, warnings, err := grouper.Result()
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	logger.Debug("allocation complete",
		zap.Int("records", res.Branchwise.Stats.RecordCount),
		zap.Int("branchwise_placed", res.Branchwise.Stats.PlacedCount),
		zap.Int("uniform_placed", res.Uniform.Stats.PlacedCount))

	printSummary("Branchwise allocation", res.BranchwiseSummary)
	printSummary("Uniform allocation", res.UniformSummary)

	if flagOut != "" {
		if err := export.WriteWorkbookFile(flagOut, res.Branchwise, res.Uniform,
			res.BranchwiseSummary, res.UniformSummary); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Printf("\nWrote workbook: %s\n", flagOut)
	}

	if flagArchive != "" {
		roster, _, err := grouper.Roster()
		if err != nil {
			return err
		}
		if err := export.WriteBranchArchiveFile(flagArchive, roster.Records); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		fmt.Printf("Wrote archive: %s\n", flagArchive)
	}

	return writeFlatExports(source, res)
}

// writeFlatExports writes one allocation file per requested format and
// policy into the configured export directory.
func writeFlatExports(source string, res *cohort.Result) error {
	if len(flagFormats) == 0 {
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	for _, name := range flagFormats {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		exp := exporterFor(f)

		targets := []struct {
			suffix string
			write  func(string) error
		}{
			{"_branchwise", func(p string) error { return exp.ExportAllocationToFile(res.Branchwise, p) }},
			{"_uniform", func(p string) error { return exp.ExportAllocationToFile(res.Uniform, p) }},
		}
		for _, t := range targets {
			path := filepath.Join(cfg.Export.Dir, base+t.suffix+f.FileExtension())
			if err := t.write(path); err != nil {
				return fmt.Errorf("writing %s export: %w", f, err)
			}
			fmt.Printf("Wrote %s\n", path)
		}
	}
	return nil
}

func exporterFor(f export.Format) *export.Exporter {
	switch f {
	case export.FormatTSV:
		return export.NewExporterWithConfig(export.TSVConfig())
	case export.FormatJSON:
		return export.NewExporterWithConfig(export.JSONConfig())
	case export.FormatMarkdown:
		return export.NewExporterWithConfig(export.MarkdownConfig())
	default:
		return export.NewExporter()
	}
}
