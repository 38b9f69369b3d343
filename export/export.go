// Package export renders allocations and summaries to CSV, TSV, JSON and
// Markdown, packages per-branch record subsets into ZIP archives, and
// assembles the multi-sheet result workbook.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/cohort/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatCSV exports as comma-separated values
	FormatCSV Format = iota
	// FormatTSV exports as tab-separated values
	FormatTSV
	// FormatJSON exports as a JSON document
	FormatJSON
	// FormatMarkdown exports as Markdown tables
	FormatMarkdown
)

// String returns a human-readable representation of the export format
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatTSV:
		return ".tsv"
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// ParseFormat maps a format name to its Format value.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatCSV, fmt.Errorf("unknown export format: %s", name)
	}
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// Delimiter specifies the field delimiter for CSV export (default: comma)
	Delimiter rune

	// IncludeHeader includes the header row in CSV/TSV exports
	IncludeHeader bool

	// PrettyPrint enables indented output for JSON
	PrettyPrint bool
}

// DefaultConfig returns sensible defaults for export configuration
func DefaultConfig() Config {
	return Config{
		Format:        FormatCSV,
		Delimiter:     ',',
		IncludeHeader: true,
		PrettyPrint:   false,
	}
}

// TSVConfig returns config for TSV export
func TSVConfig() Config {
	config := DefaultConfig()
	config.Format = FormatTSV
	config.Delimiter = '\t'
	return config
}

// JSONConfig returns config for JSON export
func JSONConfig() Config {
	config := DefaultConfig()
	config.Format = FormatJSON
	config.PrettyPrint = true
	return config
}

// MarkdownConfig returns config for Markdown export
func MarkdownConfig() Config {
	config := DefaultConfig()
	config.Format = FormatMarkdown
	return config
}

// Exporter renders allocations and summaries in a configured format.
type Exporter struct {
	config Config
}

// NewExporter creates an Exporter with default configuration.
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an Exporter with the given configuration.
func NewExporterWithConfig(config Config) *Exporter {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &Exporter{config: config}
}

// Config returns the exporter's configuration.
func (e *Exporter) Config() Config {
	return e.config
}

// recordHeader is the column layout for exported records.
var recordHeader = []string{"Roll", "Name", "Email", "Branch"}

func recordRow(rec model.Record) []string {
	return []string{rec.Roll, rec.Name, rec.Email, rec.Branch}
}

// ExportAllocation writes every group of an allocation to w. Tabular
// formats carry a leading Group column; JSON nests records per group.
func (e *Exporter) ExportAllocation(alloc *model.Allocation, w io.Writer) error {
	switch e.config.Format {
	case FormatCSV, FormatTSV:
		return e.allocationDelimited(alloc, w)
	case FormatJSON:
		return e.allocationJSON(alloc, w)
	case FormatMarkdown:
		return e.allocationMarkdown(alloc, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportSummary writes a summary matrix to w.
func (e *Exporter) ExportSummary(summary *model.Summary, w io.Writer) error {
	switch e.config.Format {
	case FormatCSV, FormatTSV:
		return e.summaryDelimited(summary, w)
	case FormatJSON:
		return e.summaryJSON(summary, w)
	case FormatMarkdown:
		_, err := io.WriteString(w, summary.ToMarkdown())
		return err
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportAllocationToFile writes an allocation to the named file.
func (e *Exporter) ExportAllocationToFile(alloc *model.Allocation, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return e.ExportAllocation(alloc, f)
}

// ExportSummaryToFile writes a summary to the named file.
func (e *Exporter) ExportSummaryToFile(summary *model.Summary, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return e.ExportSummary(summary, f)
}

// ExportAllocationToString renders an allocation to a string.
func (e *Exporter) ExportAllocationToString(alloc *model.Allocation) (string, error) {
	var sb strings.Builder
	if err := e.ExportAllocation(alloc, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ExportSummaryToString renders a summary to a string.
func (e *Exporter) ExportSummaryToString(summary *model.Summary) (string, error) {
	var sb strings.Builder
	if err := e.ExportSummary(summary, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Exporter) allocationDelimited(alloc *model.Allocation, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = e.config.Delimiter

	if e.config.IncludeHeader {
		if err := cw.Write(append([]string{"Group"}, recordHeader...)); err != nil {
			return err
		}
	}
	for _, g := range alloc.Groups {
		for _, rec := range g.Records {
			if err := cw.Write(append([]string{g.Name()}, recordRow(rec)...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) summaryDelimited(summary *model.Summary, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = e.config.Delimiter

	if e.config.IncludeHeader {
		if err := cw.Write(summary.Header()); err != nil {
			return err
		}
	}
	for _, row := range summary.Cells() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportedGroup is the JSON shape of one group.
type exportedGroup struct {
	Name    string         `json:"name"`
	Size    int            `json:"size"`
	Records []model.Record `json:"records"`
}

// exportedAllocation is the JSON shape of a full allocation.
type exportedAllocation struct {
	Policy string                `json:"policy"`
	Stats  model.AllocationStats `json:"stats"`
	Groups []exportedGroup       `json:"groups"`
}

func (e *Exporter) allocationJSON(alloc *model.Allocation, w io.Writer) error {
	out := exportedAllocation{
		Policy: alloc.Policy.String(),
		Stats:  alloc.Stats,
		Groups: make([]exportedGroup, len(alloc.Groups)),
	}
	for i, g := range alloc.Groups {
		recs := g.Records
		if recs == nil {
			recs = []model.Record{}
		}
		out.Groups[i] = exportedGroup{Name: g.Name(), Size: g.Size(), Records: recs}
	}

	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// exportedSummary is the JSON shape of a summary matrix.
type exportedSummary struct {
	Policy string           `json:"policy"`
	Codes  []string         `json:"codes"`
	Rows   []exportedSumRow `json:"rows"`
}

type exportedSumRow struct {
	Label  string         `json:"label"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func (e *Exporter) summaryJSON(summary *model.Summary, w io.Writer) error {
	out := exportedSummary{
		Policy: summary.Policy.String(),
		Codes:  summary.Codes,
		Rows:   make([]exportedSumRow, len(summary.Rows)),
	}
	if out.Codes == nil {
		out.Codes = []string{}
	}
	for i, row := range summary.Rows {
		counts := make(map[string]int, len(summary.Codes))
		for j, code := range summary.Codes {
			counts[code] = row.Counts[j]
		}
		out.Rows[i] = exportedSumRow{Label: row.Label, Counts: counts, Total: row.Total}
	}

	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func (e *Exporter) allocationMarkdown(alloc *model.Allocation, w io.Writer) error {
	var sb strings.Builder
	for i, g := range alloc.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n", g.Name())
		if g.IsEmpty() {
			sb.WriteString("_empty_\n")
			continue
		}
		sb.WriteString("| Roll | Name | Email | Branch |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, rec := range g.Records {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				escapeCell(rec.Roll), escapeCell(rec.Name), escapeCell(rec.Email), escapeCell(rec.Branch))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
