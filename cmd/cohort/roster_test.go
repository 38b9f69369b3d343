package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/cohort/export"
	"github.com/tsawler/cohort/internal/config"
	"github.com/tsawler/cohort/model"
)

func TestPickGroups(t *testing.T) {
	cfg = config.Default()

	flagGroups = 0
	assert.Equal(t, cfg.Groups, pickGroups(), "zero flag falls back to config")

	flagGroups = 7
	assert.Equal(t, 7, pickGroups())
	flagGroups = 0
}

func TestPickPriority(t *testing.T) {
	cfg = config.Default()

	flagPriority = nil
	assert.Equal(t, cfg.Priority, pickPriority())

	flagPriority = []string{"EC", "CS"}
	assert.Equal(t, []string{"EC", "CS"}, pickPriority())
	flagPriority = nil
}

func TestPickString(t *testing.T) {
	assert.Equal(t, "fallback", pickString("", "fallback"))
	assert.Equal(t, "flag", pickString("flag", "fallback"))
}

func TestRenderTable(t *testing.T) {
	summary := &model.Summary{
		Policy: model.PolicyBranchwise,
		Codes:  []string{"CS", "EC"},
		Rows: []model.SummaryRow{
			{Label: "Group 1", Counts: []int{2, 1}, Total: 3},
			{Label: "Group 2", Counts: []int{1, 0}, Total: 1},
		},
	}

	var buf bytes.Buffer
	renderTable(&buf, summary.Header(), summary.Cells())
	out := buf.String()

	assert.Contains(t, out, "Group 1")
	assert.Contains(t, out, "Group 2")
	assert.Contains(t, out, "3")

	buf.Reset()
	renderTable(&buf, []string{"Branch", "Students"}, [][]string{
		{"CS", "4"},
		{"Total", "4"},
	})
	assert.Contains(t, buf.String(), "Total")
}

func TestExporterFor(t *testing.T) {
	assert.Equal(t, export.FormatCSV, exporterFor(export.FormatCSV).Config().Format)
	assert.Equal(t, export.FormatTSV, exporterFor(export.FormatTSV).Config().Format)
	assert.Equal(t, export.FormatJSON, exporterFor(export.FormatJSON).Config().Format)
	assert.Equal(t, export.FormatMarkdown, exporterFor(export.FormatMarkdown).Config().Format)
}
