package export

import (
	"fmt"
	"io"

	"github.com/tsawler/cohort/model"
	"github.com/tsawler/cohort/xlsx"
)

// summarySheet lays a summary matrix out as workbook rows.
func summarySheet(name string, summary *model.Summary) xlsx.SheetData {
	rows := make([][]string, 0, len(summary.Rows)+1)
	rows = append(rows, summary.Header())
	rows = append(rows, summary.Cells()...)
	return xlsx.SheetData{Name: name, Rows: rows}
}

// groupSheet lays one group's records out as workbook rows.
func groupSheet(name string, g *model.Group) xlsx.SheetData {
	rows := make([][]string, 0, g.Size()+1)
	rows = append(rows, recordHeader)
	for _, rec := range g.Records {
		rows = append(rows, recordRow(rec))
	}
	return xlsx.SheetData{Name: name, Rows: rows}
}

// WorkbookSheets assembles the result workbook layout: the two summary
// sheets first, then one sheet per group under each policy
// (Branchwise_1..N, Uniform_1..N).
func WorkbookSheets(branchwise, uniform *model.Allocation, branchwiseSummary, uniformSummary *model.Summary) []xlsx.SheetData {
	sheets := []xlsx.SheetData{
		summarySheet("Branchwise_Summary", branchwiseSummary),
		summarySheet("Uniform_Summary", uniformSummary),
	}
	for i, g := range branchwise.Groups {
		sheets = append(sheets, groupSheet(fmt.Sprintf("Branchwise_%d", i+1), g))
	}
	for i, g := range uniform.Groups {
		sheets = append(sheets, groupSheet(fmt.Sprintf("Uniform_%d", i+1), g))
	}
	return sheets
}

// WriteWorkbook writes the full result workbook for both policies.
func WriteWorkbook(w io.Writer, branchwise, uniform *model.Allocation, branchwiseSummary, uniformSummary *model.Summary) error {
	return xlsx.WriteWorkbook(w, WorkbookSheets(branchwise, uniform, branchwiseSummary, uniformSummary))
}

// WriteWorkbookFile writes the full result workbook to the named file.
func WriteWorkbookFile(filename string, branchwise, uniform *model.Allocation, branchwiseSummary, uniformSummary *model.Summary) error {
	return xlsx.WriteWorkbookFile(filename, WorkbookSheets(branchwise, uniform, branchwiseSummary, uniformSummary))
}
