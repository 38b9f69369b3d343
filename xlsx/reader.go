package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/cohort/model"
)

// ErrNoRoster is returned when a workbook holds no usable roster rows.
var ErrNoRoster = errors.New("xlsx: workbook contains no roster rows")

// Reader provides access to XLSX workbook content.
type Reader struct {
	zipCloser     *zip.ReadCloser
	files         []*zip.File
	workbook      *workbookXML
	sharedStrings []string
	sheets        []*Sheet
	sheetRels     map[string]string // RID -> target path
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipCloser: zr,
		files:     zr.File,
		sheetRels: make(map[string]string),
	}

	if err := r.parse(); err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// NewReader parses an XLSX workbook from an in-memory or seekable source.
// The returned Reader does not need to be closed.
func NewReader(src io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(src, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		files:     zr.File,
		sheetRels: make(map[string]string),
	}

	if err := r.parse(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader. It is a no-op for
// readers created with NewReader.
func (r *Reader) Close() error {
	if r.zipCloser != nil {
		err := r.zipCloser.Close()
		r.zipCloser = nil
		return err
	}
	return nil
}

// parse runs the full workbook parse pipeline.
func (r *Reader) parse() error {
	if err := r.validate(); err != nil {
		return err
	}

	// Relationships map sheet references to worksheet files
	if err := r.parseRelationships(); err != nil {
		return fmt.Errorf("parsing relationships: %w", err)
	}

	if err := r.parseWorkbook(); err != nil {
		return fmt.Errorf("parsing workbook: %w", err)
	}

	// Shared strings are optional but common
	_ = r.parseSharedStrings()

	if err := r.parseWorksheets(); err != nil {
		return fmt.Errorf("parsing worksheets: %w", err)
	}

	return nil
}

// validate checks that required XLSX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"xl/workbook.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.files {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.files {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the workbook relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		// Try alternate location
		data, err = r.getFileContent("xl/_rels/workbook.rels")
		if err != nil {
			return nil // Relationships are optional
		}
	}

	rels := &relationshipsXML{}
	if err := xml.Unmarshal(data, rels); err != nil {
		return err
	}

	for _, rel := range rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}

	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err // Shared strings are optional
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			r.sharedStrings[i] = si.T
		} else {
			// Rich text - concatenate all runs
			var text strings.Builder
			for _, run := range si.R {
				text.WriteString(run.T)
			}
			r.sharedStrings[i] = text.String()
		}
	}

	return nil
}

// parseWorksheets parses all worksheet files.
func (r *Reader) parseWorksheets() error {
	if r.workbook == nil {
		return fmt.Errorf("workbook not parsed")
	}

	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, sheetRef := range r.workbook.Sheets.Sheet {
		// Find the sheet file path from relationships
		target := r.sheetRels[sheetRef.RID]
		if target == "" {
			// Try default naming
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}

		// Normalize path
		if !strings.HasPrefix(target, "xl/") && !strings.HasPrefix(target, "/") {
			target = "xl/" + target
		}
		target = strings.TrimPrefix(target, "/")

		data, err := r.getFileContent(target)
		if err != nil {
			// Try without xl/ prefix
			target = strings.TrimPrefix(target, "xl/")
			data, err = r.getFileContent("xl/" + target)
			if err != nil {
				continue // Skip sheets we can't read
			}
		}

		sheet, err := r.parseWorksheet(data, sheetRef.Name, i)
		if err != nil {
			continue // Skip sheets that fail to parse
		}

		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}

	return nil
}

// parseWorksheet parses a single worksheet.
func (r *Reader) parseWorksheet(data []byte, name string, index int) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Name:  name,
		Index: index,
	}

	// Parse merged regions first
	if ws.MergeCells != nil {
		for _, mc := range ws.MergeCells.MergeCell {
			startCol, startRow, endCol, endRow, err := ParseRangeRef(mc.Ref)
			if err != nil {
				continue
			}
			sheet.MergedRegions = append(sheet.MergedRegions, MergedRegion{
				StartRow: startRow,
				StartCol: startCol,
				EndRow:   endRow,
				EndCol:   endCol,
			})
		}
	}

	// First pass: find dimensions
	maxRow := 0
	maxCol := 0
	for _, row := range ws.SheetData.Rows {
		if row.R > maxRow {
			maxRow = row.R
		}
		for _, cell := range row.Cells {
			col, _, err := ParseCellRef(cell.R)
			if err != nil {
				continue
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	sheet.MaxRow = maxRow - 1 // Convert to 0-indexed
	sheet.MaxCol = maxCol

	// Initialize rows
	sheet.Rows = make([][]Cell, maxRow)
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, maxCol+1)
		for j := range sheet.Rows[i] {
			sheet.Rows[i][j] = Cell{
				Row:       i,
				Col:       j,
				Type:      CellTypeEmpty,
				MergeRows: 1,
				MergeCols: 1,
			}
		}
	}

	// Second pass: populate cells
	for _, row := range ws.SheetData.Rows {
		rowIdx := row.R - 1 // Convert to 0-indexed
		if rowIdx < 0 || rowIdx >= len(sheet.Rows) {
			continue
		}

		for _, cx := range row.Cells {
			col, _, err := ParseCellRef(cx.R)
			if err != nil {
				continue
			}
			if col < 0 || col >= len(sheet.Rows[rowIdx]) {
				continue
			}

			cell := &sheet.Rows[rowIdx][col]

			// Determine cell type and value
			switch cx.T {
			case "s": // Shared string
				cell.Type = CellTypeString
				idx, err := strconv.Atoi(cx.V)
				if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
					cell.Value = r.sharedStrings[idx]
				}
			case "b": // Boolean
				cell.Type = CellTypeBoolean
				if cx.V == "1" {
					cell.Value = "TRUE"
				} else {
					cell.Value = "FALSE"
				}
			case "e": // Error
				cell.Type = CellTypeError
				cell.Value = cx.V
			case "str": // Inline string formula result
				cell.Type = CellTypeString
				cell.Value = cx.V
			case "inlineStr": // Inline string
				cell.Type = CellTypeString
				if cx.Is != nil {
					cell.Value = cx.Is.T
				}
			default: // Number or empty
				if cx.V != "" {
					cell.Type = CellTypeNumber
					cell.Value = cx.V
				}
			}
		}
	}

	// Apply merged region info to cells
	for _, mr := range sheet.MergedRegions {
		for row := mr.StartRow; row <= mr.EndRow && row < len(sheet.Rows); row++ {
			for col := mr.StartCol; col <= mr.EndCol && col < len(sheet.Rows[row]); col++ {
				cell := &sheet.Rows[row][col]
				cell.IsMerged = true
				if row == mr.StartRow && col == mr.StartCol {
					cell.IsMergeRoot = true
					cell.MergeRows = mr.EndRow - mr.StartRow + 1
					cell.MergeCols = mr.EndCol - mr.StartCol + 1
				}
			}
		}
	}

	return sheet, nil
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}

// RosterOptions controls how a worksheet is mapped to records.
type RosterOptions struct {
	// Sheet is the worksheet name to read; empty means the first sheet.
	Sheet string

	// Columns names the source columns feeding each record field. Zero
	// fields fall back to the conventional Roll/Name/Email names.
	Columns model.ColumnMap
}

// Roster maps one worksheet to a record set. The first non-empty row inside
// the sheet's content bounds is taken as the header row; rows below it
// become records via the column map, with the Roll column falling back to
// the first column when no header matches.
func (r *Reader) Roster(opts RosterOptions) (*model.Roster, error) {
	var sheet *Sheet
	var err error
	if opts.Sheet == "" {
		sheet, err = r.Sheet(0)
	} else {
		sheet, err = r.SheetByName(opts.Sheet)
	}
	if err != nil {
		return nil, err
	}

	cols := opts.Columns
	if cols == (model.ColumnMap{}) {
		cols = model.DefaultColumnMap()
	}

	headers, rows := splitHeader(sheet.Strings())
	if len(rows) == 0 {
		return nil, ErrNoRoster
	}

	roster := model.BuildRoster(headers, rows, cols)
	if roster.IsEmpty() {
		return nil, ErrNoRoster
	}
	roster.Source.Format = "xlsx"
	roster.Source.Sheet = sheet.Name
	return roster, nil
}

// splitHeader peels the first non-empty row off as the header.
func splitHeader(grid [][]string) (headers []string, rows [][]string) {
	for i, row := range grid {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			return row, grid[i+1:]
		}
	}
	return nil, nil
}
