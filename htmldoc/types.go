// Package htmldoc reads rosters out of HTML tables.
package htmldoc

// ParsedTable represents a table extracted from HTML.
type ParsedTable struct {
	Rows      [][]TableCell
	HasHeader bool
}

// TableCell represents a cell in an HTML table.
type TableCell struct {
	Text     string
	IsHeader bool
	RowSpan  int
	ColSpan  int
}

// CellCount returns the number of grid positions the table covers after
// span expansion. It is the density measure used to pick the roster table
// out of a page.
func (t *ParsedTable) CellCount() int {
	n := 0
	for _, row := range t.Rows {
		for _, cell := range row {
			n += spanOf(cell.RowSpan) * spanOf(cell.ColSpan)
		}
	}
	return n
}

func spanOf(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Grid expands the table into a string grid, spreading cells across the
// rows and columns their rowspan/colspan attributes cover. Only the origin
// position keeps the cell text; covered positions come back empty, matching
// how a roster export reads.
func (t *ParsedTable) Grid() [][]string {
	if len(t.Rows) == 0 {
		return nil
	}

	// occupied tracks positions claimed by spans from earlier rows
	occupied := make(map[[2]int]bool)
	grid := make([][]string, 0, len(t.Rows))

	for r, row := range t.Rows {
		var line []string
		col := 0

		for _, cell := range row {
			// Advance past positions covered from above
			for occupied[[2]int{r, col}] {
				line = append(line, "")
				col++
			}

			rs, cs := spanOf(cell.RowSpan), spanOf(cell.ColSpan)
			origin := col

			line = append(line, cell.Text)
			col++
			for i := 1; i < cs; i++ {
				line = append(line, "")
				col++
			}
			for dr := 1; dr < rs; dr++ {
				for dc := 0; dc < cs; dc++ {
					occupied[[2]int{r + dr, origin + dc}] = true
				}
			}
		}

		// Trailing positions covered by spans from above
		for occupied[[2]int{r, col}] {
			line = append(line, "")
			col++
		}

		grid = append(grid, line)
	}

	return grid
}
