package model

import (
	"strconv"
	"strings"
)

// Summary is the branch × group count matrix for one allocation. It always
// has exactly one row per group, empty groups included, and one column per
// observed branch code plus a trailing Total column.
type Summary struct {
	Policy Policy
	Codes  []string // Branch codes in column order (sorted lexicographically)
	Rows   []SummaryRow
}

// SummaryRow is one group's counts.
type SummaryRow struct {
	Label  string // "Group 1".."Group N"
	Counts []int  // One count per code, same order as Summary.Codes
	Total  int    // Group size; equals the sum of Counts
}

// RowCount returns the number of rows (always the group count N).
func (s *Summary) RowCount() int {
	return len(s.Rows)
}

// ColCount returns the number of columns including the Total column.
func (s *Summary) ColCount() int {
	return len(s.Codes) + 1
}

// Count returns the count for a branch code in a 1-based group number.
// Unknown codes and out-of-range groups return 0.
func (s *Summary) Count(group int, code string) int {
	if group < 1 || group > len(s.Rows) {
		return 0
	}
	for i, c := range s.Codes {
		if c == code {
			return s.Rows[group-1].Counts[i]
		}
	}
	return 0
}

// GrandTotal returns the sum of the Total column, i.e. the number of records
// across all groups.
func (s *Summary) GrandTotal() int {
	n := 0
	for _, row := range s.Rows {
		n += row.Total
	}
	return n
}

// ColumnTotal returns the sum of one branch column across all groups.
func (s *Summary) ColumnTotal(code string) int {
	n := 0
	for i, c := range s.Codes {
		if c != code {
			continue
		}
		for _, row := range s.Rows {
			n += row.Counts[i]
		}
	}
	return n
}

// Header returns the column headers: the group-label column, the branch
// codes, then "Total".
func (s *Summary) Header() []string {
	header := make([]string, 0, len(s.Codes)+2)
	header = append(header, "Group")
	header = append(header, s.Codes...)
	header = append(header, "Total")
	return header
}

// Cells returns the matrix as display strings, one slice per row, columns
// matching Header().
func (s *Summary) Cells() [][]string {
	out := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		cells := make([]string, 0, len(row.Counts)+2)
		cells = append(cells, row.Label)
		for _, n := range row.Counts {
			cells = append(cells, strconv.Itoa(n))
		}
		cells = append(cells, strconv.Itoa(row.Total))
		out[i] = cells
	}
	return out
}

// ToCSV converts the summary to CSV format
func (s *Summary) ToCSV() string {
	var sb strings.Builder
	writeRow := func(cells []string) {
		for j, text := range cells {
			// Escape quotes and wrap in quotes if necessary
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(cells)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	writeRow(s.Header())
	for _, cells := range s.Cells() {
		writeRow(cells)
	}
	return sb.String()
}

// ToMarkdown converts the summary to markdown table format
func (s *Summary) ToMarkdown() string {
	header := s.Header()
	if len(s.Rows) == 0 && len(header) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, text := range header {
		sb.WriteString("| ")
		sb.WriteString(text)
		sb.WriteString(" ")
		if j == len(header)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range header {
		sb.WriteString("|---")
		if j == len(header)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for _, cells := range s.Cells() {
		for j, text := range cells {
			sb.WriteString("| ")
			sb.WriteString(text)
			sb.WriteString(" ")
			if j == len(cells)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

