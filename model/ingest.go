package model

import "strings"

// ColumnMap names the source columns that feed each Record field. Matching
// against source headers is case-insensitive and ignores surrounding
// whitespace.
type ColumnMap struct {
	Roll  string
	Name  string
	Email string
}

// DefaultColumnMap returns the conventional roster column names.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{Roll: "Roll", Name: "Name", Email: "Email"}
}

// BuildRoster maps a header row plus data rows into a Roster. The Roll
// column falls back to the first column when no header matches; Name and
// Email default to the empty string when their columns are missing, so every
// record carries all required fields before allocation runs. Rows with no
// cell content at all are skipped. Branch tagging is left to the caller.
func BuildRoster(headers []string, rows [][]string, cols ColumnMap) *Roster {
	roster := NewRoster()
	roster.Source.Headers = append([]string(nil), headers...)

	rollIdx := headerIndex(headers, cols.Roll)
	if rollIdx < 0 {
		rollIdx = 0
	}
	nameIdx := headerIndex(headers, cols.Name)
	emailIdx := headerIndex(headers, cols.Email)

	for _, row := range rows {
		if rowEmpty(row) {
			continue
		}
		roster.Add(Record{
			Roll:  cellAt(row, rollIdx),
			Name:  cellAt(row, nameIdx),
			Email: cellAt(row, emailIdx),
		})
	}
	return roster
}

func headerIndex(headers []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
