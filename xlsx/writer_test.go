package xlsx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestWriteWorkbook_Roundtrip(t *testing.T) {
	sheets := []SheetData{
		{
			Name: "Branchwise_Summary",
			Rows: [][]string{
				{"Group", "CS", "EC", "Total"},
				{"Group 1", "2", "1", "3"},
				{"Group 2", "1", "0", "1"},
			},
		},
		{
			Name: "Branchwise_1",
			Rows: [][]string{
				{"Roll", "Name", "Email", "Branch"},
				{"21CS001", "Asha Verma", "asha@example.edu", "CS"},
				{"21EC001", "Meera Nair", "", "EC"},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sheets); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	data := buf.Bytes()
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	if got := r.SheetNames(); got[0] != "Branchwise_Summary" || got[1] != "Branchwise_1" {
		t.Errorf("SheetNames() = %v", got)
	}

	sheet, err := r.SheetByName("Branchwise_1")
	if err != nil {
		t.Fatal(err)
	}
	got := sheet.Strings()
	for i, want := range sheets[1].Rows {
		for j, cell := range want {
			if got[i][j] != cell {
				t.Errorf("cell (%d,%d) = %q, want %q", i, j, got[i][j], cell)
			}
		}
	}
}

func TestWriteWorkbook_NoSheets(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, nil); err == nil {
		t.Error("WriteWorkbook() expected error for empty sheet list")
	}
}

func TestWriteWorkbook_RequiredParts(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf, []SheetData{{Name: "Sheet1", Rows: [][]string{{"a"}}}})
	if err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		"[Content_Types].xml":        false,
		"_rels/.rels":                false,
		"xl/workbook.xml":            false,
		"xl/_rels/workbook.xml.rels": false,
		"xl/styles.xml":              false,
		"xl/worksheets/sheet1.xml":   false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("workbook missing part %s", name)
		}
	}
}

func TestWriteWorkbook_EscapesXML(t *testing.T) {
	sheets := []SheetData{{
		Name: "Sheet1",
		Rows: [][]string{
			{"Roll", "Name"},
			{"21CS001", `Asha <A&B> "Verma"`},
		},
	}}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sheets); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	data := buf.Bytes()
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	sheet, _ := r.Sheet(0)
	if got := sheet.Cell(1, 1).Value; got != `Asha <A&B> "Verma"` {
		t.Errorf("escaped cell = %q", got)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Sheet"},
		{"Branchwise_1", "Branchwise_1"},
		{"bad:name/with*chars?", "bad_name_with_chars_"},
		{"[brackets]", "_brackets_"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		if got := SanitizeSheetName(tt.in); got != tt.want {
			t.Errorf("SanitizeSheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
