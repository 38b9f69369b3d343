package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{XLSX, "XLSX"},
		{CSV, "CSV"},
		{TSV, "TSV"},
		{HTML, "HTML"},
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{TIFF, "TIFF"},
		{BMP, "BMP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{XLSX, ".xlsx"},
		{CSV, ".csv"},
		{TSV, ".tsv"},
		{HTML, ".html"},
		{PNG, ".png"},
		{JPEG, ".jpg"},
		{TIFF, ".tiff"},
		{BMP, ".bmp"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_IsImage(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{PNG, true},
		{JPEG, true},
		{TIFF, true},
		{BMP, true},
		{XLSX, false},
		{CSV, false},
		{HTML, false},
		{Unknown, false},
	}

	for _, tt := range tests {
		if got := tt.format.IsImage(); got != tt.want {
			t.Errorf("%v.IsImage() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"roster.xlsx", XLSX},
		{"roster.XLSX", XLSX},
		{"roster.Xlsx", XLSX},
		{"roster.csv", CSV},
		{"roster.CSV", CSV},
		{"roster.tsv", TSV},
		{"roster.tab", TSV},
		{"roster.html", HTML},
		{"roster.HTML", HTML},
		{"roster.htm", HTML},
		{"scan.png", PNG},
		{"scan.jpg", JPEG},
		{"scan.jpeg", JPEG},
		{"scan.tif", TIFF},
		{"scan.tiff", TIFF},
		{"scan.bmp", BMP},
		{"roster.txt", Unknown},
		{"roster", Unknown},
		{"", Unknown},
		{"/path/to/roster.xlsx", XLSX},
		{"/path/to/roster.csv", CSV},
		{"/path/to/scan.png", PNG},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "PNG magic bytes",
			data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A},
			want: PNG,
		},
		{
			name: "JPEG magic bytes",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			want: JPEG,
		},
		{
			name: "TIFF little-endian",
			data: []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00},
			want: TIFF,
		},
		{
			name: "TIFF big-endian",
			data: []byte{'M', 'M', 0x00, 0x2A, 0x00, 0x08},
			want: TIFF,
		},
		{
			name: "BMP magic bytes",
			data: []byte{'B', 'M', 0x36, 0x00, 0x00, 0x00},
			want: BMP,
		},
		{
			name: "ZIP magic bytes (XLSX)",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown, // ZIP needs further inspection
		},
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "bare table fragment",
			data: []byte("<table><tr><td>21CS001</td></tr></table>"),
			want: HTML,
		},
		{
			name: "HTML with whitespace before DOCTYPE",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "XHTML with XML declaration",
			data: []byte(`<?xml version="1.0" encoding="UTF-8"?><html xmlns="http://www.w3.org/1999/xhtml">`),
			want: HTML,
		},
		{
			name: "XML declaration without html",
			data: []byte(`<?xml version="1.0"?><rows><row/></rows>`),
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "short data",
			data: []byte{0x50, 0x4B},
			want: Unknown,
		},
		{
			name: "random data",
			data: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Roll,Name,Email"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_XLSX(t *testing.T) {
	// Build a minimal ZIP with an xl/ entry
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("xl/workbook.xml")
	if err != nil {
		t.Fatalf("creating ZIP entry: %v", err)
	}
	w.Write([]byte("<workbook/>"))
	if err := zw.Close(); err != nil {
		t.Fatalf("closing ZIP: %v", err)
	}

	data := buf.Bytes()
	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != XLSX {
		t.Errorf("DetectFromReader() = %v, want XLSX", format)
	}
}

func TestDetectFromReader_NonWorkbookZIP(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("readme.txt")
	w.Write([]byte("not a workbook"))
	zw.Close()

	data := buf.Bytes()
	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFromReader_HTML(t *testing.T) {
	data := []byte("<!DOCTYPE html>\n<html><head><title>Roster</title></head><body></body></html>")
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != HTML {
		t.Errorf("DetectFromReader() = %v, want HTML", format)
	}
}

func TestDetectFromReader_Image(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PNG {
		t.Errorf("DetectFromReader() = %v, want PNG", format)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Roll,Name,Email - plain text, not detectable from content.")
	r := bytes.NewReader(data)

	format, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}
