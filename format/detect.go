// Package format provides roster source format detection for the cohort library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported roster source format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// CSV indicates a comma-separated values file.
	CSV
	// TSV indicates a tab-separated values file.
	TSV
	// HTML indicates an HTML document with a roster table.
	HTML
	// PNG indicates a PNG image of a scanned roster.
	PNG
	// JPEG indicates a JPEG image of a scanned roster.
	JPEG
	// TIFF indicates a TIFF image of a scanned roster.
	TIFF
	// BMP indicates a BMP image of a scanned roster.
	BMP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XLSX:
		return "XLSX"
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	case HTML:
		return "HTML"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XLSX:
		return ".xlsx"
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	case HTML:
		return ".html"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	case BMP:
		return ".bmp"
	default:
		return ""
	}
}

// IsImage reports whether the format is a scanned-roster image that must
// go through OCR.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP:
		return true
	default:
		return false
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return XLSX
	case ".csv":
		return CSV
	case ".tsv", ".tab":
		return TSV
	case ".html", ".htm":
		return HTML
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone
// (in particular for ZIP archives, where the contents decide — use
// DetectFromReader for those).
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PNG magic: \x89PNG
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return PNG
	}

	// JPEG magic: \xFF\xD8\xFF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return JPEG
	}

	// TIFF magic: II*\x00 (little-endian) or MM\x00* (big-endian)
	if bytes.HasPrefix(data, []byte{'I', 'I', 0x2A, 0x00}) || bytes.HasPrefix(data, []byte{'M', 'M', 0x00, 0x2A}) {
		return TIFF
	}

	// BMP magic: BM
	if data[0] == 'B' && data[1] == 'M' {
		return BMP
	}

	// ZIP magic (XLSX is a ZIP archive): PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		// Could be XLSX or some other ZIP-based format.
		// Return Unknown here - caller should use DetectFromReader for ZIP files.
		return Unknown
	}

	// HTML detection: check for <!DOCTYPE or <html or a bare table
	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<TABLE") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// DetectFromReader inspects the content to determine format.
// This is more reliable than extension-based detection and can identify
// an XLSX workbook regardless of its extension by probing the ZIP contents.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	// Read magic bytes first (need more for HTML detection)
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	// Check for ZIP-based format
	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		// It's a ZIP archive - check contents to see if it is a workbook
		return detectZIPFormat(r, size)
	}

	if f := DetectFromMagic(magic); f != Unknown {
		return f, nil
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's an XLSX workbook.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX, nil
		}
	}

	return Unknown, nil
}
