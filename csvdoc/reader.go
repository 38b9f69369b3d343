// Package csvdoc reads CSV and TSV rosters, decoding legacy character sets
// on the way in.
package csvdoc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/cohort/model"
)

// ErrNoRoster is returned when the source holds no data rows.
var ErrNoRoster = errors.New("csvdoc: source contains no roster rows")

// Options controls CSV parsing and column mapping.
type Options struct {
	// Delimiter is the field separator; zero means comma. Pass '\t' for
	// TSV input.
	Delimiter rune

	// Encoding names the source character set: "utf-8" (default),
	// "latin-1" (ISO 8859-1) or "windows-1252". A UTF-8 byte order mark
	// is stripped regardless.
	Encoding string

	// Columns names the source columns feeding each record field. Zero
	// fields fall back to the conventional Roll/Name/Email names.
	Columns model.ColumnMap
}

// Open reads a roster from a CSV or TSV file.
func Open(filename string, opts Options) (*model.Roster, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	roster, err := Read(f, opts)
	if err != nil {
		return nil, err
	}
	roster.Source.Path = filename
	return roster, nil
}

// Read reads a roster from CSV or TSV content. The first row is the header
// row; rows below it become records via the column map, with the Roll
// column falling back to the first column when no header matches.
func Read(r io.Reader, opts Options) (*model.Roster, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	decoded := transform.NewReader(r, enc.NewDecoder())

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1 // Ragged rows are tolerated; short rows default fields
	cr.TrimLeadingSpace = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRoster
	}

	cols := opts.Columns
	if cols == (model.ColumnMap{}) {
		cols = model.DefaultColumnMap()
	}

	roster := model.BuildRoster(rows[0], rows[1:], cols)
	if roster.IsEmpty() {
		return nil, ErrNoRoster
	}
	if opts.Delimiter == '\t' {
		roster.Source.Format = "tsv"
	} else {
		roster.Source.Format = "csv"
	}
	return roster, nil
}

// lookupEncoding maps an encoding name to a decoder. The UTF-8 decoder is
// BOM-tolerant so exports from spreadsheet applications load cleanly.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}
