package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/cohort/model"
)

// ErrNoTable is returned when a document holds no table at all.
var ErrNoTable = errors.New("htmldoc: document contains no table")

// ErrNoRoster is returned when the chosen table holds no usable rows.
var ErrNoRoster = errors.New("htmldoc: table contains no roster rows")

// Reader provides access to the tables of an HTML document.
type Reader struct {
	doc    *html.Node
	title  string
	tables []*ParsedTable
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	if title := findElement(doc, "title"); title != nil {
		reader.title = getTextContent(title)
	}
	reader.collectTables(doc)

	return reader, nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string {
	return r.title
}

// Tables returns every table found in the document, in document order.
func (r *Reader) Tables() []*ParsedTable {
	return r.tables
}

// DensestTable returns the table covering the most grid positions, the
// default roster candidate on pages that mix layout and data tables.
// Returns nil when the document has no tables.
func (r *Reader) DensestTable() *ParsedTable {
	var best *ParsedTable
	bestCount := 0
	for _, t := range r.tables {
		if c := t.CellCount(); c > bestCount {
			best, bestCount = t, c
		}
	}
	return best
}

// Options controls how a table is mapped to records.
type Options struct {
	// TableIndex selects a table by document order; negative means pick
	// the densest table.
	TableIndex int

	// Columns names the source columns feeding each record field. Zero
	// fields fall back to the conventional Roll/Name/Email names.
	Columns model.ColumnMap
}

// Roster maps one table to a record set. The table's first row is the
// header row; rows below it become records via the column map, with the
// Roll column falling back to the first column when no header matches.
func (r *Reader) Roster(opts Options) (*model.Roster, error) {
	var table *ParsedTable
	if opts.TableIndex < 0 {
		table = r.DensestTable()
	} else {
		if opts.TableIndex >= len(r.tables) {
			return nil, fmt.Errorf("htmldoc: table index %d out of range (document has %d)", opts.TableIndex, len(r.tables))
		}
		table = r.tables[opts.TableIndex]
	}
	if table == nil {
		return nil, ErrNoTable
	}

	grid := table.Grid()
	if len(grid) < 2 {
		return nil, ErrNoRoster
	}

	cols := opts.Columns
	if cols == (model.ColumnMap{}) {
		cols = model.DefaultColumnMap()
	}

	roster := model.BuildRoster(grid[0], grid[1:], cols)
	if roster.IsEmpty() {
		return nil, ErrNoRoster
	}
	roster.Source.Format = "html"
	return roster, nil
}

// collectTables walks the DOM gathering every table element.
func (r *Reader) collectTables(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "table" {
			if table := parseTable(n); table != nil && len(table.Rows) > 0 {
				r.tables = append(r.tables, table)
			}
			return // Nested tables inside cells are not roster candidates
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectTables(c)
	}
}

// parseTable extracts a table from an HTML table element.
func parseTable(tableNode *html.Node) *ParsedTable {
	table := &ParsedTable{
		Rows: make([][]TableCell, 0),
	}

	// Find thead, tbody, or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "thead":
				table.HasHeader = true
				parseTableRows(c, table, true)
			case "tbody":
				parseTableRows(c, table, false)
			case "tr":
				row := parseTableRow(c, false)
				if len(row) > 0 {
					table.Rows = append(table.Rows, row)
				}
			}
		}
	}

	// If no explicit header but first row has th elements, mark as header
	if !table.HasHeader && len(table.Rows) > 0 {
		for _, cell := range table.Rows[0] {
			if cell.IsHeader {
				table.HasHeader = true
				break
			}
		}
	}

	return table
}

// parseTableRows parses rows within thead or tbody.
func parseTableRows(section *html.Node, table *ParsedTable, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			row := parseTableRow(c, isHeader)
			if len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
	}
}

// parseTableRow parses a single table row.
func parseTableRow(tr *html.Node, isHeader bool) []TableCell {
	row := make([]TableCell, 0)

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cell := TableCell{
				Text:     strings.TrimSpace(getTextContent(c)),
				IsHeader: isHeader || c.Data == "th",
				RowSpan:  1,
				ColSpan:  1,
			}

			// Parse rowspan and colspan
			for _, attr := range c.Attr {
				switch attr.Key {
				case "rowspan":
					fmt.Sscanf(attr.Val, "%d", &cell.RowSpan)
				case "colspan":
					fmt.Sscanf(attr.Val, "%d", &cell.ColSpan)
				}
			}

			row = append(row, cell)
		}
	}

	return row
}

// shouldSkipElement returns true if the element's subtree never holds
// roster content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		// Skip script/style content
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
