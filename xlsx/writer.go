package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// SheetData is one worksheet to be written: a name and a grid of string
// cells. The first row is conventionally the header row, but the writer
// does not treat it specially.
type SheetData struct {
	Name string
	Rows [][]string
}

// WriteWorkbookFile writes a workbook of the given sheets to a file.
func WriteWorkbookFile(filename string, sheets []SheetData) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating workbook file: %w", err)
	}
	if err := WriteWorkbook(f, sheets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteWorkbook writes an XLSX workbook containing the given sheets.
// Cell values are written as inline strings, so no shared-string table is
// produced. Sheet names are sanitized to satisfy the 31-character and
// forbidden-character rules; at least one sheet is required.
func WriteWorkbook(w io.Writer, sheets []SheetData) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	zw := zip.NewWriter(w)

	write := func(name string, data []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		return nil
	}

	if err := write("[Content_Types].xml", contentTypesXML(len(sheets))); err != nil {
		return err
	}
	if err := write("_rels/.rels", rootRelsXML()); err != nil {
		return err
	}
	if err := write("xl/workbook.xml", workbookFileXML(sheets)); err != nil {
		return err
	}
	if err := write("xl/_rels/workbook.xml.rels", workbookRelsXML(len(sheets))); err != nil {
		return err
	}
	if err := write("xl/styles.xml", stylesFileXML()); err != nil {
		return err
	}
	for i, sheet := range sheets {
		name := fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		if err := write(name, worksheetFileXML(sheet)); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing workbook archive: %w", err)
	}
	return nil
}

// SanitizeSheetName makes a string usable as a worksheet name: forbidden
// characters become underscores and the result is clipped to Excel's
// 31-character limit. An empty name becomes "Sheet".
func SanitizeSheetName(name string) string {
	if name == "" {
		return "Sheet"
	}
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if len(clean) > 31 {
		clean = clean[:31]
	}
	return clean
}

func contentTypesXML(sheetCount int) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`)
	b.WriteString(`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>`)
	for i := 1; i <= sheetCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/xl/worksheets/sheet%d.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.Bytes()
}

func rootRelsXML() []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsPackageRels)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>`)
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func workbookFileXML(sheets []SheetData) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<workbook xmlns="%s" xmlns:r="%s">`, nsSpreadsheetML, nsRelationships)
	b.WriteString(`<sheets>`)
	for i, sheet := range sheets {
		fmt.Fprintf(&b, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`,
			escapeXML(SanitizeSheetName(sheet.Name)), i+1, i+1)
	}
	b.WriteString(`</sheets>`)
	b.WriteString(`</workbook>`)
	return b.Bytes()
}

func workbookRelsXML(sheetCount int) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsPackageRels)
	for i := 1; i <= sheetCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`, i, i)
	}
	fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`, sheetCount+1)
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

// stylesFileXML emits the minimal style sheet some spreadsheet applications
// insist on finding.
func stylesFileXML() []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<styleSheet xmlns="%s">`, nsSpreadsheetML)
	b.WriteString(`<fonts count="1"><font><sz val="11"/><name val="Calibri"/></font></fonts>`)
	b.WriteString(`<fills count="1"><fill><patternFill patternType="none"/></fill></fills>`)
	b.WriteString(`<borders count="1"><border/></borders>`)
	b.WriteString(`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>`)
	b.WriteString(`<cellXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/></cellXfs>`)
	b.WriteString(`</styleSheet>`)
	return b.Bytes()
}

func worksheetFileXML(sheet SheetData) []byte {
	maxCol := 0
	for _, row := range sheet.Rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<worksheet xmlns="%s">`, nsSpreadsheetML)
	if len(sheet.Rows) > 0 && maxCol > 0 {
		fmt.Fprintf(&b, `<dimension ref="A1:%s"/>`, CellRef(maxCol-1, len(sheet.Rows)-1))
	}
	b.WriteString(`<sheetData>`)
	for i, row := range sheet.Rows {
		fmt.Fprintf(&b, `<row r="%d">`, i+1)
		for j, value := range row {
			if value == "" {
				continue
			}
			fmt.Fprintf(&b, `<c r="%s" t="inlineStr"><is><t xml:space="preserve">%s</t></is></c>`,
				CellRef(j, i), escapeXML(value))
		}
		b.WriteString(`</row>`)
	}
	b.WriteString(`</sheetData>`)
	b.WriteString(`</worksheet>`)
	return b.Bytes()
}

// escapeXML escapes a string for inclusion in XML character data or an
// attribute value.
func escapeXML(s string) string {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
