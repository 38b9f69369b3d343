package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/cohort/allocate"
	"github.com/tsawler/cohort/branch"
	"github.com/tsawler/cohort/model"
)

func testRecords() []model.Record {
	return branch.Tag([]model.Record{
		{Roll: "21CS001", Name: "Asha Verma", Email: "asha@example.edu"},
		{Roll: "21CS002", Name: "Rahul Iyer", Email: "rahul@example.edu"},
		{Roll: "21CS003", Name: "Devi Menon", Email: "devi@example.edu"},
		{Roll: "21EC001", Name: "Meera Nair", Email: "meera@example.edu"},
	})
}

func testAllocation(t *testing.T) (*model.Allocation, *model.Summary) {
	t.Helper()
	a := allocate.NewAllocatorWithConfig(allocate.Config{
		Groups:   2,
		Priority: branch.DefaultPriority(),
	})
	alloc, err := a.Branchwise(testRecords())
	require.NoError(t, err)
	return alloc, allocate.Summarize(alloc)
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "csv", FormatCSV.String())
	assert.Equal(t, "tsv", FormatTSV.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "markdown", FormatMarkdown.String())
	assert.Equal(t, "unknown", Format(99).String())
}

func TestFormat_FileExtension(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.FileExtension())
	assert.Equal(t, ".tsv", FormatTSV.FileExtension())
	assert.Equal(t, ".json", FormatJSON.FileExtension())
	assert.Equal(t, ".md", FormatMarkdown.FileExtension())
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"csv": FormatCSV, "TSV": FormatTSV, "json": FormatJSON,
		"markdown": FormatMarkdown, "md": FormatMarkdown,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestExportAllocation_CSV(t *testing.T) {
	alloc, _ := testAllocation(t)

	out, err := NewExporter().ExportAllocationToString(alloc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5) // header + 4 records
	assert.Equal(t, "Group,Roll,Name,Email,Branch", lines[0])
	assert.Equal(t, "Group 1,21CS001,Asha Verma,asha@example.edu,CS", lines[1])
	assert.Contains(t, out, "Group 2,21CS002")
}

func TestExportAllocation_TSV(t *testing.T) {
	alloc, _ := testAllocation(t)

	out, err := NewExporterWithConfig(TSVConfig()).ExportAllocationToString(alloc)
	require.NoError(t, err)
	assert.Contains(t, out, "Group\tRoll\tName\tEmail\tBranch")
	assert.Contains(t, out, "21EC001\tMeera Nair")
}

func TestExportAllocation_NoHeader(t *testing.T) {
	alloc, _ := testAllocation(t)

	cfg := DefaultConfig()
	cfg.IncludeHeader = false
	out, err := NewExporterWithConfig(cfg).ExportAllocationToString(alloc)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(out, "Group,Roll"))
}

func TestExportAllocation_JSON(t *testing.T) {
	alloc, _ := testAllocation(t)

	out, err := NewExporterWithConfig(JSONConfig()).ExportAllocationToString(alloc)
	require.NoError(t, err)

	var decoded struct {
		Policy string `json:"policy"`
		Stats  struct {
			RecordCount int `json:"RecordCount"`
			PlacedCount int `json:"PlacedCount"`
		} `json:"stats"`
		Groups []struct {
			Name    string         `json:"name"`
			Size    int            `json:"size"`
			Records []model.Record `json:"records"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "branchwise", decoded.Policy)
	assert.Equal(t, 4, decoded.Stats.RecordCount)
	require.Len(t, decoded.Groups, 2)
	assert.Equal(t, "Group 1", decoded.Groups[0].Name)
	assert.Equal(t, decoded.Groups[0].Size, len(decoded.Groups[0].Records))
}

func TestExportAllocation_Markdown(t *testing.T) {
	alloc, _ := testAllocation(t)

	out, err := NewExporterWithConfig(MarkdownConfig()).ExportAllocationToString(alloc)
	require.NoError(t, err)
	assert.Contains(t, out, "## Group 1")
	assert.Contains(t, out, "## Group 2")
	assert.Contains(t, out, "| 21CS001 | Asha Verma |")
}

func TestExportAllocation_MarkdownEmptyGroup(t *testing.T) {
	a := allocate.NewAllocatorWithConfig(allocate.Config{Groups: 3})
	alloc, err := a.Uniform(nil)
	require.NoError(t, err)

	out, err := NewExporterWithConfig(MarkdownConfig()).ExportAllocationToString(alloc)
	require.NoError(t, err)
	assert.Contains(t, out, "_empty_")
}

func TestExportSummary_CSV(t *testing.T) {
	_, summary := testAllocation(t)

	out, err := NewExporter().ExportSummaryToString(summary)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3) // header + 2 groups
	assert.Equal(t, "Group,CS,EC,Total", lines[0])
	assert.Equal(t, "Group 1,1,1,2", lines[1])
	assert.Equal(t, "Group 2,2,0,2", lines[2])
}

func TestExportSummary_JSON(t *testing.T) {
	_, summary := testAllocation(t)

	out, err := NewExporterWithConfig(JSONConfig()).ExportSummaryToString(summary)
	require.NoError(t, err)

	var decoded struct {
		Policy string   `json:"policy"`
		Codes  []string `json:"codes"`
		Rows   []struct {
			Label  string         `json:"label"`
			Counts map[string]int `json:"counts"`
			Total  int            `json:"total"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, []string{"CS", "EC"}, decoded.Codes)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, 1, decoded.Rows[0].Counts["CS"])
	assert.Equal(t, 2, decoded.Rows[0].Total)
}

func TestExportSummary_Markdown(t *testing.T) {
	_, summary := testAllocation(t)

	out, err := NewExporterWithConfig(MarkdownConfig()).ExportSummaryToString(summary)
	require.NoError(t, err)
	assert.Contains(t, out, "| Group | CS | EC | Total |")
}

func TestExportToFile(t *testing.T) {
	alloc, summary := testAllocation(t)
	dir := t.TempDir()

	e := NewExporter()
	require.NoError(t, e.ExportAllocationToFile(alloc, dir+"/alloc.csv"))
	require.NoError(t, e.ExportSummaryToFile(summary, dir+"/summary.csv"))
}

func TestWriteBranchArchive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBranchArchive(&buf, testRecords()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	require.Len(t, zr.File, 2)
	assert.Equal(t, "CS_students.csv", zr.File[0].Name)
	assert.Equal(t, "EC_students.csv", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	var content bytes.Buffer
	_, err = content.ReadFrom(rc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(content.String()), "\n")
	require.Len(t, lines, 4) // header + 3 CS records
	assert.Equal(t, "Roll,Name,Email,Branch", lines[0])
	assert.Equal(t, "21CS001,Asha Verma,asha@example.edu,CS", lines[1])
}

func TestWriteBranchArchive_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBranchArchive(&buf, nil))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}

func TestWriteBranchArchiveFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/branches.zip"
	require.NoError(t, WriteBranchArchiveFile(path, testRecords()))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 2)
}
