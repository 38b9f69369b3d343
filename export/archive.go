package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/cohort/branch"
	"github.com/tsawler/cohort/model"
)

// WriteBranchArchive writes a ZIP archive holding one CSV per branch,
// named {code}_students.csv, with records in original roster order and the
// standard Roll,Name,Email,Branch header. Branch entries appear in
// first-seen order.
func WriteBranchArchive(w io.Writer, records []model.Record) error {
	zw := zip.NewWriter(w)

	byBranch := make(map[string][]model.Record)
	for _, rec := range records {
		byBranch[rec.Branch] = append(byBranch[rec.Branch], rec)
	}

	for _, code := range branch.Codes(records) {
		f, err := zw.Create(fmt.Sprintf("%s_students.csv", code))
		if err != nil {
			return fmt.Errorf("creating archive entry for %s: %w", code, err)
		}

		cw := csv.NewWriter(f)
		if err := cw.Write(recordHeader); err != nil {
			return err
		}
		for _, rec := range byBranch[code] {
			if err := cw.Write(recordRow(rec)); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("writing archive entry for %s: %w", code, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// WriteBranchArchiveFile writes the per-branch ZIP to the named file.
func WriteBranchArchiveFile(filename string, records []model.Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	if err := WriteBranchArchive(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
