// Package cohort provides a fluent API for splitting student rosters into
// groups, either balanced across academic branches or packed uniformly.
//
// Basic usage:
//
//	alloc, warnings, err := cohort.Load("students.xlsx").Branchwise()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cohort.FormatWarnings(warnings))
//	}
//
// With options:
//
//	alloc, _, err := cohort.Load("students.csv").
//	    Groups(8).
//	    RollColumn("Roll Number").
//	    Uniform()
//
// For advanced use cases, the lower-level xlsx, csvdoc, htmldoc and allocate
// packages are also available.
package cohort

import (
	"github.com/tsawler/cohort/model"
)

// Load opens a roster file and returns a Grouper for fluent configuration.
// The format is detected from the filename extension; XLSX workbooks, CSV and
// TSV files, HTML pages and scanned images are supported. The file is read
// lazily by the first terminal operation.
//
// Example:
//
//	alloc, warnings, err := cohort.Load("students.xlsx").Branchwise()
func Load(filename string) *Grouper {
	return &Grouper{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromRecords creates a Grouper over an in-memory record set. The records
// are branch-tagged during the terminal operation; any Branch values already
// present are recomputed from Roll.
func FromRecords(records []model.Record) *Grouper {
	roster := model.NewRoster()
	roster.Records = append(roster.Records, records...)
	roster.Source.Format = "memory"
	return FromRoster(roster)
}

// FromRoster creates a Grouper from an already-loaded roster. This is useful
// when the roster came from one of the lower-level readers directly.
//
// Example:
//
//	r, err := csvdoc.Open("students.csv", csvdoc.Options{})
//	if err != nil {
//	    // handle error
//	}
//	alloc, warnings, err := cohort.FromRoster(r).Branchwise()
func FromRoster(roster *model.Roster) *Grouper {
	return &Grouper{
		roster:  roster,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	counts := cohort.Must(branchTally())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a terminal operation and panics if the
// error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	alloc := cohort.MustResult(cohort.Load("students.xlsx").Branchwise())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
