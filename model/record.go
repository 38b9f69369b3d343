package model

import "strings"

// Record represents a single student row after ingestion. Branch is derived
// from Roll during tagging; every other field is copied verbatim from the
// source, defaulting to the empty string when the source has no such column.
// Records are value types and are never mutated after ingestion.
type Record struct {
	Roll   string
	Name   string
	Email  string
	Branch string
}

// Roster is an ingested record set together with information about where it
// came from. Readers produce a Roster; the allocators consume its Records.
type Roster struct {
	Records []Record
	Source  SourceInfo
}

// SourceInfo describes the origin of a roster.
type SourceInfo struct {
	Path    string   // File the roster was read from, if any
	Format  string   // Detected source format ("xlsx", "csv", ...)
	Sheet   string   // Worksheet name for spreadsheet sources
	Headers []string // Source column headers, in original order
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		Records: make([]Record, 0),
	}
}

// Add appends a record to the roster.
func (r *Roster) Add(rec Record) {
	r.Records = append(r.Records, rec)
}

// Len returns the number of records in the roster.
func (r *Roster) Len() int {
	return len(r.Records)
}

// IsEmpty reports whether the roster contains no records.
func (r *Roster) IsEmpty() bool {
	return len(r.Records) == 0
}

// HeaderIndex returns the index of the named source column, matching
// case-insensitively, or -1 if the roster has no such header.
func (r *Roster) HeaderIndex(name string) int {
	for i, h := range r.Headers() {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// Headers returns the source column headers.
func (r *Roster) Headers() []string {
	return r.Source.Headers
}
