// Package branch derives two-letter branch codes from student roll numbers
// and provides tally helpers over tagged records.
//
// A branch code is the first run of two consecutive uppercase ASCII letters
// found anywhere in the roll number. Rolls with no such run, including empty
// rolls, map to the [Unknown] sentinel. Extraction is pure and deterministic,
// and extracting from a bare code returns that code unchanged.
package branch

import (
	"regexp"

	"github.com/tsawler/cohort/model"
)

// Unknown is the sentinel code assigned when no branch can be derived.
const Unknown = "NA"

var codePattern = regexp.MustCompile(`[A-Z]{2}`)

// Extract returns the branch code for a roll number: the first two
// consecutive uppercase ASCII letters in the string, or Unknown when the
// roll is empty or contains no such pair. It never fails.
//
// Example:
//
//	branch.Extract("21CS001") // "CS"
//	branch.Extract("24AIML0042") // "AI"
//	branch.Extract("12345") // "NA"
func Extract(roll string) string {
	if code := codePattern.FindString(roll); code != "" {
		return code
	}
	return Unknown
}

// Tag returns a copy of the records with Branch derived from each Roll.
// Input records are not modified.
func Tag(records []model.Record) []model.Record {
	tagged := make([]model.Record, len(records))
	for i, rec := range records {
		rec.Branch = Extract(rec.Roll)
		tagged[i] = rec
	}
	return tagged
}

// Counts returns the number of records per branch code.
func Counts(records []model.Record) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Branch]++
	}
	return counts
}

// Codes returns the distinct branch codes in first-seen order.
func Codes(records []model.Record) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, rec := range records {
		if !seen[rec.Branch] {
			seen[rec.Branch] = true
			codes = append(codes, rec.Branch)
		}
	}
	return codes
}
