package cohort

import "github.com/tsawler/cohort/allocate"

// GroupOptions holds configuration for roster loading and allocation.
type GroupOptions struct {
	// Allocation
	groups   int
	priority []string

	// Column mapping (matched case-insensitively against source headers)
	rollColumn  string
	nameColumn  string
	emailColumn string

	// Source selection
	sheet     string // worksheet name for spreadsheet sources
	delimiter rune   // field delimiter for CSV sources
	language  string // recognition language for scanned sources
}

// defaultOptions returns the default grouping options.
func defaultOptions() GroupOptions {
	return GroupOptions{
		groups:      allocate.DefaultGroups,
		priority:    nil, // nil means the canonical priority order
		rollColumn:  "Roll",
		nameColumn:  "Name",
		emailColumn: "Email",
		sheet:       "", // "" means the first sheet
		delimiter:   0,  // 0 means comma, or tab for .tsv sources
		language:    "eng",
	}
}

// clone creates a deep copy of GroupOptions.
func (o GroupOptions) clone() GroupOptions {
	newOpts := GroupOptions{
		groups:      o.groups,
		rollColumn:  o.rollColumn,
		nameColumn:  o.nameColumn,
		emailColumn: o.emailColumn,
		sheet:       o.sheet,
		delimiter:   o.delimiter,
		language:    o.language,
	}

	// Deep copy priority slice
	if o.priority != nil {
		newOpts.priority = make([]string, len(o.priority))
		copy(newOpts.priority, o.priority)
	}

	return newOpts
}
