package allocate

import (
	"sort"

	"github.com/tsawler/cohort/model"
)

// Summarize compiles the branch-by-group count matrix for an allocation.
//
// Columns are the branch codes observed anywhere in the allocation's groups,
// sorted lexicographically, plus a trailing Total column holding each
// group's size. There is exactly one row per group, labelled "Group 1"
// through "Group N", empty groups included. An allocation with no records
// yields a matrix with only the Total column, all zero.
func Summarize(alloc *model.Allocation) *model.Summary {
	codes := alloc.BranchCodes()
	sort.Strings(codes)

	index := make(map[string]int, len(codes))
	for i, code := range codes {
		index[code] = i
	}

	summary := &model.Summary{
		Policy: alloc.Policy,
		Codes:  codes,
		Rows:   make([]model.SummaryRow, len(alloc.Groups)),
	}
	for i, g := range alloc.Groups {
		row := model.SummaryRow{
			Label:  g.Name(),
			Counts: make([]int, len(codes)),
			Total:  g.Size(),
		}
		for _, rec := range g.Records {
			row.Counts[index[rec.Branch]]++
		}
		summary.Rows[i] = row
	}
	return summary
}
