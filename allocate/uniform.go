package allocate

import (
	"fmt"
	"sort"

	"github.com/tsawler/cohort/branch"
	"github.com/tsawler/cohort/model"
)

// Uniform distributes records into groups by per-branch chunking followed by
// leftover merging.
//
// The chunk size is ceil(total/N). Branches are processed in descending
// population order, ties by first appearance; each branch's records are cut
// in original row order into consecutive full chunks, every full chunk
// becoming a finalized group. Under-sized tails become leftover blocks,
// which are sorted by descending length and merged front-to-back: the
// longest block seeds a group and absorbs following blocks whole while they
// fit; a block too large for the remaining capacity is split, its prefix
// filling the group exactly and its suffix returning to the front of the
// queue. Groups are padded with empty ones up to N.
//
// Unlike Branchwise, this policy places every record: a mismatch between
// input and output counts means a defect and is reported as an error.
func (a *Allocator) Uniform(records []model.Record) (*model.Allocation, error) {
	if err := a.checkGroups(); err != nil {
		return nil, err
	}

	n := a.config.Groups
	total := len(records)
	chunk := (total + n - 1) / n

	byBranch := make(map[string][]model.Record)
	for _, rec := range records {
		byBranch[rec.Branch] = append(byBranch[rec.Branch], rec)
	}

	codes := branch.Codes(records)
	counts := branch.Counts(records)
	sort.SliceStable(codes, func(i, j int) bool {
		return counts[codes[i]] > counts[codes[j]]
	})

	var finalized [][]model.Record
	var leftovers [][]model.Record
	for _, code := range codes {
		list := byBranch[code]
		for chunk > 0 && len(list) >= chunk {
			finalized = append(finalized, list[:chunk])
			list = list[chunk:]
		}
		if len(list) > 0 {
			leftovers = append(leftovers, list)
		}
	}

	sort.SliceStable(leftovers, func(i, j int) bool {
		return len(leftovers[i]) > len(leftovers[j])
	})

	for len(leftovers) > 0 {
		seed := leftovers[0]
		leftovers = leftovers[1:]

		space := chunk - len(seed)
		for space > 0 && len(leftovers) > 0 {
			blk := leftovers[0]
			leftovers = leftovers[1:]

			if len(blk) <= space {
				seed = append(seed, blk...)
				space -= len(blk)
				continue
			}
			seed = append(seed, blk[:space]...)
			leftovers = append([][]model.Record{blk[space:]}, leftovers...)
			space = 0
		}
		finalized = append(finalized, seed)
	}

	for len(finalized) < n {
		finalized = append(finalized, nil)
	}

	groups := make([]*model.Group, len(finalized))
	placed := 0
	for i, recs := range finalized {
		groups[i] = &model.Group{Index: i, Records: recs}
		placed += len(recs)
	}

	if placed != total || len(groups) != n {
		return nil, fmt.Errorf("uniform allocation defect: placed %d of %d records into %d of %d groups",
			placed, total, len(groups), n)
	}

	return buildAllocation(model.PolicyUniform, groups, total), nil
}
