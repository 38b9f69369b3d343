package allocate

import (
	"github.com/tsawler/cohort/branch"
	"github.com/tsawler/cohort/model"
)

// Branchwise distributes records into groups by round-robin draws over the
// priority cycle.
//
// Each observed branch keeps a FIFO stock of its records in original row
// order. Group targets differ by at most one: with total records T and N
// groups, the first T mod N groups get one record more than the rest. Groups
// fill in index order; within a group, rounds sweep the draw cycle popping
// one record from every non-empty stock until the target is met.
//
// A round that moves no record ends the group's filling even if its target
// is unmet. This early exit is a documented terminal condition, not an
// error: once stocks exhaust, the remaining groups stay deficient or empty
// and the allocation's PlacedCount falls short of its RecordCount. Callers
// must not assume every group reaches its target.
func (a *Allocator) Branchwise(records []model.Record) (*model.Allocation, error) {
	if err := a.checkGroups(); err != nil {
		return nil, err
	}

	cycle := drawCycle(records, a.config.Priority)

	stocks := make(map[string][]model.Record, len(cycle))
	for _, rec := range records {
		stocks[rec.Branch] = append(stocks[rec.Branch], rec)
	}

	n := a.config.Groups
	base, remainder := len(records)/n, len(records)%n

	groups := make([]*model.Group, n)
	for i := 0; i < n; i++ {
		target := base
		if i < remainder {
			target++
		}
		groups[i] = &model.Group{Index: i, Records: drawRounds(cycle, stocks, target)}
	}

	return buildAllocation(model.PolicyBranchwise, groups, len(records)), nil
}

// drawRounds fills one group: each round sweeps the cycle once, popping one
// record from every non-empty stock while the group is under target. A round
// that pops nothing ends the fill, leaving the group short of its target.
func drawRounds(cycle []string, stocks map[string][]model.Record, target int) []model.Record {
	var recs []model.Record
	for len(recs) < target {
		moved := false
		for _, code := range cycle {
			if len(recs) >= target {
				break
			}
			stock := stocks[code]
			if len(stock) == 0 {
				continue
			}
			recs = append(recs, stock[0])
			stocks[code] = stock[1:]
			moved = true
		}
		if !moved {
			break
		}
	}
	return recs
}

// drawCycle builds the branch order for round-robin draws: priority codes
// that are present, in priority order, followed by the remaining present
// codes in first-seen order.
func drawCycle(records []model.Record, priority []string) []string {
	observed := branch.Codes(records)
	present := make(map[string]bool, len(observed))
	for _, code := range observed {
		present[code] = true
	}

	listed := make(map[string]bool, len(priority))
	var cycle []string
	for _, code := range priority {
		listed[code] = true
		if present[code] {
			cycle = append(cycle, code)
		}
	}
	for _, code := range observed {
		if !listed[code] {
			cycle = append(cycle, code)
		}
	}
	return cycle
}
