package model

import "fmt"

// Policy identifies the allocation algorithm that produced a result.
type Policy int

const (
	// PolicyBranchwise is priority-ordered round-robin drawing from
	// per-branch queues.
	PolicyBranchwise Policy = iota
	// PolicyUniform is fixed-size chunking per branch with leftover merging.
	PolicyUniform
)

// String returns a human-readable representation of the policy
func (p Policy) String() string {
	switch p {
	case PolicyBranchwise:
		return "branchwise"
	case PolicyUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Group is one output partition of an allocation. Index is 0-based; display
// names are 1-based ("Group 1".."Group N").
type Group struct {
	Index   int
	Records []Record
}

// Name returns the 1-based display name of the group.
func (g *Group) Name() string {
	return fmt.Sprintf("Group %d", g.Index+1)
}

// Size returns the number of records in the group.
func (g *Group) Size() int {
	return len(g.Records)
}

// IsEmpty reports whether the group holds no records.
func (g *Group) IsEmpty() bool {
	return len(g.Records) == 0
}

// BranchCount returns the number of records in the group with the given
// branch code.
func (g *Group) BranchCount(code string) int {
	n := 0
	for _, rec := range g.Records {
		if rec.Branch == code {
			n++
		}
	}
	return n
}

// Allocation is the complete result of running one policy: exactly N groups
// in index order plus statistics about the run. Allocations from the two
// policies are independent result sets and are never merged.
type Allocation struct {
	Policy Policy
	Groups []*Group
	Stats  AllocationStats
}

// AllocationStats summarizes an allocation run.
type AllocationStats struct {
	// RecordCount is the number of input records.
	RecordCount int

	// PlacedCount is the number of records that ended up in a group.
	// For the uniform policy this always equals RecordCount; the
	// branchwise policy may place fewer when its stocks exhaust early.
	PlacedCount int

	// GroupCount is the number of groups produced (always the requested N).
	GroupCount int

	// EmptyGroups is the number of groups holding no records.
	EmptyGroups int

	// MinSize and MaxSize are the smallest and largest group sizes.
	MinSize int
	MaxSize int
}

// Shortfall returns the number of input records left unplaced.
func (s AllocationStats) Shortfall() int {
	return s.RecordCount - s.PlacedCount
}

// GroupCount returns the number of groups in the allocation.
func (a *Allocation) GroupCount() int {
	return len(a.Groups)
}

// TotalRecords returns the number of records across all groups.
func (a *Allocation) TotalRecords() int {
	n := 0
	for _, g := range a.Groups {
		n += g.Size()
	}
	return n
}

// GetGroup returns a group by 1-based number, or nil if out of range.
func (a *Allocation) GetGroup(number int) *Group {
	if number < 1 || number > len(a.Groups) {
		return nil
	}
	return a.Groups[number-1]
}

// BranchCodes returns the branch codes appearing anywhere in the
// allocation's groups, in first-seen order across groups.
func (a *Allocation) BranchCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, g := range a.Groups {
		for _, rec := range g.Records {
			if !seen[rec.Branch] {
				seen[rec.Branch] = true
				codes = append(codes, rec.Branch)
			}
		}
	}
	return codes
}
