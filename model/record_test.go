package model

import (
	"strings"
	"testing"
)

func TestRosterBasics(t *testing.T) {
	r := NewRoster()
	if !r.IsEmpty() {
		t.Error("new roster should be empty")
	}

	r.Add(Record{Roll: "21CS001", Name: "Asha"})
	r.Add(Record{Roll: "21EC001"})

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() = true after Add")
	}
}

func TestRosterHeaderIndex(t *testing.T) {
	r := NewRoster()
	r.Source.Headers = []string{"Roll No", "Name", " Email "}

	tests := []struct {
		name string
		want int
	}{
		{"Roll No", 0},
		{"roll no", 0},
		{"NAME", 1},
		{"email", 2},
		{"Phone", -1},
	}

	for _, tt := range tests {
		if got := r.HeaderIndex(tt.name); got != tt.want {
			t.Errorf("HeaderIndex(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGroupName(t *testing.T) {
	for i, want := range []string{"Group 1", "Group 2", "Group 3"} {
		g := &Group{Index: i}
		if g.Name() != want {
			t.Errorf("Group{Index: %d}.Name() = %q, want %q", i, g.Name(), want)
		}
	}
}

func TestGroupBranchCount(t *testing.T) {
	g := &Group{Records: []Record{
		{Roll: "21CS001", Branch: "CS"},
		{Roll: "21CS002", Branch: "CS"},
		{Roll: "21EC001", Branch: "EC"},
	}}

	if n := g.BranchCount("CS"); n != 2 {
		t.Errorf("BranchCount(CS) = %d, want 2", n)
	}
	if n := g.BranchCount("ME"); n != 0 {
		t.Errorf("BranchCount(ME) = %d, want 0", n)
	}
}

func TestAllocationAccessors(t *testing.T) {
	alloc := &Allocation{
		Policy: PolicyUniform,
		Groups: []*Group{
			{Index: 0, Records: []Record{{Branch: "EC"}, {Branch: "CS"}}},
			{Index: 1, Records: []Record{{Branch: "EC"}}},
			{Index: 2},
		},
	}

	if alloc.GroupCount() != 3 {
		t.Errorf("GroupCount() = %d, want 3", alloc.GroupCount())
	}
	if alloc.TotalRecords() != 3 {
		t.Errorf("TotalRecords() = %d, want 3", alloc.TotalRecords())
	}
	if g := alloc.GetGroup(2); g == nil || g.Index != 1 {
		t.Errorf("GetGroup(2) = %+v, want group with Index 1", g)
	}
	if alloc.GetGroup(0) != nil || alloc.GetGroup(4) != nil {
		t.Error("out-of-range GetGroup should return nil")
	}

	codes := alloc.BranchCodes()
	if len(codes) != 2 || codes[0] != "EC" || codes[1] != "CS" {
		t.Errorf("BranchCodes() = %v, want [EC CS] in first-seen order", codes)
	}
}

func TestAllocationStatsShortfall(t *testing.T) {
	stats := AllocationStats{RecordCount: 10, PlacedCount: 7}
	if stats.Shortfall() != 3 {
		t.Errorf("Shortfall() = %d, want 3", stats.Shortfall())
	}
}

func TestPolicyString(t *testing.T) {
	tests := []struct {
		policy Policy
		want   string
	}{
		{PolicyBranchwise, "branchwise"},
		{PolicyUniform, "uniform"},
		{Policy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.policy.String(); got != tt.want {
			t.Errorf("Policy(%d).String() = %q, want %q", tt.policy, got, tt.want)
		}
	}
}

func TestSummaryCount(t *testing.T) {
	s := &Summary{
		Codes: []string{"CS", "EC"},
		Rows: []SummaryRow{
			{Label: "Group 1", Counts: []int{2, 1}, Total: 3},
			{Label: "Group 2", Counts: []int{0, 2}, Total: 2},
		},
	}

	if got := s.Count(1, "CS"); got != 2 {
		t.Errorf("Count(1, CS) = %d, want 2", got)
	}
	if got := s.Count(2, "EC"); got != 2 {
		t.Errorf("Count(2, EC) = %d, want 2", got)
	}
	if got := s.Count(1, "ME"); got != 0 {
		t.Errorf("Count(1, ME) = %d, want 0", got)
	}
	if got := s.Count(9, "CS"); got != 0 {
		t.Errorf("Count(9, CS) = %d, want 0", got)
	}
	if got := s.GrandTotal(); got != 5 {
		t.Errorf("GrandTotal() = %d, want 5", got)
	}
}

func TestSummaryCSVQuoting(t *testing.T) {
	s := &Summary{
		Codes: []string{"CS"},
		Rows: []SummaryRow{
			{Label: `Group "1", A`, Counts: []int{1}, Total: 1},
		},
	}

	csv := s.ToCSV()
	if !strings.Contains(csv, `"Group ""1"", A"`) {
		t.Errorf("ToCSV() did not escape the label: %q", csv)
	}
}
