// Package allocate implements the two group-allocation policies and the
// summary compiler that operate on branch-tagged student records.
//
// The branchwise policy draws records into groups round-robin over a
// priority-ordered cycle of per-branch queues. The uniform policy cuts each
// branch into fixed-size chunks and bin-packs the leftovers. Both policies
// always produce exactly the configured number of groups, padding with empty
// groups when records run out, and both leave their input untouched. The two
// policies are independent: they share nothing but the input records and may
// safely run concurrently.
package allocate

import (
	"errors"

	"github.com/tsawler/cohort/branch"
	"github.com/tsawler/cohort/model"
)

const (
	// DefaultGroups is the group count used when none is configured.
	DefaultGroups = 12

	// MinGroups and MaxGroups bound the group counts accepted from user
	// input. The allocators themselves only require a count of at least
	// one; the bounds are a front-door sanity check.
	MinGroups = 2
	MaxGroups = 50
)

// ErrInvalidGroups is returned when the configured group count is below one.
var ErrInvalidGroups = errors.New("group count must be at least 1")

// Config holds the parameters shared by both allocation policies.
type Config struct {
	// Groups is the number of output groups. Both policies produce
	// exactly this many groups regardless of how many records there are.
	// Must be at least 1.
	Groups int

	// Priority is the branch draw order for the branchwise policy:
	// codes listed here are drawn before codes that are not, in this
	// sequence. Observed codes missing from the list follow in their
	// first-seen order. The uniform policy ignores it.
	Priority []string
}

// DefaultConfig returns a Config with the deployment defaults: 12 groups
// and the canonical branch priority order.
func DefaultConfig() Config {
	return Config{
		Groups:   DefaultGroups,
		Priority: branch.DefaultPriority(),
	}
}

// Allocator runs allocation policies over branch-tagged records.
type Allocator struct {
	config Config
}

// NewAllocator creates an Allocator with default configuration.
func NewAllocator() *Allocator {
	return &Allocator{config: DefaultConfig()}
}

// NewAllocatorWithConfig creates an Allocator with the given configuration.
func NewAllocatorWithConfig(config Config) *Allocator {
	return &Allocator{config: config}
}

// Config returns the allocator's configuration.
func (a *Allocator) Config() Config {
	return a.config
}

func (a *Allocator) checkGroups() error {
	if a.config.Groups < 1 {
		return ErrInvalidGroups
	}
	return nil
}

// buildAllocation assembles the result struct and its statistics from
// finished groups.
func buildAllocation(policy model.Policy, groups []*model.Group, recordCount int) *model.Allocation {
	stats := model.AllocationStats{
		RecordCount: recordCount,
		GroupCount:  len(groups),
	}
	for i, g := range groups {
		size := g.Size()
		stats.PlacedCount += size
		if size == 0 {
			stats.EmptyGroups++
		}
		if i == 0 || size < stats.MinSize {
			stats.MinSize = size
		}
		if size > stats.MaxSize {
			stats.MaxSize = size
		}
	}
	return &model.Allocation{
		Policy: policy,
		Groups: groups,
		Stats:  stats,
	}
}
