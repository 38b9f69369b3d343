package cohort

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/cohort/allocate"
	"github.com/tsawler/cohort/branch"
	"github.com/tsawler/cohort/csvdoc"
	"github.com/tsawler/cohort/format"
	"github.com/tsawler/cohort/htmldoc"
	"github.com/tsawler/cohort/model"
	"github.com/tsawler/cohort/ocr"
	"github.com/tsawler/cohort/xlsx"
)

// Grouper provides a fluent interface for loading a roster and allocating it
// into groups. Each configuration method returns a new Grouper instance,
// making it safe for concurrent use and allowing method chaining.
type Grouper struct {
	// Source (exactly one is set)
	filename string
	roster   *model.Roster

	// Configuration
	options GroupOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Grouper with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (g *Grouper) clone() *Grouper {
	return &Grouper{
		filename: g.filename,
		roster:   g.roster,
		options:  g.options.clone(),
		err:      g.err,
	}
}

// Groups sets the number of output groups. Both policies always produce
// exactly this many groups, padding with empty ones when records run out.
// The count must be between 2 and 50; anything else fails the chain.
func (g *Grouper) Groups(n int) *Grouper {
	newG := g.clone()
	if n < allocate.MinGroups || n > allocate.MaxGroups {
		newG.err = fmt.Errorf("group count must be between %d and %d, got %d",
			allocate.MinGroups, allocate.MaxGroups, n)
		return newG
	}
	newG.options.groups = n
	return newG
}

// Priority overrides the branch draw order used by the branchwise policy.
// Codes listed here are drawn before codes that are not; observed codes
// missing from the list follow in their first-seen order.
func (g *Grouper) Priority(codes ...string) *Grouper {
	newG := g.clone()
	newG.options.priority = append([]string(nil), codes...)
	return newG
}

// Sheet selects the worksheet to read from spreadsheet sources. The default
// is the first sheet. Other source formats ignore it.
func (g *Grouper) Sheet(name string) *Grouper {
	newG := g.clone()
	newG.options.sheet = name
	return newG
}

// RollColumn names the source column holding roll numbers. The match is
// case-insensitive; if no header matches, the first column is used and a
// WarnDefaultedColumn warning is emitted.
func (g *Grouper) RollColumn(name string) *Grouper {
	newG := g.clone()
	newG.options.rollColumn = name
	return newG
}

// NameColumn names the source column holding student names.
func (g *Grouper) NameColumn(name string) *Grouper {
	newG := g.clone()
	newG.options.nameColumn = name
	return newG
}

// EmailColumn names the source column holding email addresses.
func (g *Grouper) EmailColumn(name string) *Grouper {
	newG := g.clone()
	newG.options.emailColumn = name
	return newG
}

// Delimiter sets the field delimiter for CSV sources, overriding the
// default of a comma, or a tab when the filename ends in .tsv.
func (g *Grouper) Delimiter(r rune) *Grouper {
	newG := g.clone()
	newG.options.delimiter = r
	return newG
}

// Language sets the recognition language for scanned image sources.
// The default is "eng".
func (g *Grouper) Language(lang string) *Grouper {
	newG := g.clone()
	newG.options.language = lang
	return newG
}

// Roster loads and branch-tags the roster without allocating it.
//
// Example:
//
//	roster, warnings, err := cohort.Load("students.xlsx").Roster()
func (g *Grouper) Roster() (*model.Roster, []Warning, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	return g.loadTagged()
}

// BranchCounts loads the roster and tallies records per branch code.
func (g *Grouper) BranchCounts() (map[string]int, []Warning, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	roster, warnings, err := g.loadTagged()
	if err != nil {
		return nil, warnings, err
	}
	return branch.Counts(roster.Records), warnings, nil
}

// Branchwise loads the roster and allocates it with the branchwise policy:
// groups are filled round-robin over a priority-ordered cycle of per-branch
// queues, so each group mixes branches as evenly as the roster allows.
//
// Example:
//
//	alloc, warnings, err := cohort.Load("students.xlsx").Groups(8).Branchwise()
func (g *Grouper) Branchwise() (*model.Allocation, []Warning, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	roster, warnings, err := g.loadTagged()
	if err != nil {
		return nil, warnings, err
	}

	alloc, err := g.allocator().Branchwise(roster.Records)
	if err != nil {
		return nil, warnings, err
	}
	if shortfall := alloc.Stats.Shortfall(); shortfall > 0 {
		warnings = append(warnings, warnf(WarnShortfall,
			"%d of %d records were not placed", shortfall, alloc.Stats.RecordCount))
	}
	return alloc, warnings, nil
}

// Uniform loads the roster and allocates it with the uniform policy: each
// branch is cut into equal-size chunks and the leftovers are bin-packed, so
// groups are uniform in size and mostly single-branch.
func (g *Grouper) Uniform() (*model.Allocation, []Warning, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	roster, warnings, err := g.loadTagged()
	if err != nil {
		return nil, warnings, err
	}

	alloc, err := g.allocator().Uniform(roster.Records)
	if err != nil {
		return nil, warnings, err
	}
	return alloc, warnings, nil
}

// Result bundles both allocations and their summary matrices.
type Result struct {
	Branchwise        *model.Allocation
	Uniform           *model.Allocation
	BranchwiseSummary *model.Summary
	UniformSummary    *model.Summary
}

// Result loads the roster once and runs both policies concurrently,
// returning each allocation with its summary matrix.
//
// Example:
//
//	res, warnings, err := cohort.Load("students.xlsx").Result()
//	fmt.Println(res.BranchwiseSummary.ToMarkdown())
func (g *Grouper) Result() (*Result, []Warning, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	roster, warnings, err := g.loadTagged()
	if err != nil {
		return nil, warnings, err
	}

	a := g.allocator()
	res := &Result{}
	var eg errgroup.Group
	eg.Go(func() error {
		alloc, err := a.Branchwise(roster.Records)
		if err != nil {
			return err
		}
		res.Branchwise = alloc
		res.BranchwiseSummary = allocate.Summarize(alloc)
		return nil
	})
	eg.Go(func() error {
		alloc, err := a.Uniform(roster.Records)
		if err != nil {
			return err
		}
		res.Uniform = alloc
		res.UniformSummary = allocate.Summarize(alloc)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, warnings, err
	}

	if shortfall := res.Branchwise.Stats.Shortfall(); shortfall > 0 {
		warnings = append(warnings, warnf(WarnShortfall,
			"%d of %d records were not placed", shortfall, res.Branchwise.Stats.RecordCount))
	}
	return res, warnings, nil
}

// allocator builds the configured allocator.
func (g *Grouper) allocator() *allocate.Allocator {
	priority := g.options.priority
	if priority == nil {
		priority = branch.DefaultPriority()
	}
	return allocate.NewAllocatorWithConfig(allocate.Config{
		Groups:   g.options.groups,
		Priority: priority,
	})
}

// columns maps the configured column names into the readers' shape.
func (g *Grouper) columns() model.ColumnMap {
	return model.ColumnMap{
		Roll:  g.options.rollColumn,
		Name:  g.options.nameColumn,
		Email: g.options.emailColumn,
	}
}

// loadTagged loads the roster, tags every record with its branch code and
// collects loading warnings.
func (g *Grouper) loadTagged() (*model.Roster, []Warning, error) {
	roster, err := g.loadRoster()
	if err != nil {
		return nil, nil, err
	}

	tagged := &model.Roster{
		Records: branch.Tag(roster.Records),
		Source:  roster.Source,
	}

	var warnings []Warning
	if tagged.IsEmpty() {
		warnings = append(warnings, warnf(WarnEmptyRoster, "source %q contains no records", g.sourceName()))
	}
	if len(tagged.Source.Headers) > 0 && tagged.HeaderIndex(g.options.rollColumn) == -1 {
		warnings = append(warnings, warnf(WarnDefaultedColumn,
			"no %q column found; using the first column for roll numbers", g.options.rollColumn))
	}
	if unknown := branch.Counts(tagged.Records)[branch.Unknown]; unknown > 0 {
		warnings = append(warnings, warnf(WarnUnknownBranch,
			"%d records have no recognizable branch code", unknown))
	}
	return tagged, warnings, nil
}

func (g *Grouper) sourceName() string {
	if g.filename != "" {
		return g.filename
	}
	return g.roster.Source.Format
}

// loadRoster reads the roster from the configured source.
func (g *Grouper) loadRoster() (*model.Roster, error) {
	if g.roster != nil {
		return g.roster, nil
	}
	if g.filename == "" {
		return nil, fmt.Errorf("no roster source specified")
	}

	f := format.Detect(g.filename)
	switch {
	case f == format.XLSX:
		r, err := xlsx.Open(g.filename)
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		defer r.Close()
		roster, err := r.Roster(xlsx.RosterOptions{
			Sheet:   g.options.sheet,
			Columns: g.columns(),
		})
		if err != nil {
			return nil, err
		}
		roster.Source.Path = g.filename
		return roster, nil

	case f == format.CSV, f == format.TSV:
		delim := g.options.delimiter
		if delim == 0 {
			delim = ','
			if f == format.TSV {
				delim = '\t'
			}
		}
		return csvdoc.Open(g.filename, csvdoc.Options{
			Delimiter: delim,
			Columns:   g.columns(),
		})

	case f == format.HTML:
		r, err := htmldoc.Open(g.filename)
		if err != nil {
			return nil, fmt.Errorf("opening document: %w", err)
		}
		roster, err := r.Roster(htmldoc.Options{
			TableIndex: -1,
			Columns:    g.columns(),
		})
		if err != nil {
			return nil, err
		}
		roster.Source.Path = g.filename
		return roster, nil

	case f.IsImage():
		return g.loadScanned()

	default:
		return nil, fmt.Errorf("unsupported roster format: %s", g.filename)
	}
}

// loadScanned recognizes a scanned roster image. Requires the ocr build tag
// and a Tesseract installation.
func (g *Grouper) loadScanned() (*model.Roster, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if g.options.language != "" {
		if err := client.SetLanguage(g.options.language); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(g.filename)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	roster, err := ocr.ReadRoster(client, data)
	if err != nil {
		return nil, err
	}
	roster.Source.Path = g.filename
	return roster, nil
}
