package cohort

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of non-fatal issue encountered while
// loading a roster or allocating groups.
type WarningCode int

const (
	// WarnEmptyRoster indicates the source contained no records.
	WarnEmptyRoster WarningCode = iota
	// WarnUnknownBranch indicates records whose roll yielded no branch
	// code and were tagged with the NA sentinel.
	WarnUnknownBranch
	// WarnDefaultedColumn indicates the roll column was not found by name
	// and the first column was used instead.
	WarnDefaultedColumn
	// WarnShortfall indicates the branchwise allocation placed fewer
	// records than it was given.
	WarnShortfall
)

// String returns a short identifier for the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnEmptyRoster:
		return "empty-roster"
	case WarnUnknownBranch:
		return "unknown-branch"
	case WarnDefaultedColumn:
		return "defaulted-column"
	case WarnShortfall:
		return "shortfall"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue. Terminal operations return warnings
// alongside their result; the result is still usable, but may not be what
// the caller expected.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string,
// one per line. Returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

func warnf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
