package branch

// DefaultPriority returns the canonical branch draw order used by the
// branchwise allocator when no deployment override is configured. Codes
// listed here are drawn before codes that are not, in this sequence;
// unlisted codes follow in their first-seen order.
//
// The returned slice is a fresh copy and may be modified by the caller.
func DefaultPriority() []string {
	return []string{"AI", "CB", "CE", "CH", "CS", "CT", "EC", "MC", "MM", "MT"}
}
