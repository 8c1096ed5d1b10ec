package inventory

import (
	"regexp"
)

// Filter returns the rows of t whose SearchKey matches pattern (§4.5). A
// "" or ":" pattern is a no-op pass-through. If the filter matches zero
// rows, a help block of example regexes is emitted to the log before an
// empty table is returned.
func Filter(t Table, pattern string, dialect Dialect) (Table, error) {
	if pattern == "" || pattern == ":" {
		return t, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Table{}, err
	}

	var kept []Row
	for _, r := range t.Rows {
		if re.MatchString(r.SearchKey) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		logHelp(pattern, dialect)
	}
	return Table{Rows: kept}, nil
}

// MessageNumbers returns the Message field of every row in t.
func MessageNumbers(t Table) []int {
	out := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Message
	}
	return out
}
