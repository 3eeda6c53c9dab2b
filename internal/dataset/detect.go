package dataset

import (
	"strconv"
	"strings"
	"time"
)

// detectSampleSize bounds how many records a column probe reads.
const detectSampleSize = 32

// DetectDateColumn returns the index of the first column whose sampled
// values overwhelmingly parse as timestamps, or -1 when no column
// qualifies. Empty values are ignored so sparse columns can still match.
func DetectDateColumn(t *Table, loc *time.Location) int {
	limit := len(t.Records)
	if limit > detectSampleSize {
		limit = detectSampleSize
	}

	for col := range t.Columns {
		parsed, sampled := 0, 0
		for _, rec := range t.Records[:limit] {
			if col >= len(rec) || rec[col] == "" {
				continue
			}
			sampled++
			if looksLikeTimestamp(rec[col], loc) {
				parsed++
			}
		}
		if sampled > 0 && parsed*5 >= sampled*4 {
			return col
		}
	}
	return -1
}

// looksLikeTimestamp is stricter than ParseWhen: small integers parse as
// epoch seconds but are almost always plain metrics, so numeric values
// only count when they reach epoch-second magnitude (year 2001+).
func looksLikeTimestamp(s string, loc *time.Location) bool {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return n >= 1_000_000_000
	}
	_, ok := ParseWhen(s, loc)
	return ok
}
