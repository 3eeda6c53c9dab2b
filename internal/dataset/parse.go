package dataset

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order for non-numeric values. Layouts without a
// zone are interpreted in the caller's ingest location.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseWhen parses a raw dimension value into a timestamp. Integer values
// are treated as epoch seconds, or epoch milliseconds at 13+ digits; this
// fast path runs first because numeric timestamps are the common case in
// exported analytics data.
func ParseWhen(s string, loc *time.Location) (time.Time, bool) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	if n, err := strconv.ParseInt(ss, 10, 64); err == nil {
		if n > 1_000_000_000_000 {
			return time.UnixMilli(n).UTC(), true
		}
		return time.Unix(n, 0).UTC(), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, ss, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMetric coerces a raw metric value to a number. Values that do not
// parse coerce to 0; pre-validation of metric columns is the host's job.
func ParseMetric(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
