package calendar

import (
	"errors"
	"time"
)

// KeyLayout is the calendar-date form used as the aggregation key.
// Two rows whose timestamps fall on the same calendar date merge into one entry.
const KeyLayout = "2006-01-02"

// DefaultBinCount matches the widget's intensity scale.
const DefaultBinCount = 10

// Row is one (timestamp, metric) pair from the active dataset.
type Row struct {
	When  time.Time
	Value float64
}

// Entry is the per-distinct-date aggregate. Entries preserve the
// first-occurrence order of their date in the input.
type Entry struct {
	Key   string    `json:"key"`
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// Assignment maps a date key to its bin index in [0, BinCount).
type Assignment map[string]int

// RangeMode selects how the value/date extents are folded.
type RangeMode int

const (
	// RangeLegacy folds min/max with a zero-valued seed, reproducing the
	// reference widget: all-positive values clamp the minimum to 0,
	// all-negative values clamp the maximum to 0, and the "from start"
	// date collapses to the Unix epoch for post-1970 data. Kept for
	// bit-compatibility with prior output.
	RangeLegacy RangeMode = iota
	// RangeExact folds from the first element, yielding true extents.
	RangeExact
)

func (m RangeMode) String() string {
	if m == RangeExact {
		return "exact"
	}
	return "legacy"
}

// Options control a single Compute invocation.
type Options struct {
	BinCount  int
	FromStart bool
	RangeMode RangeMode
}

// Result is the complete output of one Compute invocation.
type Result struct {
	Entries  []Entry    `json:"entries"`
	Bins     Assignment `json:"bins"`
	Anchor   time.Time  `json:"anchor"`
	MinValue float64    `json:"minValue"`
	MaxValue float64    `json:"maxValue"`
	MinDate  time.Time  `json:"minDate"`
	MaxDate  time.Time  `json:"maxDate"`
}

var (
	// ErrInvalidBinCount rejects BinCount <= 0. Fatal, never retried.
	ErrInvalidBinCount = errors.New("bin count must be a positive integer")
	// ErrNoRows guards the contract's "caller supplies at least one row"
	// precondition instead of producing undefined output.
	ErrNoRows = errors.New("at least one row is required")
)
