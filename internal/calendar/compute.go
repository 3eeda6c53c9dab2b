package calendar

import (
	"math"
	"time"
)

// Compute aggregates rows per calendar date, partitions the per-date totals
// into opts.BinCount equal-width bins, and selects the initially focused
// date (earliest when opts.FromStart, latest otherwise).
//
// Bins are half-open [lo, hi) except the last, which is closed, so the
// maximum lands in the final bin and interior boundary values go to the
// lower-indexed bin. When every total is equal there is nothing to spread
// and every entry is assigned bin 0.
func Compute(rows []Row, opts Options) (*Result, error) {
	if opts.BinCount <= 0 {
		return nil, ErrInvalidBinCount
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	// 1. Aggregate per calendar date, preserving first-occurrence order.
	index := make(map[string]int, len(rows))
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		key := DateKey(r.When)
		if i, ok := index[key]; ok {
			entries[i].Total += r.Value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, Entry{Key: key, Date: r.When, Total: r.Value})
	}

	// 2. Fold extents over the ORIGINAL rows, not the aggregates. The
	// reference widget scales its bins against raw metric values, so an
	// aggregated total can fall outside [minValue, maxValue]; assignment
	// clamps such totals into the edge bins.
	minValue, maxValue := foldValueRange(rows, opts.RangeMode)
	minDate, maxDate := foldDateRange(rows, opts.RangeMode)

	// 3. Assign each entry to a bin.
	bins := assignBins(entries, minValue, maxValue, opts.BinCount)

	// 4. Anchor per the configured direction.
	anchor := maxDate
	if opts.FromStart {
		anchor = minDate
	}

	return &Result{
		Entries:  entries,
		Bins:     bins,
		Anchor:   anchor,
		MinValue: minValue,
		MaxValue: maxValue,
		MinDate:  minDate,
		MaxDate:  maxDate,
	}, nil
}

// DateKey returns the aggregation key for a timestamp.
func DateKey(t time.Time) string {
	return t.Format(KeyLayout)
}

func foldValueRange(rows []Row, mode RangeMode) (minValue, maxValue float64) {
	if mode == RangeExact {
		minValue, maxValue = rows[0].Value, rows[0].Value
	}
	// RangeLegacy keeps the zero seeds.
	for _, r := range rows {
		if r.Value < minValue {
			minValue = r.Value
		}
		if r.Value > maxValue {
			maxValue = r.Value
		}
	}
	return minValue, maxValue
}

func foldDateRange(rows []Row, mode RangeMode) (minDate, maxDate time.Time) {
	// The legacy fold compares epoch milliseconds against a zero seed, so
	// for post-1970 data minDate never moves off the epoch.
	var minMs, maxMs int64
	if mode == RangeExact {
		minMs, maxMs = rows[0].When.UnixMilli(), rows[0].When.UnixMilli()
	}
	for _, r := range rows {
		ms := r.When.UnixMilli()
		if ms < minMs {
			minMs = ms
		}
		if ms > maxMs {
			maxMs = ms
		}
	}
	return time.UnixMilli(minMs).UTC(), time.UnixMilli(maxMs).UTC()
}

func assignBins(entries []Entry, minValue, maxValue float64, binCount int) Assignment {
	bins := make(Assignment, len(entries))

	if allEqual(entries) || maxValue == minValue {
		// Degenerate spread: a single populated bin, the rest empty.
		for _, e := range entries {
			bins[e.Key] = 0
		}
		return bins
	}

	width := (maxValue - minValue) / float64(binCount)
	for _, e := range entries {
		idx := int(math.Floor((e.Total - minValue) / width))
		if idx >= binCount {
			idx = binCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[e.Key] = idx
	}
	return bins
}

func allEqual(entries []Entry) bool {
	for _, e := range entries {
		if e.Total != entries[0].Total {
			return false
		}
	}
	return true
}
