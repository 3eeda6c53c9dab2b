package dataset

import (
	"testing"
	"time"
)

func TestParseWhen(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // RFC3339, empty means parse failure
	}{
		{"DateOnly", "2020-01-02", "2020-01-02T00:00:00Z"},
		{"DateOnlySlashes", "2020/01/02", "2020-01-02T00:00:00Z"},
		{"RFC3339", "2020-01-02T10:30:00Z", "2020-01-02T10:30:00Z"},
		{"RFC3339Offset", "2020-01-02T10:30:00+02:00", "2020-01-02T08:30:00Z"},
		{"SpaceSeparated", "2020-01-02 10:30:00", "2020-01-02T10:30:00Z"},
		{"EpochSeconds", "1577961000", "2020-01-02T10:30:00Z"},
		{"EpochMillis", "1577961000000", "2020-01-02T10:30:00Z"},
		{"Whitespace", "  2020-01-02  ", "2020-01-02T00:00:00Z"},
		{"Empty", "", ""},
		{"Garbage", "not-a-date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseWhen(tt.input, nil)
			if tt.expected == "" {
				if ok {
					t.Errorf("ParseWhen(%q) unexpectedly parsed as %v", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("ParseWhen(%q) failed to parse", tt.input)
			}
			want, _ := time.Parse(time.RFC3339, tt.expected)
			if !got.Equal(want) {
				t.Errorf("ParseWhen(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestParseWhen_IngestLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	got, ok := ParseWhen("2020-01-02 10:30:00", loc)
	if !ok {
		t.Fatal("failed to parse")
	}
	want := time.Date(2020, 1, 2, 10, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"15", 15},
		{"-3.25", -3.25},
		{" 7 ", 7},
		{"", 0},
		{"n/a", 0},
	}

	for _, tt := range tests {
		if got := ParseMetric(tt.input); got != tt.expected {
			t.Errorf("ParseMetric(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDetectDateColumn(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		records  [][]string
		expected int
	}{
		{
			name:     "DateFirst",
			columns:  []string{"day", "visits"},
			records:  [][]string{{"2020-01-01", "5"}, {"2020-01-02", "9"}},
			expected: 0,
		},
		{
			name:     "DateSecond",
			columns:  []string{"visits", "day"},
			records:  [][]string{{"5", "2020-01-01"}, {"9", "2020-01-02"}},
			expected: 1,
		},
		{
			name:     "SmallIntegersAreNotDates",
			columns:  []string{"visits", "clicks"},
			records:  [][]string{{"5", "2"}, {"9", "4"}},
			expected: -1,
		},
		{
			name:     "EpochColumn",
			columns:  []string{"count", "ts"},
			records:  [][]string{{"3", "1577961000"}, {"4", "1578047400"}},
			expected: 1,
		},
		{
			name:     "SparseDatesStillMatch",
			columns:  []string{"day"},
			records:  [][]string{{"2020-01-01"}, {""}, {"2020-01-03"}, {""}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{Columns: tt.columns, Records: tt.records}
			if got := DetectDateColumn(table, nil); got != tt.expected {
				t.Errorf("DetectDateColumn() = %d, want %d", got, tt.expected)
			}
		})
	}
}
