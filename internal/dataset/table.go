package dataset

import (
	"errors"
	"time"
)

// ErrInsufficientData signals that a table has no data rows. It blocks
// invocation of the calendar engine; hosts surface it as an inline
// "not enough data" message.
var ErrInsufficientData = errors.New("not enough data: the dataset has no rows")

// Table is one loaded dataset: a header plus raw string records.
type Table struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Path     string     `json:"path,omitempty"`
	Columns  []string   `json:"columns"`
	Records  [][]string `json:"-"`
	LoadedAt time.Time  `json:"loadedAt"`
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	return len(t.Records)
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns the raw values of one column, in row order.
// Records shorter than the header contribute an empty string.
func (t *Table) ColumnValues(idx int) []string {
	values := make([]string, 0, len(t.Records))
	for _, rec := range t.Records {
		if idx >= 0 && idx < len(rec) {
			values = append(values, rec[idx])
		} else {
			values = append(values, "")
		}
	}
	return values
}
