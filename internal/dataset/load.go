package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Load reads a dataset file by extension (.csv, .jsonl).
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".jsonl":
		return LoadJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}

// LoadCSV reads a CSV dataset. The first record is the header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; Table pads on access
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	return newTable(path, records[0], records[1:]), nil
}

// LoadJSONL reads a dataset with one flat JSON object per line. The column
// set is the first object's keys in encounter order; later objects
// contribute values for those columns only.
func LoadJSONL(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var columns []string
	var records [][]string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}

		if columns == nil {
			columns = keysInLineOrder(line, obj)
		}

		rec := make([]string, len(columns))
		for i, col := range columns {
			if raw, ok := obj[col]; ok {
				rec[i] = rawToString(raw)
			}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if columns == nil {
		return nil, fmt.Errorf("%s: no records", path)
	}

	return newTable(path, columns, records), nil
}

func newTable(path string, columns []string, records [][]string) *Table {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Table{
		ID:       uuid.NewString(),
		Name:     name,
		Path:     path,
		Columns:  columns,
		Records:  records,
		LoadedAt: time.Now(),
	}
}

// keysInLineOrder recovers the first object's key order, which a plain
// map unmarshal discards.
func keysInLineOrder(line string, obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	dec := json.NewDecoder(strings.NewReader(line))
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch v := tok.(type) {
		case json.Delim:
			if v == '{' || v == '[' {
				depth++
			} else {
				depth--
			}
		case string:
			if depth == 1 {
				if _, ok := obj[v]; ok && !slices.Contains(keys, v) {
					keys = append(keys, v)
					// Skip the value so it is not mistaken for a key.
					var skip json.RawMessage
					_ = dec.Decode(&skip)
				}
			}
		}
	}
	return keys
}

func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
