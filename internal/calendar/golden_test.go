package calendar

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

var update = flag.Bool("update", false, "update golden files")

func TestCompute_Golden(t *testing.T) {
	rows := []Row{
		{day("2021-05-01"), 4},
		{day("2021-05-02"), 8},
		{day("2021-05-02"), 2},
		{day("2021-05-03"), 16},
		{day("2021-05-04"), 1},
	}

	res, err := Compute(rows, Options{BinCount: 4})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	got, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	goldenPath := filepath.Join("testdata", "compute_golden.json")
	if *update {
		if err := os.WriteFile(goldenPath, append(got, '\n'), 0644); err != nil {
			t.Fatalf("update golden: %v", err)
		}
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		t.Errorf("result drifted from golden file (run with -update to accept):\ngot:\n%s\nwant:\n%s", got, want)
	}
}
