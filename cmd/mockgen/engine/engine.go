package engine

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GeneratorConfig struct {
	Scenario string // "uniform", "seasonal" or "spiky"
	Days     int
	Seed     int64
	Now      time.Time
}

// MockRow is one generated (date, metric) pair.
type MockRow struct {
	Day    time.Time
	Visits float64
}

// Generate produces a daily visit series ending today. Scenarios shape the
// traffic: uniform noise, a weekly seasonal wave, or mostly-quiet days with
// occasional spikes (the shape that stresses the widget's intensity bins).
func Generate(cfg GeneratorConfig) ([]MockRow, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", cfg.Days)
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := cfg.Now.AddDate(0, 0, -(cfg.Days - 1))
	rows := make([]MockRow, 0, cfg.Days)

	for i := 0; i < cfg.Days; i++ {
		day := start.AddDate(0, 0, i)

		var visits float64
		switch cfg.Scenario {
		case "seasonal":
			// Weekly wave around a baseline of 100.
			phase := 2 * math.Pi * float64(i) / 7.0
			visits = 100 + 40*math.Sin(phase) + rng.Float64()*10
		case "spiky":
			visits = 5 + rng.Float64()*10
			if rng.Float64() < 0.05 {
				visits += 200 + rng.Float64()*300
			}
		case "uniform":
			visits = 50 + rng.Float64()*50
		default:
			return nil, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
		}

		rows = append(rows, MockRow{Day: day, Visits: math.Round(visits)})
	}

	return rows, nil
}

// Save writes the rows as <name>.csv with a "day,visits" header.
func Save(outDir, name string, rows []MockRow) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(outDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"day", "visits"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Day.Format("2006-01-02"),
			strconv.FormatFloat(r.Visits, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
