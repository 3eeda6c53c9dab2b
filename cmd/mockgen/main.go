package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"calgrid/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "uniform", "Scenario to generate: uniform, seasonal, spiky")
	outDir := flag.String("out", "./datasets", "Output directory for mock dataset files")
	days := flag.Int("days", 180, "Number of calendar days to cover")
	name := flag.String("name", "mock_visits", "Dataset name (file becomes <name>.csv)")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Days:     *days,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (%d days) to %s...\n", cfg.Scenario, cfg.Days, *outDir)

	rows, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*outDir, *name, rows); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
