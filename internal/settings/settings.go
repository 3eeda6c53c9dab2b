// Package settings holds the calendar widget configuration and resolves
// it against a dataset. Derived fields are computed in a fixed dependency
// order (columns, then indices, then dimension values) so that every
// "pick a column" error surfaces before any computation runs.
package settings

import (
	"fmt"
	"os"
	"time"

	"calgrid/internal/calendar"
	"calgrid/internal/dataset"

	"gopkg.in/yaml.v3"
)

// Settings are the primary, user-facing widget settings.
type Settings struct {
	DimensionColumn string  `yaml:"dimension_column" json:"dimensionColumn"`
	MetricColumn    string  `yaml:"metric_column" json:"metricColumn"`
	BinCount        int     `yaml:"bin_count" json:"binCount"`
	FromStart       bool    `yaml:"from_start" json:"fromStart"`
	LegacyRange     *bool   `yaml:"legacy_range" json:"legacyRange"`
	MaxFontScale    float64 `yaml:"max_font_scale" json:"maxFontScale"`
}

// ConfigError reports a missing or invalid widget setting. Hosts surface
// it as the inline "which columns do you want to use?" prompt.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Setting, e.Reason)
}

// Default returns the reference widget defaults.
func Default() Settings {
	return Settings{BinCount: calendar.DefaultBinCount, MaxFontScale: 2.0}
}

// LoadFile reads widget settings from a YAML file, applying defaults for
// fields the file leaves unset.
func LoadFile(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.BinCount == 0 {
		s.BinCount = calendar.DefaultBinCount
	}
	return s, nil
}

// RangeMode maps the LegacyRange flag (default true, matching reference
// output) onto the engine's range mode.
func (s Settings) RangeMode() calendar.RangeMode {
	if s.LegacyRange != nil && !*s.LegacyRange {
		return calendar.RangeExact
	}
	return calendar.RangeLegacy
}

// Resolved carries the settings plus every derived value the engine and
// the host need, computed once at resolve time.
type Resolved struct {
	Settings
	DimensionIndex  int      `json:"dimensionIndex"`
	MetricIndex     int      `json:"metricIndex"`
	DimensionValues []string `json:"dimensionValues"`
}

// Resolve validates s against t and computes the derived fields.
// Validation order is fixed: data presence, dimension column, metric
// column, then dimension values.
func Resolve(s Settings, t *dataset.Table) (*Resolved, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, dataset.ErrInsufficientData
	}

	if s.DimensionColumn == "" {
		return nil, &ConfigError{Setting: "dimension_column", Reason: "pick a date column"}
	}
	dimIdx := t.ColumnIndex(s.DimensionColumn)
	if dimIdx < 0 {
		return nil, &ConfigError{Setting: "dimension_column", Reason: fmt.Sprintf("no column named %q", s.DimensionColumn)}
	}

	if s.MetricColumn == "" {
		return nil, &ConfigError{Setting: "metric_column", Reason: "pick a metric column"}
	}
	metIdx := t.ColumnIndex(s.MetricColumn)
	if metIdx < 0 {
		return nil, &ConfigError{Setting: "metric_column", Reason: fmt.Sprintf("no column named %q", s.MetricColumn)}
	}

	// Distinct raw dimension values, first-occurrence order.
	seen := make(map[string]bool)
	var values []string
	for _, raw := range t.ColumnValues(dimIdx) {
		if !seen[raw] {
			seen[raw] = true
			values = append(values, raw)
		}
	}

	return &Resolved{
		Settings:        s,
		DimensionIndex:  dimIdx,
		MetricIndex:     metIdx,
		DimensionValues: values,
	}, nil
}

// Rows materializes the engine input from the table. Rows whose dimension
// value does not parse as a timestamp are skipped; metric values coerce
// through dataset.ParseMetric. An all-unparseable dimension column is
// indistinguishable from an empty dataset and reported as such.
func (r *Resolved) Rows(t *dataset.Table, loc *time.Location) ([]calendar.Row, error) {
	rows := make([]calendar.Row, 0, t.RowCount())
	for _, rec := range t.Records {
		if r.DimensionIndex >= len(rec) {
			continue
		}
		when, ok := dataset.ParseWhen(rec[r.DimensionIndex], loc)
		if !ok {
			continue
		}
		var value float64
		if r.MetricIndex < len(rec) {
			value = dataset.ParseMetric(rec[r.MetricIndex])
		}
		rows = append(rows, calendar.Row{When: when, Value: value})
	}
	if len(rows) == 0 {
		return nil, dataset.ErrInsufficientData
	}
	return rows, nil
}

// Options assembles the engine options for these settings.
func (r *Resolved) Options() calendar.Options {
	return calendar.Options{
		BinCount:  r.BinCount,
		FromStart: r.FromStart,
		RangeMode: r.RangeMode(),
	}
}
