package server

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"calgrid/internal/config"
	"calgrid/internal/dataset"
)

func testServer() *Server {
	cfg := &config.AppConfig{
		DefaultBinCount: 10,
		LegacyRange:     true,
		IngestTZ:        time.UTC,
	}
	reg := dataset.NewRegistry()
	reg.Add(&dataset.Table{
		ID:      "t1",
		Name:    "visits",
		Columns: []string{"day", "visits"},
		Records: [][]string{
			{"2020-01-01", "5"},
			{"2020-01-02", "15"},
			{"2020-01-03", "10"},
		},
	})
	return &Server{cfg: cfg, reg: reg}
}

func callToolArgs(t *testing.T, s *Server, name string, args map[string]interface{}) (interface{}, interface{}) {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s.callTool(params)
}

// unwrapText extracts the JSON payload from a wrapped tool result.
func unwrapText(t *testing.T, result interface{}) map[string]interface{} {
	t.Helper()
	content := result.(map[string]interface{})["content"].([]interface{})
	text := content[0].(map[string]interface{})["text"].(string)
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("tool result is not JSON: %v\n%s", err, text)
	}
	return payload
}

func TestComputeCalendar(t *testing.T) {
	s := testServer()

	result, errRes := callToolArgs(t, s, "compute_calendar", map[string]interface{}{
		"dataset":          "visits",
		"dimension_column": "day",
		"metric_column":    "visits",
		"bin_count":        2,
	})
	if errRes != nil {
		t.Fatalf("tool error: %v", errRes)
	}

	payload := unwrapText(t, result)
	bins := payload["bins"].(map[string]interface{})
	want := map[string]float64{"2020-01-01": 0, "2020-01-02": 1, "2020-01-03": 1}
	for key, idx := range want {
		if got := bins[key].(float64); got != idx {
			t.Errorf("bins[%s] = %v, want %v", key, got, idx)
		}
	}

	// Legacy fold: latest date is the default anchor.
	if anchor := payload["anchor"].(string); !strings.HasPrefix(anchor, "2020-01-03") {
		t.Errorf("anchor = %s, want 2020-01-03", anchor)
	}

	meta := payload["meta"].(map[string]interface{})
	if meta["range_mode"] != "legacy" {
		t.Errorf("range_mode = %v, want legacy", meta["range_mode"])
	}
	if meta["distinct_dates"].(float64) != 3 {
		t.Errorf("distinct_dates = %v, want 3", meta["distinct_dates"])
	}
}

func TestComputeCalendar_FromStartLegacyEpoch(t *testing.T) {
	s := testServer()

	result, errRes := callToolArgs(t, s, "compute_calendar", map[string]interface{}{
		"dataset":          "visits",
		"dimension_column": "day",
		"metric_column":    "visits",
		"from_start":       true,
	})
	if errRes != nil {
		t.Fatalf("tool error: %v", errRes)
	}

	payload := unwrapText(t, result)
	if anchor := payload["anchor"].(string); !strings.HasPrefix(anchor, "1970-01-01") {
		t.Errorf("anchor = %s, want the unix epoch under the legacy fold", anchor)
	}
}

func TestComputeCalendar_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		kind string
	}{
		{
			name: "UnknownDataset",
			args: map[string]interface{}{"dataset": "nope", "dimension_column": "day", "metric_column": "visits"},
			kind: "configuration",
		},
		{
			name: "MissingMetricColumn",
			args: map[string]interface{}{"dataset": "visits", "dimension_column": "day"},
			kind: "configuration",
		},
		{
			name: "UnknownDimension",
			args: map[string]interface{}{"dataset": "visits", "dimension_column": "hour", "metric_column": "visits"},
			kind: "configuration",
		},
		{
			name: "InvalidBinCount",
			args: map[string]interface{}{"dataset": "visits", "dimension_column": "day", "metric_column": "visits", "bin_count": -1},
			kind: "invalid_bin_count",
		},
	}

	s := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, errRes := callToolArgs(t, s, "compute_calendar", tt.args)
			if errRes == nil {
				t.Fatalf("expected an error, got result %v", result)
			}
			msg := errRes.(map[string]interface{})["message"].(string)
			if !strings.Contains(msg, "["+tt.kind+"]") {
				t.Errorf("error %q does not carry kind %s", msg, tt.kind)
			}
		})
	}
}

func TestComputeCalendar_InsufficientData(t *testing.T) {
	s := testServer()
	s.reg.Add(&dataset.Table{
		ID:      "t2",
		Name:    "empty",
		Columns: []string{"day", "visits"},
	})

	_, errRes := callToolArgs(t, s, "compute_calendar", map[string]interface{}{
		"dataset":          "empty",
		"dimension_column": "day",
		"metric_column":    "visits",
	})
	if errRes == nil {
		t.Fatal("expected an error for an empty dataset")
	}
	msg := errRes.(map[string]interface{})["message"].(string)
	if !strings.Contains(msg, "[insufficient_data]") {
		t.Errorf("error %q does not carry kind insufficient_data", msg)
	}
}

func TestListAndDescribe(t *testing.T) {
	s := testServer()

	result, errRes := callToolArgs(t, s, "list_datasets", nil)
	if errRes != nil {
		t.Fatalf("tool error: %v", errRes)
	}
	payload := unwrapText(t, result)
	datasets := payload["datasets"].([]interface{})
	if len(datasets) != 1 {
		t.Fatalf("len(datasets) = %d, want 1", len(datasets))
	}

	result, errRes = callToolArgs(t, s, "describe_dataset", map[string]interface{}{"dataset": "visits"})
	if errRes != nil {
		t.Fatalf("tool error: %v", errRes)
	}
	desc := unwrapText(t, result)
	if desc["detected_date_column"] != "day" {
		t.Errorf("detected_date_column = %v, want day", desc["detected_date_column"])
	}
	if desc["rows"].(float64) != 3 {
		t.Errorf("rows = %v, want 3", desc["rows"])
	}
}

func TestFitLabel(t *testing.T) {
	s := testServer()

	result, errRes := callToolArgs(t, s, "fit_label", map[string]interface{}{
		"measured_width": 200,
		"bounding_width": 100,
		"current_scale":  1,
	})
	if errRes != nil {
		t.Fatalf("tool error: %v", errRes)
	}
	payload := unwrapText(t, result)
	if scale := payload["scale"].(float64); scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", scale)
	}
}

func TestUnknownTool(t *testing.T) {
	s := testServer()
	_, errRes := callToolArgs(t, s, "render_widget", nil)
	if errRes == nil {
		t.Fatal("expected an error for an unknown tool")
	}
}
