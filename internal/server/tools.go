package server

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_datasets",
				"description": "List the datasets currently available to the calendar engine.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "load_dataset",
				"description": "Load a dataset file (.csv or .jsonl) and register it for analysis.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path": map[string]interface{}{"type": "string", "description": "Path to the dataset file"},
					},
					"required": []string{"path"},
				},
			},
			map[string]interface{}{
				"name":        "describe_dataset",
				"description": "Describe a dataset: columns, row count, and the detected date column. Call this before 'compute_calendar' to pick the dimension and metric columns.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"dataset": map[string]interface{}{"type": "string", "description": "Dataset ID or name"},
					},
					"required": []string{"dataset"},
				},
			},
			map[string]interface{}{
				"name":        "compute_calendar",
				"description": "Aggregate a dataset's metric per calendar date, partition the totals into intensity bins, and select the initially focused date. Returns the bin assignment, the anchor date, and the value/date extents.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"dataset":          map[string]interface{}{"type": "string", "description": "Dataset ID or name"},
						"dimension_column": map[string]interface{}{"type": "string", "description": "Date/timestamp column"},
						"metric_column":    map[string]interface{}{"type": "string", "description": "Numeric column to aggregate"},
						"bin_count":        map[string]interface{}{"type": "integer", "description": "Number of intensity bins (default 10)"},
						"from_start":       map[string]interface{}{"type": "boolean", "description": "Focus the earliest date instead of the latest"},
						"legacy_range":     map[string]interface{}{"type": "boolean", "description": "Use the reference-compatible zero-seeded range fold (default true)"},
					},
					"required": []string{"dataset", "dimension_column", "metric_column"},
				},
			},
			map[string]interface{}{
				"name":        "fit_label",
				"description": "Compute the font scale that fits the widget's center label into its bounding width after the host has measured the rendered text.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"measured_width": map[string]interface{}{"type": "number", "description": "Measured text width in px"},
						"bounding_width": map[string]interface{}{"type": "number", "description": "Available width in px"},
						"current_scale":  map[string]interface{}{"type": "number", "description": "Current font scale (default 1)"},
						"max_scale":      map[string]interface{}{"type": "number", "description": "Upper scale limit (default from widget settings)"},
					},
					"required": []string{"measured_width", "bounding_width"},
				},
			},
		},
	}
}
