package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"calgrid/internal/calendar"
	"calgrid/internal/dataset"
	"calgrid/internal/layout"
	"calgrid/internal/settings"

	"github.com/rs/zerolog/log"
)

type toolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call toolCall
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, rpcError(-32602, fmt.Sprintf("invalid tool call params: %v", err))
	}

	log.Debug().Str("tool", call.Name).Msg("Tool call")

	var result interface{}
	var err error
	switch call.Name {
	case "list_datasets":
		result, err = s.handleListDatasets()
	case "load_dataset":
		result, err = s.handleLoadDataset(call.Arguments)
	case "describe_dataset":
		result, err = s.handleDescribeDataset(call.Arguments)
	case "compute_calendar":
		result, err = s.handleComputeCalendar(call.Arguments)
	case "fit_label":
		result, err = s.handleFitLabel(call.Arguments)
	default:
		err = fmt.Errorf("unknown tool: %s", call.Name)
	}

	if err != nil {
		log.Warn().Err(err).Str("tool", call.Name).Msg("Tool call failed")
		return nil, rpcError(-32000, fmt.Sprintf("[%s] %v", errorKind(err), err))
	}
	return wrapResult(result), nil
}

// errorKind maps engine errors onto the host's error taxonomy.
func errorKind(err error) string {
	var cfgErr *settings.ConfigError
	switch {
	case errors.Is(err, dataset.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, calendar.ErrInvalidBinCount):
		return "invalid_bin_count"
	case errors.As(err, &cfgErr):
		return "configuration"
	default:
		return "internal"
	}
}

func rpcError(code int, message string) interface{} {
	return map[string]interface{}{"code": code, "message": message}
}

// wrapResult packages a handler result as tool-call content.
func wrapResult(v interface{}) interface{} {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf("%v", v))
	}
	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{"type": "text", "text": string(data)},
		},
	}
}

func (s *Server) handleListDatasets() (interface{}, error) {
	list := s.reg.List()
	out := make([]map[string]interface{}, 0, len(list))
	for _, t := range list {
		out = append(out, map[string]interface{}{
			"id":      t.ID,
			"name":    t.Name,
			"rows":    t.RowCount(),
			"columns": t.Columns,
		})
	}
	return map[string]interface{}{"datasets": out}, nil
}

func (s *Server) handleLoadDataset(args json.RawMessage) (interface{}, error) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}
	if req.Path == "" {
		return nil, &settings.ConfigError{Setting: "path", Reason: "a dataset path is required"}
	}

	t, err := dataset.Load(req.Path)
	if err != nil {
		return nil, err
	}
	s.reg.Add(t)

	return s.describe(t), nil
}

func (s *Server) handleDescribeDataset(args json.RawMessage) (interface{}, error) {
	var req struct {
		Dataset string `json:"dataset"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}

	t, ok := s.reg.Get(req.Dataset)
	if !ok {
		return nil, &settings.ConfigError{Setting: "dataset", Reason: fmt.Sprintf("no dataset %q is loaded", req.Dataset)}
	}
	return s.describe(t), nil
}

func (s *Server) describe(t *dataset.Table) map[string]interface{} {
	desc := map[string]interface{}{
		"id":      t.ID,
		"name":    t.Name,
		"rows":    t.RowCount(),
		"columns": t.Columns,
	}
	if idx := dataset.DetectDateColumn(t, s.cfg.IngestTZ); idx >= 0 {
		desc["detected_date_column"] = t.Columns[idx]
	}
	return desc
}

func (s *Server) handleComputeCalendar(args json.RawMessage) (interface{}, error) {
	var req struct {
		Dataset         string `json:"dataset"`
		DimensionColumn string `json:"dimension_column"`
		MetricColumn    string `json:"metric_column"`
		BinCount        *int   `json:"bin_count"`
		FromStart       bool   `json:"from_start"`
		LegacyRange     *bool  `json:"legacy_range"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}

	t, ok := s.reg.Get(req.Dataset)
	if !ok {
		return nil, &settings.ConfigError{Setting: "dataset", Reason: fmt.Sprintf("no dataset %q is loaded", req.Dataset)}
	}

	cfg := settings.Default()
	cfg.DimensionColumn = req.DimensionColumn
	cfg.MetricColumn = req.MetricColumn
	cfg.FromStart = req.FromStart
	cfg.BinCount = s.cfg.DefaultBinCount
	if req.BinCount != nil {
		cfg.BinCount = *req.BinCount
	}
	legacy := s.cfg.LegacyRange
	if req.LegacyRange != nil {
		legacy = *req.LegacyRange
	}
	cfg.LegacyRange = &legacy

	resolved, err := settings.Resolve(cfg, t)
	if err != nil {
		return nil, err
	}

	rows, err := resolved.Rows(t, s.cfg.IngestTZ)
	if err != nil {
		return nil, err
	}

	res, err := calendar.Compute(rows, resolved.Options())
	if err != nil {
		return nil, err
	}

	// Diagnostic trace of intermediates, mirroring the reference widget.
	// Not part of the contract.
	log.Debug().
		Interface("bins", res.Bins).
		Time("minDate", res.MinDate).
		Time("maxDate", res.MaxDate).
		Time("initial", res.Anchor).
		Msg("Calendar computed")

	return map[string]interface{}{
		"bins":     res.Bins,
		"anchor":   res.Anchor,
		"entries":  res.Entries,
		"minValue": res.MinValue,
		"maxValue": res.MaxValue,
		"minDate":  res.MinDate,
		"maxDate":  res.MaxDate,
		"meta": map[string]interface{}{
			"rows_total":     t.RowCount(),
			"rows_analyzed":  len(rows),
			"distinct_dates": len(res.Entries),
			"bin_count":      resolved.BinCount,
			"range_mode":     resolved.RangeMode().String(),
			"from_start":     resolved.FromStart,
		},
	}, nil
}

func (s *Server) handleFitLabel(args json.RawMessage) (interface{}, error) {
	var req struct {
		MeasuredWidth float64  `json:"measured_width"`
		BoundingWidth float64  `json:"bounding_width"`
		CurrentScale  float64  `json:"current_scale"`
		MaxScale      *float64 `json:"max_scale"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, err
	}

	max := settings.Default().MaxFontScale
	if req.MaxScale != nil {
		max = *req.MaxScale
	}

	scale := layout.FitScale(req.MeasuredWidth, req.BoundingWidth, req.CurrentScale, max)
	return map[string]interface{}{"scale": scale}, nil
}
