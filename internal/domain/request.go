package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Point is a forecast location.
type Point struct {
	ID   string  `json:"id"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zone Zone    `json:"zone"`
}

// MaxPeriods is the most rows a point's grid may carry: four weeks of
// 12-hour periods.
const MaxPeriods = 56

// ReportRequest asks for one summary report over a set of points. Zero
// Frequency and Periods fall back to service defaults.
type ReportRequest struct {
	Points      []Point    `json:"points"`
	Samples     []Sample   `json:"samples"`
	Frequency   Frequency  `json:"frequency,omitempty"`
	Periods     int        `json:"periods,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`

	// SkipIcons disables phrase and icon synthesis, which makes weather
	// samples optional.
	SkipIcons bool `json:"skip_icons,omitempty"`
}

// ParseReportRequest deserializes a RawEvent's value into a ReportRequest and
// checks that every sample names a known element and a requested point.
func ParseReportRequest(raw RawEvent) (ReportRequest, error) {
	var req ReportRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ReportRequest{}, fmt.Errorf("parse report request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return ReportRequest{}, fmt.Errorf("parse report request: %w", err)
	}
	return req, nil
}

// Validate rejects structurally unusable requests.
func (r ReportRequest) Validate() error {
	if len(r.Points) == 0 {
		return errors.New("no points")
	}
	ids := make(map[string]struct{}, len(r.Points))
	for _, p := range r.Points {
		if p.ID == "" {
			return errors.New("point without id")
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("duplicate point %q", p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	for i, s := range r.Samples {
		if !s.Kind.Valid() {
			return fmt.Errorf("sample %d: unknown element %q", i, s.Kind)
		}
		if _, ok := ids[s.PointID]; !ok {
			return fmt.Errorf("sample %d: unknown point %q", i, s.PointID)
		}
	}
	if r.Frequency != 0 && !r.Frequency.Valid() {
		return fmt.Errorf("unsupported frequency %d", r.Frequency)
	}
	if r.Periods < 0 || r.Periods > MaxPeriods {
		return fmt.Errorf("period count %d outside 0..%d", r.Periods, MaxPeriods)
	}
	return nil
}

// SamplesByPoint splits the request's samples per point, each sorted by
// element then valid time.
func (r ReportRequest) SamplesByPoint() map[string][]Sample {
	out := make(map[string][]Sample, len(r.Points))
	for _, s := range r.Samples {
		out[s.PointID] = append(out[s.PointID], s)
	}
	for id := range out {
		SortSamples(out[id])
	}
	return out
}
