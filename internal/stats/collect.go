// Package stats reduces aligned element streams to per-period aggregates.
package stats

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/period"
)

// Aggregate is the reduction of one element stream over one period. Nil
// Max/Min/Mean mean the period had no valid samples, which is distinct from
// a legitimate zero.
type Aggregate struct {
	// Samples counts every sample placed in the period, Missing included.
	Samples int `json:"samples"`
	// Valid counts the numeric samples that took part in the reduction.
	Valid int `json:"valid"`

	Max  *float64 `json:"max,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	Mean *float64 `json:"mean,omitempty"`

	// Positions are whole hours from the period start, after the shift.
	MaxPosition   int `json:"max_position"`
	MinPosition   int `json:"min_position"`
	FirstPosition int `json:"first_position"`
	LastPosition  int `json:"last_position"`

	// MaxTime is the raw valid time of the first sample holding the max.
	MaxTime time.Time `json:"max_time,omitzero"`
}

// DataAvailable reports whether any sample, even a Missing one, landed in
// the period.
func (a Aggregate) DataAvailable() bool { return a.Samples > 0 }

// NoData reports whether the aggregate is the no-data sentinel.
func (a Aggregate) NoData() bool { return a.Valid == 0 }

// Collect reduces one numeric element stream over the periods, returning one
// aggregate per period. It holds no state between calls.
func Collect(periods []domain.Period, stream []domain.Sample, zone domain.Zone) []Aggregate {
	placed := period.Align(periods, stream, zone)
	out := make([]Aggregate, len(periods))
	for i, bucket := range placed {
		out[i] = reduce(bucket)
	}
	return out
}

func reduce(bucket []period.Placement) Aggregate {
	agg := Aggregate{Samples: len(bucket)}
	values := make([]float64, 0, len(bucket))

	for _, p := range bucket {
		v, ok := p.Sample.Value.Float()
		if !ok {
			continue
		}
		if agg.Valid == 0 {
			agg.FirstPosition = p.Position
		}
		agg.LastPosition = p.Position
		agg.Valid++
		values = append(values, v)

		if agg.Max == nil || v > *agg.Max {
			agg.Max = float(v)
			agg.MaxPosition = p.Position
			agg.MaxTime = p.Sample.ValidTime
		}
		if agg.Min == nil || v < *agg.Min {
			agg.Min = float(v)
			agg.MinPosition = p.Position
		}
	}

	if len(values) > 0 {
		agg.Mean = float(stat.Mean(values, nil))
	}
	return agg
}

// DirectionAt returns the wind direction sampled at exactly t, or nil when
// the stream has no valid sample at that time.
func DirectionAt(stream []domain.Sample, t time.Time) *float64 {
	for _, s := range stream {
		if !s.ValidTime.Equal(t) {
			continue
		}
		if v, ok := s.Value.Float(); ok {
			return float(v)
		}
	}
	return nil
}

func float(v float64) *float64 { return &v }
