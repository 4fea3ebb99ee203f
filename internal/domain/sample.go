package domain

import (
	"cmp"
	"slices"
	"time"
)

// Sample is one probed forecast value for a point.
type Sample struct {
	Kind      ElementKind `json:"element"`
	PointID   string      `json:"point_id"`
	ValidTime time.Time   `json:"valid_time"`
	Value     Value       `json:"value"`
}

// SortSamples orders samples by element kind, then valid time. The sort is
// stable so duplicate valid times keep their input order.
func SortSamples(samples []Sample) {
	slices.SortStableFunc(samples, func(a, b Sample) int {
		if c := cmp.Compare(a.Kind.Order(), b.Kind.Order()); c != 0 {
			return c
		}
		return a.ValidTime.Compare(b.ValidTime)
	})
}

// Streams groups one point's samples by element kind. Each stream keeps the
// input order.
type Streams map[ElementKind][]Sample

// SplitStreams groups samples by element kind.
func SplitStreams(samples []Sample) Streams {
	streams := make(Streams)
	for _, s := range samples {
		streams[s.Kind] = append(streams[s.Kind], s)
	}
	return streams
}

// Bounds returns the earliest and latest valid times across all streams.
// Both are zero when there are no samples.
func (s Streams) Bounds() (first, last time.Time) {
	for _, stream := range s {
		for _, sample := range stream {
			if first.IsZero() || sample.ValidTime.Before(first) {
				first = sample.ValidTime
			}
			if sample.ValidTime.After(last) {
				last = sample.ValidTime
			}
		}
	}
	return first, last
}
