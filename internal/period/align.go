package period

import (
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
)

// Placement is one sample placed into a period.
type Placement struct {
	Sample domain.Sample

	// At is the instant used for placement, after the half-period shift or
	// day anchoring.
	At time.Time

	// Position is the whole number of hours from the period start to At.
	Position int
}

// NativePeriod returns a stream's sampling period: the smallest positive
// spacing between consecutive valid times, or the element default when the
// stream has fewer than two distinct times.
func NativePeriod(kind domain.ElementKind, stream []domain.Sample) time.Duration {
	var native time.Duration
	for i := 1; i < len(stream); i++ {
		gap := stream[i].ValidTime.Sub(stream[i-1].ValidTime)
		if gap > 0 && (native == 0 || gap < native) {
			native = gap
		}
	}
	if native == 0 {
		return kind.NativePeriod()
	}
	return native
}

// BucketTime returns the instant used to place s into a period.
//
// Interval-valued elements are shifted back by half their native period so
// they count toward the period containing their midpoint. MaxTemp anchors to
// the day period of its local valid date. MinTemp anchors one local day
// earlier, because an overnight low is reported under the next morning's
// date: to the night period for 12-hour grids and the day-start boundary for
// 24-hour grids.
func BucketTime(s domain.Sample, native time.Duration, zone domain.Zone, freq domain.Frequency) time.Time {
	switch s.Kind {
	case domain.MaxTemp:
		return dayAnchor(s.ValidTime, zone, 0, dayStartHour)
	case domain.MinTemp:
		hour := nightStartHour
		if freq == domain.TwentyFourHour {
			hour = dayStartHour
		}
		return dayAnchor(s.ValidTime, zone, -1, hour)
	}
	if s.Kind.IntervalValued() {
		return s.ValidTime.Add(-native / 2)
	}
	return s.ValidTime
}

func dayAnchor(t time.Time, zone domain.Zone, dayOffset, hour int) time.Time {
	w := zone.Wall(t)
	return zone.Instant(time.Date(w.Year(), w.Month(), w.Day()+dayOffset, hour, 0, 0, 0, time.UTC))
}

// Align places every sample of one element stream into periods. The result
// has one slice per period; samples outside the grid are dropped.
func Align(periods []domain.Period, stream []domain.Sample, zone domain.Zone) [][]Placement {
	out := make([][]Placement, len(periods))
	if len(periods) == 0 || len(stream) == 0 {
		return out
	}

	freq := periods[0].Frequency
	native := NativePeriod(stream[0].Kind, stream)
	for _, s := range stream {
		at := BucketTime(s, native, zone, freq)
		idx, ok := Locate(periods, at)
		if !ok {
			continue
		}
		out[idx] = append(out[idx], Placement{
			Sample:   s,
			At:       at,
			Position: int(at.Sub(periods[idx].Start) / time.Hour),
		})
	}
	return out
}
