// Package period builds a point's summarization grid and places element
// samples into it.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
)

const (
	dayStartHour   = 6
	nightStartHour = 18
)

// MaxPeriods caps every grid, whether its length is requested or derived
// from an end time.
const MaxPeriods = domain.MaxPeriods

// ErrNoAnchor is returned when neither samples nor a start time place the grid.
var ErrNoAnchor = errors.New("no sample times or start time to anchor periods")

// Request describes the period grid wanted for one point.
type Request struct {
	Zone      domain.Zone
	Frequency domain.Frequency

	// Count is the number of rows wanted. Zero derives it from End, or from
	// DataLast when End is unset.
	Count int

	// Start and End are the user's optional window; zero means unset.
	Start time.Time
	End   time.Time

	// DataFirst and DataLast bound the valid times present in the samples.
	DataFirst time.Time
	DataLast  time.Time
}

// Build returns the ordered, contiguous periods for a point. The first period
// is the one containing the anchor: the user's start when it falls after the
// first sample, otherwise the first sample. A start before the earliest
// sample is no constraint. When Count asks for more rows than the data
// covers, the trailing periods are still returned; the collector marks them
// unavailable.
func Build(req Request) ([]domain.Period, error) {
	if !req.Frequency.Valid() {
		return nil, fmt.Errorf("build periods: unsupported frequency %d", req.Frequency)
	}
	if req.Count < 0 {
		return nil, fmt.Errorf("build periods: negative count %d", req.Count)
	}
	count := min(req.Count, MaxPeriods)

	anchor := Anchor(req)
	if anchor.IsZero() {
		return nil, ErrNoAnchor
	}

	end := req.End
	if end.IsZero() {
		end = req.DataLast
	}

	step := time.Duration(req.Frequency.Hours()) * time.Hour
	wall := firstBoundary(req.Zone.Wall(anchor), req.Frequency)

	var periods []domain.Period
	for i := 0; ; i++ {
		if count > 0 && i >= count {
			break
		}
		start := req.Zone.Instant(wall)
		if count == 0 && i > 0 && (!start.Before(end) || i >= MaxPeriods) {
			break
		}
		next := wall.Add(step)
		periods = append(periods, domain.Period{
			Index:     i,
			Start:     start,
			End:       req.Zone.Instant(next),
			Frequency: req.Frequency,
			Night:     wall.Hour() == nightStartHour,
		})
		wall = next
	}
	return periods, nil
}

// Anchor returns the instant the first period must contain: the user's start
// when it falls after the first sample, otherwise the first sample. It is
// zero when neither is set.
func Anchor(req Request) time.Time {
	if !req.Start.IsZero() && (req.DataFirst.IsZero() || req.Start.After(req.DataFirst)) {
		return req.Start
	}
	return req.DataFirst
}

// firstBoundary returns the latest period boundary at or before wall. All
// times are local wall clock expressed in UTC.
func firstBoundary(wall time.Time, freq domain.Frequency) time.Time {
	y, m, d := wall.Date()
	hour := wall.Hour()

	if freq == domain.TwentyFourHour {
		if hour < dayStartHour {
			d--
		}
		return time.Date(y, m, d, dayStartHour, 0, 0, 0, time.UTC)
	}

	switch {
	case hour >= nightStartHour:
		return time.Date(y, m, d, nightStartHour, 0, 0, 0, time.UTC)
	case hour >= dayStartHour:
		return time.Date(y, m, d, dayStartHour, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d-1, nightStartHour, 0, 0, 0, time.UTC)
	}
}

// Locate returns the index of the period containing t.
func Locate(periods []domain.Period, t time.Time) (int, bool) {
	lo, hi := 0, len(periods)
	for lo < hi {
		mid := (lo + hi) / 2
		if periods[mid].End.After(t) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo < len(periods) && periods[lo].Contains(t) {
		return lo, true
	}
	return 0, false
}
