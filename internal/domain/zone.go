package domain

import "time"

// Zone is a point's time zone: a fixed standard offset and whether the point
// observes daylight saving time.
type Zone struct {
	OffsetHours float64 `json:"utc_offset_hours"`
	ObservesDST bool    `json:"observes_dst"`
}

func (z Zone) standard() time.Duration {
	return time.Duration(z.OffsetHours * float64(time.Hour))
}

// Offset returns the UTC offset in effect at instant t.
func (z Zone) Offset(t time.Time) time.Duration {
	std := z.standard()
	if z.inDST(t) {
		return std + time.Hour
	}
	return std
}

// Wall converts an instant to local wall clock time. The result is expressed
// in time.UTC so that adding durations to it is plain wall-clock arithmetic.
func (z Zone) Wall(t time.Time) time.Time {
	return t.UTC().Add(z.Offset(t))
}

// Instant converts a local wall clock time, expressed in time.UTC as returned
// by Wall, back to the instant it names. Wall times inside the spring-forward
// gap resolve to standard time.
func (z Zone) Instant(wall time.Time) time.Time {
	std := z.standard()
	if z.ObservesDST {
		if daylight := wall.Add(-(std + time.Hour)); z.inDST(daylight) {
			return daylight
		}
	}
	return wall.Add(-std)
}

// In returns t carrying a fixed location with the offset in effect at t, for
// formatting local times.
func (z Zone) In(t time.Time) time.Time {
	return t.In(time.FixedZone("", int(z.Offset(t)/time.Second)))
}

func (z Zone) inDST(t time.Time) bool {
	if !z.ObservesDST {
		return false
	}
	std := z.standard()
	year := t.UTC().Add(std).Year()
	start, end := dstBounds(year, std)
	return !t.Before(start) && t.Before(end)
}

// dstBounds returns the US daylight saving interval for year as instants.
func dstBounds(year int, std time.Duration) (time.Time, time.Time) {
	startWall := time.Date(year, time.March, nthSunday(year, time.March, 2), 2, 0, 0, 0, time.UTC)
	endWall := time.Date(year, time.November, nthSunday(year, time.November, 1), 2, 0, 0, 0, time.UTC)
	return startWall.Add(-std), endWall.Add(-(std + time.Hour))
}

// nthSunday returns the day of month of the nth Sunday.
func nthSunday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (7 - int(first.Weekday())) % 7
	return 1 + offset + 7*(n-1)
}
