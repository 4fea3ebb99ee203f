// Package domain models point forecast samples and the period grid they are
// summarized over.
//
// # Data Source
//
// Samples come from a point-probe layer that decodes gridded NDFD-style
// forecast data. Each sample names an element, the point it was probed at,
// its valid time, and a tri-state value. Samples arrive sorted by element
// then valid time, and are immutable once read.
//
// # Element Conventions
//
// Short names follow the NDFD element abbreviations:
//
//	maxt  daily maximum temperature (°F), one per day, valid late afternoon
//	mint  daily minimum temperature (°F), one per night, valid the next morning
//	pop12 12-hour probability of precipitation (%), valid at the end of its window
//	temp  hourly temperature (°F)
//	td    dew point (°F)
//	apt   apparent temperature (°F)
//	wspd  sustained wind speed (knots)
//	wdir  wind direction (degrees true)
//	sky   sky cover (%)
//	wx    coded weather ("ugly string")
//	qpf   quantitative precipitation (inches)
//	snow  snow amount (inches)
//	rhm   relative humidity (%)
//	waveh significant wave height (feet)
//
// Interval-valued elements (wx, sky, wspd, wdir, temp, pop12, qpf, snow)
// describe the window that ends at their valid time. Before bucketing they
// are shifted back by half their native sampling period so they land in the
// period containing their midpoint.
//
// # Values
//
// A sample value is Missing, a Number, or a Code. Missing is never encoded as
// a magic number: on the wire it is JSON null. Missing samples still count
// toward a period's data availability but are excluded from reductions.
//
// # Time Zones
//
// A point carries a fixed standard UTC offset and whether it observes
// daylight saving time. DST follows the US rule: from the second Sunday of
// March at 02:00 local standard time to the first Sunday of November at
// 02:00 local daylight time. Period boundaries are computed in local wall
// clock time and converted back with the offset in effect at each boundary,
// so a period straddling a transition lasts 23 or 25 hours.
//
// # Periods
//
// 24-hour periods start at 06:00 local. 12-hour periods alternate 06:00–18:00
// (day) and 18:00–06:00 (night). Periods are contiguous and half-open:
// [start, end).
package domain
