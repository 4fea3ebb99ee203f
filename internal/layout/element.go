package layout

import (
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
)

// ElementPeriods returns the grid an element is reported on and its nominal
// period length in hours. MaxTemp rows are the day periods and MinTemp rows
// the night periods, both a day apart. Pop12 is always on a 12-hour grid;
// every other element follows the request grid.
func ElementPeriods(kind domain.ElementKind, periods []domain.Period, zone domain.Zone) ([]domain.Period, int) {
	if len(periods) == 0 {
		return nil, 0
	}
	freq := periods[0].Frequency

	switch kind {
	case domain.MaxTemp, domain.MinTemp:
		if freq == domain.TwentyFourHour {
			return periods, 24
		}
		night := kind == domain.MinTemp
		var out []domain.Period
		for _, p := range periods {
			if p.Night == night {
				out = append(out, p)
			}
		}
		return reindex(out), 24
	case domain.Pop12:
		if freq == domain.TwelveHour {
			return periods, 12
		}
		return halve(periods, zone), 12
	default:
		return periods, freq.Hours()
	}
}

// halve splits each 24-hour period at local 18:00.
func halve(periods []domain.Period, zone domain.Zone) []domain.Period {
	out := make([]domain.Period, 0, 2*len(periods))
	for _, p := range periods {
		mid := zone.Instant(zone.Wall(p.Start).Add(12 * time.Hour))
		out = append(out,
			domain.Period{Start: p.Start, End: mid, Frequency: domain.TwelveHour},
			domain.Period{Start: mid, End: p.End, Frequency: domain.TwelveHour, Night: true},
		)
	}
	return reindex(out)
}

func reindex(periods []domain.Period) []domain.Period {
	for i := range periods {
		periods[i].Index = i
	}
	return periods
}
