package stats

import (
	"github.com/couchcryptid/forecast-summary/internal/domain"
)

// PeriodStats are the aggregates the synthesis engine reads for one period.
type PeriodStats struct {
	MaxTemp *float64 `json:"max_temp,omitempty"`
	MinTemp *float64 `json:"min_temp,omitempty"`

	MaxSky         *float64 `json:"max_sky,omitempty"`
	MinSky         *float64 `json:"min_sky,omitempty"`
	AvgSky         *float64 `json:"avg_sky,omitempty"`
	MaxSkyPosition int      `json:"max_sky_position"`
	MinSkyPosition int      `json:"min_sky_position"`
	// SkySpan is the number of hours between the first and last valid sky
	// cover samples.
	SkySpan int `json:"sky_span"`

	MaxWind          *float64 `json:"max_wind,omitempty"`
	MaxWindDirection *float64 `json:"max_wind_direction,omitempty"`
	MaxPop           *float64 `json:"max_pop,omitempty"`
	FogRatio         *float64 `json:"fog_ratio,omitempty"`
}

// Summary holds every reduction for one point.
type Summary struct {
	Elements map[domain.ElementKind][]Aggregate
	Weather  []WeatherAggregate
	Periods  []PeriodStats
}

// Summarize collects every stream of a point over its periods and assembles
// the per-period statistics.
func Summarize(periods []domain.Period, streams domain.Streams, zone domain.Zone) Summary {
	s := Summary{
		Elements: make(map[domain.ElementKind][]Aggregate, len(streams)),
		Weather:  CollectWeather(periods, streams[domain.Weather], zone),
		Periods:  make([]PeriodStats, len(periods)),
	}
	for kind, stream := range streams {
		if kind == domain.Weather {
			continue
		}
		s.Elements[kind] = Collect(periods, stream, zone)
	}

	for i := range periods {
		ps := PeriodStats{
			MaxTemp:  firstNonNil(s.Aggregate(domain.MaxTemp, i).Max, s.Aggregate(domain.HourlyTemp, i).Max),
			MinTemp:  firstNonNil(s.Aggregate(domain.MinTemp, i).Min, s.Aggregate(domain.HourlyTemp, i).Min),
			MaxPop:   s.Aggregate(domain.Pop12, i).Max,
			FogRatio: s.Weather[i].FogRatio,
		}

		if sky := s.Aggregate(domain.SkyCover, i); !sky.NoData() {
			ps.MaxSky, ps.MinSky, ps.AvgSky = sky.Max, sky.Min, sky.Mean
			ps.MaxSkyPosition, ps.MinSkyPosition = sky.MaxPosition, sky.MinPosition
			ps.SkySpan = sky.LastPosition - sky.FirstPosition
		}

		if wind := s.Aggregate(domain.WindSpeed, i); !wind.NoData() {
			ps.MaxWind = wind.Max
			ps.MaxWindDirection = DirectionAt(streams[domain.WindDirection], wind.MaxTime)
		}

		s.Periods[i] = ps
	}
	return s
}

// Aggregate returns the aggregate of kind for period i, or the zero
// aggregate when the point has no such stream.
func (s Summary) Aggregate(kind domain.ElementKind, i int) Aggregate {
	aggs, ok := s.Elements[kind]
	if !ok || i >= len(aggs) {
		return Aggregate{}
	}
	return aggs[i]
}

func firstNonNil(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
