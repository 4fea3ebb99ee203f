package stats

import (
	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/period"
	"github.com/couchcryptid/forecast-summary/internal/wxcode"
)

// WeatherAggregate holds the decoded weather rows placed in one period.
type WeatherAggregate struct {
	// Samples counts every weather sample in the period, Missing included.
	Samples int
	// Rows holds one decoded row per coded sample, in valid-time order.
	Rows []wxcode.Row
	// Malformed collects the groups skipped while decoding.
	Malformed []error
	// FogRatio is the fraction of rows reporting fog, nil without rows.
	FogRatio *float64
}

// DataAvailable reports whether any weather sample landed in the period.
func (w WeatherAggregate) DataAvailable() bool { return w.Samples > 0 }

var fogTypes = []wxcode.Type{wxcode.TypeFog, wxcode.TypeFreezingFog, wxcode.TypeIceFog}

// CollectWeather decodes and places a weather stream. A malformed group is
// skipped without dropping the rest of its sample.
func CollectWeather(periods []domain.Period, stream []domain.Sample, zone domain.Zone) []WeatherAggregate {
	placed := period.Align(periods, stream, zone)
	out := make([]WeatherAggregate, len(periods))

	for i, bucket := range placed {
		agg := WeatherAggregate{Samples: len(bucket)}
		fog := 0
		for _, p := range bucket {
			code, ok := p.Sample.Value.Text()
			if !ok {
				continue
			}
			groups, errs := wxcode.Parse(code)
			agg.Malformed = append(agg.Malformed, errs...)
			row := wxcode.Row(groups)
			agg.Rows = append(agg.Rows, row)
			if row.Has(fogTypes...) {
				fog++
			}
		}
		if len(agg.Rows) > 0 {
			agg.FogRatio = float(float64(fog) / float64(len(agg.Rows)))
		}
		out[i] = agg
	}
	return out
}
