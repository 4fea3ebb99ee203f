package stats

import (
	"testing"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_WindDirectionAtMaxSpeed(t *testing.T) {
	periods := grid(t, domain.TwelveHour, 2)
	streams := domain.SplitStreams([]domain.Sample{
		sample(domain.WindSpeed, 3*time.Hour, domain.Number(12)),
		sample(domain.WindSpeed, 6*time.Hour, domain.Number(22)),
		sample(domain.WindSpeed, 9*time.Hour, domain.Number(18)),
		sample(domain.WindDirection, 3*time.Hour, domain.Number(180)),
		sample(domain.WindDirection, 6*time.Hour, domain.Number(330)),
		sample(domain.WindDirection, 9*time.Hour, domain.Number(350)),
		sample(domain.WindSpeed, 15*time.Hour, domain.Number(9)),
	})

	s := Summarize(periods, streams, central)
	require.Len(t, s.Periods, 2)

	day := s.Periods[0]
	require.NotNil(t, day.MaxWind)
	assert.Equal(t, 22.0, *day.MaxWind)
	require.NotNil(t, day.MaxWindDirection)
	assert.Equal(t, 330.0, *day.MaxWindDirection)

	night := s.Periods[1]
	require.NotNil(t, night.MaxWind)
	assert.Nil(t, night.MaxWindDirection, "no direction sampled at the max speed time")
}

func TestSummarize_PopOverTwentyFourHours(t *testing.T) {
	periods := grid(t, domain.TwentyFourHour, 2)
	streams := domain.SplitStreams([]domain.Sample{
		sample(domain.Pop12, 12*time.Hour, domain.Number(30)), // day half
		sample(domain.Pop12, 24*time.Hour, domain.Number(60)), // night half
		sample(domain.Pop12, 36*time.Hour, domain.Number(10)),
	})

	s := Summarize(periods, streams, central)
	require.NotNil(t, s.Periods[0].MaxPop)
	assert.Equal(t, 60.0, *s.Periods[0].MaxPop)
	require.NotNil(t, s.Periods[1].MaxPop)
	assert.Equal(t, 10.0, *s.Periods[1].MaxPop)
}

func TestSummarize_TemperatureSources(t *testing.T) {
	periods := grid(t, domain.TwelveHour, 3)
	streams := domain.SplitStreams([]domain.Sample{
		sample(domain.MaxTemp, 12*time.Hour, domain.Number(58)), // 18:00 local, same day
		sample(domain.MinTemp, 25*time.Hour, domain.Number(33)), // 07:00 local next morning
		sample(domain.HourlyTemp, 3*time.Hour, domain.Number(61)),
		sample(domain.HourlyTemp, 27*time.Hour, domain.Number(40)),
		sample(domain.HourlyTemp, 30*time.Hour, domain.Number(47)),
	})

	s := Summarize(periods, streams, central)

	require.NotNil(t, s.Periods[0].MaxTemp)
	assert.Equal(t, 58.0, *s.Periods[0].MaxTemp, "daily max wins over hourly")
	require.NotNil(t, s.Periods[1].MinTemp)
	assert.Equal(t, 33.0, *s.Periods[1].MinTemp, "overnight low belongs to the previous night")
	require.NotNil(t, s.Periods[2].MaxTemp)
	assert.Equal(t, 47.0, *s.Periods[2].MaxTemp, "hourly fallback")
}

func TestSummarize_MissingWeatherPeriod(t *testing.T) {
	periods := grid(t, domain.TwelveHour, 3)
	wx := func(offset time.Duration) domain.Sample {
		return sample(domain.Weather, offset, domain.Code("Chc:R:-:<NoVis>:"))
	}
	streams := domain.SplitStreams([]domain.Sample{
		wx(3 * time.Hour), wx(6 * time.Hour), wx(9 * time.Hour), wx(12 * time.Hour),
		// nothing for the second period
		wx(27 * time.Hour), wx(30 * time.Hour), wx(33 * time.Hour), wx(36 * time.Hour),
	})

	s := Summarize(periods, streams, central)

	assert.Equal(t, 4, s.Weather[0].Samples)
	assert.False(t, s.Weather[1].DataAvailable())
	assert.Empty(t, s.Weather[1].Rows)
	assert.Nil(t, s.Weather[1].FogRatio)
	assert.Equal(t, 4, s.Weather[2].Samples)
	assert.Len(t, s.Weather[2].Rows, 4)
}

func TestCollectWeather(t *testing.T) {
	periods := grid(t, domain.TwelveHour, 1)
	stream := []domain.Sample{
		sample(domain.Weather, 3*time.Hour, domain.Code("Areas:F:<NoInten>:<NoVis>:")),
		sample(domain.Weather, 6*time.Hour, domain.Code("Chc:R:-:<NoVis>:^bad:group")),
		sample(domain.Weather, 9*time.Hour, domain.Missing()),
		sample(domain.Weather, 12*time.Hour, domain.Code("<NoCov>:<NoWx>:<NoInten>:<NoVis>:")),
	}

	aggs := CollectWeather(periods, stream, central)
	require.Len(t, aggs, 1)

	agg := aggs[0]
	assert.Equal(t, 4, agg.Samples)
	assert.Len(t, agg.Rows, 3)
	assert.Len(t, agg.Malformed, 1)
	assert.Len(t, agg.Rows[1], 1, "valid group kept beside the malformed one")
	require.NotNil(t, agg.FogRatio)
	assert.InDelta(t, 1.0/3.0, *agg.FogRatio, 1e-9)
}
