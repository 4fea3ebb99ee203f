package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		data := []byte(`{
			"points": [{"id":"okc","lat":35.47,"lon":-97.52,"zone":{"utc_offset_hours":-6,"observes_dst":true}}],
			"samples": [
				{"element":"wx","point_id":"okc","valid_time":"2024-04-26T15:00:00Z","value":"Chc:T:<NoInten>:<NoVis>:"},
				{"element":"sky","point_id":"okc","valid_time":"2024-04-26T15:00:00Z","value":45},
				{"element":"pop12","point_id":"okc","valid_time":"2024-04-27T00:00:00Z","value":null}
			],
			"frequency": "24h",
			"periods": 7
		}`)
		req, err := ParseReportRequest(RawEvent{Value: data})
		require.NoError(t, err)

		require.Len(t, req.Points, 1)
		assert.Equal(t, -6.0, req.Points[0].Zone.OffsetHours)
		assert.True(t, req.Points[0].Zone.ObservesDST)
		assert.Equal(t, TwentyFourHour, req.Frequency)
		assert.Equal(t, 7, req.Periods)
		require.Len(t, req.Samples, 3)
		assert.True(t, req.Samples[2].Value.IsMissing())

		byPoint := req.SamplesByPoint()
		require.Len(t, byPoint["okc"], 3)
		assert.Equal(t, Pop12, byPoint["okc"][0].Kind)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseReportRequest(RawEvent{Value: []byte("{invalid")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse report request")
	})

	t.Run("unknown element", func(t *testing.T) {
		data := []byte(`{"points":[{"id":"a"}],"samples":[{"element":"vis","point_id":"a","valid_time":"2024-04-26T15:00:00Z"}]}`)
		_, err := ParseReportRequest(RawEvent{Value: data})
		assert.Error(t, err)
	})

	t.Run("sample for unknown point", func(t *testing.T) {
		data := []byte(`{"points":[{"id":"a"}],"samples":[{"element":"sky","point_id":"b","valid_time":"2024-04-26T15:00:00Z","value":10}]}`)
		_, err := ParseReportRequest(RawEvent{Value: data})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown point "b"`)
	})

	t.Run("no points", func(t *testing.T) {
		_, err := ParseReportRequest(RawEvent{Value: []byte(`{"points":[]}`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no points")
	})

	t.Run("period count out of range", func(t *testing.T) {
		for _, n := range []int{-1, MaxPeriods + 1, 5_000_000} {
			data := []byte(fmt.Sprintf(`{"points":[{"id":"a"}],"periods":%d}`, n))
			_, err := ParseReportRequest(RawEvent{Value: data})
			require.Error(t, err, "periods %d", n)
			assert.Contains(t, err.Error(), "period count")
		}
	})

	t.Run("period count at the cap", func(t *testing.T) {
		data := []byte(fmt.Sprintf(`{"points":[{"id":"a"}],"periods":%d}`, MaxPeriods))
		req, err := ParseReportRequest(RawEvent{Value: data})
		require.NoError(t, err)
		assert.Equal(t, MaxPeriods, req.Periods)
	})

	t.Run("duplicate point", func(t *testing.T) {
		_, err := ParseReportRequest(RawEvent{Value: []byte(`{"points":[{"id":"a"},{"id":"a"}]}`)})
		assert.Error(t, err)
	})
}

func TestParseFrequency(t *testing.T) {
	for in, want := range map[string]Frequency{"12h": TwelveHour, "24": TwentyFourHour, " 24H ": TwentyFourHour} {
		got, err := ParseFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFrequency("6h")
	assert.Error(t, err)
}
