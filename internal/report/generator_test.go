package report_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/observability"
	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/couchcryptid/forecast-summary/internal/solar"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	central = domain.Zone{OffsetHours: -6}
	// t0 is 06:00 Central on Monday 2024-01-15.
	t0        = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	generated = time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)
)

func point(id string) domain.Point {
	return domain.Point{ID: id, Lat: 39.1, Lon: -94.6, Zone: central}
}

func sample(id string, kind domain.ElementKind, hours int, v domain.Value) domain.Sample {
	return domain.Sample{Kind: kind, PointID: id, ValidTime: t0.Add(time.Duration(hours) * time.Hour), Value: v}
}

// pointSamples covers four 12-hour periods: rain in the first, nothing in the
// second, clear skies in the third and nothing in the fourth. Every valid
// time is moved by shift hours.
func pointSamples(id string, shift int) []domain.Sample {
	var out []domain.Sample
	for _, h := range []int{3, 6, 9, 12} {
		out = append(out, sample(id, domain.Weather, h+shift, domain.Code("Lkly:R:m:<NoVis>:")))
	}
	for _, h := range []int{27, 30, 33, 36} {
		out = append(out,
			sample(id, domain.Weather, h+shift, domain.Code("<NoCov>:<NoWx>:<NoInten>:<NoVis>:")),
			sample(id, domain.SkyCover, h+shift, domain.Number(10)),
		)
	}
	for i, pop := range []float64{70, 10, 5, 5} {
		out = append(out, sample(id, domain.Pop12, 12*(i+1)+shift, domain.Number(pop)))
	}
	return out
}

func newGenerator(opts report.Options) (*report.Generator, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	if opts.Workers == 0 {
		opts.Workers = 4
	}
	return report.New(synthesis.New(synthesis.DefaultRules()), opts, slog.Default(), metrics), metrics
}

func baseRequest() domain.ReportRequest {
	at := generated
	samples := append(pointSamples("p1", 0), sample("p1", domain.MaxTemp, 12, domain.Number(50)))
	samples = append(samples, pointSamples("p2", 0)...)
	samples = append(samples, pointSamples("p3", 24)...)
	return domain.ReportRequest{
		Points:      []domain.Point{point("p1"), point("p2"), point("p3")},
		Samples:     samples,
		Frequency:   domain.TwelveHour,
		Periods:     4,
		GeneratedAt: &at,
	}
}

func TestGenerate_Periods(t *testing.T) {
	gen, metrics := newGenerator(report.Options{})

	rep, err := gen.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, rep.Points, 3)

	p1 := rep.Points[0]
	require.Len(t, p1.Periods, 4)

	tests := []struct {
		name      string
		available bool
		phrase    string
		icon      string
		tier      synthesis.Tier
	}{
		{name: "Today", available: true, phrase: "Rain Likely", icon: "rain-day", tier: synthesis.TierWeather},
		{name: "Tonight", available: false, phrase: "", icon: "none", tier: synthesis.TierNone},
		{name: "Tomorrow", available: true, phrase: "Sunny", icon: "clear-day", tier: synthesis.TierSky},
		{name: "Tomorrow Night", available: false, phrase: "", icon: "none", tier: synthesis.TierNone},
	}
	for i, tt := range tests {
		rec := p1.Periods[i]
		assert.Equal(t, tt.name, rec.Name, "period %d", i)
		assert.Equal(t, tt.available, rec.DataAvailable, "period %d", i)
		assert.Equal(t, tt.phrase, rec.Phrase, "period %d", i)
		assert.Equal(t, tt.icon, rec.Icon, "period %d", i)
		assert.Equal(t, tt.tier, rec.Tier, "period %d", i)
	}

	first := p1.Periods[0]
	assert.Equal(t, "2024-01-15T06:00:00-06:00", first.Start.Format(time.RFC3339))
	assert.Equal(t, "day", first.Phase)
	assert.Equal(t, "night", p1.Periods[1].Phase)
	require.NotNil(t, first.Weather)
	assert.Equal(t, "Lkly", string(first.Weather.Group.Coverage))
	require.NotNil(t, first.Stats.MaxTemp)
	assert.InDelta(t, 50, *first.Stats.MaxTemp, 0)
	require.NotNil(t, first.Stats.MaxPop)
	assert.InDelta(t, 70, *first.Stats.MaxPop, 0)

	unavailable := p1.Periods[1]
	assert.Nil(t, unavailable.Weather)
	assert.False(t, unavailable.Available[domain.Weather])
	assert.True(t, unavailable.Available[domain.Pop12], "other elements keep their own availability")

	assert.InDelta(t, 6, testutil.ToFloat64(metrics.PeriodsSummarized.WithLabelValues("available")), 0)
	assert.InDelta(t, 6, testutil.ToFloat64(metrics.PeriodsSummarized.WithLabelValues("missing")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.PointsSummarized), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsGenerated.WithLabelValues("success")), 0)
}

func TestGenerate_Layouts(t *testing.T) {
	gen, _ := newGenerator(report.Options{})

	rep, err := gen.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	p1, p2, p3 := rep.Points[0], rep.Points[1], rep.Points[2]
	assert.Equal(t, "k-p12h-n4-1", p1.Layout)
	assert.Equal(t, p1.Layout, p2.Layout, "same grid, same layout")
	assert.Equal(t, "k-p12h-n4-3", p3.Layout, "a day later")

	maxT := p1.Elements[domain.MaxTemp]
	assert.Equal(t, "k-p24h-n2-2", maxT.Layout)
	assert.Equal(t, []string{"Today", "Tomorrow"}, maxT.Names)
	assert.Equal(t, p1.Layout, p1.Elements[domain.Pop12].Layout)
	assert.Equal(t, p1.Layout, p1.Elements[domain.Weather].Layout)
	assert.NotContains(t, p2.Elements, domain.MaxTemp)

	require.Len(t, rep.Layouts, 3)
	assert.Equal(t, 24, rep.Layouts[1].Key.PeriodHours)
}

func TestGenerate_Deterministic(t *testing.T) {
	serial, _ := newGenerator(report.Options{Workers: 1})
	parallel, _ := newGenerator(report.Options{Workers: 8})

	a, err := serial.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	b, err := parallel.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("reports differ (-serial +parallel):\n%s", diff)
	}

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestGenerate_ReportID(t *testing.T) {
	gen, _ := newGenerator(report.Options{})

	a, err := gen.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Len(t, a.ID, 36)

	req := baseRequest()
	later := generated.Add(time.Hour)
	req.GeneratedAt = &later
	b, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerate_DefaultsFromClock(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	gen, _ := newGenerator(report.Options{Frequency: domain.TwentyFourHour, Periods: 3})
	req := baseRequest()
	req.GeneratedAt = nil
	req.Frequency = 0
	req.Periods = 0

	rep, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, fixed, rep.GeneratedAt)
	assert.Equal(t, domain.TwentyFourHour, rep.Frequency)
	assert.Len(t, rep.Points[0].Periods, 3)
	assert.Equal(t, "k-p24h-n3-1", rep.Points[0].Layout)
}

func TestGenerate_MissingWeatherIsFatal(t *testing.T) {
	gen, metrics := newGenerator(report.Options{})
	req := baseRequest()
	req.Points = append(req.Points, point("p4"))
	req.Samples = append(req.Samples, sample("p4", domain.SkyCover, 3, domain.Number(40)))

	_, err := gen.Generate(context.Background(), req)
	require.ErrorIs(t, err, report.ErrMissingElement)
	assert.Contains(t, err.Error(), `"p4"`)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsGenerated.WithLabelValues("error")), 0)
}

func TestGenerate_SkipIcons(t *testing.T) {
	gen, _ := newGenerator(report.Options{})
	at := generated
	req := domain.ReportRequest{
		Points: []domain.Point{point("p1")},
		Samples: []domain.Sample{
			sample("p1", domain.SkyCover, 3, domain.Number(40)),
			sample("p1", domain.SkyCover, 6, domain.Number(60)),
		},
		Periods:     2,
		GeneratedAt: &at,
		SkipIcons:   true,
	}

	rep, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	periods := rep.Points[0].Periods
	require.Len(t, periods, 2)
	assert.True(t, periods[0].DataAvailable)
	assert.Empty(t, periods[0].Phrase)
	assert.Equal(t, "none", periods[0].Icon)
	assert.NotContains(t, periods[0].Available, domain.Weather)
	assert.False(t, periods[1].DataAvailable)
	require.NotNil(t, periods[0].Stats.AvgSky)
	assert.InDelta(t, 50, *periods[0].Stats.AvgSky, 1e-9)
}

func TestGenerate_PhaseOverride(t *testing.T) {
	alwaysNight := func(time.Time, float64, float64) solar.Phase { return solar.Night }
	gen, _ := newGenerator(report.Options{Phase: alwaysNight})

	rep, err := gen.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "rain-night", rep.Points[0].Periods[0].Icon)
	assert.Equal(t, "Clear", rep.Points[0].Periods[2].Phrase)
}

func TestGenerate_MalformedGroupsAreSkipped(t *testing.T) {
	gen, metrics := newGenerator(report.Options{})
	req := baseRequest()
	req.Samples = append(req.Samples, sample("p1", domain.Weather, 4, domain.Code("Chc:RW:-:<NoVis>:^junk")))

	rep, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Rain Likely", rep.Points[0].Periods[0].Phrase)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.MalformedWeatherGroups), 0)
}

func TestGenerate_Errors(t *testing.T) {
	gen, _ := newGenerator(report.Options{})

	_, err := gen.Generate(context.Background(), domain.ReportRequest{})
	require.ErrorIs(t, err, report.ErrNoPoints)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, baseRequest())
	require.ErrorIs(t, err, context.Canceled)
}
