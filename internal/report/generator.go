// Package report generates forecast summary reports. Points are summarized
// concurrently; each point runs its own period, statistics and synthesis
// pipeline, and time layouts are allocated afterwards in point order so the
// output does not depend on scheduling.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/layout"
	"github.com/couchcryptid/forecast-summary/internal/observability"
	"github.com/couchcryptid/forecast-summary/internal/period"
	"github.com/couchcryptid/forecast-summary/internal/solar"
	"github.com/couchcryptid/forecast-summary/internal/stats"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
	"github.com/couchcryptid/forecast-summary/internal/wxcode"
)

var (
	// ErrMissingElement is returned when a point lacks an element the request
	// needs, such as weather samples when icons are wanted.
	ErrMissingElement = errors.New("missing required element")

	// ErrNoPoints is returned for a request without points.
	ErrNoPoints = errors.New("no points to summarize")
)

// representativeOffset places the instant that decides a period's day/night
// phase.
const representativeOffset = 6 * time.Hour

// reportNamespace seeds the name-based report IDs.
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/forecast-summary/report"))

// PhaseFunc classifies an instant at a point as day or night.
type PhaseFunc func(t time.Time, lat, lon float64) solar.Phase

// Options are the report defaults and limits.
type Options struct {
	// Frequency and Periods apply when a request leaves them unset.
	Frequency domain.Frequency
	Periods   int
	// Workers caps the points summarized at once.
	Workers int
	// Phase overrides the solar day/night classifier.
	Phase PhaseFunc
}

// Generator builds reports. It is safe for concurrent use.
type Generator struct {
	engine  *synthesis.Engine
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New returns a Generator applying the engine's rules.
func New(engine *synthesis.Engine, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	if !opts.Frequency.Valid() {
		opts.Frequency = domain.TwelveHour
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Phase == nil {
		opts.Phase = solar.PhaseAt
	}
	return &Generator{engine: engine, opts: opts, logger: logger, metrics: metrics}
}

// job is the resolved request shared by every point.
type job struct {
	freq        domain.Frequency
	count       int
	start       time.Time
	end         time.Time
	generatedAt time.Time
	skipIcons   bool
}

// pending is a point report waiting for its layout identities.
type pending struct {
	report   PointReport
	grid     layout.Key
	elements []elementGrid
}

type elementGrid struct {
	kind  domain.ElementKind
	key   layout.Key
	names []string
}

// Generate summarizes every point of req. Missing data never fails a
// report; a point without weather samples does unless req.SkipIcons is set.
func (g *Generator) Generate(ctx context.Context, req domain.ReportRequest) (Report, error) {
	start := time.Now()
	rep, err := g.generate(ctx, req)
	if err != nil {
		g.metrics.ReportsGenerated.WithLabelValues("error").Inc()
		return Report{}, err
	}
	g.metrics.ReportsGenerated.WithLabelValues("success").Inc()
	g.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	return rep, nil
}

func (g *Generator) generate(ctx context.Context, req domain.ReportRequest) (Report, error) {
	if len(req.Points) == 0 {
		return Report{}, ErrNoPoints
	}

	j := g.resolve(req)
	samples := req.SamplesByPoint()
	results := make([]pending, len(req.Points))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, pt := range req.Points {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := g.summarizePoint(pt, samples[pt.ID], j)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Report{}, fmt.Errorf("generate report: %w", err)
	}

	registry := layout.NewRegistry()
	points := make([]PointReport, len(results))
	for i, res := range results {
		pr := res.report
		pr.Layout = registry.Resolve(res.grid).Name
		for _, el := range res.elements {
			pr.Elements[el.kind] = ElementLayout{Layout: registry.Resolve(el.key).Name, Names: el.names}
		}
		points[i] = pr
	}

	id, err := reportID(req, j.generatedAt)
	if err != nil {
		return Report{}, err
	}
	return Report{
		ID:          id,
		GeneratedAt: j.generatedAt,
		Frequency:   j.freq,
		Layouts:     registry.Layouts(),
		Points:      points,
	}, nil
}

func (g *Generator) resolve(req domain.ReportRequest) job {
	j := job{
		freq:        req.Frequency,
		count:       req.Periods,
		generatedAt: domain.Now(),
		skipIcons:   req.SkipIcons,
	}
	if !j.freq.Valid() {
		j.freq = g.opts.Frequency
	}
	if req.Start != nil {
		j.start = req.Start.UTC()
	}
	if req.End != nil {
		j.end = req.End.UTC()
	}
	if j.count == 0 && j.end.IsZero() {
		j.count = g.opts.Periods
	}
	if req.GeneratedAt != nil {
		j.generatedAt = req.GeneratedAt.UTC()
	}
	return j
}

func (g *Generator) summarizePoint(pt domain.Point, samples []domain.Sample, j job) (pending, error) {
	streams := domain.SplitStreams(samples)
	if !j.skipIcons && len(streams[domain.Weather]) == 0 {
		return pending{}, fmt.Errorf("point %q: %w: %s", pt.ID, ErrMissingElement, domain.Weather)
	}

	first, last := streams.Bounds()
	if first.IsZero() {
		// Nothing sampled: hang the grid on the generation time so every
		// period reports as unavailable.
		first, last = j.generatedAt, j.generatedAt
	}
	preq := period.Request{
		Zone:      pt.Zone,
		Frequency: j.freq,
		Count:     j.count,
		Start:     j.start,
		End:       j.end,
		DataFirst: first,
		DataLast:  last,
	}
	periods, err := period.Build(preq)
	if err != nil {
		return pending{}, fmt.Errorf("point %q: %w", pt.ID, err)
	}

	summary := stats.Summarize(periods, streams, pt.Zone)
	namer := layout.NewNamer(period.Anchor(preq), pt.Zone)
	names := namer.Names(domain.Weather, periods)

	seasonFrom := first
	if wspd := streams[domain.WindSpeed]; len(wspd) > 0 {
		seasonFrom = wspd[0].ValidTime
	}
	season := synthesis.ColdSeason(pt.Zone.Wall(seasonFrom))
	resolver := g.engine.Resolver()

	records := make([]PeriodRecord, len(periods))
	for i, p := range periods {
		records[i] = g.summarizePeriod(pt, p, summary, i, j, season, resolver)
		records[i].Name = names[i]
	}

	res := pending{
		report: PointReport{
			PointID:  pt.ID,
			Lat:      pt.Lat,
			Lon:      pt.Lon,
			Elements: make(map[domain.ElementKind]ElementLayout),
			Periods:  records,
		},
	}
	res.grid, _ = layout.NewKey(j.freq.Hours(), periods, pt.Zone)
	for _, kind := range domain.ElementKinds {
		if _, ok := streams[kind]; !ok {
			continue
		}
		ep, hours := layout.ElementPeriods(kind, periods, pt.Zone)
		key, ok := layout.NewKey(hours, ep, pt.Zone)
		if !ok {
			continue
		}
		res.elements = append(res.elements, elementGrid{kind: kind, key: key, names: namer.Names(kind, ep)})
	}

	g.metrics.PointsSummarized.Inc()
	g.logger.Debug("point summarized", "point_id", pt.ID, "periods", len(periods), "elements", len(streams))
	return res, nil
}

func (g *Generator) summarizePeriod(pt domain.Point, p domain.Period, summary stats.Summary, i int, j job, season synthesis.Season, resolver wxcode.Resolver) PeriodRecord {
	wx := summary.Weather[i]
	if n := len(wx.Malformed); n > 0 {
		g.metrics.MalformedWeatherGroups.Add(float64(n))
		g.logger.Warn("skipped malformed weather groups",
			"point_id", pt.ID,
			"element", domain.Weather,
			"period", i,
			"count", n,
			"error", errors.Join(wx.Malformed...),
		)
	}

	available := make(map[domain.ElementKind]bool, len(summary.Elements)+1)
	for kind, aggs := range summary.Elements {
		available[kind] = aggs[i].DataAvailable()
	}
	if wx.Samples > 0 || !j.skipIcons {
		available[domain.Weather] = wx.DataAvailable()
	}

	dataAvailable := wx.DataAvailable()
	if j.skipIcons {
		dataAvailable = false
		for _, ok := range available {
			dataAvailable = dataAvailable || ok
		}
	}

	rep := p.Start.Add(representativeOffset)
	phase := g.opts.Phase(rep, pt.Lat, pt.Lon)

	rec := PeriodRecord{
		Index:         p.Index,
		Start:         pt.Zone.In(p.Start),
		End:           pt.Zone.In(p.End),
		Night:         p.Night,
		Phase:         phase.String(),
		DataAvailable: dataAvailable,
		Icon:          synthesis.NoIcon,
		Tier:          synthesis.TierNone,
		Stats:         summary.Periods[i],
		Available:     available,
	}

	if dom, ok := resolver.Resolve(wx.Rows); ok && dataAvailable {
		rec.Weather = &dom
	}

	if !j.skipIcons {
		var dom wxcode.Dominant
		if rec.Weather != nil {
			dom = *rec.Weather
		}
		res := g.engine.Synthesize(synthesis.Input{
			Period:        p,
			DataAvailable: dataAvailable,
			Dominant:      dom,
			Stats:         summary.Periods[i],
			Night:         phase == solar.Night,
			ColdSeason:    season.Contains(pt.Zone.Wall(rep)),
		})
		rec.Phrase, rec.Icon, rec.Tier = res.Phrase, res.Icon.ID(), res.Tier
	}

	g.metrics.PhraseTiers.WithLabelValues(string(rec.Tier)).Inc()
	if dataAvailable {
		g.metrics.PeriodsSummarized.WithLabelValues("available").Inc()
	} else {
		g.metrics.PeriodsSummarized.WithLabelValues("missing").Inc()
	}
	return rec
}

// reportID derives a stable ID from the request content and generation time.
func reportID(req domain.ReportRequest, generatedAt time.Time) (string, error) {
	req.GeneratedAt = &generatedAt
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("report id: %w", err)
	}
	return uuid.NewSHA1(reportNamespace, data).String(), nil
}
