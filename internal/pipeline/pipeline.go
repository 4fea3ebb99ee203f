package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	sharedretry "github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/observability"
)

// RequestSource reads up to batchSize report requests from the source topic.
type RequestSource interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Summarizer turns one report request into a serialized report.
type Summarizer interface {
	Summarize(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// ReportSink publishes serialized reports.
type ReportSink interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline consumes report requests, summarizes them, and publishes the
// resulting reports. Offsets are committed only after the sink accepts a
// report, or immediately for requests that can never be summarized.
type Pipeline struct {
	source     RequestSource
	summarizer Summarizer
	sink       ReportSink
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
	batchSize  int
	backoff    time.Duration
}

// New creates a Pipeline.
func New(src RequestSource, s Summarizer, sink ReportSink, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		source:     src,
		summarizer: s,
		sink:       sink,
		logger:     logger,
		metrics:    metrics,
		batchSize:  batchSize,
		backoff:    initialBackoff,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one
// report.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any reports yet")
	}
	return nil
}

// Run consumes batches until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for ctx.Err() == nil {
		if !p.processBatch(ctx) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// processBatch runs one consume-summarize-publish cycle. It returns false
// when the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context) bool {
	start := time.Now()

	batch, err := p.source.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.wait(ctx)
	}
	if len(batch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))
	p.backoff = initialBackoff

	published, ok := p.summarizeAndPublish(ctx, batch)
	if !ok {
		return false
	}
	if published > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

func (p *Pipeline) summarizeAndPublish(ctx context.Context, batch []domain.RawEvent) (int, bool) {
	reports := make([]domain.OutputEvent, 0, len(batch))
	accepted := make([]domain.RawEvent, 0, len(batch))

	for _, raw := range batch {
		out, err := p.summarizer.Summarize(ctx, raw)
		if err != nil {
			if ctx.Err() != nil {
				return 0, false
			}
			p.logger.Warn("summarize failed, skipping request",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			continue
		}
		reports = append(reports, out)
		accepted = append(accepted, raw)
	}

	if len(reports) == 0 {
		return 0, true
	}

	if err := p.sink.LoadBatch(ctx, reports); err != nil {
		p.logger.Error("publish reports failed", "error", err, "batch_size", len(reports))
		return 0, p.wait(ctx)
	}
	p.metrics.MessagesProduced.Add(float64(len(reports)))

	for _, raw := range accepted {
		p.commit(ctx, raw)
	}
	return len(reports), true
}

// wait sleeps for the current backoff and doubles it. It returns false if
// the context ends first.
func (p *Pipeline) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sharedretry.SleepWithContext(ctx, p.backoff) {
		return false
	}
	p.backoff = sharedretry.NextBackoff(p.backoff, maxBackoff)
	return true
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
