package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/report"
)

// ReportGenerator builds a report from a decoded request.
type ReportGenerator interface {
	Generate(ctx context.Context, req domain.ReportRequest) (report.Report, error)
}

// ReportSummarizer implements Summarizer by decoding the request, generating
// the report, and encoding it as JSON.
type ReportSummarizer struct {
	generator ReportGenerator
	logger    *slog.Logger
}

// NewSummarizer creates a ReportSummarizer.
func NewSummarizer(g ReportGenerator, logger *slog.Logger) *ReportSummarizer {
	return &ReportSummarizer{generator: g, logger: logger}
}

// Summarize produces the output event for one request. The output key is the
// request key when present so reports stay partitioned with their requests,
// and the report ID otherwise.
func (s *ReportSummarizer) Summarize(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseReportRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	rep, err := s.generator.Generate(ctx, req)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("generate report: %w", err)
	}

	value, err := json.Marshal(rep)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("marshal report: %w", err)
	}

	key := raw.Key
	if len(key) == 0 {
		key = []byte(rep.ID)
	}

	s.logger.Debug("report generated",
		"report_id", rep.ID,
		"points", len(rep.Points),
		"offset", raw.Offset,
	)

	return domain.OutputEvent{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			"report_id":    rep.ID,
			"generated_at": rep.GeneratedAt.UTC().Format(time.RFC3339),
			"points":       strconv.Itoa(len(rep.Points)),
		},
	}, nil
}
