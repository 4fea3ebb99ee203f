package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/forecast-summary/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/forecast-summary/internal/adapter/kafka"
	"github.com/couchcryptid/forecast-summary/internal/config"
	"github.com/couchcryptid/forecast-summary/internal/observability"
	"github.com/couchcryptid/forecast-summary/internal/pipeline"
	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	if cfg.RulesFile != "" {
		logger.Info("synthesis rules loaded", "path", cfg.RulesFile)
	}
	engine := synthesis.New(cfg.Rules)
	generator := report.New(engine, report.Options{
		Frequency: cfg.SummaryFrequency,
		Periods:   cfg.SummaryPeriods,
		Workers:   cfg.ReportWorkers,
	}, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	summarizer := pipeline.NewSummarizer(generator, logger)

	p := pipeline.New(reader, summarizer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, generator, cfg.Rules, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
