package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Report defaults for requests that leave them unset.
	SummaryFrequency domain.Frequency
	SummaryPeriods   int
	ReportWorkers    int

	// RulesFile optionally overrides the synthesis thresholds.
	RulesFile string
	Rules     synthesis.Rules
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	freq, err := domain.ParseFrequency(sharedcfg.EnvOrDefault("SUMMARY_FREQUENCY", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_FREQUENCY: %w", err)
	}

	periods, err := parsePositiveInt("SUMMARY_PERIODS", 14)
	if err != nil {
		return nil, err
	}
	if periods > domain.MaxPeriods {
		return nil, fmt.Errorf("invalid SUMMARY_PERIODS: %d exceeds %d", periods, domain.MaxPeriods)
	}

	workers, err := parsePositiveInt("REPORT_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	rulesFile := os.Getenv("RULES_FILE")
	rules, err := LoadRules(rulesFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "point-forecast-samples"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "forecast-summaries"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "forecast-summary"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SummaryFrequency: freq,
		SummaryPeriods:   periods,
		ReportWorkers:    workers,

		RulesFile: rulesFile,
		Rules:     rules,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
