// Command summarize runs the report generator over a request file and prints
// the result. It uses the same generator as the service, so its output
// matches what the pipeline publishes.
//
// Usage:
//
//	go run ./cmd/summarize \
//	  -request data/mock/point_forecast_request.json \
//	  -rules rules.yaml \
//	  -format table
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/config"
	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/observability"
	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	requestPath := fs.String("request", "", `path to a report request JSON file, or "-" for stdin`)
	rulesPath := fs.String("rules", "", "optional YAML file overriding the synthesis rules")
	format := fs.String("format", "table", "output format: table or json")
	frequency := fs.String("frequency", "12h", "period length when the request leaves it unset")
	periods := fs.Int("periods", 14, "period count when the request leaves it and end unset")
	workers := fs.Int("workers", 4, "points summarized at once")
	now := fs.String("now", "", "RFC3339 generation time when the request leaves it unset")
	noColor := fs.Bool("no-color", false, "disable colored table output")
	verbose := fs.Bool("v", false, "log per-point progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *requestPath == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -request")
	}
	if *format != "table" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}
	if *noColor {
		color.NoColor = true
	}

	freq, err := domain.ParseFrequency(*frequency)
	if err != nil {
		return fmt.Errorf("invalid -frequency: %w", err)
	}

	if *now != "" {
		at, err := time.Parse(time.RFC3339, *now)
		if err != nil {
			return fmt.Errorf("invalid -now: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	rules, err := config.LoadRules(*rulesPath)
	if err != nil {
		return err
	}

	raw, err := readRequest(*requestPath, stdin)
	if err != nil {
		return err
	}
	req, err := domain.ParseReportRequest(domain.RawEvent{Value: raw})
	if err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := observability.NewCLILogger(os.Stderr, level)

	gen := report.New(synthesis.New(rules), report.Options{
		Frequency: freq,
		Periods:   *periods,
		Workers:   *workers,
	}, logger, observability.NewMetricsWith(prometheus.NewRegistry()))

	rep, err := gen.Generate(context.Background(), req)
	if err != nil {
		return err
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	writeTable(stdout, rep)
	return nil
}

func readRequest(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read request from stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return b, nil
}
