// Command validate generates a report from a request file and checks the
// report's structural invariants: period grid contiguity, availability and
// synthesis consistency, icon day/night agreement, layout registration, and
// period naming.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -request data/mock/point_forecast_request.json \
//	  -rules rules.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/config"
	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/layout"
	"github.com/couchcryptid/forecast-summary/internal/observability"
	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	requestPath := fs.String("request", "", "path to a report request JSON file")
	rulesPath := fs.String("rules", "", "optional YAML file overriding the synthesis rules")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *requestPath == "" {
		fs.Usage()
		return 2
	}

	rep, err := generate(*requestPath, *rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "=== Forecast Summary Report Validation ===")
	fmt.Fprintln(out)

	phases := []*phase{
		validateGrid(rep),
		validateSynthesis(rep),
		validateIcons(rep),
		validateLayouts(rep),
		validateNames(rep),
	}

	allPassed := true
	for _, p := range phases {
		status := passColor.Sprint("PASS")
		if !p.passed() {
			status = failColor.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Report %s: %d points, %d layouts\n", rep.ID, len(rep.Points), len(rep.Layouts))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func generate(requestPath, rulesPath string) (report.Report, error) {
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return report.Report{}, err
	}
	b, err := os.ReadFile(requestPath)
	if err != nil {
		return report.Report{}, fmt.Errorf("read request: %w", err)
	}
	req, err := domain.ParseReportRequest(domain.RawEvent{Value: b})
	if err != nil {
		return report.Report{}, err
	}
	gen := report.New(synthesis.New(rules), report.Options{Workers: 4},
		observability.NewCLILogger(os.Stderr, "error"), observability.NewMetricsWith(prometheus.NewRegistry()))
	return gen.Generate(context.Background(), req)
}

// ── Phases ──

func validateGrid(rep report.Report) *phase {
	p := &phase{name: "Period grid contiguity"}
	step := time.Duration(rep.Frequency.Hours()) * time.Hour
	for _, pt := range rep.Points {
		for i, rec := range pt.Periods {
			if rec.Index != i {
				p.errorf("%s: period %d has index %d", pt.PointID, i, rec.Index)
			}
			if h := rec.Start.Hour(); h != 6 && (h != 18 || rep.Frequency == domain.TwentyFourHour) {
				p.errorf("%s: period %d starts at local hour %d", pt.PointID, i, h)
			}
			if rec.Night != (rec.Start.Hour() == 18) {
				p.errorf("%s: period %d night flag %v disagrees with start %s", pt.PointID, i, rec.Night, rec.Start.Format(time.RFC3339))
			}
			// DST transitions move a boundary by at most an hour.
			if d := rec.End.Sub(rec.Start) - step; d < -time.Hour || d > time.Hour {
				p.errorf("%s: period %d spans %s", pt.PointID, i, rec.End.Sub(rec.Start))
			}
			if i > 0 && !pt.Periods[i-1].End.Equal(rec.Start) {
				p.errorf("%s: gap before period %d", pt.PointID, i)
			}
		}
	}
	return p
}

func validateSynthesis(rep report.Report) *phase {
	p := &phase{name: "Availability and synthesis"}
	for _, pt := range rep.Points {
		for _, rec := range pt.Periods {
			if !rec.DataAvailable {
				if rec.Phrase != "" || rec.Icon != synthesis.NoIcon || rec.Tier != synthesis.TierNone {
					p.errorf("%s: unavailable period %d has phrase %q icon %q", pt.PointID, rec.Index, rec.Phrase, rec.Icon)
				}
				continue
			}
			if rec.Tier != synthesis.TierNone && rec.Phrase == "" {
				p.errorf("%s: period %d decided by %s without a phrase", pt.PointID, rec.Index, rec.Tier)
			}
			if (rec.Phrase == "") != (rec.Icon == synthesis.NoIcon) {
				p.errorf("%s: period %d phrase %q and icon %q disagree", pt.PointID, rec.Index, rec.Phrase, rec.Icon)
			}
		}
	}
	return p
}

func validateIcons(rep report.Report) *phase {
	p := &phase{name: "Icon day/night agreement"}
	for _, pt := range rep.Points {
		for _, rec := range pt.Periods {
			switch {
			case strings.HasSuffix(rec.Icon, "-day") && rec.Phase != "day",
				strings.HasSuffix(rec.Icon, "-night") && rec.Phase != "night":
				p.errorf("%s: period %d icon %q in %s phase", pt.PointID, rec.Index, rec.Icon, rec.Phase)
			}
		}
	}
	return p
}

func validateLayouts(rep report.Report) *phase {
	p := &phase{name: "Layout registration"}
	byName := make(map[string]layout.Layout, len(rep.Layouts))
	for i, l := range rep.Layouts {
		if l.ID != i+1 {
			p.errorf("layout %s has id %d at position %d", l.Name, l.ID, i)
		}
		if _, dup := byName[l.Name]; dup {
			p.errorf("layout %s registered twice", l.Name)
		}
		byName[l.Name] = l
	}
	for _, pt := range rep.Points {
		l, ok := byName[pt.Layout]
		switch {
		case !ok:
			p.errorf("%s: layout %q is not registered", pt.PointID, pt.Layout)
		case l.Key.Rows != len(pt.Periods):
			p.errorf("%s: layout %q has %d rows for %d periods", pt.PointID, pt.Layout, l.Key.Rows, len(pt.Periods))
		}
		for kind, el := range pt.Elements {
			l, ok := byName[el.Layout]
			switch {
			case !ok:
				p.errorf("%s: %s layout %q is not registered", pt.PointID, kind, el.Layout)
			case l.Key.Rows != len(el.Names):
				p.errorf("%s: %s layout %q has %d rows for %d names", pt.PointID, kind, el.Layout, l.Key.Rows, len(el.Names))
			}
		}
	}
	return p
}

func validateNames(rep report.Report) *phase {
	p := &phase{name: "Period naming"}
	for _, pt := range rep.Points {
		for i, rec := range pt.Periods {
			if rec.Name == "" {
				p.errorf("%s: period %d has no name", pt.PointID, rec.Index)
				continue
			}
			if i > 0 && rec.Name == pt.Periods[i-1].Name {
				p.errorf("%s: periods %d and %d share name %q", pt.PointID, i-1, i, rec.Name)
			}
		}
	}
	return p
}
