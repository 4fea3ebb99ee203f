package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgCyan)
	phraseColor  = color.New(color.FgWhite)
	missingColor = color.New(color.FgYellow)
	tempColor    = color.New(color.FgGreen)
)

const noValue = "--"

// writeTable prints one block per point with a row per period.
func writeTable(w io.Writer, rep report.Report) {
	headerColor.Fprintf(w, "Report %s (%s, generated %s)\n", rep.ID, rep.Frequency, rep.GeneratedAt.Format("2006-01-02 15:04Z"))
	for _, pt := range rep.Points {
		fmt.Fprintln(w)
		headerColor.Fprintf(w, "%s (%.2f, %.2f) layout %s\n", pt.PointID, pt.Lat, pt.Lon, pt.Layout)
		labelColor.Fprintf(w, "  %-20s %-28s %-22s %5s %5s %5s\n", "Period", "Phrase", "Icon", "Hi", "Lo", "PoP")
		for _, p := range pt.Periods {
			writeRow(w, p)
		}
	}
}

func writeRow(w io.Writer, p report.PeriodRecord) {
	name := fmt.Sprintf("  %-20s ", p.Name)
	if !p.DataAvailable {
		fmt.Fprint(w, name)
		missingColor.Fprintf(w, "%-28s %-22s", "no data", noValue)
		fmt.Fprintln(w, numbers(p))
		return
	}
	phrase := p.Phrase
	if phrase == "" {
		phrase = noValue
	}
	fmt.Fprint(w, name)
	phraseColor.Fprintf(w, "%-28s ", phrase)
	fmt.Fprintf(w, "%-22s", p.Icon)
	tempColor.Fprintln(w, numbers(p))
}

func numbers(p report.PeriodRecord) string {
	return fmt.Sprintf(" %5s %5s %5s", number(p.Stats.MaxTemp), number(p.Stats.MinTemp), number(p.Stats.MaxPop))
}

func number(v *float64) string {
	if v == nil {
		return noValue
	}
	return strconv.FormatFloat(*v, 'f', 0, 64)
}
