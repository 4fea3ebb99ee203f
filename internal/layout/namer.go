package layout

import (
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
)

// Issuance selects the table of special period names.
type Issuance string

const (
	Morning12         Issuance = "morning-12h"
	Afternoon12       Issuance = "afternoon-12h"
	Morning24         Issuance = "morning-24h"
	Afternoon24       Issuance = "afternoon-24h"
	EarlyMorningMaxT  Issuance = "early-morning-maxt"
	EarlyMorningMinT  Issuance = "early-morning-mint"
	EarlyMorningPop12 Issuance = "early-morning-pop12"
)

const (
	morningHour   = 6
	afternoonHour = 12
)

// slot places a period relative to the issuance date.
type slot struct {
	day   int
	night bool
}

var (
	today         = slot{day: 0}
	tonight       = slot{day: 0, night: true}
	tomorrow      = slot{day: 1}
	tomorrowNight = slot{day: 1, night: true}
	lastNight     = slot{day: -1, night: true}
)

var nameTables = map[Issuance]map[slot]string{
	Morning12:         {today: "Today", tonight: "Tonight", tomorrow: "Tomorrow", tomorrowNight: "Tomorrow Night"},
	Afternoon12:       {today: "This Afternoon", tonight: "Tonight", tomorrow: "Tomorrow", tomorrowNight: "Tomorrow Night"},
	Morning24:         {today: "Today", tomorrow: "Tomorrow"},
	Afternoon24:       {today: "This Afternoon", tomorrow: "Tomorrow"},
	EarlyMorningMaxT:  {today: "Today", tomorrow: "Tomorrow"},
	EarlyMorningMinT:  {lastNight: "Overnight", tonight: "Tonight"},
	EarlyMorningPop12: {lastNight: "Overnight", today: "Later Today", tonight: "Tonight"},
}

// sameDayNames only apply to a period whose midpoint falls on the issuance
// date.
var sameDayNames = map[string]bool{
	"Today": true, "This Afternoon": true, "Later Today": true, "Overnight": true,
}

// Namer names periods relative to an issuance time.
type Namer struct {
	zone   domain.Zone
	issued time.Time
}

// NewNamer returns a namer for a forecast issued at the given instant.
func NewNamer(issued time.Time, zone domain.Zone) Namer {
	return Namer{zone: zone, issued: zone.Wall(issued)}
}

// Issuance returns the name table used for kind on a grid of freq.
func (n Namer) Issuance(kind domain.ElementKind, freq domain.Frequency) Issuance {
	hour := n.issued.Hour()
	daily := freq == domain.TwentyFourHour

	if hour < morningHour {
		switch kind {
		case domain.MaxTemp:
			return EarlyMorningMaxT
		case domain.MinTemp:
			return EarlyMorningMinT
		case domain.Pop12:
			return EarlyMorningPop12
		}
		if daily {
			return Morning24
		}
		return EarlyMorningPop12
	}

	morning := hour < afternoonHour
	switch {
	case daily && morning:
		return Morning24
	case daily:
		return Afternoon24
	case morning:
		return Morning12
	default:
		return Afternoon12
	}
}

// Names returns one name per period. Periods outside the issuance table are
// named by weekday, with " Night" for night periods.
func (n Namer) Names(kind domain.ElementKind, periods []domain.Period) []string {
	if len(periods) == 0 {
		return nil
	}
	table := nameTables[n.Issuance(kind, periods[0].Frequency)]
	dateBound := kind == domain.MaxTemp || kind == domain.MinTemp || kind == domain.Pop12

	names := make([]string, len(periods))
	for i, p := range periods {
		names[i] = n.name(p, table, dateBound)
	}
	return names
}

func (n Namer) name(p domain.Period, table map[slot]string, dateBound bool) string {
	start := n.zone.Wall(p.Start)
	s := slot{day: daysBetween(n.issued, start), night: p.Night}
	if label, ok := table[s]; ok {
		if !dateBound || !sameDayNames[label] || n.onIssuanceDate(p) {
			return label
		}
	}
	if p.Night {
		return start.Weekday().String() + " Night"
	}
	return start.Weekday().String()
}

func (n Namer) onIssuanceDate(p domain.Period) bool {
	mid := n.zone.Wall(p.Start.Add(p.Length() / 2))
	return daysBetween(n.issued, mid) == 0
}

// daysBetween counts calendar days from a to b, both wall times.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
