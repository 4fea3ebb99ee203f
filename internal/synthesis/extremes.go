package synthesis

import "time"

// Northerly sector bounds, in degrees. Directions at or beyond either bound
// blow from the north-west through north-east.
const (
	northWest = 292.5
	northEast = 67.5
)

func (e *Engine) extremes(in Input) (Result, bool) {
	s := in.Stats
	if !in.Night && s.MaxTemp != nil {
		switch {
		case *s.MaxTemp > e.rules.HotTemp:
			return Result{Phrase: "Hot", Icon: Icon{Name: "hot"}}, true
		case *s.MaxTemp < e.rules.ColdTemp:
			return Result{Phrase: "Cold", Icon: Icon{Name: "cold"}}, true
		}
	}
	if s.MaxWind == nil {
		return Result{}, false
	}
	switch w := *s.MaxWind; {
	case w >= e.rules.WindyWind:
		return Result{Phrase: "Windy", Icon: Icon{Name: "windy"}}, true
	case w >= e.rules.BreezyWind && e.blustery(in):
		return Result{Phrase: "Blustery", Icon: Icon{Name: "blustery"}}, true
	case w >= e.rules.BreezyWind:
		return Result{Phrase: "Breezy", Icon: Icon{Name: "breezy"}}, true
	}
	return Result{}, false
}

func (e *Engine) blustery(in Input) bool {
	s := in.Stats
	if !in.ColdSeason || s.MaxWindDirection == nil || s.MaxTemp == nil {
		return false
	}
	dir := *s.MaxWindDirection
	return (dir >= northWest || dir <= northEast) && *s.MaxTemp < e.rules.BlusteryTemp
}

// Season is a window of local dates, [Start, End). Times are local wall
// clock expressed in UTC.
type Season struct {
	Start time.Time
	End   time.Time
}

// ColdSeason returns the October 1 to April 1 window in effect at, or next
// following, the local wall time first.
func ColdSeason(first time.Time) Season {
	year := first.Year()
	if first.Month() < time.April {
		year--
	}
	return Season{
		Start: time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether the wall time falls inside the season.
func (s Season) Contains(wall time.Time) bool {
	return !wall.Before(s.Start) && wall.Before(s.End)
}
