package synthesis

// Sky trend phrases.
const (
	phraseIncreasingClouds = "Increasing Clouds"
	phraseDecreasingClouds = "Decreasing Clouds"
	phraseBecomingCloudy   = "Becoming Cloudy"
	phraseBecomingSunny    = "Becoming Sunny"
	phraseClearing         = "Clearing"
	phraseGradualClearing  = "Gradual Clearing"
)

// category returns the index of the sky bucket holding v.
func (e *Engine) category(v float64) (int, bool) {
	for i, b := range e.rules.SkyBuckets {
		if b.holds(v) {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) sky(in Input) (Result, bool) {
	s := in.Stats
	if s.AvgSky == nil {
		return Result{}, false
	}
	if r, ok := e.trend(in); ok {
		return r, true
	}
	cat, ok := e.category(*s.AvgSky)
	if !ok {
		return Result{}, false
	}
	b := e.rules.SkyBuckets[cat]
	return Result{Phrase: b.phrase(in.Night), Icon: dayNight(b.Icon, in.Night)}, true
}

// trend classifies a period whose sky cover moves at least
// TrendCategoryChange buckets over a span of at least TrendWindowHours.
// Positions are hours from the period start. A change completing in the
// first half of the period is early.
func (e *Engine) trend(in Input) (Result, bool) {
	s := in.Stats
	if s.MaxSky == nil || s.MinSky == nil || s.SkySpan < e.rules.TrendWindowHours {
		return Result{}, false
	}
	hi, okHi := e.category(*s.MaxSky)
	lo, okLo := e.category(*s.MinSky)
	if !okHi || !okLo || hi-lo < e.rules.TrendCategoryChange {
		return Result{}, false
	}

	minPos, maxPos := s.MinSkyPosition, s.MaxSkyPosition
	if minPos == maxPos {
		return Result{}, false
	}
	gradual := abs(maxPos-minPos) >= e.rules.TrendSpeedPositions
	early := float64(max(minPos, maxPos)*2) < in.Period.Length().Hours()

	var phrase string
	end := lo
	if minPos < maxPos {
		end = hi
		switch {
		case gradual:
			phrase = phraseIncreasingClouds
		case early:
			phrase = phraseBecomingCloudy
		default:
			phrase = phraseIncreasingClouds
		}
	} else {
		switch {
		case gradual:
			phrase = phraseGradualClearing
		case early && in.Night:
			phrase = phraseClearing
		case early:
			phrase = phraseBecomingSunny
		default:
			phrase = phraseDecreasingClouds
		}
	}
	return Result{Phrase: phrase, Icon: dayNight(e.rules.SkyBuckets[end].Icon, in.Night)}, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
