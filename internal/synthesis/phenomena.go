package synthesis

import (
	"strings"

	"github.com/couchcryptid/forecast-summary/internal/wxcode"
)

type popGate int

const (
	gateNone popGate = iota
	gatePrecip
	gateThunder
)

type phenomenon struct {
	typ  wxcode.Type
	name string
	icon string
	gate popGate
	// heavy replaces "Heavy" for the "+" intensity.
	heavy string
	// veryLight, when set, replaces the name for the "--" intensity.
	veryLight     string
	veryLightIcon string
}

// phenomena is the first cascade tier, in priority order.
var phenomena = []phenomenon{
	{typ: wxcode.TypeFog, name: "Fog", icon: "fog", heavy: "Dense"},
	{typ: wxcode.TypeFreezingFog, name: "Freezing Fog", icon: "fog", heavy: "Dense"},
	{typ: wxcode.TypeIceFog, name: "Ice Fog", icon: "fog", heavy: "Dense"},
	{typ: wxcode.TypeSmoke, name: "Smoke", icon: "smoke"},
	{typ: wxcode.TypeHaze, name: "Haze", icon: "haze"},
	{typ: wxcode.TypeBlowingDust, name: "Blowing Dust", icon: "dust", gate: gatePrecip},
	{typ: wxcode.TypeBlowingSand, name: "Blowing Sand", icon: "dust", gate: gatePrecip},
	{typ: wxcode.TypeBlowingSnow, name: "Blowing Snow", icon: "blowing-snow", gate: gatePrecip},
	{typ: wxcode.TypeFrost, name: "Frost", icon: "frost"},
	{typ: wxcode.TypeVolcanicAsh, name: "Volcanic Ash", icon: "ash"},
	{typ: wxcode.TypeIcePellets, name: "Sleet", icon: "sleet", gate: gatePrecip},
	{typ: wxcode.TypeRain, name: "Rain", icon: "rain", gate: gatePrecip},
	{typ: wxcode.TypeRainShowers, name: "Rain Showers", icon: "showers", gate: gatePrecip},
	{typ: wxcode.TypeDrizzle, name: "Drizzle", icon: "drizzle", gate: gatePrecip},
	{typ: wxcode.TypeSnow, name: "Snow", icon: "snow", gate: gatePrecip, veryLight: "Flurries", veryLightIcon: "flurries"},
	{typ: wxcode.TypeSnowShowers, name: "Snow Showers", icon: "snow", gate: gatePrecip, veryLight: "Flurries", veryLightIcon: "flurries"},
	{typ: wxcode.TypeFreezingRain, name: "Freezing Rain", icon: "freezing-rain", gate: gatePrecip},
	{typ: wxcode.TypeFreezingDrizzle, name: "Freezing Drizzle", icon: "freezing-rain", gate: gatePrecip},
	{typ: wxcode.TypeThunderstorms, name: "Thunderstorms", icon: "tstorms", gate: gateThunder, heavy: "Severe"},
	{typ: wxcode.TypeWaterspouts, name: "Waterspouts", icon: "waterspout", gate: gatePrecip},
	{typ: wxcode.TypeIceCrystals, name: "Ice Crystals", icon: "snow", gate: gatePrecip},
	{typ: wxcode.TypeFreezingSpray, name: "Freezing Spray", icon: "freezing-spray", gate: gatePrecip},
}

func lookupPhenomenon(t wxcode.Type) (phenomenon, bool) {
	for _, p := range phenomena {
		if p.typ == t {
			return p, true
		}
	}
	return phenomenon{}, false
}

// compound is a co-occurring pair of phenomena that overrides the single
// type phrase of the dominant group.
type compound struct {
	name  string
	icon  string
	first []wxcode.Type
	other []wxcode.Type
}

var (
	rainTypes     = []wxcode.Type{wxcode.TypeRain, wxcode.TypeRainShowers}
	snowTypes     = []wxcode.Type{wxcode.TypeSnow, wxcode.TypeSnowShowers}
	freezingTypes = []wxcode.Type{wxcode.TypeFreezingRain, wxcode.TypeFreezingDrizzle}
)

// compounds are checked in order; the first present in the row wins.
var compounds = []compound{
	{name: "Wintry Mix", icon: "wintry-mix", first: freezingTypes, other: snowTypes},
	{name: "Rain/Freezing Rain", icon: "rain-freezing-rain", first: rainTypes, other: []wxcode.Type{wxcode.TypeFreezingRain}},
	{name: "Rain/Sleet", icon: "rain-sleet", first: rainTypes, other: []wxcode.Type{wxcode.TypeIcePellets}},
	{name: "Snow/Sleet", icon: "snow-sleet", first: snowTypes, other: []wxcode.Type{wxcode.TypeIcePellets}},
	{name: "Rain/Snow", icon: "rain-snow", first: rainTypes, other: snowTypes},
}

func matchCompound(row wxcode.Row) (compound, bool) {
	for _, c := range compounds {
		if row.Has(c.first...) && row.Has(c.other...) {
			return c, true
		}
	}
	return compound{}, false
}

type coverageWording struct{ prefix, suffix string }

var coverageWords = map[wxcode.Coverage]coverageWording{
	wxcode.CoveragePatchy: {prefix: "Patchy"},
	wxcode.CoverageAreas:  {prefix: "Areas Of"},
	wxcode.CoverageBrf:    {prefix: "Brief"},
	wxcode.CoverageInter:  {prefix: "Intermittent"},
	wxcode.CoveragePds:    {prefix: "Periods Of"},
	wxcode.CoverageOcnl:   {prefix: "Occasional"},
	wxcode.CoverageFrq:    {prefix: "Frequent"},
	wxcode.CoverageIso:    {prefix: "Isolated"},
	wxcode.CoverageSChc:   {prefix: "Slight Chance"},
	wxcode.CoverageSct:    {prefix: "Scattered"},
	wxcode.CoverageChc:    {prefix: "Chance"},
	wxcode.CoverageNum:    {prefix: "Numerous"},
	wxcode.CoverageLkly:   {suffix: "Likely"},
	wxcode.CoverageWide:   {prefix: "Widespread"},
}

func joinWords(words ...string) string {
	out := words[:0:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// describe words a single group, for example "Chance Light Rain" or
// "Thunderstorms Likely".
func (p phenomenon) describe(g wxcode.Group) (phrase, icon string) {
	name, icon := p.name, p.icon
	var intensity string
	switch g.Intensity {
	case wxcode.IntensityVeryLight:
		if p.veryLight != "" {
			name, icon = p.veryLight, p.veryLightIcon
		} else {
			intensity = "Light"
		}
	case wxcode.IntensityLight:
		intensity = "Light"
	case wxcode.IntensityHeavy:
		intensity = "Heavy"
		if p.heavy != "" {
			intensity = p.heavy
		}
	}
	w := coverageWords[g.Coverage]
	return joinWords(w.prefix, intensity, name, w.suffix), icon
}

func (c compound) describe(cov wxcode.Coverage) string {
	w := coverageWords[cov]
	return joinWords(w.prefix, c.name, w.suffix)
}
