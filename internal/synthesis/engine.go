// Package synthesis turns a period's dominant weather and statistics into a
// phrase and an icon.
//
// The decision is a cascade of tiers; the first tier with an answer wins:
//
//  1. coded weather phenomena, gated by PoP, with compound overrides for
//     co-occurring types such as rain and snow
//  2. sky cover, by bucket or by trend
//  3. temperature and wind extremes
//
// A period without data, or with no answer from any tier, gets an empty
// phrase and the "none" icon.
package synthesis

import (
	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/stats"
	"github.com/couchcryptid/forecast-summary/internal/wxcode"
)

// Tier names the cascade step that decided a period.
type Tier string

const (
	TierNone     Tier = "none"
	TierWeather  Tier = "weather"
	TierCompound Tier = "compound"
	TierSky      Tier = "sky"
	TierExtreme  Tier = "extreme"
)

// Input is everything the engine reads for one period.
type Input struct {
	Period        domain.Period
	DataAvailable bool
	Dominant      wxcode.Dominant
	Stats         stats.PeriodStats
	// Night is the day/night class of the period's representative time.
	Night bool
	// ColdSeason reports whether the period falls in the point's cold
	// season.
	ColdSeason bool
}

// Result is the engine's decision for one period.
type Result struct {
	Phrase string `json:"phrase"`
	Icon   Icon   `json:"icon"`
	Tier   Tier   `json:"tier"`
}

// Engine applies one rule set. It holds no state beyond the rules and is
// safe for concurrent use.
type Engine struct {
	rules Rules
}

// New returns an engine applying rules.
func New(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() Rules { return e.rules }

// Resolver returns the dominance resolver matching the rules.
func (e *Engine) Resolver() wxcode.Resolver {
	return wxcode.Resolver{PreferRicherRows: e.rules.PreferRicherRows}
}

type step struct {
	tier   Tier
	decide func(*Engine, Input) (Result, bool)
}

// cascade is ordered; extremes decide only periods without sky data.
var cascade = []step{
	{tier: TierWeather, decide: (*Engine).weather},
	{tier: TierSky, decide: (*Engine).sky},
	{tier: TierExtreme, decide: (*Engine).extremes},
}

// Synthesize decides the phrase and icon for one period.
func (e *Engine) Synthesize(in Input) Result {
	if !in.DataAvailable {
		return Result{Tier: TierNone}
	}
	for _, s := range cascade {
		if r, ok := s.decide(e, in); ok {
			if r.Tier == "" {
				r.Tier = s.tier
			}
			return r
		}
	}
	return Result{Tier: TierNone}
}

// passes reports whether the period's max PoP clears the gate. A period
// without PoP data is not gated.
func (e *Engine) passes(gate popGate, pop *float64) bool {
	if pop == nil {
		return true
	}
	switch gate {
	case gatePrecip:
		return *pop >= e.rules.PopThreshold
	case gateThunder:
		return *pop >= e.rules.ThunderPopThreshold
	default:
		return true
	}
}

func (e *Engine) weather(in Input) (Result, bool) {
	d := in.Dominant
	if d.None() {
		return Result{}, false
	}
	p, ok := lookupPhenomenon(d.Group.Type)
	if !ok || !e.passes(p.gate, in.Stats.MaxPop) {
		return Result{}, false
	}
	phrase, icon := p.describe(d.Group)
	r := Result{Phrase: phrase, Icon: dayNight(icon, in.Night), Tier: TierWeather}

	if c, ok := matchCompound(d.Row); ok && e.passes(gatePrecip, in.Stats.MaxPop) {
		r = Result{Phrase: c.describe(d.Group.Coverage), Icon: dayNight(c.icon, in.Night), Tier: TierCompound}
	}
	return r, true
}
