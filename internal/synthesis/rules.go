package synthesis

import (
	"errors"
	"fmt"
)

// SkyBucket is one sky cover category. A value falls in the first bucket
// whose limit it does not exceed (or stays below, when Inclusive is false).
type SkyBucket struct {
	Limit     float64 `json:"limit" yaml:"limit"`
	Inclusive bool    `json:"inclusive" yaml:"inclusive"`
	Day       string  `json:"day" yaml:"day"`
	Night     string  `json:"night" yaml:"night"`
	Icon      string  `json:"icon" yaml:"icon"`
}

func (b SkyBucket) holds(v float64) bool {
	if b.Inclusive {
		return v <= b.Limit
	}
	return v < b.Limit
}

func (b SkyBucket) phrase(night bool) string {
	if night {
		return b.Night
	}
	return b.Day
}

// Rules holds every threshold the engine applies. Temperatures are in
// degrees Fahrenheit, wind speeds in knots, PoP and sky cover in percent.
type Rules struct {
	// PopThreshold gates precipitation phenomena; ThunderPopThreshold gates
	// thunderstorms. A period at or above the threshold passes.
	PopThreshold        float64 `json:"pop_threshold" yaml:"pop_threshold"`
	ThunderPopThreshold float64 `json:"thunder_pop_threshold" yaml:"thunder_pop_threshold"`

	// HotTemp and ColdTemp are exclusive bounds on the daytime max.
	HotTemp  float64 `json:"hot_temp" yaml:"hot_temp"`
	ColdTemp float64 `json:"cold_temp" yaml:"cold_temp"`

	WindyWind    float64 `json:"windy_wind" yaml:"windy_wind"`
	BreezyWind   float64 `json:"breezy_wind" yaml:"breezy_wind"`
	BlusteryTemp float64 `json:"blustery_temp" yaml:"blustery_temp"`

	SkyBuckets []SkyBucket `json:"sky_buckets" yaml:"sky_buckets"`

	// TrendWindowHours is the least span of sky samples a trend needs.
	TrendWindowHours int `json:"trend_window_hours" yaml:"trend_window_hours"`
	// TrendSpeedPositions separates gradual trends from rapid ones.
	TrendSpeedPositions int `json:"trend_speed_positions" yaml:"trend_speed_positions"`
	// TrendCategoryChange is the least bucket difference that is a trend.
	TrendCategoryChange int `json:"trend_category_change" yaml:"trend_category_change"`

	PreferRicherRows bool `json:"prefer_richer_rows" yaml:"prefer_richer_rows"`
}

// DefaultRules returns the operational thresholds.
func DefaultRules() Rules {
	return Rules{
		PopThreshold:        20,
		ThunderPopThreshold: 10,
		HotTemp:             95,
		ColdTemp:            32,
		WindyWind:           25,
		BreezyWind:          15,
		BlusteryTemp:        32,
		SkyBuckets: []SkyBucket{
			{Limit: 15, Inclusive: true, Day: "Sunny", Night: "Clear", Icon: "clear"},
			{Limit: 40, Day: "Mostly Sunny", Night: "Mostly Clear", Icon: "few-clouds"},
			{Limit: 70, Day: "Partly Sunny", Night: "Partly Cloudy", Icon: "partly-cloudy"},
			{Limit: 90, Inclusive: true, Day: "Mostly Cloudy", Night: "Mostly Cloudy", Icon: "mostly-cloudy"},
			{Limit: 101, Inclusive: true, Day: "Cloudy", Night: "Cloudy", Icon: "cloudy"},
		},
		TrendWindowHours:    6,
		TrendSpeedPositions: 4,
		TrendCategoryChange: 2,
		PreferRicherRows:    true,
	}
}

// Validate reports rule sets the engine cannot apply.
func (r Rules) Validate() error {
	var errs []error
	if r.PopThreshold < 0 || r.ThunderPopThreshold < 0 {
		errs = append(errs, errors.New("pop thresholds must not be negative"))
	}
	if r.BreezyWind > r.WindyWind {
		errs = append(errs, fmt.Errorf("breezy wind %v above windy wind %v", r.BreezyWind, r.WindyWind))
	}
	if len(r.SkyBuckets) == 0 {
		errs = append(errs, errors.New("no sky buckets"))
	}
	for i := 1; i < len(r.SkyBuckets); i++ {
		if r.SkyBuckets[i].Limit <= r.SkyBuckets[i-1].Limit {
			errs = append(errs, fmt.Errorf("sky bucket %d limit %v not above %v", i, r.SkyBuckets[i].Limit, r.SkyBuckets[i-1].Limit))
		}
	}
	for i, b := range r.SkyBuckets {
		if b.Icon == "" {
			errs = append(errs, fmt.Errorf("sky bucket %d has no icon", i))
		}
	}
	if r.TrendSpeedPositions < 1 || r.TrendCategoryChange < 1 {
		errs = append(errs, errors.New("trend cutoffs must be positive"))
	}
	return errors.Join(errs...)
}
