package domain

import (
	"fmt"
	"strings"
	"time"
)

// ElementKind identifies a forecast element by its NDFD short name.
type ElementKind string

const (
	MaxTemp       ElementKind = "maxt"
	MinTemp       ElementKind = "mint"
	Pop12         ElementKind = "pop12"
	HourlyTemp    ElementKind = "temp"
	DewPoint      ElementKind = "td"
	ApparentTemp  ElementKind = "apt"
	WindSpeed     ElementKind = "wspd"
	WindDirection ElementKind = "wdir"
	SkyCover      ElementKind = "sky"
	Weather       ElementKind = "wx"
	QPF           ElementKind = "qpf"
	Snow          ElementKind = "snow"
	RelHumidity   ElementKind = "rhm"
	WaveHeight    ElementKind = "waveh"
)

// ElementKinds lists every element in canonical order. Sample streams are
// sorted by this order, then by valid time.
var ElementKinds = []ElementKind{
	MaxTemp, MinTemp, Pop12, HourlyTemp, DewPoint, ApparentTemp,
	WindSpeed, WindDirection, SkyCover, Weather, QPF, Snow, RelHumidity, WaveHeight,
}

type elementTrait struct {
	order    int
	native   time.Duration
	interval bool
}

var elementTraits = func() map[ElementKind]elementTrait {
	native := map[ElementKind]time.Duration{
		MaxTemp:       24 * time.Hour,
		MinTemp:       24 * time.Hour,
		Pop12:         12 * time.Hour,
		HourlyTemp:    3 * time.Hour,
		DewPoint:      3 * time.Hour,
		ApparentTemp:  3 * time.Hour,
		WindSpeed:     3 * time.Hour,
		WindDirection: 3 * time.Hour,
		SkyCover:      3 * time.Hour,
		Weather:       3 * time.Hour,
		QPF:           6 * time.Hour,
		Snow:          6 * time.Hour,
		RelHumidity:   3 * time.Hour,
		WaveHeight:    6 * time.Hour,
	}
	interval := map[ElementKind]bool{
		Weather: true, SkyCover: true, WindSpeed: true, WindDirection: true,
		HourlyTemp: true, Pop12: true, QPF: true, Snow: true,
	}
	traits := make(map[ElementKind]elementTrait, len(ElementKinds))
	for i, k := range ElementKinds {
		traits[k] = elementTrait{order: i, native: native[k], interval: interval[k]}
	}
	return traits
}()

// ParseElementKind accepts an element short name, case-insensitively.
func ParseElementKind(s string) (ElementKind, error) {
	k := ElementKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown element %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known elements.
func (k ElementKind) Valid() bool {
	_, ok := elementTraits[k]
	return ok
}

// Order is the position of k in ElementKinds, or -1 for unknown kinds.
func (k ElementKind) Order() int {
	t, ok := elementTraits[k]
	if !ok {
		return -1
	}
	return t.order
}

// NativePeriod is the element's default sampling period. A point's observed
// sample spacing takes precedence when it can be measured.
func (k ElementKind) NativePeriod() time.Duration {
	return elementTraits[k].native
}

// IntervalValued reports whether the element describes the window ending at
// its valid time rather than an instant.
func (k ElementKind) IntervalValued() bool {
	return elementTraits[k].interval
}

func (k *ElementKind) UnmarshalText(b []byte) error {
	parsed, err := ParseElementKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
