package domain

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is the summarization period length in local hours.
type Frequency int

const (
	TwelveHour     Frequency = 12
	TwentyFourHour Frequency = 24
)

// ParseFrequency accepts "12h", "24h", "12" or "24".
func ParseFrequency(s string) (Frequency, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "h") {
	case "12":
		return TwelveHour, nil
	case "24":
		return TwentyFourHour, nil
	default:
		return 0, fmt.Errorf("unsupported frequency %q", s)
	}
}

func (f Frequency) Valid() bool {
	return f == TwelveHour || f == TwentyFourHour
}

// Hours is the nominal wall clock length of a period.
func (f Frequency) Hours() int { return int(f) }

func (f Frequency) String() string {
	return fmt.Sprintf("%dh", int(f))
}

func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(b []byte) error {
	parsed, err := ParseFrequency(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Period is one half-open [Start, End) summarization window. Start and End are
// instants; their wall clock distance is 12 or 24 hours but the elapsed time
// may differ by an hour across a DST transition.
type Period struct {
	Index     int       `json:"index"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Frequency Frequency `json:"frequency"`
	Night     bool      `json:"night"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Length is the elapsed duration of the period.
func (p Period) Length() time.Duration {
	return p.End.Sub(p.Start)
}
