package report

import (
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/layout"
	"github.com/couchcryptid/forecast-summary/internal/stats"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
	"github.com/couchcryptid/forecast-summary/internal/wxcode"
)

// Report is the summary of every requested point.
type Report struct {
	ID          string           `json:"id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Frequency   domain.Frequency `json:"frequency"`
	// Layouts lists every distinct period grid in the report.
	Layouts []layout.Layout `json:"layouts"`
	Points  []PointReport   `json:"points"`
}

// PointReport is the summary of one point.
type PointReport struct {
	PointID string  `json:"point_id"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	// Layout names the grid of Periods.
	Layout string `json:"layout"`
	// Elements holds the grid each sampled element is reported on.
	Elements map[domain.ElementKind]ElementLayout `json:"elements"`
	Periods  []PeriodRecord                       `json:"periods"`
}

// ElementLayout is an element's grid and the names of its rows.
type ElementLayout struct {
	Layout string   `json:"layout"`
	Names  []string `json:"names"`
}

// PeriodRecord is the summary of one period. Start and End are in the
// point's local time.
type PeriodRecord struct {
	Index int       `json:"index"`
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// Night marks the 18:00 to 06:00 half of a 12-hour grid.
	Night bool `json:"night"`
	// Phase is the day/night class of the period's representative time.
	Phase string `json:"phase"`

	DataAvailable bool           `json:"data_available"`
	Phrase        string         `json:"phrase"`
	Icon          string         `json:"icon"`
	Tier          synthesis.Tier `json:"tier"`

	Weather *wxcode.Dominant  `json:"weather,omitempty"`
	Stats   stats.PeriodStats `json:"stats"`
	// Available reports, per sampled element, whether any sample landed in
	// the period.
	Available map[domain.ElementKind]bool `json:"available"`
}
