// Package layout deduplicates period grids into shared time layouts and
// names the periods of a grid.
package layout

import (
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
)

// Key identifies a period grid. Two grids with equal keys share a layout.
type Key struct {
	PeriodHours int    `json:"period_hours"`
	Rows        int    `json:"rows"`
	Start       string `json:"start"`
}

// NewKey builds the key of a grid. Start is the first period's local start
// time in RFC 3339 form. It returns false for an empty grid.
func NewKey(periodHours int, periods []domain.Period, zone domain.Zone) (Key, bool) {
	if len(periods) == 0 {
		return Key{}, false
	}
	return Key{
		PeriodHours: periodHours,
		Rows:        len(periods),
		Start:       zone.In(periods[0].Start).Format(time.RFC3339),
	}, true
}

// Layout is a resolved key and its identity.
type Layout struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Key  Key    `json:"key"`
}

func newLayout(id int, k Key) Layout {
	return Layout{ID: id, Name: fmt.Sprintf("k-p%dh-n%d-%d", k.PeriodHours, k.Rows, id), Key: k}
}

// Registry hands out layout identities for the lifetime of one report.
// Identities start at 1 and are allocated in resolution order.
type Registry struct {
	mu      sync.Mutex
	ids     map[Key]int
	layouts []Layout
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[Key]int)}
}

// Resolve returns the layout for k, allocating a new identity the first
// time k is seen.
func (r *Registry) Resolve(k Key) Layout {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[k]; ok {
		return r.layouts[id-1]
	}
	l := newLayout(len(r.layouts)+1, k)
	r.ids[k] = l.ID
	r.layouts = append(r.layouts, l)
	return l
}

// Layouts returns every allocated layout in identity order.
func (r *Registry) Layouts() []Layout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Layout(nil), r.layouts...)
}
