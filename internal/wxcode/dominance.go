package wxcode

import "cmp"

// Compare orders two groups by dominance: coverage first, then intensity,
// then type. It returns a positive number when a dominates b. The qualifier
// and visibility never take part.
func Compare(a, b Group) int {
	if c := cmp.Compare(a.Coverage.Rank(), b.Coverage.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Intensity.Rank(), b.Intensity.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(a.Type.Rank(), b.Type.Rank())
}

// Row is the ordered group list decoded from one weather sample.
type Row []Group

// Dominant returns the most dominant group in the row. Ties keep the earlier
// group.
func (r Row) Dominant() (Group, bool) {
	if len(r) == 0 {
		return Group{}, false
	}
	best := r[0]
	for _, g := range r[1:] {
		if Compare(g, best) > 0 {
			best = g
		}
	}
	return best, true
}

// Has reports whether any weather-bearing group in the row has one of types.
func (r Row) Has(types ...Type) bool {
	for _, g := range r {
		if g.None() {
			continue
		}
		for _, t := range types {
			if g.Type == t {
				return true
			}
		}
	}
	return false
}

// Dominant is the group chosen to represent a period together with every
// group of the row it came from.
type Dominant struct {
	Group Group `json:"group"`
	Row   Row   `json:"row"`
}

// None reports whether the period had no weather type at all.
func (d Dominant) None() bool { return d.Group.None() }

// Resolver reduces the weather rows of one period to a single Dominant.
type Resolver struct {
	// PreferRicherRows breaks a full coverage/intensity/type tie between two
	// rows in favor of the row reporting more groups. Otherwise the earlier
	// row wins.
	PreferRicherRows bool
}

// DefaultResolver prefers richer rows on ties.
var DefaultResolver = Resolver{PreferRicherRows: true}

// Resolve walks every row and returns the dominant group and its row. It
// returns false when no row carries any group.
func (r Resolver) Resolve(rows []Row) (Dominant, bool) {
	var (
		best  Dominant
		found bool
	)
	for _, row := range rows {
		g, ok := row.Dominant()
		if !ok {
			continue
		}
		if !found {
			best, found = Dominant{Group: g, Row: row}, true
			continue
		}
		c := Compare(g, best.Group)
		if c > 0 || (c == 0 && r.PreferRicherRows && len(row) > len(best.Row)) {
			best = Dominant{Group: g, Row: row}
		}
	}
	return best, found
}
