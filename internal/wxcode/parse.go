package wxcode

import (
	"errors"
	"fmt"
	"strings"
)

// MaxGroups is the most groups a single coded weather string may carry.
const MaxGroups = 5

const (
	groupSeparator = "^"
	fieldSeparator = ":"
)

// ErrMalformedGroup marks a group that could not be decoded. Parse skips such
// groups and keeps going.
var ErrMalformedGroup = errors.New("malformed weather group")

// ParseError describes one skipped group.
type ParseError struct {
	Index  int
	Group  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("weather group %d %q: %s", e.Index, e.Group, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformedGroup }

// Group is one decoded weather group.
type Group struct {
	Coverage   Coverage  `json:"coverage"`
	Type       Type      `json:"type"`
	Intensity  Intensity `json:"intensity"`
	Visibility string    `json:"visibility,omitempty"`
	Qualifier  string    `json:"qualifier,omitempty"`
}

// None reports whether the group carries no weather. The zero Group is none.
func (g Group) None() bool {
	return g.Coverage == "" || g.Type == "" || g.Coverage == CoverageNone || g.Type == TypeNone
}

func (g Group) String() string {
	fields := []string{string(g.Coverage), string(g.Type), string(g.Intensity)}
	if g.Visibility != "" {
		fields = append(fields, g.Visibility)
	}
	qualifier := g.Qualifier
	if qualifier == "" {
		qualifier = "none"
	}
	return strings.Join(append(fields, qualifier), fieldSeparator)
}

// Parse decodes a coded weather string such as
//
//	Chc:T:<NoInten>:<NoVis>:^Lkly:RW:m:<NoVis>:HvyRn
//
// into its groups. Groups are separated by "^" and carry four fields
// (coverage:type:intensity:qualifier) or five, with visibility before the
// qualifier. Malformed groups, and groups beyond MaxGroups, are skipped and
// returned as *ParseError values; the remaining groups are still decoded.
func Parse(code string) ([]Group, []error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	var (
		groups []Group
		errs   []error
	)
	for i, raw := range strings.Split(code, groupSeparator) {
		if i >= MaxGroups {
			errs = append(errs, &ParseError{Index: i, Group: raw, Reason: fmt.Sprintf("more than %d groups", MaxGroups)})
			continue
		}
		g, err := parseGroup(raw)
		if err != nil {
			errs = append(errs, &ParseError{Index: i, Group: raw, Reason: err.Error()})
			continue
		}
		groups = append(groups, g)
	}
	return groups, errs
}

func parseGroup(raw string) (Group, error) {
	fields := strings.Split(strings.TrimSpace(raw), fieldSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var visibility, qualifier string
	switch len(fields) {
	case 4:
		qualifier = fields[3]
	case 5:
		visibility, qualifier = fields[3], fields[4]
	default:
		return Group{}, fmt.Errorf("expected 4 or 5 fields, got %d", len(fields))
	}

	coverage, ok := lookup(fields[0], coverageRank, CoverageNone)
	if !ok {
		return Group{}, fmt.Errorf("unknown coverage %q", fields[0])
	}
	typ, ok := lookup(fields[1], typeRank, TypeNone)
	if !ok {
		return Group{}, fmt.Errorf("unknown type %q", fields[1])
	}
	intensity, ok := lookup(fields[2], intensityRank, IntensityNone)
	if !ok {
		return Group{}, fmt.Errorf("unknown intensity %q", fields[2])
	}

	if absent[visibility] {
		visibility = ""
	}
	if absent[qualifier] {
		qualifier = ""
	}

	return Group{
		Coverage:   coverage,
		Type:       typ,
		Intensity:  intensity,
		Visibility: visibility,
		Qualifier:  qualifier,
	}, nil
}

// lookup maps a field token to its vocabulary value, treating absence tokens
// as none.
func lookup[T ~string](token string, ranks map[T]int, none T) (T, bool) {
	if absent[token] {
		return none, true
	}
	v := T(token)
	if _, ok := ranks[v]; !ok {
		return none, false
	}
	return v, true
}
