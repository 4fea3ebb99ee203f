package synthesis

// Icon is the symbolic picture chosen for a period.
type Icon struct {
	Name string `json:"name"`
	// DayNight marks icons drawn in day and night variants.
	DayNight bool `json:"day_night"`
	Night    bool `json:"night"`
}

// NoIcon is the icon of a period with no qualifying condition.
const NoIcon = "none"

// ID returns the icon identifier, such as "rain-day", "partly-cloudy-night"
// or "windy".
func (i Icon) ID() string {
	switch {
	case i.Name == "":
		return NoIcon
	case !i.DayNight:
		return i.Name
	case i.Night:
		return i.Name + "-night"
	default:
		return i.Name + "-day"
	}
}

func (i Icon) String() string { return i.ID() }

func (i Icon) MarshalText() ([]byte, error) { return []byte(i.ID()), nil }

func dayNight(name string, night bool) Icon {
	return Icon{Name: name, DayNight: true, Night: night}
}
