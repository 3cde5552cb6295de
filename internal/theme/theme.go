// Package theme holds the fixed palette of visual themes and selects one
// from the time of day.
package theme

import "time"

// ID identifies a theme in the catalog.
type ID string

const (
	Spring ID = "spring"
	Summer ID = "summer"
	Autumn ID = "autumn"
	Winter ID = "winter"
	Night  ID = "night"
)

// Theme is an immutable catalog entry. Colours are hex strings.
type Theme struct {
	ID             ID
	Name           string
	Background     string
	Primary        string
	Secondary      string
	Accent         string
	Cloud          string
	ObstacleColors [3]string
}

var catalog = [...]Theme{
	{
		ID:             Spring,
		Name:           "Spring",
		Background:     "#87CEEB",
		Primary:        "#98FB98",
		Secondary:      "#FFB6C1",
		Accent:         "#DDA0DD",
		Cloud:          "#FFFFFF",
		ObstacleColors: [3]string{"#32CD32", "#FF69B4", "#9370DB"},
	},
	{
		ID:             Summer,
		Name:           "Summer",
		Background:     "#4FC3F7",
		Primary:        "#81C784",
		Secondary:      "#FFD54F",
		Accent:         "#FF8A65",
		Cloud:          "#FEFFE7",
		ObstacleColors: [3]string{"#4CAF50", "#FF9800", "#2196F3"},
	},
	{
		ID:             Autumn,
		Name:           "Autumn",
		Background:     "#FF8A50",
		Primary:        "#D4A574",
		Secondary:      "#A0522D",
		Accent:         "#CD853F",
		Cloud:          "#F5DEB3",
		ObstacleColors: [3]string{"#D2691E", "#B22222", "#FF4500"},
	},
	{
		ID:             Winter,
		Name:           "Winter",
		Background:     "#B8C6DB",
		Primary:        "#E6F3FF",
		Secondary:      "#C7E9FF",
		Accent:         "#A3D2FF",
		Cloud:          "#FFFFFF",
		ObstacleColors: [3]string{"#87CEEB", "#B0E0E6", "#E0FFFE"},
	},
	{
		ID:             Night,
		Name:           "Night",
		Background:     "#2C3E50",
		Primary:        "#34495E",
		Secondary:      "#9B59B6",
		Accent:         "#F39C12",
		Cloud:          "#5D6D7E",
		ObstacleColors: [3]string{"#8E44AD", "#3498DB", "#E74C3C"},
	},
}

// All returns the catalog in display order.
func All() []Theme {
	out := make([]Theme, len(catalog))
	copy(out, catalog[:])
	return out
}

// ByID looks up a theme.
func ByID(id ID) (Theme, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ForHour maps an hour of the day to a theme:
//
//	06-11 spring, 12-16 summer, 17-19 autumn, 20-01 night, 02-05 winter
//
// Hours outside 0..23 wrap around the clock.
func ForHour(hour int) Theme {
	hour %= 24
	if hour < 0 {
		hour += 24
	}

	switch {
	case hour >= 6 && hour < 12:
		return catalog[0]
	case hour >= 12 && hour < 17:
		return catalog[1]
	case hour >= 17 && hour < 20:
		return catalog[2]
	case hour >= 20 || hour < 2:
		return catalog[4]
	default:
		return catalog[3]
	}
}

// ForTime selects the theme for the local hour of t.
func ForTime(t time.Time) Theme {
	return ForHour(t.Hour())
}

// Next returns the theme after id in catalog order, wrapping at the end.
func Next(id ID) Theme {
	for i, t := range catalog {
		if t.ID == id {
			return catalog[(i+1)%len(catalog)]
		}
	}
	return catalog[0]
}
