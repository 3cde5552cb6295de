// Package skins is the read-only bird skin catalog.
package skins

// DefaultID is the skin every profile owns.
const DefaultID = "default"

// Skin describes a bird appearance. Colours are hex strings.
type Skin struct {
	ID          string
	Name        string
	Color       string
	AccentColor string
	Price       int
	Description string
}

var catalog = []Skin{
	{ID: DefaultID, Name: "Classic", Color: "#FFD700", AccentColor: "#FFA500", Price: 0, Description: "The classic golden bird"},
	{ID: "cardinal", Name: "Cardinal", Color: "#DC143C", AccentColor: "#8B0000", Price: 50, Description: "A fiery red cardinal"},
	{ID: "bluebird", Name: "Bluebird", Color: "#4169E1", AccentColor: "#191970", Price: 75, Description: "A peaceful blue bird"},
	{ID: "robin", Name: "Robin", Color: "#FF6347", AccentColor: "#CD5C5C", Price: 100, Description: "A cheerful spring robin"},
	{ID: "canary", Name: "Canary", Color: "#FFFF00", AccentColor: "#DAA520", Price: 125, Description: "A bright yellow canary"},
	{ID: "peacock", Name: "Peacock", Color: "#008B8B", AccentColor: "#006666", Price: 200, Description: "An elegant teal peacock"},
	{ID: "phoenix", Name: "Phoenix", Color: "#FF4500", AccentColor: "#FF8C00", Price: 500, Description: "A mythical fire phoenix"},
	{ID: "rainbow", Name: "Rainbow", Color: "#9370DB", AccentColor: "#8A2BE2", Price: 1000, Description: "A magical rainbow bird"},
}

// All returns a copy of the catalog.
func All() []Skin {
	out := make([]Skin, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a skin.
func ByID(id string) (Skin, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}

// Lookup returns the skin for id, or the default skin if id is unknown.
func Lookup(id string) Skin {
	if s, ok := ByID(id); ok {
		return s
	}
	return catalog[0]
}

// SkinStatus pairs a skin with its availability for a profile.
type SkinStatus struct {
	Skin
	Owned    bool
	Unlocked bool
}

// Status reports every skin's availability. A skin is unlocked when it is
// free, already owned, or affordable with the given coins.
func Status(coins int, owned []string) []SkinStatus {
	have := make(map[string]bool, len(owned))
	for _, id := range owned {
		have[id] = true
	}

	out := make([]SkinStatus, 0, len(catalog))
	for _, s := range catalog {
		isOwned := have[s.ID] || s.Price == 0
		out = append(out, SkinStatus{
			Skin:     s,
			Owned:    isOwned,
			Unlocked: isOwned || coins >= s.Price,
		})
	}
	return out
}
