package progress

import (
	"slices"
	"time"

	"github.com/vovakirdan/skybird/internal/skins"
)

// Defaults for a player without saved progress.
const (
	DefaultCoins = 150
	DefaultLevel = 1
)

// Profile is the persisted part of a player's progression.
type Profile struct {
	Coins           int       `json:"coins"`
	HighScore       int       `json:"highScore"`
	Level           int       `json:"level"`
	Experience      int       `json:"experience"`
	SelectedSkin    string    `json:"selectedSkin"`
	OwnedSkins      []string  `json:"ownedSkins"`
	Achievements    []string  `json:"achievements"`
	ConsecutiveDays int       `json:"consecutiveDays"`
	LastDailyReward time.Time `json:"lastDailyReward"`
}

// DefaultProfile returns the progression of a new player.
func DefaultProfile() Profile {
	return Profile{
		Coins:        DefaultCoins,
		Level:        DefaultLevel,
		SelectedSkin: skins.DefaultID,
		OwnedSkins:   []string{skins.DefaultID},
	}
}

// Normalize replaces missing or out-of-range values with defaults so a
// damaged profile never prevents a session from starting. Level is raised
// if the stored experience already exceeds its threshold.
func (p Profile) Normalize() Profile {
	if p.Coins < 0 {
		p.Coins = DefaultCoins
	}
	if p.HighScore < 0 {
		p.HighScore = 0
	}
	if p.Level < 1 {
		p.Level = DefaultLevel
	}
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.ConsecutiveDays < 0 {
		p.ConsecutiveDays = 0
	}

	owned := make([]string, 0, len(p.OwnedSkins)+1)
	owned = append(owned, skins.DefaultID)
	for _, id := range p.OwnedSkins {
		if _, ok := skins.ByID(id); ok && !slices.Contains(owned, id) {
			owned = append(owned, id)
		}
	}
	p.OwnedSkins = owned

	if !slices.Contains(owned, p.SelectedSkin) {
		p.SelectedSkin = skins.DefaultID
	}

	var achievements []string
	for _, a := range p.Achievements {
		if a != "" && !slices.Contains(achievements, a) {
			achievements = append(achievements, a)
		}
	}
	p.Achievements = achievements

	for p.Experience >= ExperienceForLevel(p.Level) {
		p.Level++
	}
	return p
}

// ExperienceToNext returns the threshold for the profile's level.
func (p Profile) ExperienceToNext() int {
	return ExperienceForLevel(p.Level)
}

// SelectSkin switches to an owned skin. It reports false for skins that
// are unknown or not owned.
func (t *Tracker) SelectSkin(id string) bool {
	if _, ok := skins.ByID(id); !ok {
		return false
	}
	if id != skins.DefaultID && !slices.Contains(t.OwnedSkins, id) {
		return false
	}
	t.SelectedSkin = id
	return true
}
