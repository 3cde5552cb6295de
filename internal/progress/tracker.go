// Package progress implements the progression state of a player: score,
// coins, streaks, the level curve, active power-ups, live achievement
// notifications and permanently unlocked achievements.
package progress

import (
	"math"
	"slices"
	"time"
)

// IDFunc supplies identifiers for new live achievements.
type IDFunc func() string

// Tracker holds progression state. The zero value is not ready; build one
// with NewTracker.
type Tracker struct {
	Score              int
	Coins              int
	Level              int
	Experience         int
	ExperienceToNext   int
	HighScore          int
	CoinStreak         int
	PerfectFlightCombo int
	ActivePowerUps     []ActivePowerUp
	Live               Notifier

	SelectedSkin    string
	OwnedSkins      []string
	Achievements    []string
	ConsecutiveDays int
	LastDailyReward time.Time
}

// NewTracker restores a tracker from a persisted profile. The profile is
// normalized first, so malformed values fall back to defaults.
func NewTracker(p Profile) Tracker {
	p = p.Normalize()
	t := Tracker{
		Coins:           p.Coins,
		Level:           p.Level,
		Experience:      p.Experience,
		HighScore:       p.HighScore,
		SelectedSkin:    p.SelectedSkin,
		OwnedSkins:      p.OwnedSkins,
		Achievements:    p.Achievements,
		ConsecutiveDays: p.ConsecutiveDays,
		LastDailyReward: p.LastDailyReward,
	}
	t.levelUp()
	return t
}

// Clone returns a deep copy.
func (t Tracker) Clone() Tracker {
	t.ActivePowerUps = slices.Clone(t.ActivePowerUps)
	t.OwnedSkins = slices.Clone(t.OwnedSkins)
	t.Achievements = slices.Clone(t.Achievements)
	// Notifier never writes to its backing array.
	return t
}

// StartSession resets per-session counters. Coins, high score, level and
// experience carry over.
func (t *Tracker) StartSession() {
	t.Score = 0
	t.CoinStreak = 0
	t.PerfectFlightCombo = 0
	t.ActivePowerUps = nil
	t.Live = Notifier{}
}

// RecordPass scores an obstacle that scrolled behind the bird.
func (t *Tracker) RecordPass(now time.Time, newID IDFunc) []LiveAchievement {
	t.Score++
	t.PerfectFlightCombo++
	if m, ok := reached(comboMilestones, t.PerfectFlightCombo); ok {
		return []LiveAchievement{t.notify(m.title, m.description, m.count, m.count, now, newID)}
	}
	return nil
}

// RecordCoin credits a collected coin.
func (t *Tracker) RecordCoin(value int, now time.Time, newID IDFunc) []LiveAchievement {
	t.Coins += value
	t.CoinStreak++
	if m, ok := reached(streakMilestones, t.CoinStreak); ok {
		return []LiveAchievement{t.notify(m.title, m.description, m.count, m.count, now, newID)}
	}
	return nil
}

// BreakCoinStreak resets the coin streak after a coin was missed.
func (t *Tracker) BreakCoinStreak() {
	t.CoinStreak = 0
}

// RecordPowerUp activates a collected power-up.
func (t *Tracker) RecordPowerUp(kind PowerUpKind, now time.Time, newID IDFunc) []LiveAchievement {
	t.activate(kind)
	return []LiveAchievement{t.notify("Power Up!", kind.Label()+" activated", 1, 1, now, newID)}
}

func (t *Tracker) notify(title, desc string, progress, target int, now time.Time, newID IDFunc) LiveAchievement {
	a := LiveAchievement{
		Title:       title,
		Description: desc,
		Progress:    progress,
		Target:      target,
		Timestamp:   now,
	}
	if newID != nil {
		a.ID = newID()
	}
	t.Live = t.Live.Push(a)
	return a
}

// SessionResult summarizes a finished session.
type SessionResult struct {
	Score            int
	HighScore        int
	NewHighScore     bool
	ExperienceGained int
	LevelsGained     int
	Level            int
	NewAchievements  []string
}

// EndSession closes the session: it updates the high score, awards
// floor(score*xpPerScore) experience and unlocks permanent achievements.
func (t *Tracker) EndSession(xpPerScore float64) SessionResult {
	res := SessionResult{Score: t.Score}
	if t.Score > t.HighScore {
		t.HighScore = t.Score
		res.NewHighScore = true
	}
	res.HighScore = t.HighScore

	if xpPerScore > 0 {
		res.ExperienceGained = int(math.Floor(float64(t.Score) * xpPerScore))
	}
	res.LevelsGained = t.AddExperience(res.ExperienceGained)
	res.Level = t.Level

	for _, name := range Evaluate(t.Score, t.CoinStreak, t.PerfectFlightCombo) {
		if !slices.Contains(t.Achievements, name) {
			t.Achievements = append(t.Achievements, name)
			res.NewAchievements = append(res.NewAchievements, name)
		}
	}
	t.ActivePowerUps = nil
	return res
}

// Profile returns the persistable subset of the tracker.
func (t Tracker) Profile() Profile {
	return Profile{
		Coins:           t.Coins,
		HighScore:       t.HighScore,
		Level:           t.Level,
		Experience:      t.Experience,
		SelectedSkin:    t.SelectedSkin,
		OwnedSkins:      slices.Clone(t.OwnedSkins),
		Achievements:    slices.Clone(t.Achievements),
		ConsecutiveDays: t.ConsecutiveDays,
		LastDailyReward: t.LastDailyReward,
	}
}
