package sim

import (
	"slices"

	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/theme"
)

// GameState is the published progression snapshot.
type GameState struct {
	Phase              string                     `json:"phase"`
	IsPlaying          bool                       `json:"isPlaying"`
	IsPaused           bool                       `json:"isPaused"`
	Score              int                        `json:"score"`
	Coins              int                        `json:"coins"`
	Level              int                        `json:"level"`
	Experience         int                        `json:"experience"`
	ExperienceToNext   int                        `json:"experienceToNext"`
	HighScore          int                        `json:"highScore"`
	CurrentTheme       theme.ID                   `json:"currentTheme"`
	ActivePowerUps     []progress.ActivePowerUp   `json:"activePowerUps"`
	CoinStreak         int                        `json:"coinStreak"`
	PerfectFlightCombo int                        `json:"perfectFlightCombo"`
	LiveAchievements   []progress.LiveAchievement `json:"liveAchievements"`
	SelectedSkin       string                     `json:"selectedSkin"`
}

// Frame is everything a renderer needs for one tick. It shares no memory
// with the World it was taken from.
type Frame struct {
	Tick      uint64     `json:"tick"`
	Elapsed   float64    `json:"elapsed"`
	State     GameState  `json:"state"`
	Bird      Bird       `json:"bird"`
	Obstacles []Obstacle `json:"obstacles"`
	Coins     []Coin     `json:"coins"`
	PowerUps  []PowerUp  `json:"powerUps"`
}

// State returns the progression snapshot.
func (w World) State() GameState {
	t := w.progress
	return GameState{
		Phase:              w.phase.String(),
		IsPlaying:          w.phase == Playing || w.phase == Paused,
		IsPaused:           w.phase == Paused,
		Score:              t.Score,
		Coins:              t.Coins,
		Level:              t.Level,
		Experience:         t.Experience,
		ExperienceToNext:   t.ExperienceToNext,
		HighScore:          t.HighScore,
		CurrentTheme:       w.theme.ID,
		ActivePowerUps:     slices.Clone(t.ActivePowerUps),
		CoinStreak:         t.CoinStreak,
		PerfectFlightCombo: t.PerfectFlightCombo,
		LiveAchievements:   t.Live.Items(),
		SelectedSkin:       t.SelectedSkin,
	}
}

// Snapshot returns the frame for the current state.
func (w World) Snapshot() Frame {
	b := w.bird
	b.Trail = slices.Clone(b.Trail)
	return Frame{
		Tick:      w.ticks,
		Elapsed:   w.clock.Elapsed,
		State:     w.State(),
		Bird:      b,
		Obstacles: slices.Clone(w.obstacles),
		Coins:     slices.Clone(w.coins),
		PowerUps:  slices.Clone(w.powerUps),
	}
}
