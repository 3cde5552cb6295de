package sim

import (
	"time"

	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/theme"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Tick advances a playing session by Dt of wall-clock time observed at At.
type Tick struct {
	Dt time.Duration
	At time.Time
}

// Flap starts a session from Idle or GameOver, or flaps while playing.
type Flap struct {
	At time.Time
}

// PauseToggle pauses or resumes a running session.
type PauseToggle struct{}

// SwitchTheme selects a theme explicitly. Unknown ids are ignored.
type SwitchTheme struct {
	ID theme.ID
}

// SelectSkin switches the bird to an owned skin. Unknown or unowned skins
// are ignored.
type SelectSkin struct {
	ID string
}

func (Tick) isEvent()        {}
func (Flap) isEvent()        {}
func (PauseToggle) isEvent() {}
func (SwitchTheme) isEvent() {}
func (SelectSkin) isEvent()  {}

// Effect is an output of Reduce for collaborators outside the simulation.
type Effect interface {
	isEffect()
}

// Impact is the strength of a haptic pulse.
type Impact int

const (
	ImpactLight Impact = iota
	ImpactMedium
	ImpactHeavy
)

func (i Impact) String() string {
	switch i {
	case ImpactLight:
		return "light"
	case ImpactMedium:
		return "medium"
	case ImpactHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// EndCause tells why a session ended.
type EndCause int

const (
	CauseFloor EndCause = iota
	CauseCollision
)

func (c EndCause) String() string {
	if c == CauseFloor {
		return "floor"
	}
	return "collision"
}

// Haptic requests a fire-and-forget feedback pulse.
type Haptic struct {
	Impact Impact
}

// SessionStarted is emitted on the transition into Playing from Idle or
// GameOver.
type SessionStarted struct {
	Theme theme.ID
}

// SessionEnded is emitted once per session on game over. Profile is the
// progression to persist.
type SessionEnded struct {
	Cause   EndCause
	Result  progress.SessionResult
	Profile progress.Profile
}

// AchievementUnlocked carries a new live achievement.
type AchievementUnlocked struct {
	Achievement progress.LiveAchievement
}

// SkinSelected is emitted when the selected skin changes.
type SkinSelected struct {
	Skin    string
	Profile progress.Profile
}

func (Haptic) isEffect()              {}
func (SessionStarted) isEffect()      {}
func (SessionEnded) isEffect()        {}
func (AchievementUnlocked) isEffect() {}
func (SkinSelected) isEffect()        {}
