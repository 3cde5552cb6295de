// Package engine runs simulation sessions: it owns a World, feeds it
// events, restores and persists the player's progression and drives the
// wall-clock tick loop for headless front ends.
package engine

import (
	"errors"

	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/sim"
)

// ErrClosed is returned by a Runner after Close.
var ErrClosed = errors.New("engine: runner closed")

// ProfileStore persists progression between sessions.
type ProfileStore interface {
	// LoadProfile returns the stored profile. found is false for a player
	// without saved progress.
	LoadProfile(player string) (p progress.Profile, found bool, err error)
	SaveProfile(player string, p progress.Profile) error
	SaveScore(player string, score, level int) error
}

// Haptics receives feedback pulses. Implementations must not block.
type Haptics interface {
	Impact(sim.Impact)
}

// HapticsFunc adapts a function to Haptics.
type HapticsFunc func(sim.Impact)

// Impact calls f.
func (f HapticsFunc) Impact(i sim.Impact) {
	f(i)
}
