// Package sim is the simulation core: the bird integrator, entity spawner,
// collision detector and the reducer that advances a session one event at
// a time. It performs no I/O and reads no clocks; time and randomness are
// supplied by the caller.
package sim

import (
	"encoding/binary"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/theme"
)

// Phase is the session state.
type Phase int

const (
	Idle Phase = iota
	Playing
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// World is the complete simulation state. It is a value: Reduce returns a
// new World and never modifies the one it was given.
type World struct {
	cfg config.SkybirdConfig
	rng rand.ChaCha8
	seq uint64

	phase       Phase
	ticks       uint64
	clock       Clock
	bird        Bird
	obstacles   []Obstacle
	coins       []Coin
	powerUps    []PowerUp
	progress    progress.Tracker
	theme       theme.Theme
	themePinned bool
}

// New creates an idle world. The profile is normalized; the theme is chosen
// from now.
func New(cfg config.SkybirdConfig, seed int64, p progress.Profile, now time.Time) World {
	w := World{
		cfg:      cfg,
		rng:      *rand.NewChaCha8(seedBytes(seed)),
		phase:    Idle,
		progress: progress.NewTracker(p),
		theme:    theme.ForTime(now),
	}
	w.bird = w.startBird()
	return w
}

func seedBytes(seed int64) [32]byte {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(seed))
	return b
}

func (w World) startBird() Bird {
	f := w.cfg.Playfield
	return Bird{
		Pos:  Vec{X: f.Width * f.BirdXRatio, Y: f.Height * 0.5},
		Skin: w.progress.SelectedSkin,
	}
}

// clone returns a copy that shares no mutable memory with w.
func (w World) clone() World {
	w.bird.Trail = slices.Clone(w.bird.Trail)
	w.obstacles = slices.Clone(w.obstacles)
	w.coins = slices.Clone(w.coins)
	w.powerUps = slices.Clone(w.powerUps)
	w.progress = w.progress.Clone()
	return w
}

// Reduce applies ev to w and returns the resulting world and the effects
// the transition produced.
func Reduce(w World, ev Event) (World, []Effect) {
	next := w.clone()
	switch e := ev.(type) {
	case Tick:
		fx := next.tick(e)
		return next, fx
	case Flap:
		fx := next.flap(e.At)
		return next, fx
	case PauseToggle:
		next.togglePause()
	case SwitchTheme:
		if t, ok := theme.ByID(e.ID); ok {
			next.theme = t
			next.themePinned = true
		}
	case SelectSkin:
		if next.progress.SelectSkin(e.ID) {
			next.bird.Skin = next.progress.SelectedSkin
			return next, []Effect{SkinSelected{Skin: e.ID, Profile: next.progress.Profile()}}
		}
	}
	return next, nil
}

// tick runs one step of the pipeline: integrate, trail, floor check,
// spawn, scroll, collisions, power-up countdown.
func (w *World) tick(e Tick) []Effect {
	if w.phase != Playing {
		return nil
	}

	dt := min(max(e.Dt.Seconds(), 0), w.cfg.Loop.MaxDelta)
	w.ticks++
	w.clock.advance(dt)

	w.bird = Integrate(w.bird, w.cfg.Physics, w.cfg.Playfield, dt)

	if fire(&w.clock.Trail, w.cfg.Loop.TrailInterval) {
		w.bird.Trail = pushTrail(w.bird.Trail, w.bird.Pos, w.cfg.Loop.TrailLength)
	}

	if onFloor(w.bird, w.cfg.Playfield) {
		return w.gameOver(CauseFloor)
	}

	w.spawn()
	w.scroll(dt)

	fx := w.collide(e.At)
	if w.phase == Playing {
		w.progress.DecayPowerUps(time.Duration(dt * float64(time.Second)))
	}
	return fx
}

func (w *World) flap(at time.Time) []Effect {
	switch w.phase {
	case Idle, GameOver:
		w.startSession(at)
		return []Effect{SessionStarted{Theme: w.theme.ID}, Haptic{Impact: ImpactLight}}
	case Playing:
		w.bird = applyFlap(w.bird, w.cfg.Physics)
		return []Effect{Haptic{Impact: ImpactLight}}
	default:
		return nil
	}
}

func (w *World) startSession(at time.Time) {
	w.bird = w.startBird()
	w.obstacles = nil
	w.coins = nil
	w.powerUps = nil
	w.clock = Clock{}
	w.progress.StartSession()
	if !w.themePinned {
		w.theme = theme.ForTime(at)
	}
	w.phase = Playing
}

func (w *World) togglePause() {
	switch w.phase {
	case Playing:
		w.phase = Paused
	case Paused:
		w.phase = Playing
	}
}

func (w *World) gameOver(cause EndCause) []Effect {
	w.phase = GameOver
	w.bird.Flapping = false
	res := w.progress.EndSession(w.cfg.Progression.XPPerScore)
	return []Effect{
		Haptic{Impact: ImpactHeavy},
		SessionEnded{Cause: cause, Result: res, Profile: w.progress.Profile()},
	}
}

// Phase returns the session state.
func (w World) Phase() Phase { return w.phase }

// Config returns the tuning the world runs with.
func (w World) Config() config.SkybirdConfig { return w.cfg }

// Theme returns the current theme.
func (w World) Theme() theme.Theme { return w.theme }

// Ticks returns the number of ticks simulated since the world was created.
func (w World) Ticks() uint64 { return w.ticks }

// Profile returns the persistable progression.
func (w World) Profile() progress.Profile { return w.progress.Profile() }
