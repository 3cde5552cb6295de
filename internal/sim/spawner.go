package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/vovakirdan/skybird/internal/progress"
)

// spawn fires the spawn timers that have run past their interval and
// appends the new entities. Timers must already include this tick's dt.
func (w *World) spawn() {
	s := w.cfg.Spawn
	r := rand.New(&w.rng)

	if fire(&w.clock.Obstacle, s.ObstacleInterval) {
		w.obstacles = append(w.obstacles, w.newObstacle(r))
	}
	if fire(&w.clock.Coin, s.CoinInterval) {
		w.coins = append(w.coins, w.newCoin(r))
	}
	if fire(&w.clock.PowerUp, s.PowerUpInterval) {
		w.powerUps = append(w.powerUps, w.newPowerUp(r))
	}
}

func (w *World) newObstacle(r *rand.Rand) Obstacle {
	f, s := w.cfg.Playfield, w.cfg.Spawn

	kind := ObstacleKinds[r.IntN(len(ObstacleKinds))]
	size := kind.Size()
	y := f.Height*s.ObstacleBandTop + r.Float64()*f.Height*s.ObstacleBandHeight

	o := Obstacle{
		ID:    w.newID(),
		Kind:  kind,
		Pos:   Vec{X: f.Width + size.W, Y: y},
		Size:  size,
		Color: w.theme.ObstacleColors[r.IntN(len(w.theme.ObstacleColors))],
	}
	if freq := kind.bobFrequency(); freq > 0 {
		// Phase is chosen so the obstacle starts at its spawn height.
		o.Bob = &Bob{
			BaseY:     y,
			Amplitude: s.BobAmplitude,
			Frequency: freq,
			Phase:     -freq * w.clock.Elapsed,
		}
	}
	return o
}

func (w *World) newCoin(r *rand.Rand) Coin {
	return Coin{
		ID:     w.newID(),
		Pos:    w.collectiblePos(r),
		Value:  1,
		Streak: w.progress.CoinStreak > 0,
	}
}

func (w *World) newPowerUp(r *rand.Rand) PowerUp {
	kind := progress.PowerUpKinds[r.IntN(len(progress.PowerUpKinds))]
	return PowerUp{
		ID:       w.newID(),
		Kind:     kind,
		Pos:      w.collectiblePos(r),
		Duration: kind.Duration(),
	}
}

func (w *World) collectiblePos(r *rand.Rand) Vec {
	f, s := w.cfg.Playfield, w.cfg.Spawn
	return Vec{
		X: f.Width + r.Float64()*s.CollectibleJitter,
		Y: f.Height*s.CollectibleBandTop + r.Float64()*f.Height*s.CollectibleBandSize,
	}
}

// newID draws an entity identifier from the world's random source so that
// identifiers are reproducible for a given seed.
func (w *World) newID() string {
	id, err := uuid.NewRandomFromReader(&w.rng)
	if err != nil {
		w.seq++
		return fmt.Sprintf("e%d", w.seq)
	}
	return id.String()
}

// scroll moves every entity left, applies obstacle bobbing and prunes what
// has left the screen. A coin lost off the left edge breaks the coin streak.
func (w *World) scroll(dt float64) {
	dx := -w.cfg.Physics.ScrollSpeed * dt * 60
	size := w.cfg.Playfield.CollectibleSize

	obstacles := w.obstacles[:0]
	for _, o := range w.obstacles {
		o.Pos.X += dx
		if o.Bob != nil {
			o.Pos.Y = o.Bob.At(w.clock.Elapsed)
		}
		if o.Pos.X > -o.Size.W {
			obstacles = append(obstacles, o)
		}
	}
	w.obstacles = obstacles

	coins := w.coins[:0]
	for _, c := range w.coins {
		if c.Collected {
			continue
		}
		c.Pos.X += dx
		if c.Pos.X <= -size {
			w.progress.BreakCoinStreak()
			continue
		}
		coins = append(coins, c)
	}
	w.coins = coins

	powerUps := w.powerUps[:0]
	for _, p := range w.powerUps {
		if p.Collected {
			continue
		}
		p.Pos.X += dx
		if p.Pos.X > -size {
			powerUps = append(powerUps, p)
		}
	}
	w.powerUps = powerUps
}
