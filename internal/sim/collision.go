package sim

import (
	"time"

	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/progress"
)

// Collides is the axis-aligned overlap test. Touching edges do not collide.
func Collides(a, b core.Box) bool {
	return a.Overlaps(b)
}

// collide scores passed obstacles, ends the session on an obstacle hit and
// otherwise collects overlapping coins and power-ups. Passes are scored
// before the fatal check so an obstacle passed on the crashing tick counts.
func (w *World) collide(now time.Time) []Effect {
	var fx []Effect
	bird := w.bird.Box(w.cfg.Playfield.BirdSize)
	size := w.cfg.Playfield.CollectibleSize

	for i := range w.obstacles {
		o := &w.obstacles[i]
		if o.Passed || o.Pos.X >= w.bird.Pos.X {
			continue
		}
		o.Passed = true
		fx = append(fx, Haptic{Impact: ImpactLight})
		fx = announce(fx, w.progress.RecordPass(now, w.newID))
	}

	for _, o := range w.obstacles {
		if Collides(bird, o.Box()) {
			return append(fx, w.gameOver(CauseCollision)...)
		}
	}

	coins := w.coins[:0]
	for _, c := range w.coins {
		if !c.Collected && Collides(bird, collectibleBox(c.Pos, size)) {
			c.Collected = true
			fx = append(fx, Haptic{Impact: ImpactMedium})
			fx = announce(fx, w.progress.RecordCoin(c.Value, now, w.newID))
			continue
		}
		coins = append(coins, c)
	}
	w.coins = coins

	powerUps := w.powerUps[:0]
	for _, p := range w.powerUps {
		if !p.Collected && Collides(bird, collectibleBox(p.Pos, size)) {
			p.Collected = true
			fx = append(fx, Haptic{Impact: ImpactHeavy})
			fx = announce(fx, w.progress.RecordPowerUp(p.Kind, now, w.newID))
			continue
		}
		powerUps = append(powerUps, p)
	}
	w.powerUps = powerUps

	return fx
}

func announce(fx []Effect, unlocked []progress.LiveAchievement) []Effect {
	for _, a := range unlocked {
		fx = append(fx, AchievementUnlocked{Achievement: a})
	}
	return fx
}
