package sim

import (
	"math"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/core"
)

// Integrate advances the bird by dt seconds. Vertical velocity gains
// gravity up to the terminal speed, the position is clamped to the
// playfield and rotation follows vertical velocity. The flapping flag is
// cleared.
func Integrate(b Bird, p config.PhysicsConfig, f config.PlayfieldConfig, dt float64) Bird {
	if dt < 0 {
		dt = 0
	}

	b.Vel.Y = math.Min(p.MaxFallSpeed, b.Vel.Y+p.Gravity*dt)
	b.Pos.X += b.Vel.X * dt
	b.Pos.Y = core.ClampF(b.Pos.Y+b.Vel.Y*dt, 0, f.Height-f.BirdSize)
	b.Rotation = core.ClampF(b.Vel.Y*p.RotationFactor, p.MinRotation, p.MaxRotation)
	b.Flapping = false
	return b
}

// applyFlap sets vertical velocity to the flap strength, discarding any
// accumulated fall speed.
func applyFlap(b Bird, p config.PhysicsConfig) Bird {
	b.Vel.Y = p.FlapStrength
	b.Flapping = true
	return b
}

// pushTrail prepends pos to the trail, keeping at most max samples.
func pushTrail(trail []Vec, pos Vec, max int) []Vec {
	n := min(len(trail)+1, max)
	out := make([]Vec, 0, n)
	out = append(out, pos)
	for _, p := range trail {
		if len(out) == n {
			break
		}
		out = append(out, p)
	}
	return out
}

// onFloor reports whether the bird has reached the bottom of the playfield.
func onFloor(b Bird, f config.PlayfieldConfig) bool {
	return b.Pos.Y >= f.Height-f.BirdSize
}
