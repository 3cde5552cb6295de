// Package config provides YAML-based tuning for the simulation and
// environment helpers for the command line.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SkybirdConfig contains all tuning for the simulation.
type SkybirdConfig struct {
	Physics     PhysicsConfig     `yaml:"physics"`
	Playfield   PlayfieldConfig   `yaml:"playfield"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Loop        LoopConfig        `yaml:"loop"`
	Progression ProgressionConfig `yaml:"progression"`
}

// PhysicsConfig defines the bird integrator constants. Units are world
// units and seconds.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`         // Downward acceleration per second
	FlapStrength   float64 `yaml:"flap_strength"`   // Velocity set on flap (negative = up)
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`  // Terminal velocity
	RotationFactor float64 `yaml:"rotation_factor"` // Degrees per unit of vertical velocity
	MinRotation    float64 `yaml:"min_rotation"`
	MaxRotation    float64 `yaml:"max_rotation"`
	ScrollSpeed    float64 `yaml:"scroll_speed"` // World units per 60fps frame
}

// PlayfieldConfig defines world dimensions.
type PlayfieldConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BirdSize        float64 `yaml:"bird_size"`
	BirdXRatio      float64 `yaml:"bird_x_ratio"` // Bird x as a fraction of width
	CollectibleSize float64 `yaml:"collectible_size"`
}

// SpawnConfig defines spawn intervals (seconds) and vertical bands
// (fractions of the playfield height).
type SpawnConfig struct {
	ObstacleInterval    float64 `yaml:"obstacle_interval"`
	CoinInterval        float64 `yaml:"coin_interval"`
	PowerUpInterval     float64 `yaml:"powerup_interval"`
	ObstacleBandTop     float64 `yaml:"obstacle_band_top"`
	ObstacleBandHeight  float64 `yaml:"obstacle_band_height"`
	CollectibleBandTop  float64 `yaml:"collectible_band_top"`
	CollectibleBandSize float64 `yaml:"collectible_band_height"`
	CollectibleJitter   float64 `yaml:"collectible_jitter"` // Extra random x offset past the right edge
	BobAmplitude        float64 `yaml:"bob_amplitude"`
}

// LoopConfig defines the tick scheduler.
type LoopConfig struct {
	TickMillis    int     `yaml:"tick_ms"`
	MaxDelta      float64 `yaml:"max_delta"`      // Upper clamp for a tick's elapsed seconds
	TrailInterval float64 `yaml:"trail_interval"` // Seconds between trail samples
	TrailLength   int     `yaml:"trail_length"`
}

// ProgressionConfig defines experience awards.
type ProgressionConfig struct {
	XPPerScore float64 `yaml:"xp_per_score"`
}

// TickInterval returns the scheduler cadence.
func (l LoopConfig) TickInterval() time.Duration {
	return time.Duration(l.TickMillis) * time.Millisecond
}

// Validate rejects configurations the simulation cannot run with.
func (c SkybirdConfig) Validate() error {
	var errs []error

	positive := []struct {
		name string
		val  float64
	}{
		{"playfield.width", c.Playfield.Width},
		{"playfield.height", c.Playfield.Height},
		{"playfield.bird_size", c.Playfield.BirdSize},
		{"playfield.collectible_size", c.Playfield.CollectibleSize},
		{"spawn.obstacle_interval", c.Spawn.ObstacleInterval},
		{"spawn.coin_interval", c.Spawn.CoinInterval},
		{"spawn.powerup_interval", c.Spawn.PowerUpInterval},
		{"physics.max_fall_speed", c.Physics.MaxFallSpeed},
		{"loop.max_delta", c.Loop.MaxDelta},
		{"loop.tick_ms", float64(c.Loop.TickMillis)},
		{"loop.trail_length", float64(c.Loop.TrailLength)},
	}
	for _, p := range positive {
		if p.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", p.name, p.val))
		}
	}

	if c.Playfield.BirdSize >= c.Playfield.Height {
		errs = append(errs, fmt.Errorf("playfield.bird_size %v must be smaller than height %v",
			c.Playfield.BirdSize, c.Playfield.Height))
	}
	if c.Physics.MinRotation > c.Physics.MaxRotation {
		errs = append(errs, fmt.Errorf("physics.min_rotation %v exceeds max_rotation %v",
			c.Physics.MinRotation, c.Physics.MaxRotation))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid skybird config: %w", err)
	}
	return nil
}
