package config

import (
	_ "embed"
)

//go:embed defaults/skybird.yaml
var defaultSkybirdYAML []byte

// DefaultSkybirdConfig returns the hardcoded tuning. It mirrors the
// embedded defaults/skybird.yaml and is used when that file cannot be parsed.
func DefaultSkybirdConfig() SkybirdConfig {
	return SkybirdConfig{
		Physics: PhysicsConfig{
			Gravity:        60,
			FlapStrength:   -60,
			MaxFallSpeed:   60,
			RotationFactor: 2.5,
			MinRotation:    -30,
			MaxRotation:    90,
			ScrollSpeed:    2,
		},
		Playfield: PlayfieldConfig{
			Width:           400,
			Height:          600,
			BirdSize:        40,
			BirdXRatio:      0.2,
			CollectibleSize: 32,
		},
		Spawn: SpawnConfig{
			ObstacleInterval:    2.5,
			CoinInterval:        1.8,
			PowerUpInterval:     8,
			ObstacleBandTop:     0.3,
			ObstacleBandHeight:  0.4,
			CollectibleBandTop:  0.2,
			CollectibleBandSize: 0.6,
			CollectibleJitter:   100,
			BobAmplitude:        30,
		},
		Loop: LoopConfig{
			TickMillis:    16,
			MaxDelta:      0.1,
			TrailInterval: 0.05,
			TrailLength:   9,
		},
		Progression: ProgressionConfig{
			XPPerScore: 0.1,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSkybirdYAML
}
