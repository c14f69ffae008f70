package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultLevel is the level used when none is configured.
const DefaultLevel = "three"

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Level:              DefaultLevel,
		PaddleWidthPercent: PaddleLarge,
		MaxBalls:           3,
		BallSpeedModifier:  0.05,
		TiltControlEnabled: false,
		Physics: PhysicsSettings{
			MinVelocity: 100,
			MaxVelocity: 1000,
			Gravity:     0,
		},
		Progression: ProgressionConfig{
			Enabled:   false,
			MaxAt:     40,
			SpeedGain: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
