// Package config provides the brick breaker settings: YAML loading with
// embedded defaults, difficulty presets and a key-value overlay for
// settings persisted by the user.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the settings helpers.
var (
	ErrUnknownKey      = errors.New("config: unknown settings key")
	ErrInvalidSettings = errors.New("config: invalid settings")
)

// Paddle width presets as a percentage of the field width.
const (
	PaddleSmall  = 20
	PaddleMedium = 35
	PaddleLarge  = 50
)

// Settings contains every user-tunable parameter of a round.
type Settings struct {
	Level              string            `yaml:"level"`
	PaddleWidthPercent float64           `yaml:"paddle_width_percent"`
	MaxBalls           int               `yaml:"max_balls"`
	BallSpeedModifier  float64           `yaml:"ball_speed_modifier"` // 0.0 = slowest launch, 1.0 = fastest
	TiltControlEnabled bool              `yaml:"tilt_control_enabled"`
	Physics            PhysicsSettings   `yaml:"physics"`
	Progression        ProgressionConfig `yaml:"progression"`
}

// PhysicsSettings overrides the solver limits.
type PhysicsSettings struct {
	MinVelocity float64 `yaml:"min_velocity"`
	MaxVelocity float64 `yaml:"max_velocity"`
	Gravity     float64 `yaml:"gravity"` // downward, points/s²
}

// ProgressionConfig defines how the launch speed grows with the score.
type ProgressionConfig struct {
	Enabled   bool    `yaml:"enabled"`
	MaxAt     int     `yaml:"max_at"`     // Score at which the full gain applies
	SpeedGain float64 `yaml:"speed_gain"` // Added to the speed modifier at MaxAt
}

// Normalize returns a copy of s with every value forced into range.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()

	if s.Level == "" {
		s.Level = def.Level
	}
	if s.PaddleWidthPercent <= 0 {
		s.PaddleWidthPercent = def.PaddleWidthPercent
	}
	s.PaddleWidthPercent = clampF(s.PaddleWidthPercent, 1, 100)
	if s.MaxBalls < 1 {
		s.MaxBalls = 1
	}
	s.BallSpeedModifier = clampF(s.BallSpeedModifier, 0, 1)

	if s.Physics.MaxVelocity <= 0 {
		s.Physics.MaxVelocity = def.Physics.MaxVelocity
	}
	if s.Physics.MinVelocity < 0 {
		s.Physics.MinVelocity = def.Physics.MinVelocity
	}
	if s.Physics.MinVelocity > s.Physics.MaxVelocity {
		s.Physics.MinVelocity = s.Physics.MaxVelocity
	}

	if s.Progression.MaxAt <= 0 {
		s.Progression.MaxAt = def.Progression.MaxAt
	}
	s.Progression.SpeedGain = clampF(s.Progression.SpeedGain, 0, 1)

	return s
}

// Validate reports the first out-of-range value as ErrInvalidSettings.
func (s Settings) Validate() error {
	switch {
	case s.Level == "":
		return fmt.Errorf("%w: empty level", ErrInvalidSettings)
	case s.PaddleWidthPercent <= 0 || s.PaddleWidthPercent > 100:
		return fmt.Errorf("%w: paddle width %v%% not in (0, 100]", ErrInvalidSettings, s.PaddleWidthPercent)
	case s.MaxBalls < 1:
		return fmt.Errorf("%w: max balls %d below 1", ErrInvalidSettings, s.MaxBalls)
	case s.BallSpeedModifier < 0 || s.BallSpeedModifier > 1:
		return fmt.Errorf("%w: ball speed modifier %v not in [0, 1]", ErrInvalidSettings, s.BallSpeedModifier)
	case s.Physics.MaxVelocity <= 0 || s.Physics.MinVelocity < 0 || s.Physics.MinVelocity > s.Physics.MaxVelocity:
		return fmt.Errorf("%w: velocity limits [%v, %v]", ErrInvalidSettings, s.Physics.MinVelocity, s.Physics.MaxVelocity)
	}
	return nil
}

// ParsePaddleWidth accepts a preset name (small, medium, large).
func ParsePaddleWidth(name string) (float64, bool) {
	switch name {
	case "small":
		return PaddleSmall, true
	case "medium":
		return PaddleMedium, true
	case "large":
		return PaddleLarge, true
	}
	return 0, false
}

// PaddleWidthName returns the preset name for a percentage, or "" if it
// matches none.
func PaddleWidthName(pct float64) string {
	switch pct {
	case PaddleSmall:
		return "small"
	case PaddleMedium:
		return "medium"
	case PaddleLarge:
		return "large"
	}
	return ""
}

func clampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
