package config

import "strings"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset returns the preset for a name, or false if unknown.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(strings.ToLower(name)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// ApplyPreset adjusts ball budget, paddle width and launch speed for a
// difficulty preset. The fixed preset keeps the configured values and
// turns score-based progression off.
func ApplyPreset(s *Settings, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		s.MaxBalls = 5
		s.PaddleWidthPercent = PaddleLarge
		s.BallSpeedModifier = 0
		s.Progression.Enabled = false
	case DifficultyNormal:
		s.MaxBalls = 3
		s.PaddleWidthPercent = PaddleMedium
		s.BallSpeedModifier = 0.3
		s.Progression.Enabled = true
	case DifficultyHard:
		s.MaxBalls = 2
		s.PaddleWidthPercent = PaddleSmall
		s.BallSpeedModifier = 0.7
		s.Progression.Enabled = true
	case DifficultyFixed:
		s.Progression.Enabled = false
	}
}

// Progression calculates the launch speed modifier from the score.
type Progression struct {
	cfg ProgressionConfig
}

// NewProgression creates a progression calculator.
func NewProgression(cfg ProgressionConfig) *Progression {
	return &Progression{cfg: cfg}
}

// IsEnabled returns whether progression is active.
func (p *Progression) IsEnabled() bool {
	return p.cfg.Enabled
}

// Level returns the progress towards full difficulty (0.0 to 1.0).
func (p *Progression) Level(score int) float64 {
	if !p.cfg.Enabled {
		return 0
	}
	maxAt := float64(p.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	return clampF(float64(score)/maxAt, 0, 1)
}

// Modifier returns the launch speed modifier for the score, starting at
// base and growing by SpeedGain at full progress. Never exceeds 1.
func (p *Progression) Modifier(base float64, score int) float64 {
	return clampF(base+p.Level(score)*p.cfg.SpeedGain, 0, 1)
}
