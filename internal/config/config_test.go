package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) error = %v", err)
	}
	if cfg != DefaultSettings() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSettings())
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("max_balls: 5\nphysics:\n  max_velocity: 800\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.MaxBalls != 5 {
		t.Errorf("MaxBalls = %d, expected 5", cfg.MaxBalls)
	}
	if cfg.Level != DefaultLevel {
		t.Errorf("Level = %q, expected default %q", cfg.Level, DefaultLevel)
	}
	if cfg.Physics.MaxVelocity != 800 || cfg.Physics.MinVelocity != 100 {
		t.Errorf("Physics = %+v", cfg.Physics)
	}

	if _, err := Parse([]byte("max_balls: [")); err == nil {
		t.Error("Parse() of broken YAML should fail")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    Settings
		check func(Settings) bool
	}{
		{"empty level", Settings{}, func(s Settings) bool { return s.Level == DefaultLevel }},
		{"zero paddle", Settings{}, func(s Settings) bool { return s.PaddleWidthPercent == PaddleLarge }},
		{"huge paddle", Settings{PaddleWidthPercent: 250}, func(s Settings) bool { return s.PaddleWidthPercent == 100 }},
		{"no balls", Settings{MaxBalls: -2}, func(s Settings) bool { return s.MaxBalls == 1 }},
		{"modifier above one", Settings{BallSpeedModifier: 3}, func(s Settings) bool { return s.BallSpeedModifier == 1 }},
		{"modifier below zero", Settings{BallSpeedModifier: -1}, func(s Settings) bool { return s.BallSpeedModifier == 0 }},
		{
			"min above max",
			Settings{Physics: PhysicsSettings{MinVelocity: 900, MaxVelocity: 500}},
			func(s Settings) bool { return s.Physics.MinVelocity == 500 && s.Physics.MaxVelocity == 500 },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if !tc.check(got) {
				t.Errorf("Normalize() = %+v", got)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("normalized settings fail validation: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	bad := DefaultSettings()
	bad.MaxBalls = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Validate() = %v, expected ErrInvalidSettings", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "level: one\nmax_balls: 7\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Level != "one" || cfg.MaxBalls != 7 {
		t.Errorf("Load() = %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultSettings() {
		t.Errorf("Load() without files = %+v, expected defaults", cfg)
	}

	// Local configs directory
	writeFile(t, filepath.Join(work, "configs", FileName), "level: two\n")
	cfg, _ = Load("")
	if cfg.Level != "two" {
		t.Errorf("Level = %q, expected local config \"two\"", cfg.Level)
	}

	// User directory wins over the local one
	writeFile(t, filepath.Join(home, ".brickfall", "configs", FileName), "level: four\n")
	cfg, _ = Load("")
	if cfg.Level != "four" {
		t.Errorf("Level = %q, expected user config \"four\"", cfg.Level)
	}

	// An unparsable user file falls through to the local one
	writeFile(t, filepath.Join(home, ".brickfall", "configs", FileName), "level: [\n")
	cfg, _ = Load("")
	if cfg.Level != "two" {
		t.Errorf("Level = %q, expected fallback to local config", cfg.Level)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		balls       int
		paddle      float64
		progression bool
	}{
		{DifficultyEasy, 5, PaddleLarge, false},
		{DifficultyNormal, 3, PaddleMedium, true},
		{DifficultyHard, 2, PaddleSmall, true},
		{DifficultyFixed, 3, PaddleLarge, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			s := DefaultSettings()
			s.Progression.Enabled = true
			ApplyPreset(&s, tc.preset)

			if s.MaxBalls != tc.balls || s.PaddleWidthPercent != tc.paddle || s.Progression.Enabled != tc.progression {
				t.Errorf("ApplyPreset(%s) = %+v", tc.preset, s)
			}
		})
	}

	if p, ok := ParsePreset("HARD"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(HARD) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestProgression(t *testing.T) {
	p := NewProgression(ProgressionConfig{Enabled: true, MaxAt: 10, SpeedGain: 0.5})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.1},
		{5, 0.35},
		{10, 0.6},
		{100, 0.6},
	}
	for _, tc := range tests {
		got := p.Modifier(0.1, tc.score)
		if got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Modifier(0.1, %d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}

	if got := NewProgression(ProgressionConfig{Enabled: true, MaxAt: 1, SpeedGain: 1}).Modifier(0.8, 5); got != 1 {
		t.Errorf("Modifier should cap at 1, got %v", got)
	}

	off := NewProgression(ProgressionConfig{MaxAt: 10, SpeedGain: 0.5})
	if off.IsEnabled() || off.Modifier(0.1, 10) != 0.1 {
		t.Error("disabled progression should keep the base modifier")
	}
}
