package config

import (
	"errors"
	"testing"
)

func TestKVRoundTrip(t *testing.T) {
	kv := NewMapKV()

	s := DefaultSettings()
	s.Level = "one"
	s.BallSpeedModifier = 0.75
	s.MaxBalls = 4
	s.PaddleWidthPercent = PaddleSmall
	s.TiltControlEnabled = true

	if err := SaveTo(kv, s); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := LoadFrom(kv, DefaultSettings())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got != s {
		t.Errorf("LoadFrom() = %+v, expected %+v", got, s)
	}

	raw, ok, _ := kv.Get(KeyBallSpeed)
	if !ok || raw != "0.75" {
		t.Errorf("stored %s = %q, expected \"0.75\"", KeyBallSpeed, raw)
	}
}

func TestLoadFromKeepsMissingKeys(t *testing.T) {
	kv := NewMapKV()
	if err := kv.Set(KeyBallCount, "9"); err != nil {
		t.Fatal(err)
	}

	base := DefaultSettings()
	base.Level = "two"
	got, err := LoadFrom(kv, base)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.MaxBalls != 9 || got.Level != "two" {
		t.Errorf("LoadFrom() = %+v", got)
	}
}

func TestLoadFromRejectsGarbage(t *testing.T) {
	kv := NewMapKV()
	if err := kv.Set(KeyControlWithTilt, "[1, 2]"); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(kv, DefaultSettings()); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("LoadFrom() error = %v, expected ErrInvalidSettings", err)
	}
}

func TestSetKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		raw     string
		wantErr error
		stored  string
	}{
		{"level", KeyLevel, "four", nil, "four"},
		{"ball count", KeyBallCount, "2", nil, "2"},
		{"paddle preset", KeyPaddleWidth, "Small", nil, "20"},
		{"paddle percent", KeyPaddleWidth, "42.5", nil, "42.5"},
		{"tilt", KeyControlWithTilt, "true", nil, "true"},
		{"unknown key", "Settings.Volume", "3", ErrUnknownKey, ""},
		{"not a number", KeyBallCount, "many", ErrInvalidSettings, ""},
		{"zero balls", KeyBallCount, "0", ErrInvalidSettings, ""},
		{"modifier out of range", KeyBallSpeed, "1.5", ErrInvalidSettings, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := NewMapKV()
			err := SetKey(kv, tc.key, tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("SetKey() error = %v, expected %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetKey() error = %v", err)
			}
			if got, _, _ := kv.Get(tc.key); got != tc.stored {
				t.Errorf("stored %q, expected %q", got, tc.stored)
			}
		})
	}
}

func TestResetKeys(t *testing.T) {
	kv := NewMapKV()
	if err := SaveTo(kv, DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if err := ResetKeys(kv); err != nil {
		t.Fatalf("ResetKeys() error = %v", err)
	}
	for _, key := range Keys() {
		if _, ok, _ := kv.Get(key); ok {
			t.Errorf("key %s still present after reset", key)
		}
	}
}

func TestChangedOnlyReportsNewValues(t *testing.T) {
	kv := NewMapKV()
	if err := SetKey(kv, KeyLevel, "one"); err != nil {
		t.Fatal(err)
	}
	before, err := Stored(kv)
	if err != nil {
		t.Fatalf("Stored() error = %v", err)
	}

	if err := SetKey(kv, KeyBallCount, "5"); err != nil {
		t.Fatal(err)
	}
	after, err := Stored(kv)
	if err != nil {
		t.Fatalf("Stored() error = %v", err)
	}

	diff := Changed(before, after)
	if len(diff) != 1 || diff[KeyBallCount] != "5" {
		t.Fatalf("Changed() = %v, expected only %s", diff, KeyBallCount)
	}

	base := DefaultSettings()
	base.Level = "five"
	got, err := Apply(base, diff)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.MaxBalls != 5 || got.Level != "five" {
		t.Errorf("Apply() = %+v, expected 5 balls on level five", got)
	}
}
