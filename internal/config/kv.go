package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Keys of the persisted user settings.
const (
	KeyLevel           = "Settings.Level"
	KeyBallSpeed       = "Settings.BallSpeedModifier"
	KeyBallCount       = "Settings.BallCount"
	KeyPaddleWidth     = "Settings.PaddleWidth"
	KeyControlWithTilt = "Settings.ControlWithTilt"
)

// KV is a string key-value store holding user settings.
// Values are YAML scalars.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Keys returns every persisted settings key, sorted.
func Keys() []string {
	keys := []string{KeyLevel, KeyBallSpeed, KeyBallCount, KeyPaddleWidth, KeyControlWithTilt}
	sort.Strings(keys)
	return keys
}

// LoadFrom overlays the values stored in kv on top of base.
// Missing keys keep the base value. The result is normalized.
func LoadFrom(kv KV, base Settings) (Settings, error) {
	values, err := Stored(kv)
	if err != nil {
		return base, err
	}
	return Apply(base, values)
}

// Stored returns the raw values present in kv by key.
func Stored(kv KV) (map[string]string, error) {
	values := make(map[string]string)
	for _, key := range Keys() {
		raw, ok, err := kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", key, err)
		}
		if ok {
			values[key] = raw
		}
	}
	return values, nil
}

// Changed returns the entries of next that are new or differ from prev.
func Changed(prev, next map[string]string) map[string]string {
	diff := make(map[string]string)
	for key, raw := range next {
		if old, ok := prev[key]; !ok || old != raw {
			diff[key] = raw
		}
	}
	return diff
}

// Apply overlays raw values on top of base. The result is normalized.
func Apply(base Settings, values map[string]string) (Settings, error) {
	s := base
	for _, key := range Keys() {
		raw, ok := values[key]
		if !ok {
			continue
		}
		if err := assign(&s, key, raw); err != nil {
			return base, err
		}
	}
	return s.Normalize(), nil
}

// SaveTo writes every persisted field of s into kv.
func SaveTo(kv KV, s Settings) error {
	for _, key := range Keys() {
		raw, err := Lookup(s, key)
		if err != nil {
			return err
		}
		if err := kv.Set(key, raw); err != nil {
			return fmt.Errorf("config: write %s: %w", key, err)
		}
	}
	return nil
}

// SetKey parses raw for key, validates it and stores the encoded value.
// Paddle width also accepts the preset names small, medium and large.
func SetKey(kv KV, key, raw string) error {
	s := DefaultSettings()
	if key == KeyPaddleWidth {
		if pct, ok := ParsePaddleWidth(strings.ToLower(raw)); ok {
			raw = strconv.FormatFloat(pct, 'f', -1, 64)
		}
	}
	if err := assign(&s, key, raw); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	encoded, err := Lookup(s, key)
	if err != nil {
		return err
	}
	if err := kv.Set(key, encoded); err != nil {
		return fmt.Errorf("config: write %s: %w", key, err)
	}
	return nil
}

// ResetKeys deletes every persisted settings key.
func ResetKeys(kv KV) error {
	for _, key := range Keys() {
		if err := kv.Delete(key); err != nil {
			return fmt.Errorf("config: delete %s: %w", key, err)
		}
	}
	return nil
}

// Lookup returns the encoded value of key in s.
func Lookup(s Settings, key string) (string, error) {
	var v any
	switch key {
	case KeyLevel:
		v = s.Level
	case KeyBallSpeed:
		v = s.BallSpeedModifier
	case KeyBallCount:
		v = s.MaxBalls
	case KeyPaddleWidth:
		v = s.PaddleWidthPercent
	case KeyControlWithTilt:
		v = s.TiltControlEnabled
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return encode(v)
}

func assign(s *Settings, key, raw string) error {
	var target any
	switch key {
	case KeyLevel:
		target = &s.Level
	case KeyBallSpeed:
		target = &s.BallSpeedModifier
	case KeyBallCount:
		target = &s.MaxBalls
	case KeyPaddleWidth:
		target = &s.PaddleWidthPercent
	case KeyControlWithTilt:
		target = &s.TiltControlEnabled
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := yaml.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("%w: %s = %q: %v", ErrInvalidSettings, key, raw, err)
	}
	return nil
}

func encode(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("config: encode %v: %w", v, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// MapKV is an in-memory KV.
type MapKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMapKV creates an empty in-memory store.
func NewMapKV() *MapKV {
	return &MapKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MapKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MapKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete implements KV.
func (m *MapKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
