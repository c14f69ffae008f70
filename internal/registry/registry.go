// Package registry provides the global level catalog. Built-in levels
// register themselves in init(); user levels are loaded from YAML files,
// letting the session resolve level ids without hardcoded layouts.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickfall/internal/games/breakout"
)

// ErrUnknownLevel is returned when a level id is not registered.
var ErrUnknownLevel = errors.New("registry: unknown level")

// ErrDuplicateLevel is returned when a level id is already registered.
var ErrDuplicateLevel = errors.New("registry: level already registered")

// Source values reported in LevelInfo.
const (
	SourceBuiltin = "builtin"
)

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID     string
	Name   string
	Rows   int
	Bricks int
	Source string // "builtin" or the file path
}

// levelFile is the YAML structure of a level file.
//
//	id: pyramid
//	name: Pyramid
//	rows:
//	  - "...#..."
//	  - "..###.."
type levelFile struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

var (
	levels  = make(map[string]breakout.Level)
	sources = make(map[string]string)
	order   []string
	mu      sync.RWMutex
)

// Register adds a level to the catalog.
// Panics if a level with the same ID is already registered.
func Register(level breakout.Level) {
	if err := add(level, SourceBuiltin); err != nil {
		panic(err)
	}
}

func add(level breakout.Level, source string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := levels[level.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateLevel, level.ID)
	}

	levels[level.ID] = level.Clone()
	sources[level.ID] = source
	order = append(order, level.ID)
	return nil
}

// Unregister removes a level. Returns false if it was not registered.
func Unregister(id string) bool {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := levels[id]; !ok {
		return false
	}
	delete(levels, id)
	delete(sources, id)
	for i, o := range order {
		if o == id {
			order = append(order[:i], order[i+1:]...)
			break
		}
	}
	return true
}

// List returns information about all registered levels in registration
// order: built-in levels first, then loaded files.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(order))
	for _, id := range order {
		l := levels[id]
		result = append(result, LevelInfo{
			ID:     id,
			Name:   l.Name,
			Rows:   len(l.Rows),
			Bricks: l.CountBricks(),
			Source: sources[id],
		})
	}
	return result
}

// Get returns a copy of the level registered under id.
func Get(id string) (breakout.Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	l, ok := levels[id]
	if !ok {
		return breakout.Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return l.Clone(), nil
}

// Lookup is Get as a breakout.LevelLookup.
var Lookup breakout.LevelLookup = Get

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := levels[id]
	return ok
}

// ParseFile decodes a YAML level file.
func ParseFile(data []byte) (breakout.Level, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return breakout.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if lf.ID == "" {
		return breakout.Level{}, errors.New("missing id")
	}
	if len(lf.Rows) == 0 {
		return breakout.Level{}, errors.New("no rows")
	}

	name := lf.Name
	if name == "" {
		name = lf.ID
	}
	return breakout.ParseLevel(lf.ID, name, lf.Rows)
}

// LoadFile parses and registers a single level file.
func LoadFile(path string) (breakout.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return breakout.Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	level, err := ParseFile(data)
	if err != nil {
		return breakout.Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if err := add(level, path); err != nil {
		return breakout.Level{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return level, nil
}

// LoadDir registers every *.yaml / *.yml level below dir. Invalid files
// and duplicate ids are skipped and reported in skipped. A missing
// directory is not an error.
func LoadDir(dir string) (loaded []string, skipped []error, err error) {
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		level, err := LoadFile(path)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		loaded = append(loaded, level.ID)
		return nil
	})
	if err != nil {
		return loaded, skipped, fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return loaded, skipped, nil
}

// DefaultDir returns ~/.brickfall/levels, or empty if home is unavailable.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickfall", "levels")
}

func init() {
	for _, level := range breakout.BuiltinLevels() {
		Register(level)
	}
}
