// Package breakout implements the brick breaker: the level manager that
// turns a level grid into physics boundaries, the session controller that
// scores hits and detects the end of a round, and the Game adapter a host
// steps and renders.
package breakout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownLevel is returned when a level id is not found.
var ErrUnknownLevel = errors.New("breakout: unknown level")

// Level represents a brick layout: a grid of cells, 1 placing a brick and
// 0 leaving a gap. Rows may be ragged; the column count used for brick
// width is taken from the first row.
type Level struct {
	ID   string
	Name string
	Rows [][]int
}

// Columns returns the number of cells in the first row.
func (l Level) Columns() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len(l.Rows[0])
}

// CountBricks returns the number of cells holding a brick.
func (l Level) CountBricks() int {
	count := 0
	for _, row := range l.Rows {
		for _, cell := range row {
			if cell != 0 {
				count++
			}
		}
	}
	return count
}

// Equal reports whether both levels have the same grid.
func (l Level) Equal(other Level) bool {
	return slices.EqualFunc(l.Rows, other.Rows, slices.Equal[[]int])
}

// Clone creates a deep copy of the level.
func (l Level) Clone() Level {
	clone := Level{ID: l.ID, Name: l.Name, Rows: make([][]int, len(l.Rows))}
	for i, row := range l.Rows {
		clone.Rows[i] = slices.Clone(row)
	}
	return clone
}

// String renders the grid in the ASCII form accepted by ParseLevel.
func (l Level) String() string {
	var sb strings.Builder
	for i, row := range l.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#', '1' = brick
//	'.', '0', ' ' = empty
//
// Any other character is an error.
func ParseLevel(id, name string, lines []string) (Level, error) {
	level := Level{ID: id, Name: name, Rows: make([][]int, 0, len(lines))}

	for row, line := range lines {
		cells := make([]int, 0, len(line))
		for col, ch := range line {
			switch ch {
			case '#', '1':
				cells = append(cells, 1)
			case '.', '0', ' ':
				cells = append(cells, 0)
			default:
				return Level{}, fmt.Errorf("breakout: level %s: row %d col %d: unexpected %q", id, row, col, ch)
			}
		}
		level.Rows = append(level.Rows, cells)
	}

	return level, nil
}

func mustParse(id, name string, lines ...string) Level {
	level, err := ParseLevel(id, name, lines)
	if err != nil {
		panic(err)
	}
	return level
}

// BuiltinLevels returns all built-in levels.
func BuiltinLevels() []Level {
	return []Level{
		mustParse("one", "Checkers",
			"#.#.#.#",
			".#.#.#.",
			"#.#.#.#",
			".#.#.#.",
			"#.#.#.#",
			".#.#.#.",
			"#.#.#.#",
		),
		mustParse("two", "Waist",
			"#######",
			"####",
			"###",
			"####",
			"#######",
		),
		mustParse("three", "Wall",
			"#######",
			"#######",
			"#######",
			"#######",
			"#######",
			"#######",
			"#######",
		),
		mustParse("four", "Lattice",
			"##.##.#",
			"#.##.##",
			".##.##.",
			"##.##.#",
			"#.##.##",
			".##.##.",
			"##.##.#",
		),
	}
}

// DefaultLevelID is the level loaded when the configured one is unknown.
const DefaultLevelID = "three"

// GetLevelByID returns a built-in level by its ID.
func GetLevelByID(id string) (Level, bool) {
	for _, level := range BuiltinLevels() {
		if level.ID == id {
			return level, true
		}
	}
	return Level{}, false
}

// LevelLookup resolves a level id.
type LevelLookup func(id string) (Level, error)

// BuiltinLookup resolves built-in level ids.
func BuiltinLookup(id string) (Level, error) {
	level, ok := GetLevelByID(id)
	if !ok {
		return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return level, nil
}
