package breakout

import (
	"errors"
	"testing"
)

func TestBuiltinLevels(t *testing.T) {
	tests := []struct {
		id      string
		name    string
		rows    int
		columns int
		bricks  int
	}{
		{"one", "Checkers", 7, 7, 25},
		{"two", "Waist", 5, 7, 25},
		{"three", "Wall", 7, 7, 49},
		{"four", "Lattice", 7, 7, 33},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			level, ok := GetLevelByID(tc.id)
			if !ok {
				t.Fatalf("GetLevelByID(%q) not found", tc.id)
			}
			if level.Name != tc.name {
				t.Errorf("Name = %q, expected %q", level.Name, tc.name)
			}
			if len(level.Rows) != tc.rows {
				t.Errorf("rows = %d, expected %d", len(level.Rows), tc.rows)
			}
			if level.Columns() != tc.columns {
				t.Errorf("Columns() = %d, expected %d", level.Columns(), tc.columns)
			}
			if level.CountBricks() != tc.bricks {
				t.Errorf("CountBricks() = %d, expected %d", level.CountBricks(), tc.bricks)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("x", "X", []string{"#.1", "0 #"})
	if err != nil {
		t.Fatalf("ParseLevel() error = %v", err)
	}

	expected := [][]int{{1, 0, 1}, {0, 0, 1}}
	if !level.Equal(Level{Rows: expected}) {
		t.Errorf("Rows = %v, expected %v", level.Rows, expected)
	}
	if got := level.String(); got != "#.#\n..#" {
		t.Errorf("String() = %q", got)
	}

	if _, err := ParseLevel("bad", "Bad", []string{"#x#"}); err == nil {
		t.Error("ParseLevel() should reject unknown characters")
	}
}

func TestLevelCloneIsDeep(t *testing.T) {
	level, _ := GetLevelByID("three")
	clone := level.Clone()
	clone.Rows[0][0] = 0

	if level.Rows[0][0] != 1 {
		t.Error("modifying the clone changed the original")
	}
	if level.Equal(clone) {
		t.Error("Equal() should compare the grid")
	}
}

func TestBuiltinLookup(t *testing.T) {
	if _, err := BuiltinLookup("three"); err != nil {
		t.Errorf("BuiltinLookup(three) error = %v", err)
	}
	if _, err := BuiltinLookup("nope"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("BuiltinLookup(nope) error = %v, expected ErrUnknownLevel", err)
	}
}
