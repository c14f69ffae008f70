package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickfall/internal/core"
)

func TestBoundaryID(t *testing.T) {
	tests := []struct {
		name      string
		id        BoundaryID
		wantIndex int
		wantBrick bool
	}{
		{"brick zero", BrickBoundary(0), 0, true},
		{"brick index", BrickBoundary(12), 12, true},
		{"paddle", PaddleBoundary, 0, false},
		{"wall", WallBoundary, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := tc.id.BrickIndex()
			if ok != tc.wantBrick || idx != tc.wantIndex {
				t.Errorf("BrickIndex() = %d, %v, expected %d, %v", idx, ok, tc.wantIndex, tc.wantBrick)
			}
		})
	}

	if BrickBoundary(3) != BrickBoundary(3) {
		t.Error("equal brick ids should compare equal")
	}
	if NamedBoundary("brick#3") == BrickBoundary(3) {
		t.Error("named and brick ids should never collide")
	}
	if BrickBoundary(3).String() != "brick#3" {
		t.Errorf("String() = %q", BrickBoundary(3).String())
	}
}

func TestPathShapes(t *testing.T) {
	r := core.NewRect(10, 20, 100, 30)

	tests := []struct {
		name  string
		path  Path
		edges int
	}{
		{"rect", RectPath(r), 4},
		{"rounded", RoundedRectPath(r, 2), 4 * (cornerSegments + 1)},
		{"oval", OvalPath(r), OvalSegments},
		{"rounded zero radius", RoundedRectPath(r, 0), 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(tc.path.Edges()); got != tc.edges {
				t.Errorf("Edges() = %d, expected %d", got, tc.edges)
			}

			b := tc.path.Bounds()
			if math.Abs(b.X-r.X) > 1e-9 || math.Abs(b.Y-r.Y) > 1e-9 ||
				math.Abs(b.W-r.W) > 1e-9 || math.Abs(b.H-r.H) > 1e-9 {
				t.Errorf("Bounds() = %+v, expected %+v", b, r)
			}
		})
	}
}

func TestDegeneratePath(t *testing.T) {
	if edges := (Path{}).Edges(); edges != nil {
		t.Errorf("empty path edges = %v", edges)
	}
	if edges := (Path{core.V(1, 1)}).Edges(); edges != nil {
		t.Errorf("single point edges = %v", edges)
	}
}
