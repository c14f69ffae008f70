package physics

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickfall/internal/core"
)

type boundaryKind uint8

const (
	kindNamed boundaryKind = iota
	kindBrick
)

// BoundaryID identifies a static collision boundary.
// Brick boundaries carry the brick index; other boundaries carry a name.
// The zero value is the unnamed boundary.
type BoundaryID struct {
	kind  boundaryKind
	name  string
	index int
}

// BrickBoundary returns the id for the brick with the given index.
func BrickBoundary(index int) BoundaryID {
	return BoundaryID{kind: kindBrick, index: index}
}

// NamedBoundary returns the id for a non-brick boundary.
func NamedBoundary(name string) BoundaryID {
	return BoundaryID{kind: kindNamed, name: name}
}

// Fixed boundaries of the play-field.
var (
	PaddleBoundary = NamedBoundary("paddle")
	WallBoundary   = NamedBoundary("wall")
)

// BrickIndex returns the brick index if id names a brick boundary.
func (id BoundaryID) BrickIndex() (int, bool) {
	if id.kind != kindBrick {
		return 0, false
	}
	return id.index, true
}

func (id BoundaryID) String() string {
	if id.kind == kindBrick {
		return fmt.Sprintf("brick#%d", id.index)
	}
	return id.name
}

// Path is a closed polygon. The last point connects back to the first.
type Path []core.Vec

// Edges returns the segments of the closed polygon as point pairs.
// Degenerate (zero-length) edges are skipped.
func (p Path) Edges() [][2]core.Vec {
	if len(p) < 2 {
		return nil
	}
	edges := make([][2]core.Vec, 0, len(p))
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		if a == b {
			continue
		}
		edges = append(edges, [2]core.Vec{a, b})
	}
	return edges
}

// Bounds returns the axis-aligned bounding box of the path.
func (p Path) Bounds() core.Rect {
	if len(p) == 0 {
		return core.Rect{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, v := range p[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return core.NewRect(minX, minY, maxX-minX, maxY-minY)
}

// RectPath returns the outline of r.
func RectPath(r core.Rect) Path {
	return Path{
		core.V(r.MinX(), r.MinY()),
		core.V(r.MaxX(), r.MinY()),
		core.V(r.MaxX(), r.MaxY()),
		core.V(r.MinX(), r.MaxY()),
	}
}

// cornerSegments is the number of edges approximating one rounded corner.
const cornerSegments = 4

// RoundedRectPath returns the outline of r with corners rounded by radius.
// The radius is limited to half the shorter side.
func RoundedRectPath(r core.Rect, radius float64) Path {
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	if radius <= 0 {
		return RectPath(r)
	}

	corners := []struct {
		center core.Vec
		start  float64 // degrees
	}{
		{core.V(r.MaxX()-radius, r.MinY()+radius), 270},
		{core.V(r.MaxX()-radius, r.MaxY()-radius), 0},
		{core.V(r.MinX()+radius, r.MaxY()-radius), 90},
		{core.V(r.MinX()+radius, r.MinY()+radius), 180},
	}

	path := make(Path, 0, len(corners)*(cornerSegments+1))
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			deg := c.start + 90*float64(i)/cornerSegments
			path = append(path, c.center.Add(core.FromAngle(core.Radians(deg), radius)))
		}
	}
	return path
}

// OvalSegments is the number of edges approximating an oval boundary.
const OvalSegments = 24

// OvalPath returns a polygon inscribed in the ellipse bounded by r.
func OvalPath(r core.Rect) Path {
	c := r.Center()
	rx, ry := r.W/2, r.H/2

	path := make(Path, 0, OvalSegments)
	for i := 0; i < OvalSegments; i++ {
		a := 2 * math.Pi * float64(i) / OvalSegments
		path = append(path, core.V(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a)))
	}
	return path
}
