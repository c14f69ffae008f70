package breakout

import (
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/physics"
)

// Layout constants in play-field points.
const (
	BallSize           = 20
	PaddleHeight       = 15
	PaddleBottomMargin = 10
	DefaultPaddleWidth = 33 // percent of the field width
	BrickHeight        = 20
	BrickSpacing       = 5
	BricksTopSpacing   = 20
	BrickCornerRadius  = 2
)

// Launch and push parameters. Angles are in degrees, measured in screen
// coordinates (y grows downward), so 210°..330° points up at the bricks.
const (
	LaunchAngleMin = 210
	LaunchAngleMax = 330
	MinLaunchSpeed = 0.2
	MaxLaunchSpeed = 0.5
	PushMagnitude  = 0.05
	PushAngleMin   = 0
	PushAngleMax   = 360
)

// Brick is a destructible brick. Its boundary is registered in the world
// under physics.BrickBoundary(Index).
type Brick struct {
	Index int
	Row   int
	Col   int
	Frame core.Rect
	Hue   float64 // row / rows, in [0, 1)
}

// Field is the level manager. It owns the logical bricks, the level and
// the paddle, and keeps the physics boundaries in step with them.
type Field struct {
	world *physics.World
	log   *log.Logger

	bounds      core.Rect
	level       Level
	bricks      map[int]Brick
	paddle      core.Rect
	paddlePct   float64
	modifier    float64
	launchSpeed float64
}

// NewField creates an empty field driving world. A nil logger discards output.
func NewField(world *physics.World, logger *log.Logger) *Field {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	f := &Field{
		world:     world,
		log:       logger,
		bricks:    make(map[int]Brick),
		paddlePct: DefaultPaddleWidth,
	}
	f.SetLaunchSpeedModifier(0)
	return f
}

// World returns the physics world the field drives.
func (f *Field) World() *physics.World {
	return f.world
}

// Bounds returns the visible play-field.
func (f *Field) Bounds() core.Rect {
	return f.bounds
}

// Level returns the loaded level.
func (f *Field) Level() Level {
	return f.level
}

// Paddle returns the paddle frame.
func (f *Field) Paddle() core.Rect {
	return f.paddle
}

// PaddleWidthPercentage returns the paddle width as a percentage of the field.
func (f *Field) PaddleWidthPercentage() float64 {
	return f.paddlePct
}

// LaunchSpeed returns the impulse magnitude given to new balls.
func (f *Field) LaunchSpeed() float64 {
	return f.launchSpeed
}

// Balls returns the live balls in insertion order.
func (f *Field) Balls() []*physics.Ball {
	return f.world.Balls()
}

// BallCount returns the number of live balls.
func (f *Field) BallCount() int {
	return f.world.BallCount()
}

// Step advances the physics world and returns its contact events.
func (f *Field) Step(dt float64) []physics.Event {
	return f.world.Step(dt)
}

// BrickCount returns the number of live bricks.
func (f *Field) BrickCount() int {
	return len(f.bricks)
}

// Brick returns the live brick with the given index.
func (f *Field) Brick(index int) (Brick, bool) {
	b, ok := f.bricks[index]
	return b, ok
}

// BrickIndices returns the indices of the live bricks in ascending order.
func (f *Field) BrickIndices() []int {
	indices := make([]int, 0, len(f.bricks))
	for idx := range f.bricks {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// Bricks returns the live bricks ordered by index.
func (f *Field) Bricks() []Brick {
	out := make([]Brick, 0, len(f.bricks))
	for _, idx := range f.BrickIndices() {
		out = append(out, f.bricks[idx])
	}
	return out
}

// SetLevel loads a level. An equal level is a no-op; otherwise the field
// is reset. Returns whether a reset happened.
func (f *Field) SetLevel(level Level) bool {
	if f.level.Equal(level) {
		return false
	}
	f.level = level.Clone()
	f.Reset()
	return true
}

// Reset removes every brick and ball, rebuilds the bricks from the level
// and centres the paddle.
func (f *Field) Reset() {
	f.removeBricks()
	f.world.RemoveAllBalls()
	f.createBricks()
	f.resetPaddleInCenter()
}

// ResetLayout adapts the field to new visible bounds. Surviving bricks
// are re-laid out, the paddle keeps its horizontal position when it still
// fits, and balls outside the new bounds are moved to its centre.
func (f *Field) ResetLayout(bounds core.Rect) {
	f.bounds = bounds

	wall := bounds
	wall.H *= 2
	f.world.AddBoundary(physics.RectPath(wall), physics.WallBoundary)
	f.world.SetReferenceBounds(bounds)

	f.resetPaddlePosition()
	f.ResetBricks()

	for _, b := range f.world.Balls() {
		if !bounds.ContainsRect(b.Frame()) {
			f.world.SyncBall(b, bounds.Center())
		}
	}

	f.log.Debug("layout reset", "w", bounds.W, "h", bounds.H, "bricks", len(f.bricks))
}

// ResetBricks regenerates the bricks from the level for the current
// bounds, dropping every brick that was already destroyed.
func (f *Field) ResetBricks() {
	live := make(map[int]bool, len(f.bricks))
	for idx := range f.bricks {
		live[idx] = true
	}

	f.removeBricks()
	f.createBricks()

	for _, idx := range f.BrickIndices() {
		if !live[idx] {
			f.RemoveBrick(idx)
		}
	}
}

func (f *Field) createBricks() {
	rows := f.level.Rows
	columns := f.level.Columns()
	if len(rows) == 0 || columns == 0 {
		return
	}

	width := (f.bounds.W - 2*BrickSpacing) / float64(columns)
	for row, cells := range rows {
		for col, cell := range cells {
			if cell == 0 {
				continue
			}

			x := f.bounds.X + BrickSpacing + float64(col)*width
			y := f.bounds.Y + BricksTopSpacing + float64(row)*BrickHeight + float64(row)*BrickSpacing*2
			frame := core.NewRect(x, y, width, BrickHeight).Inset(BrickSpacing, 0)

			brick := Brick{
				Index: len(f.bricks),
				Row:   row,
				Col:   col,
				Frame: frame,
				Hue:   float64(row) / float64(len(rows)),
			}
			f.bricks[brick.Index] = brick
			f.world.AddBoundary(physics.RoundedRectPath(frame, BrickCornerRadius), physics.BrickBoundary(brick.Index))
		}
	}
}

func (f *Field) removeBricks() {
	for _, idx := range f.BrickIndices() {
		f.world.RemoveBoundary(physics.BrickBoundary(idx))
	}
	clear(f.bricks)
}

// RemoveBrick removes a live brick and its boundary.
// Returns false if the brick was already gone.
func (f *Field) RemoveBrick(index int) bool {
	if _, ok := f.bricks[index]; !ok {
		return false
	}
	delete(f.bricks, index)
	f.world.RemoveBoundary(physics.BrickBoundary(index))
	return true
}

func (f *Field) paddleSize() core.Size {
	return core.Size{W: f.bounds.W / 100 * f.paddlePct, H: PaddleHeight}
}

func (f *Field) paddleY() float64 {
	return f.bounds.MaxY() - PaddleHeight - PaddleBottomMargin
}

// resetPaddlePosition resizes the paddle for the current bounds and puts
// it back on its row, keeping x when it still fits.
func (f *Field) resetPaddlePosition() {
	candidate := core.RectAround(f.paddle.Center(), f.paddleSize())

	var center core.Vec
	if f.bounds.ContainsRect(candidate) {
		center = core.V(candidate.MidX(), f.paddleY())
	} else {
		center = core.V(f.bounds.MidX(), f.paddleY())
	}

	f.setPaddle(core.RectAround(center, f.paddleSize()))
}

func (f *Field) resetPaddleInCenter() {
	f.paddle = core.Rect{}
	f.resetPaddlePosition()
}

func (f *Field) setPaddle(frame core.Rect) {
	f.paddle = frame
	f.world.AddBoundary(physics.OvalPath(frame), physics.PaddleBoundary)
}

// TranslatePaddle moves the paddle horizontally by dx, clamped to the
// field. The move is rejected when the paddle would swallow a ball.
func (f *Field) TranslatePaddle(dx float64) bool {
	x := math.Max(math.Min(f.paddle.X+dx, f.bounds.MaxX()-f.paddle.W), f.bounds.MinX())
	candidate := f.paddle
	candidate.X = x

	for _, b := range f.world.Balls() {
		if candidate.ContainsRect(b.Frame()) {
			return false
		}
	}

	f.setPaddle(candidate)
	return true
}

// SetPaddleWidthPercentage resizes the paddle and centres it.
// Unchanged values are a no-op.
func (f *Field) SetPaddleWidthPercentage(pct float64) {
	pct = core.ClampF(pct, 1, 100)
	if pct == f.paddlePct {
		return
	}
	f.paddlePct = pct
	f.resetPaddleInCenter()
}

// SetLaunchSpeedModifier sets the launch speed between MinLaunchSpeed (0)
// and MaxLaunchSpeed (1).
func (f *Field) SetLaunchSpeedModifier(m float64) {
	f.modifier = core.ClampF(m, 0, 1)
	f.launchSpeed = MinLaunchSpeed + (MaxLaunchSpeed-MinLaunchSpeed)*f.modifier
}

// AddBall spawns a ball above the paddle centre and launches it upward.
func (f *Field) AddBall() *physics.Ball {
	center := core.V(f.paddle.MidX(), f.paddle.MinY()-BallSize)
	b := f.world.AddBall(center, core.Size{W: BallSize, H: BallSize})
	f.world.LaunchBall(b, f.launchSpeed, LaunchAngleMin, LaunchAngleMax)
	return b
}

// PushBalls gives every live ball a small push in a random direction.
func (f *Field) PushBalls() {
	for _, b := range f.world.Balls() {
		f.world.LaunchBall(b, PushMagnitude, PushAngleMin, PushAngleMax)
	}
}

// RemoveBall removes a ball. Returns false for stale handles.
func (f *Field) RemoveBall(b *physics.Ball) bool {
	return f.world.RemoveBall(b)
}

// RemoveAllBalls removes every live ball.
func (f *Field) RemoveAllBalls() {
	f.world.RemoveAllBalls()
}

// StopBalls zeroes every ball's velocity and returns the previous
// velocities in ball order.
func (f *Field) StopBalls() []core.Vec {
	balls := f.world.Balls()
	velocities := make([]core.Vec, len(balls))
	for i, b := range balls {
		velocities[i] = f.world.StopBall(b)
	}
	return velocities
}

// StartBalls restores velocities captured by StopBalls, matched by ball
// order. Extra balls or extra velocities are ignored.
func (f *Field) StartBalls(velocities []core.Vec) {
	for i, b := range f.world.Balls() {
		if i >= len(velocities) {
			break
		}
		f.world.StartBall(b, velocities[i])
	}
}
