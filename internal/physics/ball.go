package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/brickfall/internal/core"
)

// SpeedState classifies a ball's speed after the last velocity check.
type SpeedState uint8

const (
	SpeedNormal SpeedState = iota
	SpeedSlow              // below MinVelocity, left uncorrected
	SpeedCapped            // was above MaxVelocity and rescaled
)

func (s SpeedState) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedCapped:
		return "capped"
	default:
		return "normal"
	}
}

// Ball is a dynamic circular body owned by a World.
// Handles stay valid after removal; operations on removed balls are no-ops.
type Ball struct {
	serial int
	size   core.Size
	body   *cp.Body
	shape  *cp.Shape

	pending    core.Vec
	hasPending bool

	speed     SpeedState
	launchDeg int
	launched  bool
	leftField bool
	removed   bool
}

// Serial returns the insertion number of the ball within its world.
func (b *Ball) Serial() int {
	return b.serial
}

// Live reports whether the ball is still part of its world.
func (b *Ball) Live() bool {
	return b != nil && !b.removed
}

// Size returns the ball's frame size.
func (b *Ball) Size() core.Size {
	return b.size
}

// Center returns the ball's position.
func (b *Ball) Center() core.Vec {
	return fromCP(b.body.Position())
}

// Frame returns the square frame around the ball.
func (b *Ball) Frame() core.Rect {
	return core.RectAround(b.Center(), b.size)
}

// Velocity returns the ball's current velocity in points per second.
func (b *Ball) Velocity() core.Vec {
	return fromCP(b.body.Velocity())
}

// Speed returns the result of the last velocity check.
func (b *Ball) Speed() SpeedState {
	return b.speed
}

// LastLaunchAngle returns the angle in degrees of the most recent launch
// and whether the ball was ever launched.
func (b *Ball) LastLaunchAngle() (int, bool) {
	return b.launchDeg, b.launched
}

// mass follows a density of 1 per 100x100 points.
func ballMass(s core.Size) float64 {
	m := s.W * s.H / 10000
	if m <= 0 {
		return 1e-4
	}
	return m
}

func toCP(v core.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) core.Vec {
	return core.Vec{X: v.X, Y: v.Y}
}
