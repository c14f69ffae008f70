// Package physics simulates balls bouncing inside a set of static
// boundaries. It wraps a Chipmunk space and reports brick contacts and
// balls leaving the visible field as events returned from Step.
package physics

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Velocity limits in points per second.
const (
	MinVelocity = 100
	MaxVelocity = 1000
)

// PushScale converts an impulse magnitude into momentum: a magnitude of 1
// changes the velocity of a 100x100 point ball by 100 points per second.
const PushScale = 100

// MaxSubstep is the longest solver step in seconds.
const MaxSubstep = 1.0 / 240

const (
	ballCollision     cp.CollisionType = 1
	boundaryCollision cp.CollisionType = 2
)

// Config holds the tunable parameters of a World.
type Config struct {
	MinVelocity float64
	MaxVelocity float64
	MaxSubstep  float64
	Gravity     core.Vec
	Seed        int64 // seed for launch angles
}

// DefaultConfig returns the standard breakout physics.
func DefaultConfig() Config {
	return Config{
		MinVelocity: MinVelocity,
		MaxVelocity: MaxVelocity,
		MaxSubstep:  MaxSubstep,
	}
}

type contact struct {
	ball *Ball
	id   BoundaryID
}

// World owns the physics space and every body in it.
// It is not safe for concurrent use.
type World struct {
	cfg   Config
	log   *log.Logger
	space *cp.Space
	rng   *rand.Rand

	boundaries map[BoundaryID][]*cp.Shape
	balls      []*Ball
	serial     int
	contacts   map[contact]int
	reference  core.Rect

	events   []Event
	stepping bool
}

// NewWorld creates an empty world. A nil logger discards output.
func NewWorld(cfg Config, logger *log.Logger) *World {
	if cfg.MaxVelocity <= 0 {
		cfg.MaxVelocity = MaxVelocity
	}
	if cfg.MinVelocity < 0 || cfg.MinVelocity > cfg.MaxVelocity {
		cfg.MinVelocity = math.Min(MinVelocity, cfg.MaxVelocity)
	}
	if cfg.MaxSubstep <= 0 {
		cfg.MaxSubstep = MaxSubstep
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		cfg:        cfg,
		log:        logger,
		space:      cp.NewSpace(),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		boundaries: make(map[BoundaryID][]*cp.Shape),
		contacts:   make(map[contact]int),
	}
	w.space.SetGravity(toCP(cfg.Gravity))

	handler := w.space.NewCollisionHandler(ballCollision, boundaryCollision)
	handler.BeginFunc = w.beginContact
	handler.SeparateFunc = w.endContact

	return w
}

// Config returns the world's parameters.
func (w *World) Config() Config {
	return w.cfg
}

// AddBoundary registers a static boundary made of the edges of path,
// replacing any boundary already registered under id.
func (w *World) AddBoundary(path Path, id BoundaryID) {
	w.RemoveBoundary(id)

	edges := path.Edges()
	shapes := make([]*cp.Shape, 0, len(edges))
	for _, e := range edges {
		seg := cp.NewSegment(w.space.StaticBody, toCP(e[0]), toCP(e[1]), 0)
		seg.SetElasticity(1)
		seg.SetFriction(0)
		seg.SetCollisionType(boundaryCollision)
		seg.UserData = id
		shapes = append(shapes, w.space.AddShape(seg))
	}
	w.boundaries[id] = shapes

	w.log.Debug("boundary added", "id", id, "edges", len(shapes))
}

// RemoveBoundary removes the boundary registered under id.
// Returns false if there was none.
func (w *World) RemoveBoundary(id BoundaryID) bool {
	shapes, ok := w.boundaries[id]
	if !ok {
		return false
	}
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	delete(w.boundaries, id)

	for k := range w.contacts {
		if k.id == id {
			delete(w.contacts, k)
		}
	}

	w.log.Debug("boundary removed", "id", id)
	return true
}

// RemoveAllBoundaries removes every registered boundary.
func (w *World) RemoveAllBoundaries() {
	for id := range w.boundaries {
		w.RemoveBoundary(id)
	}
}

// HasBoundary reports whether a boundary is registered under id.
func (w *World) HasBoundary(id BoundaryID) bool {
	_, ok := w.boundaries[id]
	return ok
}

// BoundaryCount returns the number of registered boundaries.
func (w *World) BoundaryCount() int {
	return len(w.boundaries)
}

// AddBall creates a resting ball centred at center.
func (w *World) AddBall(center core.Vec, size core.Size) *Ball {
	b := &Ball{serial: w.serial, size: size}
	w.serial++

	b.body = w.space.AddBody(cp.NewBody(ballMass(size), cp.INFINITY))
	b.body.SetPosition(toCP(center))

	shape := cp.NewCircle(b.body, size.W/2, cp.Vector{})
	shape.SetElasticity(1)
	shape.SetFriction(0)
	shape.SetCollisionType(ballCollision)
	shape.UserData = b
	b.shape = w.space.AddShape(shape)

	w.balls = append(w.balls, b)

	w.log.Debug("ball added", "serial", b.serial, "x", center.X, "y", center.Y)
	return b
}

// RemoveBall detaches b from the world. No further events are reported
// for it. Returns false for balls that are not live in this world.
func (w *World) RemoveBall(b *Ball) bool {
	idx := w.ballIndex(b)
	if idx < 0 {
		return false
	}

	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.removed = true
	b.hasPending = false
	w.balls = append(w.balls[:idx], w.balls[idx+1:]...)

	for k := range w.contacts {
		if k.ball == b {
			delete(w.contacts, k)
		}
	}

	w.log.Debug("ball removed", "serial", b.serial)
	return true
}

// RemoveAllBalls removes every live ball.
func (w *World) RemoveAllBalls() {
	for len(w.balls) > 0 {
		w.RemoveBall(w.balls[len(w.balls)-1])
	}
}

// Balls returns the live balls in insertion order.
func (w *World) Balls() []*Ball {
	out := make([]*Ball, len(w.balls))
	copy(out, w.balls)
	return out
}

// BallCount returns the number of live balls.
func (w *World) BallCount() int {
	return len(w.balls)
}

// LaunchBall queues a one-shot impulse of the given magnitude at a random
// whole-degree angle in [minDeg, maxDeg]. The impulse is applied at the
// start of the next step. Returns the chosen angle.
func (w *World) LaunchBall(b *Ball, magnitude float64, minDeg, maxDeg int) int {
	if !w.owns(b) {
		return 0
	}
	if maxDeg < minDeg {
		minDeg, maxDeg = maxDeg, minDeg
	}

	deg := minDeg + w.rng.Intn(maxDeg-minDeg+1)
	w.queueImpulse(b, core.FromAngle(core.Radians(float64(deg)), magnitude))
	b.launchDeg = deg
	b.launched = true
	return deg
}

// ApplyImpulse queues an impulse for the next step.
func (w *World) ApplyImpulse(b *Ball, impulse core.Vec) {
	if !w.owns(b) {
		return
	}
	w.queueImpulse(b, impulse)
}

func (w *World) queueImpulse(b *Ball, impulse core.Vec) {
	b.pending = b.pending.Add(impulse)
	b.hasPending = true
}

// StopBall zeroes the ball's velocity and returns what it was.
// A pending impulse is folded into the returned velocity and cancelled.
func (w *World) StopBall(b *Ball) core.Vec {
	if !w.owns(b) {
		return core.Vec{}
	}

	v := b.Velocity()
	if b.hasPending {
		v = v.Add(b.pending.Scale(PushScale / b.body.Mass()))
		b.pending = core.Vec{}
		b.hasPending = false
	}
	b.body.SetVelocityVector(cp.Vector{})
	return v
}

// StartBall adds v to the ball's velocity.
func (w *World) StartBall(b *Ball, v core.Vec) {
	if !w.owns(b) {
		return
	}
	b.body.SetVelocityVector(toCP(b.Velocity().Add(v)))
}

// SyncBall moves the ball to a new centre, keeping its velocity.
func (w *World) SyncBall(b *Ball, center core.Vec) {
	if !w.owns(b) {
		return
	}
	b.body.SetPosition(toCP(center))
}

// SetReferenceBounds sets the visible area used for field-exit detection.
// An empty rectangle disables the check.
func (w *World) SetReferenceBounds(r core.Rect) {
	w.reference = r
}

// ReferenceBounds returns the visible area.
func (w *World) ReferenceBounds() core.Rect {
	return w.reference
}

// Step advances the simulation by dt seconds and returns the events that
// occurred, in order. Calls made while a step is running return nil.
func (w *World) Step(dt float64) []Event {
	if w.stepping || dt <= 0 {
		return nil
	}
	w.stepping = true
	defer func() { w.stepping = false }()

	for _, b := range w.balls {
		b.leftField = false
	}

	n := int(math.Ceil(dt / w.cfg.MaxSubstep))
	if n < 1 {
		n = 1
	}
	h := dt / float64(n)

	for i := 0; i < n; i++ {
		w.applyPending()
		w.space.Step(h)
		w.checkBalls()
	}

	events := w.events
	w.events = nil
	return events
}

func (w *World) applyPending() {
	for _, b := range w.balls {
		if !b.hasPending {
			continue
		}
		b.body.ApplyImpulseAtWorldPoint(toCP(b.pending.Scale(PushScale)), b.body.Position())
		b.pending = core.Vec{}
		b.hasPending = false
	}
}

// checkBalls reports field exits and enforces the velocity limits.
// Slow balls are flagged but not sped up.
func (w *World) checkBalls() {
	for _, b := range w.balls {
		if !b.leftField && !w.reference.IsEmpty() && !b.Frame().Intersects(w.reference) {
			b.leftField = true
			w.events = append(w.events, BallLeftField{Ball: b})
		}

		v := b.Velocity()
		speed := v.Len()
		switch {
		case speed > w.cfg.MaxVelocity:
			b.body.SetVelocityVector(toCP(v.Scale(w.cfg.MaxVelocity / speed)))
			b.speed = SpeedCapped
		case speed < w.cfg.MinVelocity:
			b.speed = SpeedSlow
		default:
			b.speed = SpeedNormal
		}
	}
}

func (w *World) beginContact(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	ball, id, ok := contactParts(arb)
	if !ok || ball.removed {
		return true
	}

	k := contact{ball: ball, id: id}
	w.contacts[k]++
	if w.contacts[k] == 1 {
		if idx, isBrick := id.BrickIndex(); isBrick {
			w.events = append(w.events, BrickHit{Ball: ball, Index: idx})
		}
	}
	return true
}

func (w *World) endContact(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	ball, id, ok := contactParts(arb)
	if !ok {
		return
	}

	k := contact{ball: ball, id: id}
	if w.contacts[k] <= 1 {
		delete(w.contacts, k)
		return
	}
	w.contacts[k]--
}

func contactParts(arb *cp.Arbiter) (*Ball, BoundaryID, bool) {
	a, b := arb.Shapes()
	if ball, ok := a.UserData.(*Ball); ok {
		id, ok := b.UserData.(BoundaryID)
		return ball, id, ok
	}
	if ball, ok := b.UserData.(*Ball); ok {
		id, ok := a.UserData.(BoundaryID)
		return ball, id, ok
	}
	return nil, BoundaryID{}, false
}

func (w *World) owns(b *Ball) bool {
	return w.ballIndex(b) >= 0
}

func (w *World) ballIndex(b *Ball) int {
	if !b.Live() {
		return -1
	}
	for i, o := range w.balls {
		if o == b {
			return i
		}
	}
	return -1
}
