package physics

// Event is a collision or field event produced during World.Step.
type Event interface {
	physicsEvent()
}

// BrickHit is emitted when a ball begins contact with a brick boundary.
type BrickHit struct {
	Ball  *Ball
	Index int
}

func (BrickHit) physicsEvent() {}

// BallLeftField is emitted when a ball's frame no longer intersects the
// reference bounds. Emitted at most once per ball per step.
type BallLeftField struct {
	Ball *Ball
}

func (BallLeftField) physicsEvent() {}
