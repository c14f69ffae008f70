package breakout

import "fmt"

// Outcome is a game event reported to the host after a tick.
type Outcome interface {
	outcome()
}

// BrickDestroyed is reported when a live brick is hit and removed.
type BrickDestroyed struct {
	Index int
}

func (BrickDestroyed) outcome() {}

func (o BrickDestroyed) String() string {
	return fmt.Sprintf("brick %d destroyed", o.Index)
}

// BallLost is reported when a ball leaves the field.
// Remaining is the number of launches still available.
type BallLost struct {
	Remaining int
}

func (BallLost) outcome() {}

func (o BallLost) String() string {
	return fmt.Sprintf("ball lost, %d left", o.Remaining)
}

// RoundWon is reported once when the last brick is destroyed.
type RoundWon struct{}

func (RoundWon) outcome() {}

func (RoundWon) String() string { return "round won" }

// RoundLost is reported once when the last ball is lost with no launches left.
type RoundLost struct{}

func (RoundLost) outcome() {}

func (RoundLost) String() string { return "round lost" }

// ScoreChanged carries the new score.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) outcome() {}

func (o ScoreChanged) String() string {
	return fmt.Sprintf("score %d", o.Score)
}
