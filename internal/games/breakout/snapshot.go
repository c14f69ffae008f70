package breakout

import (
	"math"
	"slices"
)

// Snapshot captures the observable game state for determinism checks
// and debugging. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	State     string
	Paused    bool
	Score     int
	BallsUsed int
	Level     string

	// Paddle frame: X, Y, W, H
	Paddle [4]float64

	// Live brick indices in ascending order
	Bricks []int

	// Each ball is 4 floats: X, Y, VX, VY
	BallCount int
	BallData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	if s == nil {
		return Snapshot{}
	}
	f := s.Field()
	p := f.Paddle()

	balls := f.Balls()
	ballData := make([]float64, 0, len(balls)*4)
	for _, b := range balls {
		c, v := b.Center(), b.Velocity()
		ballData = append(ballData, c.X, c.Y, v.X, v.Y)
	}

	return Snapshot{
		Tick:      g.ticks,
		State:     s.State().String(),
		Paused:    s.Paused(),
		Score:     s.Score(),
		BallsUsed: s.BallsUsed(),
		Level:     f.Level().ID,
		Paddle:    [4]float64{p.X, p.Y, p.W, p.H},
		Bricks:    f.BrickIndices(),
		BallCount: len(balls),
		BallData:  ballData,
	}
}

// Equal reports whether two snapshots describe the same state.
func (snap *Snapshot) Equal(other *Snapshot) bool {
	return snap.Hash() == other.Hash() &&
		slices.Equal(snap.Bricks, other.Bricks) &&
		slices.Equal(snap.BallData, other.BallData)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, r := range snap.State + snap.Level {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	if snap.Paused {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallsUsed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount) //#nosec G115 -- hash computation

	for _, v := range snap.Paddle {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.Bricks {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
