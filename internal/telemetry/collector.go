// Package telemetry records per-round statistics and writes them as CSV
// for offline tuning of launch speeds and velocity limits.
package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/brickfall/internal/games/breakout"
)

// RoundRecord is one finished round.
type RoundRecord struct {
	StartedAt time.Time `csv:"-"`
	Started   string    `csv:"started"`
	Level     string    `csv:"level"`
	Result    string    `csv:"result"`
	Score     int       `csv:"score"`
	BallsUsed int       `csv:"balls_used"`
	BallsLost int       `csv:"balls_lost"`
	Bricks    int       `csv:"bricks_destroyed"`
	Ticks     int       `csv:"ticks"`
	Duration  float64   `csv:"duration_sec"`

	// Ball speed distribution in points/s, sampled every tick
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Fraction of samples below the minimum / clamped at the maximum
	SlowRatio   float64 `csv:"slow_ratio"`
	CappedRatio float64 `csv:"capped_ratio"`
}

// speedEpsilon absorbs rounding in rescaled velocities.
const speedEpsilon = 1e-6

// Collector accumulates samples for the running round.
type Collector struct {
	level     string
	started   time.Time
	tickDur   float64
	minSpeed  float64
	maxSpeed  float64
	ticks     int
	bricks    int
	ballsLost int
	speeds    []float64
	slow      int
	capped    int
}

// NewCollector starts collecting a round. Speeds at or below minSpeed
// count as slow, speeds at or above maxSpeed as capped.
func NewCollector(level string, tickSeconds, minSpeed, maxSpeed float64) *Collector {
	return &Collector{
		level:    level,
		started:  time.Now(),
		tickDur:  tickSeconds,
		minSpeed: minSpeed,
		maxSpeed: maxSpeed,
	}
}

// Observe records one tick: the live ball speeds and the tick's outcomes.
func (c *Collector) Observe(speeds []float64, outcomes []breakout.Outcome) {
	c.ticks++

	for _, s := range speeds {
		c.speeds = append(c.speeds, s)
		switch {
		case s < c.minSpeed:
			c.slow++
		case s >= c.maxSpeed-speedEpsilon:
			c.capped++
		}
	}

	for _, o := range outcomes {
		switch o.(type) {
		case breakout.BrickDestroyed:
			c.bricks++
		case breakout.BallLost:
			c.ballsLost++
		}
	}
}

// Ticks returns the number of observed ticks.
func (c *Collector) Ticks() int {
	return c.ticks
}

// Finish summarizes the round.
func (c *Collector) Finish(result string, score, ballsUsed int) RoundRecord {
	rec := RoundRecord{
		StartedAt: c.started,
		Started:   c.started.UTC().Format(time.RFC3339),
		Level:     c.level,
		Result:    result,
		Score:     score,
		BallsUsed: ballsUsed,
		BallsLost: c.ballsLost,
		Bricks:    c.bricks,
		Ticks:     c.ticks,
		Duration:  float64(c.ticks) * c.tickDur,
	}

	if n := len(c.speeds); n > 0 {
		sorted := make([]float64, n)
		copy(sorted, c.speeds)
		sort.Float64s(sorted)

		rec.SpeedMean, rec.SpeedStd = stat.MeanStdDev(sorted, nil)
		rec.SpeedP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		rec.SpeedP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
		rec.SpeedMax = floats.Max(sorted)
		rec.SlowRatio = float64(c.slow) / float64(n)
		rec.CappedRatio = float64(c.capped) / float64(n)
	}

	return rec
}
