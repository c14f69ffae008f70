package breakout

import (
	"testing"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/physics"
)

const tick = 1.0 / 60

func testLevels(id string) (Level, error) {
	if id == "tiny" {
		return mustParse("tiny", "Tiny", "##", "##"), nil
	}
	return BuiltinLookup(id)
}

func testSettings() config.Settings {
	s := config.DefaultSettings()
	s.Level = "tiny"
	return s
}

func newTestSession(t *testing.T, s config.Settings) *Session {
	t.Helper()
	return NewSession(SessionConfig{
		Settings: s,
		Bounds:   portrait,
		Levels:   testLevels,
		Seed:     7,
	})
}

func count[T Outcome](out []Outcome) int {
	n := 0
	for _, o := range out {
		if _, ok := o.(T); ok {
			n++
		}
	}
	return n
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, testSettings())

	if s.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", s.State())
	}
	if s.Field().BrickCount() != 4 {
		t.Errorf("BrickCount() = %d, expected 4", s.Field().BrickCount())
	}
	if s.BallsLeft() != 3 {
		t.Errorf("BallsLeft() = %d, expected 3", s.BallsLeft())
	}
	if out := s.Tick(tick); len(out) != 0 {
		t.Errorf("first Tick() = %v, expected no outcomes", out)
	}
}

func TestUnknownLevelFallsBack(t *testing.T) {
	settings := testSettings()
	settings.Level = "nope"
	s := newTestSession(t, settings)

	if s.Field().Level().ID != DefaultLevelID {
		t.Errorf("level = %q, expected %q", s.Field().Level().ID, DefaultLevelID)
	}
}

func TestRoundWon(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.Launch()

	for _, idx := range s.Field().BrickIndices() {
		s.dispatch(physics.BrickHit{Index: idx})
	}
	// A second hit on a destroyed brick scores nothing
	s.dispatch(physics.BrickHit{Index: 0})

	out := s.Tick(0)

	if got := count[BrickDestroyed](out); got != 4 {
		t.Errorf("BrickDestroyed outcomes = %d, expected 4", got)
	}
	if got := count[ScoreChanged](out); got != 4 {
		t.Errorf("ScoreChanged outcomes = %d, expected 4", got)
	}
	if got := count[RoundWon](out); got != 1 {
		t.Errorf("RoundWon outcomes = %d, expected 1", got)
	}
	if _, ok := out[len(out)-1].(RoundWon); !ok {
		t.Errorf("last outcome = %v, expected RoundWon", out[len(out)-1])
	}
	if s.Score() != 4 {
		t.Errorf("Score() = %d, expected 4", s.Score())
	}
	if s.State() != StateWon {
		t.Errorf("State() = %v, expected won", s.State())
	}
	if s.Field().World().BallCount() != 0 {
		t.Error("balls should be removed when the round is won")
	}
}

func TestStaleBrickHit(t *testing.T) {
	s := newTestSession(t, testSettings())

	s.dispatch(physics.BrickHit{Index: 2})
	s.dispatch(physics.BrickHit{Index: 2})
	s.dispatch(physics.BrickHit{Index: 99})

	out := s.Tick(0)
	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", s.Score())
	}
	if got := count[BrickDestroyed](out); got != 1 {
		t.Errorf("BrickDestroyed outcomes = %d, expected 1", got)
	}
}

func TestRoundLost(t *testing.T) {
	settings := testSettings()
	settings.MaxBalls = 1
	s := newTestSession(t, settings)

	s.Launch()
	balls := s.Field().Balls()
	if len(balls) != 1 {
		t.Fatalf("ball count = %d, expected 1", len(balls))
	}

	s.dispatch(physics.BallLeftField{Ball: balls[0]})
	s.dispatch(physics.BallLeftField{Ball: balls[0]})
	out := s.Tick(0)

	if got := count[BallLost](out); got != 1 {
		t.Fatalf("BallLost outcomes = %d, expected 1", got)
	}
	if lost := out[0].(BallLost); lost.Remaining != 0 {
		t.Errorf("BallLost.Remaining = %d, expected 0", lost.Remaining)
	}
	if got := count[RoundLost](out); got != 1 {
		t.Errorf("RoundLost outcomes = %d, expected 1", got)
	}
	if s.State() != StateLost {
		t.Errorf("State() = %v, expected lost", s.State())
	}

	// Taps after the round ended are ignored
	s.Queue().Push(core.LaunchTap{})
	if out := s.Tick(tick); len(out) != 0 {
		t.Errorf("Tick() after loss = %v, expected no outcomes", out)
	}
	if s.BallsUsed() != 1 || s.Field().World().BallCount() != 0 {
		t.Errorf("tap after loss launched a ball: used=%d live=%d", s.BallsUsed(), s.Field().World().BallCount())
	}
}

func TestBallLostWithBudgetLeft(t *testing.T) {
	s := newTestSession(t, testSettings())

	s.Launch()
	s.dispatch(physics.BallLeftField{Ball: s.Field().Balls()[0]})
	out := s.Tick(0)

	if len(out) != 1 || out[0] != (BallLost{Remaining: 2}) {
		t.Errorf("outcomes = %v, expected [BallLost{2}]", out)
	}
	if s.State() != StateActive {
		t.Errorf("State() = %v, expected active", s.State())
	}

	s.Launch()
	if s.Field().World().BallCount() != 1 || s.BallsUsed() != 2 {
		t.Errorf("relaunch: live=%d used=%d", s.Field().World().BallCount(), s.BallsUsed())
	}
}

func TestLaunchBeyondBudgetPushes(t *testing.T) {
	settings := testSettings()
	settings.MaxBalls = 2
	s := newTestSession(t, settings)

	for range 5 {
		s.Queue().Push(core.LaunchTap{})
		for range 4 {
			s.Tick(tick)
		}
	}

	if s.BallsUsed() != 2 {
		t.Errorf("BallsUsed() = %d, expected 2", s.BallsUsed())
	}
	if s.Field().World().BallCount() != 2 {
		t.Errorf("live balls = %d, expected 2", s.Field().World().BallCount())
	}
	if s.BallsLeft() != 0 {
		t.Errorf("BallsLeft() = %d, expected 0", s.BallsLeft())
	}
}

func TestPastBudgetInputNudgesBall(t *testing.T) {
	tests := []struct {
		name string
		ev   core.InputEvent
	}{
		{"tap past budget", core.LaunchTap{}},
		{"shake", core.DeviceShake{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testSettings()
			settings.MaxBalls = 1
			nudged := newTestSession(t, settings)
			control := newTestSession(t, settings)
			for _, s := range []*Session{nudged, control} {
				s.Queue().Push(core.LaunchTap{})
				s.Tick(tick)
				s.Tick(tick)
			}

			nudged.Queue().Push(tt.ev)
			nudged.Tick(tick)
			control.Tick(tick)

			if nudged.BallsUsed() != 1 || nudged.Field().BallCount() != 1 {
				t.Fatalf("used=%d live=%d, expected the single launched ball", nudged.BallsUsed(), nudged.Field().BallCount())
			}
			b := nudged.Field().Balls()[0]
			deg, launched := b.LastLaunchAngle()
			if !launched || deg < PushAngleMin || deg > PushAngleMax {
				t.Errorf("LastLaunchAngle() = %d, %v, expected a push angle in [0, 360]", deg, launched)
			}
			if v, want := b.Velocity(), control.Field().Balls()[0].Velocity(); v == want {
				t.Errorf("velocity = %+v, expected the push to change it", v)
			}
		})
	}
}

func TestLaunchedBallHitsBricks(t *testing.T) {
	settings := config.DefaultSettings()
	s := newTestSession(t, settings)
	s.Queue().Push(core.LaunchTap{})

	var destroyed int
	for range 180 {
		destroyed += count[BrickDestroyed](s.Tick(tick))
		if destroyed > 0 {
			break
		}
	}

	if destroyed == 0 {
		t.Fatal("launched ball never hit a brick")
	}
	if s.Score() != destroyed {
		t.Errorf("Score() = %d, expected %d", s.Score(), destroyed)
	}
	if s.Field().BrickCount() != 49-destroyed {
		t.Errorf("BrickCount() = %d, expected %d", s.Field().BrickCount(), 49-destroyed)
	}
}

func TestPauseResume(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.Queue().Push(core.LaunchTap{})
	s.Tick(tick)

	ball := s.Field().Balls()[0]
	v := ball.Velocity()
	if v.IsZero() {
		t.Fatal("ball not moving after launch")
	}

	s.Queue().Push(core.Background{})
	s.Queue().Push(core.Background{})
	s.Tick(tick)
	if !s.Paused() {
		t.Fatal("Background should pause")
	}
	if !ball.Velocity().IsZero() {
		t.Errorf("velocity while paused = %+v, expected zero", ball.Velocity())
	}

	pos := ball.Center()
	for range 10 {
		s.Tick(tick)
	}
	if ball.Center() != pos {
		t.Errorf("ball moved while paused: %+v -> %+v", pos, ball.Center())
	}

	// Input other than lifecycle events is ignored while paused
	paddle := s.Field().Paddle()
	s.Queue().Push(core.PaddleDrag{DX: 50})
	s.Queue().Push(core.LaunchTap{})
	s.Tick(tick)
	if s.Field().Paddle() != paddle {
		t.Error("paddle moved while paused")
	}
	if s.BallsUsed() != 1 {
		t.Errorf("BallsUsed() = %d, expected 1", s.BallsUsed())
	}

	s.Queue().Push(core.Foreground{})
	s.Queue().Push(core.Foreground{})
	s.Tick(0)
	if s.Paused() {
		t.Fatal("Foreground should resume")
	}
	if ball.Velocity() != v {
		t.Errorf("restored velocity = %+v, expected %+v", ball.Velocity(), v)
	}
}

func TestPaddleDragAndTilt(t *testing.T) {
	settings := testSettings()
	s := newTestSession(t, settings)
	x := s.Field().Paddle().X

	s.Queue().Push(core.PaddleDrag{DX: 40, DY: 100})
	s.Tick(tick)
	if !approx(s.Field().Paddle().X, x+40) {
		t.Errorf("paddle X after drag = %v, expected %v", s.Field().Paddle().X, x+40)
	}

	s.Queue().Push(core.Tilt{X: 1})
	s.Tick(tick)
	if !approx(s.Field().Paddle().X, x+40) {
		t.Error("tilt moved the paddle with tilt control disabled")
	}

	settings.TiltControlEnabled = true
	s.ApplyConfig(settings)
	s.Queue().Push(core.Tilt{X: -0.5})
	s.Tick(tick)
	if !approx(s.Field().Paddle().X, x+40-TiltMaxSpeed*0.5) {
		t.Errorf("paddle X after tilt = %v, expected %v", s.Field().Paddle().X, x+40-TiltMaxSpeed*0.5)
	}
}

func TestViewportChanged(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.dispatch(physics.BrickHit{Index: 1})
	s.Tick(0)

	s.Queue().Push(core.ViewportChanged{W: 460, H: 800})
	s.Tick(0)

	if s.Field().Bounds() != core.NewRect(0, 0, 460, 800) {
		t.Errorf("Bounds() = %+v", s.Field().Bounds())
	}
	if s.Field().BrickCount() != 3 || s.Score() != 1 {
		t.Errorf("viewport change lost state: bricks=%d score=%d", s.Field().BrickCount(), s.Score())
	}
}

func TestRestartRound(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.Launch()
	s.dispatch(physics.BrickHit{Index: 0})
	s.Tick(0)

	s.Queue().Push(core.RestartRound{})
	out := s.Tick(0)

	if len(out) != 1 || out[0] != (ScoreChanged{Score: 0}) {
		t.Errorf("outcomes = %v, expected [ScoreChanged{0}]", out)
	}
	if s.Score() != 0 || s.BallsUsed() != 0 || s.State() != StateIdle {
		t.Errorf("after restart: score=%d used=%d state=%v", s.Score(), s.BallsUsed(), s.State())
	}
	if s.Field().BrickCount() != 4 || s.Field().World().BallCount() != 0 {
		t.Errorf("after restart: bricks=%d balls=%d", s.Field().BrickCount(), s.Field().World().BallCount())
	}
}

func TestApplyConfig(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.dispatch(physics.BrickHit{Index: 0})
	s.Tick(0)

	settings := testSettings()
	settings.MaxBalls = 5
	settings.PaddleWidthPercent = config.PaddleSmall
	settings.BallSpeedModifier = 1
	s.ApplyConfig(settings)

	if s.BallsLeft() != 5 {
		t.Errorf("BallsLeft() = %d, expected 5", s.BallsLeft())
	}
	if !approx(s.Field().Paddle().W, 160) {
		t.Errorf("paddle width = %v, expected 160", s.Field().Paddle().W)
	}
	if !approx(s.Field().LaunchSpeed(), MaxLaunchSpeed) {
		t.Errorf("LaunchSpeed() = %v, expected %v", s.Field().LaunchSpeed(), MaxLaunchSpeed)
	}
	if s.Score() != 1 || s.Field().BrickCount() != 3 {
		t.Error("same level should keep the round going")
	}

	settings.Level = "one"
	s.ApplyConfig(settings)
	if s.Score() != 0 || s.Field().BrickCount() != 25 {
		t.Errorf("new level: score=%d bricks=%d, expected a fresh round", s.Score(), s.Field().BrickCount())
	}
}

func TestProgressionRaisesLaunchSpeed(t *testing.T) {
	settings := config.DefaultSettings()
	settings.BallSpeedModifier = 0
	settings.Progression = config.ProgressionConfig{Enabled: true, MaxAt: 4, SpeedGain: 1}
	s := newTestSession(t, settings)

	s.dispatch(physics.BrickHit{Index: 0})
	s.dispatch(physics.BrickHit{Index: 1})
	s.Launch()

	if !approx(s.Field().LaunchSpeed(), 0.35) {
		t.Errorf("LaunchSpeed() = %v, expected 0.35 at half progression", s.Field().LaunchSpeed())
	}
}

func TestGeometryChangeKeepsDestroyedBricks(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.Launch()

	s.dispatch(physics.BrickHit{Index: 2})
	s.Tick(0)
	if s.Field().BrickCount() != 3 || s.Score() != 1 {
		t.Fatalf("after one hit: bricks %d score %d, expected 3 and 1", s.Field().BrickCount(), s.Score())
	}

	s.Queue().Push(core.ViewportChanged{W: 460, H: 800})
	s.Tick(0)

	if s.Field().BrickCount() != 3 {
		t.Errorf("BrickCount() = %d after rotation, expected 3", s.Field().BrickCount())
	}
	if _, ok := s.Field().Brick(2); ok {
		t.Error("destroyed brick 2 came back after rotation")
	}

	for _, idx := range []int{0, 1, 3} {
		s.dispatch(physics.BrickHit{Index: idx})
	}
	out := s.Tick(0)
	if s.State() != StateWon || count[RoundWon](out) != 1 {
		t.Errorf("State() = %v with %d RoundWon outcomes, expected won once", s.State(), count[RoundWon](out))
	}
}

func TestTickIsNotReentrant(t *testing.T) {
	s := newTestSession(t, testSettings())
	s.Queue().Push(core.LaunchTap{})

	s.ticking = true
	if out := s.Tick(tick); out != nil {
		t.Errorf("nested Tick() = %v, expected nil", out)
	}
	if s.BallsUsed() != 0 {
		t.Error("nested Tick() should not drain the queue")
	}

	s.ticking = false
	s.Tick(tick)
	if s.BallsUsed() != 1 {
		t.Errorf("BallsUsed() = %d, expected 1", s.BallsUsed())
	}
}
