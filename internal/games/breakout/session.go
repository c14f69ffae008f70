package breakout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/physics"
)

// TiltMaxSpeed converts a tilt sample into a paddle delta in points.
const TiltMaxSpeed = 25

// RoundState is the lifecycle of a round.
type RoundState int

const (
	StateIdle   RoundState = iota // No ball launched yet
	StateActive                   // Balls in play
	StateWon                      // Every brick destroyed
	StateLost                     // Every ball lost
)

func (s RoundState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round is over.
func (s RoundState) Terminal() bool {
	return s == StateWon || s == StateLost
}

// SessionConfig contains everything needed to start a session.
type SessionConfig struct {
	Settings config.Settings
	Bounds   core.Rect   // Visible play-field in points
	Levels   LevelLookup // nil resolves built-in levels only
	Logger   *log.Logger // nil discards output
	Seed     int64       // Launch angle seed
}

// Session is the game session controller. It turns input into field
// commands, reacts to physics events and owns score and ball budget.
// All methods must be called from one goroutine; other goroutines feed
// input through Queue.
type Session struct {
	log         *log.Logger
	field       *Field
	queue       *core.InputQueue
	levels      LevelLookup
	progression *config.Progression

	settings  config.Settings
	score     int
	ballsUsed int
	state     RoundState
	paused    bool
	saved     []core.Vec

	outcomes []Outcome
	ticking  bool
}

// NewSession creates a session and loads its first round.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	levels := cfg.Levels
	if levels == nil {
		levels = BuiltinLookup
	}
	settings := cfg.Settings.Normalize()

	world := physics.NewWorld(physics.Config{
		MinVelocity: settings.Physics.MinVelocity,
		MaxVelocity: settings.Physics.MaxVelocity,
		MaxSubstep:  physics.MaxSubstep,
		Gravity:     core.V(0, settings.Physics.Gravity),
		Seed:        cfg.Seed,
	}, logger)

	s := &Session{
		log:         logger,
		field:       NewField(world, logger),
		queue:       core.NewInputQueue(),
		levels:      levels,
		progression: config.NewProgression(settings.Progression),
		settings:    settings,
	}
	s.field.ResetLayout(cfg.Bounds)
	s.Reset()
	s.outcomes = nil
	return s
}

// Queue returns the input queue drained on every tick.
func (s *Session) Queue() *core.InputQueue {
	return s.queue
}

// Field returns the level manager.
func (s *Session) Field() *Field {
	return s.field
}

// Settings returns the applied settings.
func (s *Session) Settings() config.Settings {
	return s.settings
}

// Score returns the number of bricks destroyed this round.
func (s *Session) Score() int {
	return s.score
}

// BallsUsed returns the number of balls launched this round.
func (s *Session) BallsUsed() int {
	return s.ballsUsed
}

// BallsLeft returns the number of launches still available.
func (s *Session) BallsLeft() int {
	return max(s.settings.MaxBalls-s.ballsUsed, 0)
}

// State returns the round state.
func (s *Session) State() RoundState {
	return s.state
}

// Paused reports whether the simulation is frozen.
func (s *Session) Paused() bool {
	return s.paused
}

// Tick drains the input queue, advances the world by dt seconds unless
// paused, and returns the outcomes produced since the previous tick.
func (s *Session) Tick(dt float64) []Outcome {
	if s.ticking {
		return nil
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	for _, ev := range s.queue.Drain() {
		s.handleInput(ev)
	}

	if !s.paused && s.field.BallCount() > 0 {
		for _, ev := range s.field.Step(dt) {
			s.dispatch(ev)
		}
	}

	out := s.outcomes
	s.outcomes = nil
	return out
}

func (s *Session) handleInput(ev core.InputEvent) {
	switch e := ev.(type) {
	case core.PaddleDrag:
		if !s.paused {
			s.field.TranslatePaddle(e.DX)
		}
	case core.Tilt:
		if !s.paused && s.settings.TiltControlEnabled {
			s.field.TranslatePaddle(TiltMaxSpeed * e.X)
		}
	case core.LaunchTap:
		s.Launch()
	case core.DeviceShake:
		if !s.paused {
			s.field.PushBalls()
		}
	case core.ViewportChanged:
		s.field.ResetLayout(core.NewRect(0, 0, e.W, e.H))
	case core.Background:
		s.Pause()
	case core.Foreground:
		s.Resume()
	case core.RestartRound:
		s.Reset()
	}
}

// Launch spawns a ball while the ball budget lasts and pushes the live
// balls once it is spent. Ignored while paused or after the round ended.
func (s *Session) Launch() {
	if s.paused || s.state.Terminal() {
		return
	}

	if s.ballsUsed < s.settings.MaxBalls {
		s.ballsUsed++
		s.field.SetLaunchSpeedModifier(s.progression.Modifier(s.settings.BallSpeedModifier, s.score))
		s.field.AddBall()
		s.state = StateActive
		s.log.Debug("ball launched", "used", s.ballsUsed, "max", s.settings.MaxBalls)
		return
	}
	s.field.PushBalls()
}

func (s *Session) dispatch(ev physics.Event) {
	switch e := ev.(type) {
	case physics.BrickHit:
		s.brickHit(e.Index)
	case physics.BallLeftField:
		s.ballLeftField(e.Ball)
	}
}

func (s *Session) brickHit(index int) {
	if !s.field.RemoveBrick(index) {
		return
	}

	s.score++
	s.emit(BrickDestroyed{Index: index})
	s.emit(ScoreChanged{Score: s.score})

	if s.field.BrickCount() == 0 && !s.state.Terminal() {
		s.state = StateWon
		s.field.RemoveAllBalls()
		s.emit(RoundWon{})
		s.log.Info("round won", "score", s.score, "balls_used", s.ballsUsed)
	}
}

func (s *Session) ballLeftField(b *physics.Ball) {
	if !s.field.RemoveBall(b) {
		return
	}

	s.emit(BallLost{Remaining: s.BallsLeft()})

	if s.field.BallCount() == 0 && s.ballsUsed >= s.settings.MaxBalls && !s.state.Terminal() {
		s.state = StateLost
		s.emit(RoundLost{})
		s.log.Info("round lost", "score", s.score, "bricks_left", s.field.BrickCount())
	}
}

func (s *Session) emit(o Outcome) {
	s.outcomes = append(s.outcomes, o)
}

// Pause freezes every ball, remembering its velocity. Idempotent.
func (s *Session) Pause() {
	if s.paused {
		return
	}
	s.saved = s.field.StopBalls()
	s.paused = true
}

// Resume restores the velocities captured by Pause. Idempotent.
func (s *Session) Resume() {
	if !s.paused {
		return
	}
	s.field.StartBalls(s.saved)
	s.saved = nil
	s.paused = false
}

// Reset starts a fresh round from the current settings.
func (s *Session) Reset() {
	s.score = 0
	s.ballsUsed = 0
	s.state = StateIdle
	s.paused = false
	s.saved = nil

	s.field.SetLaunchSpeedModifier(s.settings.BallSpeedModifier)
	s.field.SetPaddleWidthPercentage(s.settings.PaddleWidthPercent)
	if !s.field.SetLevel(s.resolveLevel(s.settings.Level)) {
		s.field.Reset()
	}

	s.emit(ScoreChanged{Score: 0})
}

// ApplyConfig applies new settings. Ball budget, launch speed and tilt
// control change in place, a new paddle width recentres the paddle and a
// different level starts a new round.
func (s *Session) ApplyConfig(settings config.Settings) {
	settings = settings.Normalize()
	s.settings = settings
	s.progression = config.NewProgression(settings.Progression)

	s.field.SetLaunchSpeedModifier(settings.BallSpeedModifier)
	s.field.SetPaddleWidthPercentage(settings.PaddleWidthPercent)

	if !s.resolveLevel(settings.Level).Equal(s.field.Level()) {
		s.log.Info("level changed", "level", settings.Level)
		s.Reset()
	}
}

func (s *Session) resolveLevel(id string) Level {
	level, err := s.levels(id)
	if err == nil {
		return level
	}

	s.log.Warn("level not found, using default", "level", id, "err", err)
	level, _ = GetLevelByID(DefaultLevelID)
	return level
}
