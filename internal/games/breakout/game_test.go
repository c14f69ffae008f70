package breakout

import (
	"strings"
	"testing"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func TestGameDeterminism(t *testing.T) {
	// Launch, then alternate paddle drags
	inputs := make([]core.InputFrame, 240)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 10 || i == 120:
			inputs[i].Push(core.LaunchTap{})
		case i > 10 && i%5 < 3:
			inputs[i].Push(core.PaddleDrag{DX: 15})
		case i > 10:
			inputs[i].Push(core.PaddleDrag{DX: -20})
		}
	}

	run := func() Snapshot {
		g := New(config.DefaultSettings(), nil, nil)
		g.Reset(testRuntime())
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if !snap1.Equal(&snap2) {
		t.Errorf("Determinism failed: snapshots differ\n%+v\n%+v", snap1, snap2)
	}
	if snap1.BallsUsed != 2 {
		t.Errorf("BallsUsed = %d, expected 2 launches", snap1.BallsUsed)
	}
}

func TestGameReset(t *testing.T) {
	g := New(config.DefaultSettings(), nil, nil)
	g.Reset(testRuntime())

	bounds := g.Session().Field().Bounds()
	if bounds.W != 800 || bounds.H != 460 {
		t.Errorf("field bounds = %vx%v, expected 800x460", bounds.W, bounds.H)
	}

	state := g.State()
	if state.Score != 0 || state.BallsLeft != 3 || state.GameOver || state.Paused {
		t.Errorf("initial state = %+v", state)
	}

	frame := core.NewInputFrame()
	frame.Push(core.LaunchTap{})
	g.Step(frame)
	if g.State().BallsLeft != 2 {
		t.Errorf("BallsLeft after launch = %d, expected 2", g.State().BallsLeft)
	}
	if speeds := g.BallSpeeds(); len(speeds) != 1 || speeds[0] <= 0 {
		t.Errorf("BallSpeeds() = %v, expected one moving ball", speeds)
	}

	g.Reset(testRuntime())
	if g.State().BallsLeft != 3 || g.Ticks() != 0 {
		t.Errorf("after Reset: state=%+v ticks=%d", g.State(), g.Ticks())
	}
}

func TestGameResizeKeepsRound(t *testing.T) {
	g := New(config.DefaultSettings(), nil, nil)
	g.Reset(testRuntime())
	g.Session().Field().RemoveBrick(0)

	g.Resize(40, 30)
	g.Step(core.NewInputFrame())

	bounds := g.Session().Field().Bounds()
	if bounds.W != 400 || bounds.H != 580 {
		t.Errorf("field bounds = %vx%v, expected 400x580", bounds.W, bounds.H)
	}
	if g.Session().Field().BrickCount() != 48 {
		t.Errorf("BrickCount() = %d, expected 48", g.Session().Field().BrickCount())
	}
}

func TestGameStepReportsOutcomes(t *testing.T) {
	settings := config.DefaultSettings()
	g := New(settings, nil, nil)
	g.Reset(testRuntime())

	frame := core.NewInputFrame()
	frame.Push(core.RestartRound{})
	result := g.Step(frame)

	if result.Events != 1 || len(g.Outcomes()) != 1 {
		t.Errorf("Events = %d, Outcomes = %v, expected one ScoreChanged", result.Events, g.Outcomes())
	}
}

func TestGameRender(t *testing.T) {
	g := New(config.DefaultSettings(), nil, nil)
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD = %q, expected score", hud)
	}
	if !strings.Contains(hud, "Wall") {
		t.Errorf("HUD = %q, expected level name", hud)
	}
	if !strings.Contains(hud, "⦁⦁⦁") {
		t.Errorf("HUD = %q, expected three balls", hud)
	}

	if screen.Get(1, 2) != BrickChar {
		t.Errorf("cell (1, 2) = %q, expected first brick", screen.Get(1, 2))
	}
	if screen.GetCell(1, 2).Color != core.ColorRed {
		t.Errorf("first row colour = %d, expected red", screen.GetCell(1, 2).Color)
	}
	if screen.Get(20, 22) != PaddleChar || screen.Get(59, 22) != PaddleChar {
		t.Errorf("paddle row = %q", screen.Row(22))
	}
	if !strings.Contains(screen.Row(23), "Press SPACE to launch") {
		t.Errorf("bottom row = %q, expected launch hint", screen.Row(23))
	}
}

func TestGameRenderPaused(t *testing.T) {
	g := New(config.DefaultSettings(), nil, nil)
	g.Reset(testRuntime())

	frame := core.NewInputFrame()
	frame.Push(core.Background{})
	result := g.Step(frame)
	if !result.State.Paused {
		t.Fatal("Background should pause the game")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestGameBeforeReset(t *testing.T) {
	g := New(config.DefaultSettings(), nil, nil)

	if q := g.Queue(); q != nil {
		t.Errorf("Queue() = %v before Reset, expected nil", q)
	}

	frame := core.NewInputFrame()
	frame.Push(core.LaunchTap{})
	result := g.Step(frame)
	if result.Events != 0 || result.State != (core.GameState{}) {
		t.Errorf("Step() before Reset = %+v, expected zero result", result)
	}
	if g.Ticks() != 0 || g.BallSpeeds() != nil {
		t.Errorf("ticks = %d, speeds = %v, expected nothing to advance", g.Ticks(), g.BallSpeeds())
	}
	if snap := g.Snapshot(); snap.BallCount != 0 || snap.Bricks != nil {
		t.Errorf("Snapshot() before Reset = %+v, expected zero value", snap)
	}
}
