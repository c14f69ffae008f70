package breakout

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/physics"
)

// Cell geometry: one terminal cell covers CellW × CellH points.
// Row 0 of the screen is the HUD; the play-field starts below it.
const (
	CellW     = 10
	CellH     = 20
	HUDHeight = 1
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BrickChar  = '█'
	BallsChar  = '⦁'
)

// Game adapts a Session to the terminal host: it maps terminal cells to
// play-field points, forwards input frames and draws the field.
type Game struct {
	settings config.Settings
	levels   LevelLookup
	log      *log.Logger

	runtime  core.RuntimeConfig
	session  *Session
	outcomes []Outcome
	ticks    uint64
}

// New creates a brick breaker game. Nil levels resolve built-in levels
// only; a nil logger discards output.
func New(settings config.Settings, levels LevelLookup, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		settings: settings.Normalize(),
		levels:   levels,
		log:      logger,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// FieldBounds converts a terminal size into play-field bounds in points.
func FieldBounds(cols, rows int) core.Rect {
	return core.NewRect(0, 0, float64(max(cols, 0)*CellW), float64(max(rows-HUDHeight, 0)*CellH))
}

// Reset builds a fresh session sized for the runtime screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.ticks = 0
	g.outcomes = nil
	g.session = NewSession(SessionConfig{
		Settings: g.settings,
		Bounds:   FieldBounds(runtime.ScreenW, runtime.ScreenH),
		Levels:   g.levels,
		Logger:   g.log,
		Seed:     runtime.Seed,
	})
	g.log.Debug("game reset", "cols", runtime.ScreenW, "rows", runtime.ScreenH, "level", g.settings.Level)
}

// Session returns the running session, nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Queue returns the session input queue for asynchronous producers, nil
// before Reset.
func (g *Game) Queue() *core.InputQueue {
	if g.session == nil {
		return nil
	}
	return g.session.Queue()
}

// Settings returns the settings used by the next Reset.
func (g *Game) Settings() config.Settings {
	return g.settings
}

// ApplySettings updates the settings and forwards them to the session.
func (g *Game) ApplySettings(s config.Settings) {
	g.settings = s.Normalize()
	if g.session != nil {
		g.session.ApplyConfig(g.settings)
	}
}

// Resize reports a new terminal size as a viewport change. The round
// keeps running; the change applies on the next Step.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
	if g.session == nil {
		return
	}
	b := FieldBounds(cols, rows)
	g.session.Queue().Push(core.ViewportChanged{W: b.W, H: b.H})
}

// Step forwards the frame's events and advances the session by one tick.
// Before Reset it does nothing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}
	q := g.session.Queue()
	for _, ev := range in.Events {
		q.Push(ev)
	}

	g.outcomes = g.session.Tick(g.runtime.TickSeconds())
	g.ticks++

	return core.StepResult{
		State:  g.State(),
		Events: len(g.outcomes),
	}
}

// Outcomes returns the outcomes of the last Step.
func (g *Game) Outcomes() []Outcome {
	return g.outcomes
}

// Ticks returns the number of steps since the last Reset.
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// BallSpeeds returns the speed of every live ball in points per second.
func (g *Game) BallSpeeds() []float64 {
	if g.session == nil {
		return nil
	}
	balls := g.session.Field().Balls()
	speeds := make([]float64, len(balls))
	for i, b := range balls {
		speeds[i] = b.Velocity().Len()
	}
	return speeds
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:     g.session.Score(),
		BallsLeft: g.session.BallsLeft(),
		GameOver:  st.Terminal(),
		Won:       st == StateWon,
		Paused:    g.session.Paused(),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst)
	g.renderPaddle(dst)
	g.renderBalls(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the score, the level name and the remaining balls.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.session.Score()))
	dst.DrawTextCentered(0, g.session.Field().Level().Name)

	balls := strings.Repeat(string(BallsChar), g.session.BallsLeft())
	x := dst.Width() - len([]rune(balls)) - 1
	for i, r := range []rune(balls) {
		dst.SetColored(x+i, 0, r, core.ColorBrightWhite)
	}
}

// cellRect maps a frame in points to a cell rectangle below the HUD.
func cellRect(r core.Rect) (x, y, w, h int) {
	x = int(math.Round(r.X / CellW))
	y = int(math.Floor(r.Y/CellH)) + HUDHeight
	w = max(int(math.Round(r.MaxX()/CellW))-x, 1)
	h = max(int(math.Ceil(r.MaxY()/CellH))+HUDHeight-y, 1)
	return x, y, w, h
}

// renderBricks draws all live bricks, coloured by row.
func (g *Game) renderBricks(dst *core.Screen) {
	for _, b := range g.session.Field().Bricks() {
		x, y, w, h := cellRect(b.Frame)
		dst.FillRect(x, y, w, h, BrickChar, core.Hue(int(b.Hue*float64(core.HueCount))))
	}
}

// renderPaddle draws the player's paddle on its row.
func (g *Game) renderPaddle(dst *core.Screen) {
	p := g.session.Field().Paddle()
	x, _, w, _ := cellRect(p)
	y := int(math.Floor(p.MidY()/CellH)) + HUDHeight
	dst.FillRect(x, y, w, 1, PaddleChar, core.ColorBrightWhite)
}

// renderBalls draws every ball, coloured by its speed state.
func (g *Game) renderBalls(dst *core.Screen) {
	for _, b := range g.session.Field().Balls() {
		c := b.Center()
		x := int(math.Floor(c.X / CellW))
		y := int(math.Floor(c.Y/CellH)) + HUDHeight

		color := core.ColorBrightYellow
		switch b.Speed() {
		case physics.SpeedSlow:
			color = core.ColorGray
		case physics.SpeedCapped:
			color = core.ColorBrightRed
		}
		dst.SetColored(x, y, BallChar, color)
	}
}

// renderOverlay draws round state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	if g.session.Paused() {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return
	}

	switch g.session.State() {
	case StateIdle:
		dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
	case StateLost:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case StateWon:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.session.Score())
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
