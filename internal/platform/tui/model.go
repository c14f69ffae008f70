package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
	"github.com/vovakirdan/brickfall/internal/telemetry"
)

// helpHeight is the number of rows reserved below the play-field.
const helpHeight = 1

// Options carries the shared services a game model reports to.
type Options struct {
	Store     *storage.Store    // nil disables score saving
	Telemetry *telemetry.Writer // nil disables round telemetry
	Logger    *log.Logger       // nil discards output

	// Renderer styles the output; nil uses the default stdout renderer.
	Renderer *lipgloss.Renderer
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// GameModel is the Bubble Tea model running one brick breaker game.
type GameModel struct {
	game   *breakout.Game
	screen *core.Screen
	colors palette
	opts   Options
	log    *log.Logger
	config core.RuntimeConfig

	frame core.InputFrame
	state core.GameState

	tiltSrc chan float64
	tilt    *core.TiltFeed

	collector  *telemetry.Collector
	roundSaved bool

	// stored holds the settings store values last applied to the game
	stored map[string]string

	keys       GameKeyMap
	help       help.Model
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model and starts the first round.
func NewGameModel(settings config.Settings, opts Options, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game := breakout.New(settings, registry.Lookup, opts.Logger)
	game.Reset(playfieldConfig(cfg))

	src := make(chan float64, 8)
	m := GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		colors:  newPalette(opts.Renderer),
		opts:    opts,
		log:     opts.logger(),
		config:  cfg,
		frame:   core.NewInputFrame(),
		state:   game.State(),
		tiltSrc: src,
		tilt:    core.NewTiltFeed(src, game.Queue()),
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
	}
	m.help.Width = cfg.ScreenW
	m.collector = m.newCollector()
	if opts.Store != nil {
		stored, err := config.Stored(opts.Store)
		if err != nil {
			m.log.Warn("failed to read stored settings", "err", err)
		}
		m.stored = stored
	}
	m.syncTilt(true)
	return m
}

// playfieldConfig returns the runtime config with the help row removed.
func playfieldConfig(cfg core.RuntimeConfig) core.RuntimeConfig {
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	return cfg
}

func (m GameModel) newCollector() *telemetry.Collector {
	s := m.game.Settings()
	return telemetry.NewCollector(s.Level, m.config.TickSeconds(), s.Physics.MinVelocity, s.Physics.MaxVelocity)
}

// syncTilt runs the tilt feed while the game is visible and tilt control
// is enabled.
func (m GameModel) syncTilt(visible bool) {
	if visible && m.game.Settings().TiltControlEnabled {
		m.tilt.Start()
		return
	}
	m.tilt.Stop()
}

// reloadSettings applies settings changed in the store since the last
// reload. Values chosen for this game and left untouched in the store
// are kept.
func (m *GameModel) reloadSettings() {
	if m.opts.Store == nil {
		return
	}
	fresh, err := config.Stored(m.opts.Store)
	if err != nil {
		m.log.Warn("failed to read stored settings", "err", err)
		return
	}
	diff := config.Changed(m.stored, fresh)
	m.stored = fresh
	if len(diff) == 0 {
		return
	}

	settings, err := config.Apply(m.game.Settings(), diff)
	if err != nil {
		m.log.Warn("ignoring stored settings", "err", err)
		return
	}
	m.log.Info("settings reloaded", "keys", len(diff), "level", settings.Level, "max_balls", settings.MaxBalls)
	m.game.ApplySettings(settings)
}

// Game returns the running game.
func (m GameModel) Game() *breakout.Game {
	return m.game
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.FocusMsg:
		m.reloadSettings()
		m.frame.Push(core.Foreground{})
		m.syncTilt(true)
		return m, nil

	case tea.BlurMsg:
		m.frame.Push(core.Background{})
		m.syncTilt(false)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.tilt.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.state.GameOver || m.state.Paused {
			m.backToMenu = true
			m.tilt.Stop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if x, ok := m.keys.TiltSample(msg); ok {
		if m.tilt.Running() {
			select {
			case m.tiltSrc <- x:
			default:
			}
		}
		return m, nil
	}

	if ev, ok := m.keys.InputEvent(msg, m.state); ok {
		m.frame.Push(ev)
		switch ev.(type) {
		case core.Background:
			m.syncTilt(false)
		case core.Foreground:
			m.syncTilt(true)
		}
	}
	return m, nil
}

// handleResize maps a window change to a viewport change. The round
// keeps running.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	h := max(msg.Height-helpHeight, 0)
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.frame)
	m.frame.Clear()
	m.collector.Observe(m.game.BallSpeeds(), m.game.Outcomes())

	// A restart after the round ended starts a new record
	if m.roundSaved && !result.State.GameOver {
		m.roundSaved = false
		m.collector = m.newCollector()
	}

	m.state = result.State
	if m.state.GameOver && !m.roundSaved {
		m.saveRound()
		m.roundSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRound records the finished round in the score store and telemetry.
func (m GameModel) saveRound() {
	session := m.game.Session()
	level := session.Field().Level().ID
	result := session.State().String()

	m.log.Info("round finished", "level", level, "result", result, "score", m.state.Score, "balls_used", session.BallsUsed())

	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
			Level:     level,
			Score:     m.state.Score,
			BallsUsed: session.BallsUsed(),
			Won:       m.state.Won,
		})
		if err != nil {
			m.log.Error("failed to save score", "err", err)
		}
	}

	if err := m.opts.Telemetry.Write(m.collector.Finish(result, m.state.Score, session.BallsUsed())); err != nil {
		m.log.Error("failed to write telemetry", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".brickfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.colors.render(m.screen),
		m.colors[core.ColorGray].Render(m.help.View(m.keys)),
	)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(settings config.Settings, opts Options, cfg core.RuntimeConfig) error {
	model := NewGameModel(settings, opts, cfg)
	defer model.tilt.Stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
