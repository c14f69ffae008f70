package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickfall/internal/core"
)

// DragStep is the paddle movement per arrow key press, in play-field points.
const DragStep = 30

// TiltNudge is the accelerometer sample produced by a tilt key.
const TiltNudge = 1.0

// GameKeyMap defines the key bindings while a round is running.
type GameKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Launch    key.Binding
	Shake     key.Binding
	TiltLeft  key.Binding
	TiltRight key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Launch, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Launch, k.Shake},
		{k.TiltLeft, k.TiltRight, k.Pause, k.Restart},
		{k.Back, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "launch"),
		),
		Shake: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shake"),
		),
		TiltLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "tilt left"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "tilt right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InputEvent translates a key into the input event it produces while a
// round is running. Pause toggles between Background and Foreground, and
// Restart is only honoured after the round has ended.
func (k GameKeyMap) InputEvent(msg tea.KeyMsg, state core.GameState) (core.InputEvent, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.PaddleDrag{DX: -DragStep}, true
	case key.Matches(msg, k.Right):
		return core.PaddleDrag{DX: DragStep}, true
	case key.Matches(msg, k.Launch):
		return core.LaunchTap{}, true
	case key.Matches(msg, k.Shake):
		return core.DeviceShake{}, true
	case key.Matches(msg, k.Pause):
		if state.Paused {
			return core.Foreground{}, true
		}
		return core.Background{}, true
	case key.Matches(msg, k.Restart):
		if state.GameOver {
			return core.RestartRound{}, true
		}
	}
	return nil, false
}

// TiltSample returns the accelerometer sample a tilt key produces.
func (k GameKeyMap) TiltSample(msg tea.KeyMsg) (float64, bool) {
	switch {
	case key.Matches(msg, k.TiltLeft):
		return -TiltNudge, true
	case key.Matches(msg, k.TiltRight):
		return TiltNudge, true
	}
	return 0, false
}

// MenuKeyMap defines the key bindings for menus.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Scoreboard, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev difficulty"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next difficulty"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
