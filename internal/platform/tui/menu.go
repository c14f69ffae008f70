package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

// customDifficulty is the first menu difficulty: settings as configured.
const customDifficulty = "custom"

// difficulties lists the menu choices in cycle order.
var difficulties = []string{
	customDifficulty,
	string(config.DifficultyEasy),
	string(config.DifficultyNormal),
	string(config.DifficultyHard),
	string(config.DifficultyFixed),
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels     []registry.LevelInfo
	highScores map[string]int
	cursor     int
	difficulty int
	settings   config.Settings
	width      int
	height     int
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model

	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates a menu with the configured level preselected.
func NewMenuModel(store *storage.Store, settings config.Settings, cfg core.RuntimeConfig) MenuModel {
	levels := registry.List()

	m := MenuModel{
		levels:     levels,
		highScores: make(map[string]int, len(levels)),
		settings:   settings,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keys:       DefaultMenuKeyMap(),
		help:       help.New(),
	}
	m.help.Width = cfg.ScreenW

	for i, l := range levels {
		if l.ID == settings.Level {
			m.cursor = i
		}
		if store == nil {
			continue
		}
		if hs, err := store.HighScore(l.ID); err == nil {
			m.highScores[l.ID] = hs
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)

	case key.Matches(msg, m.keys.Right):
		m.difficulty = (m.difficulty + 1) % len(difficulties)

	case key.Matches(msg, m.keys.Select):
		if len(m.levels) > 0 {
			m.selected = true
		}

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  B R I C K F A L L  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		line := fmt.Sprintf("  %-12s %3d bricks", l.Name, l.Bricks)
		if hs := m.highScores[l.ID]; hs > 0 {
			line += fmt.Sprintf("  best %d", hs)
		}
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", difficulties[m.difficulty]), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected reports whether the user picked a level.
func (m MenuModel) Selected() bool {
	return m.selected
}

// Settings returns the settings for the highlighted level with the chosen
// difficulty applied.
func (m MenuModel) Settings() config.Settings {
	s := m.settings
	if len(m.levels) > 0 {
		s.Level = m.levels[m.cursor].ID
	}
	if preset, ok := config.ParsePreset(difficulties[m.difficulty]); ok {
		config.ApplyPreset(&s, preset)
	}
	return s
}

// Level returns the highlighted level id.
func (m MenuModel) Level() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.cursor].ID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
