package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

const (
	minWidthForSidebar = 80  // below this the level list collapses to one line
	sidebarWidth       = 22
	maxScores          = 100
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev level"),
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

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPanelStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// ScoreboardModel shows the best rounds of one level at a time.
type ScoreboardModel struct {
	levels []registry.LevelInfo
	stats  map[string]storage.LevelStats
	cursor int
	store  *storage.Store
	scores []storage.ScoreEntry
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the given level.
func NewScoreboardModel(store *storage.Store, level string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: registry.List(),
		stats:  make(map[string]storage.LevelStats),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	for i, l := range m.levels {
		if l.ID == level {
			m.cursor = i
		}
	}
	if store != nil {
		if all, err := store.AllLevelStats(); err == nil {
			for _, s := range all {
				m.stats[s.Level] = s
			}
		}
	}

	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// newTable sizes the score table for the current window.
func (m ScoreboardModel) newTable() table.Model {
	dateWidth := 12
	avail := m.width - 8
	if m.wide() {
		avail -= sidebarWidth + 2
	}
	if avail > 50 {
		dateWidth = min(avail-32, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 6},
			{Title: "Balls", Width: 6},
			{Title: "Result", Width: 7},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the rounds of the selected level into the table.
func (m *ScoreboardModel) load() {
	m.scores = nil
	if m.store != nil && len(m.levels) > 0 {
		if scores, err := m.store.TopScores(m.levels[m.cursor].ID, maxScores); err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		result := "lost"
		if s.Won {
			result = "won"
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.BallsUsed),
			result,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the level cursor by delta and reloads the scores.
func (m *ScoreboardModel) cycle(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.levels)) % len(m.levels)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.NextLevel):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.levels) > 0 {
		title += " - " + m.levels[m.cursor].Name
	}

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", m.scorePanel())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, m.levelLine(), "", m.scorePanel())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		centerText(boardTitleStyle.Render(title), m.width),
		"",
		body,
		boardDimStyle.Render(m.help.View(m.keys)),
	)
}

// sidebar lists every level with its win count.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	for i, l := range m.levels {
		name := l.Name
		if len(name) > sidebarWidth-10 {
			name = name[:sidebarWidth-11] + "."
		}
		line := fmt.Sprintf("  %-*s", sidebarWidth-10, name)
		if st, ok := m.stats[l.ID]; ok {
			line += fmt.Sprintf(" %d/%d", st.Wins, st.Rounds)
		}
		if i == m.cursor {
			line = boardActiveStyle.Render("> " + line[2:])
		}
		b.WriteString("\n" + line)
	}
	return boardPanelStyle.Width(sidebarWidth).Render(b.String())
}

// levelLine shows the selected level between arrows on narrow screens.
func (m ScoreboardModel) levelLine() string {
	if len(m.levels) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s  %d/%d >", m.levels[m.cursor].Name, m.cursor+1, len(m.levels))
}

// scorePanel renders the level summary and its score table.
func (m ScoreboardModel) scorePanel() string {
	if len(m.scores) == 0 {
		return boardPanelStyle.Render(boardDimStyle.Italic(true).Padding(1, 2).
			Render("No rounds recorded yet.\nClear this level to set a high score!"))
	}

	summary := ""
	if len(m.levels) > 0 {
		if st, ok := m.stats[m.levels[m.cursor].ID]; ok {
			summary = fmt.Sprintf("%d rounds  %d wins  best %d  avg %.1f",
				st.Rounds, st.Wins, st.HighScore, st.AvgScore)
		}
	}
	return boardPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		boardDimStyle.Render(summary),
		m.table.View(),
	))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
