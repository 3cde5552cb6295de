package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/storage"
)

const (
	scoreRows        = 100 // Rows loaded per tab
	scoreChromeLines = 8   // Title, tabs, borders and help around the table
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(player string, limit int) ([]storage.ScoreEntry, error)
	Leaderboard(limit int) ([]storage.ScoreEntry, error)
}

// scoreTab selects what the scoreboard lists.
type scoreTab int

const (
	tabLeaderboard scoreTab = iota // Best run of every player
	tabPlayer                      // The current player's runs
	tabCount
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Tab    key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Tab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings. Scrolling itself
// is handled by the table's own key map.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Tab:    key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right"), key.WithHelp("tab", "switch table")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back to game")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardStyles groups the scoreboard's lipgloss styles.
type boardStyles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	frame     lipgloss.Style
	empty     lipgloss.Style
	help      lipgloss.Style
}

func newBoardStyles() boardStyles {
	muted := lipgloss.Color("241")
	highlight := lipgloss.Color("229")
	return boardStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(highlight),
		tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(highlight).Background(lipgloss.Color("57")).Padding(0, 1),
		frame:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		empty:     lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(2, 4),
		help:      lipgloss.NewStyle().Foreground(muted),
	}
}

// ScoreboardModel lists saved runs in a bubbles table.
type ScoreboardModel struct {
	source ScoreSource // Nil when persistence is off
	player string
	tab    scoreTab
	rows   []storage.ScoreEntry
	err    error

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	styles boardStyles
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the leaderboard tab.
func NewScoreboardModel(source ScoreSource, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		player: player,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		styles: newBoardStyles(),
	}
	m.resize(width, height)
	m.reload()
	return m
}

// newScoreTable builds an empty table sized for the terminal. The player
// column takes whatever width the fixed columns leave.
func newScoreTable(width, height int) table.Model {
	const fixed = 6 + 8 + 6 + 14
	playerW := core.Clamp(width-fixed-12, 10, 24)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 6},
			{Title: "Player", Width: playerW},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "When", Width: 14},
		}),
		table.WithHeight(max(height-scoreChromeLines, 3)),
		table.WithFocused(true),
		table.WithStyles(st),
	)
}

func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.table = newScoreTable(width, height)
	m.fillTable()
}

// reload queries the active tab.
func (m *ScoreboardModel) reload() {
	m.rows, m.err = nil, nil
	switch {
	case m.source == nil:
	case m.tab == tabLeaderboard:
		m.rows, m.err = m.source.Leaderboard(scoreRows)
	default:
		m.rows, m.err = m.source.TopScores(m.player, scoreRows)
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for i, e := range m.rows {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			e.Player,
			humanize.Comma(int64(e.Score)),
			strconv.Itoa(e.Level),
			humanize.Time(e.CreatedAt),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(k, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(k, m.keys.Tab):
			m.tab = (m.tab + 1) % tabCount
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	labels := [tabCount]string{"Leaderboard", m.player}
	tabs := make([]string, 0, len(labels))
	for i, label := range labels {
		style := m.styles.tab
		if scoreTab(i) == m.tab {
			style = m.styles.activeTab
		}
		tabs = append(tabs, style.Render(label))
	}

	body := m.table.View()
	switch {
	case m.source == nil:
		body = m.styles.empty.Render("Scores are not being saved.")
	case m.err != nil:
		body = m.styles.empty.Render("Cannot load scores: " + m.err.Error())
	case len(m.rows) == 0:
		body = m.styles.empty.Render("No scores recorded yet.\nFly to set a high score!")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(m.styles.title.Render("HIGH SCORES"), m.width),
		"",
		centerText(strings.Join(tabs, " "), m.width),
		"",
		centerText(m.styles.frame.Render(body), m.width),
		m.styles.help.Render(m.help.View(m.keys)),
	)
}

// IsGoingBack reports whether the user asked to return to the game.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText centres every line of text in width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
