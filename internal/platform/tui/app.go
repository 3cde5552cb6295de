package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/engine"
)

// AppModel is the top-level model shared by the local terminal and SSH
// sessions. B on the game screen opens the scoreboard and back again.
type AppModel struct {
	game       Model
	scoreboard *ScoreboardModel
	scores     ScoreSource
	config     core.RuntimeConfig
	quitting   bool
}

// NewAppModel creates the app for a session. scores may be nil.
func NewAppModel(session *engine.Session, scores ScoreSource, rc core.RuntimeConfig) AppModel {
	return AppModel{
		game:   NewModel(session, rc),
		scores: scores,
		config: rc,
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		// Both screens track the size so switching does not need a resize.
		if m.scoreboard != nil {
			sb, _ := m.scoreboard.Update(msg)
			board := sb.(ScoreboardModel)
			m.scoreboard = &board
		}
		g, cmd := m.game.Update(msg)
		m.game = g.(Model)
		return m, cmd
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m.updateGame(msg)
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	g, cmd := m.game.Update(msg)
	m.game = g.(Model)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackRequested() {
		m.game.back = false
		board := NewScoreboardModel(m.scores, m.game.session.Player(), m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &board
		return m, board.Init()
	}
	return m, cmd
}

func (m AppModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case TickMsg, flashDoneMsg:
		g, cmd := m.game.Update(msg)
		m.game = g.(Model)
		return m, cmd
	}

	sb, cmd := m.scoreboard.Update(msg)
	board := sb.(ScoreboardModel)
	m.scoreboard = &board

	if board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if board.IsGoingBack() {
		m.scoreboard = nil
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.game.View()
}

// Run starts the Bubble Tea program for a local terminal.
func Run(session *engine.Session, scores ScoreSource, rc core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(session, scores, rc),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	session.SaveProgress()
	return err
}
