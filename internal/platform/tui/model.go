package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/engine"
	"github.com/vovakirdan/skybird/internal/sim"
	"github.com/vovakirdan/skybird/internal/theme"
)

const flashDuration = 150 * time.Millisecond

// flashDoneMsg clears the crash flash.
type flashDoneMsg struct{}

// Model is the Bubble Tea model for one skybird session. It only ticks
// while the session is playing.
type Model struct {
	session  *engine.Session
	cfg      config.SkybirdConfig
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	interval time.Duration

	frame    sim.Frame
	gen      uint64
	ticking  bool
	lastTick time.Time
	flash    bool
	quitting bool
	back     bool
}

// NewModel creates a model for the session. rc.TickRate overrides the
// configured tick interval when positive.
func NewModel(session *engine.Session, rc core.RuntimeConfig) Model {
	cfg := session.World().Config()
	interval := time.Duration(cfg.Loop.TickMillis) * time.Millisecond
	if rc.TickRate > 0 {
		interval = time.Second / time.Duration(rc.TickRate)
	}

	h := help.New()
	h.Width = rc.ScreenW

	return Model{
		session:  session,
		cfg:      cfg,
		screen:   core.NewScreen(rc.ScreenW, core.Max(rc.ScreenH-1, 1)),
		keys:     DefaultKeyMap(),
		help:     h,
		interval: interval,
		frame:    session.Frame(),
	}
}

// Init does nothing; the loop starts with the first flap.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case flashDoneMsg:
		m.flash = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var fx []sim.Effect

	switch m.keys.ActionFor(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.session.Phase() == sim.Playing {
			return m, nil
		}
		m.back = true
		return m, nil

	case core.ActionFlap:
		fx = m.session.Flap()

	case core.ActionPause:
		fx = m.session.TogglePause()

	case core.ActionTheme:
		next := theme.Next(m.session.World().Theme().ID)
		fx = m.session.Apply(sim.SwitchTheme{ID: next.ID})

	case core.ActionSkin:
		fx = m.session.Apply(sim.SelectSkin{ID: m.nextSkin()})

	default:
		return m, nil
	}

	return m.afterEvent(fx, false)
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticking || msg.Gen != m.gen {
		return m, nil
	}
	dt := msg.At.Sub(m.lastTick)
	m.lastTick = msg.At

	fx := m.session.Apply(sim.Tick{Dt: dt, At: msg.At})
	return m.afterEvent(fx, true)
}

// afterEvent refreshes the frame, reacts to effects and reconciles the
// tick loop with the session phase. Only a tick reschedules a running
// loop, so there is never more than one chain per generation.
func (m Model) afterEvent(fx []sim.Effect, fromTick bool) (tea.Model, tea.Cmd) {
	m.frame = m.session.Frame()

	var cmds []tea.Cmd
	for _, e := range fx {
		if _, ok := e.(sim.SessionEnded); ok {
			m.flash = true
			cmds = append(cmds, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} }))
		}
	}

	playing := m.frame.State.Phase == sim.Playing.String()
	switch {
	case playing && m.ticking:
		if fromTick {
			cmds = append(cmds, tickCmd(m.interval, m.gen))
		}
	case playing:
		m.gen++
		m.ticking = true
		m.lastTick = time.Now()
		cmds = append(cmds, tickCmd(m.interval, m.gen))
	case m.ticking:
		m.gen++
		m.ticking = false
	}
	return m, tea.Batch(cmds...)
}

// nextSkin returns the owned skin after the selected one.
func (m Model) nextSkin() string {
	p := m.session.World().Profile()
	if len(p.OwnedSkins) == 0 {
		return p.SelectedSkin
	}
	i := slices.Index(p.OwnedSkins, p.SelectedSkin)
	return p.OwnedSkins[(i+1)%len(p.OwnedSkins)]
}

// View renders the current frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawFrame(m.screen, m.frame, m.session.World().Theme(), m.cfg.Playfield, m.flash, time.Now())
	helpLine := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + helpLine
}

// Frame returns the last rendered frame.
func (m Model) Frame() sim.Frame {
	return m.frame
}

// Ticking reports whether a tick loop is scheduled.
func (m Model) Ticking() bool {
	return m.ticking
}

// IsQuitting returns true if user wants to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackRequested returns true if the user left the game screen.
func (m Model) BackRequested() bool {
	return m.back
}
