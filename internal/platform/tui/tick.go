// Package tui provides the Bubble Tea front end: the game model, the
// terminal renderer, the score table and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Gen identifies the tick
// loop that scheduled it; ticks from a stopped loop are dropped.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
