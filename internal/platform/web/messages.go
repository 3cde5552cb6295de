package web

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/engine"
	"github.com/vovakirdan/skybird/internal/sim"
	"github.com/vovakirdan/skybird/internal/theme"
)

// Server message types.
const (
	msgFrame  = "frame"
	msgHaptic = "haptic"
	msgError  = "error"
)

// clientMessage is sent by the browser. Type is an action name ("flap",
// "pause", "theme", "skin"); Theme and Skin are optional targets.
type clientMessage struct {
	Type  string `json:"type"`
	Theme string `json:"theme,omitempty"`
	Skin  string `json:"skin,omitempty"`
}

// serverMessage is one outbound websocket message.
type serverMessage struct {
	Type   string     `json:"type"`
	Frame  *sim.Frame `json:"frame,omitempty"`
	Impact string     `json:"impact,omitempty"`
	Error  string     `json:"error,omitempty"`
}

func frameMessage(f sim.Frame) serverMessage {
	return serverMessage{Type: msgFrame, Frame: &f}
}

func hapticMessage(i sim.Impact) serverMessage {
	return serverMessage{Type: msgHaptic, Impact: i.String()}
}

func errorMessage(err error) serverMessage {
	return serverMessage{Type: msgError, Error: err.Error()}
}

var errUnknownMessage = errors.New("web: unknown message type")

// apply forwards a client message to the runner.
func (m clientMessage) apply(r *engine.Runner) error {
	switch core.ParseAction(m.Type) {
	case core.ActionFlap:
		return r.Flap()
	case core.ActionPause:
		return r.TogglePause()
	case core.ActionTheme:
		id := theme.ID(m.Theme)
		if _, known := theme.ByID(id); !known {
			id = theme.Next(r.Session().World().Theme().ID).ID
		}
		return r.Send(sim.SwitchTheme{ID: id})
	case core.ActionSkin:
		return r.Send(sim.SelectSkin{ID: m.Skin})
	}
	return fmt.Errorf("%w: %q", errUnknownMessage, m.Type)
}
