package core

import "strings"

// Action represents a semantic player intent, abstracted from physical keys,
// taps or network messages.
type Action int

const (
	ActionNone  Action = iota
	ActionFlap         // Space, Up, W, tap - the only control signal of the simulation
	ActionPause        // P - pause/unpause a running session
	ActionTheme        // T - cycle the visual theme
	ActionBack         // B - leave the game screen
	ActionQuit         // Q, Ctrl+C - exit
	ActionSkin         // S - switch to the next owned skin
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionFlap:
		return "flap"
	case ActionPause:
		return "pause"
	case ActionTheme:
		return "theme"
	case ActionBack:
		return "back"
	case ActionQuit:
		return "quit"
	case ActionSkin:
		return "skin"
	default:
		return "unknown"
	}
}

// ParseAction converts a name produced by String back into an Action.
// Unknown names map to ActionNone.
func ParseAction(name string) Action {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flap":
		return ActionFlap
	case "pause":
		return ActionPause
	case "theme":
		return ActionTheme
	case "back":
		return ActionBack
	case "quit":
		return ActionQuit
	case "skin":
		return ActionSkin
	default:
		return ActionNone
	}
}
