package progress

import "time"

// PowerUpKind identifies a power-up variant.
type PowerUpKind string

const (
	Shield      PowerUpKind = "shield"
	Magnet      PowerUpKind = "magnet"
	DoubleCoins PowerUpKind = "double_coins"
	SlowMotion  PowerUpKind = "slow_motion"
)

// PowerUpKinds lists every variant in spawn order.
var PowerUpKinds = [...]PowerUpKind{Shield, Magnet, DoubleCoins, SlowMotion}

// Duration returns how long the power-up stays active once collected.
func (k PowerUpKind) Duration() time.Duration {
	switch k {
	case Shield:
		return 5 * time.Second
	case Magnet:
		return 8 * time.Second
	case DoubleCoins:
		return 10 * time.Second
	case SlowMotion:
		return 6 * time.Second
	default:
		return 0
	}
}

// Label returns a display name.
func (k PowerUpKind) Label() string {
	switch k {
	case Shield:
		return "Shield"
	case Magnet:
		return "Magnet"
	case DoubleCoins:
		return "Double Coins"
	case SlowMotion:
		return "Slow Motion"
	default:
		return string(k)
	}
}

// ActivePowerUp is a collected power-up counting down.
type ActivePowerUp struct {
	Kind      PowerUpKind   `json:"kind"`
	Remaining time.Duration `json:"remaining"`
}

// activate starts kind's countdown, refreshing it if already active.
func (t *Tracker) activate(kind PowerUpKind) {
	d := kind.Duration()
	out := make([]ActivePowerUp, 0, len(t.ActivePowerUps)+1)
	for _, p := range t.ActivePowerUps {
		if p.Kind != kind {
			out = append(out, p)
		}
	}
	t.ActivePowerUps = append(out, ActivePowerUp{Kind: kind, Remaining: d})
}

// DecayPowerUps counts every active power-up down by dt and drops the
// expired ones. Negative dt is ignored.
func (t *Tracker) DecayPowerUps(dt time.Duration) {
	if dt <= 0 || len(t.ActivePowerUps) == 0 {
		return
	}
	out := make([]ActivePowerUp, 0, len(t.ActivePowerUps))
	for _, p := range t.ActivePowerUps {
		p.Remaining -= dt
		if p.Remaining <= 0 {
			continue
		}
		out = append(out, p)
	}
	t.ActivePowerUps = out
}

// HasPowerUp reports whether kind is currently active.
func (t *Tracker) HasPowerUp(kind PowerUpKind) bool {
	for _, p := range t.ActivePowerUps {
		if p.Kind == kind {
			return true
		}
	}
	return false
}
