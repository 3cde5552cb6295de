package sim

// Clock holds the session's timers in seconds. Spawn and trail
// accumulators reset to zero when they fire.
type Clock struct {
	Obstacle float64 `json:"obstacle"`
	Coin     float64 `json:"coin"`
	PowerUp  float64 `json:"powerUp"`
	Trail    float64 `json:"trail"`
	Elapsed  float64 `json:"elapsed"`
}

// advance adds dt to every timer.
func (c *Clock) advance(dt float64) {
	c.Obstacle += dt
	c.Coin += dt
	c.PowerUp += dt
	c.Trail += dt
	c.Elapsed += dt
}

// fire reports whether acc has run past interval and resets it if so.
func fire(acc *float64, interval float64) bool {
	if *acc > interval {
		*acc = 0
		return true
	}
	return false
}
