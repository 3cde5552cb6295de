package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/progress"
)

// Vec is a point or velocity in world units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height in world units.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Bird is the player entity.
type Bird struct {
	Pos      Vec     `json:"pos"`
	Vel      Vec     `json:"vel"`
	Rotation float64 `json:"rotation"` // Degrees, positive = nose down
	Flapping bool    `json:"flapping"`
	Trail    []Vec   `json:"trail"` // Most recent first
	Skin     string  `json:"skin"`
}

// Box returns the bird's bounding box for a square bird of the given size.
func (b Bird) Box(size float64) core.Box {
	return core.NewBox(b.Pos.X, b.Pos.Y, size, size)
}

// ObstacleKind is the obstacle variant.
type ObstacleKind string

const (
	Ring     ObstacleKind = "ring"
	Balloon  ObstacleKind = "balloon"
	Branch   ObstacleKind = "branch"
	Platform ObstacleKind = "platform"
)

// ObstacleKinds lists every variant in spawn order.
var ObstacleKinds = [...]ObstacleKind{Ring, Balloon, Branch, Platform}

// Size returns the variant's fixed size.
func (k ObstacleKind) Size() Size {
	switch k {
	case Ring:
		return Size{W: 80, H: 80}
	case Balloon:
		return Size{W: 60, H: 80}
	case Branch:
		return Size{W: 100, H: 20}
	case Platform:
		return Size{W: 120, H: 20}
	default:
		return Size{W: 80, H: 80}
	}
}

// bobFrequency returns the vertical oscillation in radians per second, or
// zero for variants that do not move vertically.
func (k ObstacleKind) bobFrequency() float64 {
	switch k {
	case Balloon:
		return 1
	case Platform:
		return 2
	default:
		return 0
	}
}

// Bob is a sinusoidal vertical motion: y = BaseY + Amplitude*sin(Frequency*t + Phase),
// where t is the session's elapsed seconds.
type Bob struct {
	BaseY     float64 `json:"baseY"`
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
	Phase     float64 `json:"phase"`
}

// At returns the y position at elapsed seconds.
func (b Bob) At(elapsed float64) float64 {
	return b.BaseY + b.Amplitude*math.Sin(b.Frequency*elapsed+b.Phase)
}

// Obstacle is a fatal scrolling entity. Bob is nil for static variants and
// never modified once set.
type Obstacle struct {
	ID     string       `json:"id"`
	Kind   ObstacleKind `json:"kind"`
	Pos    Vec          `json:"pos"`
	Size   Size         `json:"size"`
	Bob    *Bob         `json:"bob,omitempty"`
	Passed bool         `json:"passed"`
	Color  string       `json:"color"`
}

// Box returns the obstacle's bounding box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.Pos.X, o.Pos.Y, o.Size.W, o.Size.H)
}

// Coin is a collectible worth Value coins. Streak marks coins spawned while
// a coin streak was running.
type Coin struct {
	ID        string `json:"id"`
	Pos       Vec    `json:"pos"`
	Collected bool   `json:"collected"`
	Value     int    `json:"value"`
	Streak    bool   `json:"streak"`
}

// PowerUp is a collectible that activates a timed effect.
type PowerUp struct {
	ID        string               `json:"id"`
	Kind      progress.PowerUpKind `json:"kind"`
	Pos       Vec                  `json:"pos"`
	Collected bool                 `json:"collected"`
	Duration  time.Duration        `json:"duration"`
}

func collectibleBox(pos Vec, size float64) core.Box {
	return core.NewBox(pos.X, pos.Y, size, size)
}
