package tui

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/sim"
	"github.com/vovakirdan/skybird/internal/skins"
	"github.com/vovakirdan/skybird/internal/theme"
)

// Layout constants
const (
	hudRows           = 2
	minFieldW         = 20
	minFieldH         = 6
	achievementWindow = 3 * time.Second
)

// styles caches one lipgloss style per colour. Shared by SSH sessions.
var styles sync.Map

func styleFor(c core.Color) lipgloss.Style {
	if c == core.ColorDefault {
		return lipgloss.NewStyle()
	}
	if st, ok := styles.Load(c); ok {
		return st.(lipgloss.Style)
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
	styles.Store(c, st)
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// viewport maps world coordinates onto the screen cells below the HUD.
type viewport struct {
	field  core.Rect
	worldW float64
	worldH float64
}

func newViewport(s *core.Screen, f config.PlayfieldConfig) viewport {
	return viewport{
		field:  core.NewRect(0, hudRows, s.Width(), s.Height()-hudRows),
		worldW: f.Width,
		worldH: f.Height,
	}
}

func (v viewport) point(p sim.Vec) (int, int) {
	x := v.field.X + int(math.Floor(p.X/v.worldW*float64(v.field.W)))
	y := v.field.Y + int(math.Floor(p.Y/v.worldH*float64(v.field.H)))
	return x, y
}

// rect projects a world box, keeping at least one cell in each direction.
func (v viewport) rect(p sim.Vec, s sim.Size) core.Rect {
	x, y := v.point(p)
	w := int(math.Round(s.W / v.worldW * float64(v.field.W)))
	h := int(math.Round(s.H / v.worldH * float64(v.field.H)))
	return core.NewRect(x, y, core.Max(w, 1), core.Max(h, 1))
}

// tooSmallText picks the longest size warning that fits in width.
func tooSmallText(width int) string {
	for _, msg := range []string{"terminal too small", "too small"} {
		if len(msg) <= width {
			return msg
		}
	}
	return "!"
}

// drawFrame renders a simulation frame onto the screen.
func drawFrame(s *core.Screen, f sim.Frame, th theme.Theme, pf config.PlayfieldConfig, flash bool, now time.Time) {
	s.Clear()

	vp := newViewport(s, pf)
	if vp.field.W < minFieldW || vp.field.H < minFieldH {
		s.DrawTextCentered(s.Height()/2, tooSmallText(s.Width()), core.ColorRed)
		return
	}

	drawSky(s, vp, f, th)
	drawEntities(s, vp, f, pf)
	drawBird(s, vp, f, pf)
	drawHUD(s, f, th)
	drawAchievements(s, vp, f.State.LiveAchievements, now)
	drawOverlay(s, vp, f)

	if flash {
		s.DrawBox(vp.field, core.ColorRed)
	}
}

func drawSky(s *core.Screen, vp viewport, f sim.Frame, th theme.Theme) {
	cloud := core.Color(th.Cloud)
	// Clouds drift at a third of the scroll speed.
	offset := int(f.Elapsed * 4)
	for i := range 4 {
		row := vp.field.Y + 1 + (i*vp.field.H)/5
		col := (i*vp.field.W/4 + vp.field.W - offset%vp.field.W) % vp.field.W
		s.DrawTextColored(vp.field.X+col, row, "~~", cloud)
	}

	ground := vp.field.Bottom() - 1
	s.DrawHLine(vp.field.X, ground, vp.field.W, '▀', core.Color(th.Primary))
}

var obstacleGlyphs = map[sim.ObstacleKind]rune{
	sim.Ring:     'O',
	sim.Balloon:  '@',
	sim.Branch:   '=',
	sim.Platform: '#',
}

var powerUpGlyphs = map[progress.PowerUpKind]struct {
	r rune
	c core.Color
}{
	progress.Shield:      {'S', core.ColorShield},
	progress.Magnet:      {'M', core.ColorMagnet},
	progress.DoubleCoins: {'2', core.ColorDouble},
	progress.SlowMotion:  {'~', core.ColorSlow},
}

func drawEntities(s *core.Screen, vp viewport, f sim.Frame, pf config.PlayfieldConfig) {
	for _, o := range f.Obstacles {
		r := vp.rect(o.Pos, o.Size)
		c := core.Color(o.Color)
		if o.Kind == sim.Ring && r.W > 2 && r.H > 2 {
			s.DrawBox(r, c)
			continue
		}
		s.DrawRect(r, obstacleGlyphs[o.Kind], c)
	}

	for _, c := range f.Coins {
		x, y := vp.point(sim.Vec{X: c.Pos.X + pf.CollectibleSize/2, Y: c.Pos.Y + pf.CollectibleSize/2})
		glyph := 'o'
		if c.Streak {
			glyph = '$'
		}
		s.SetColored(x, y, glyph, core.ColorGold)
	}

	for _, p := range f.PowerUps {
		x, y := vp.point(sim.Vec{X: p.Pos.X + pf.CollectibleSize/2, Y: p.Pos.Y + pf.CollectibleSize/2})
		g := powerUpGlyphs[p.Kind]
		s.SetColored(x, y, g.r, g.c)
	}
}

func drawBird(s *core.Screen, vp viewport, f sim.Frame, pf config.PlayfieldConfig) {
	skin := skins.Lookup(f.Bird.Skin)
	accent := core.Color(skin.AccentColor)

	for _, p := range f.Bird.Trail {
		x, y := vp.point(sim.Vec{X: p.X, Y: p.Y + pf.BirdSize/2})
		s.SetColored(x-1, y, '·', accent)
	}

	r := vp.rect(f.Bird.Pos, sim.Size{W: pf.BirdSize, H: pf.BirdSize})
	s.DrawRect(r, '▓', core.Color(skin.Color))

	beak := '>'
	switch {
	case f.Bird.Rotation <= -15:
		beak = '/'
	case f.Bird.Rotation >= 45:
		beak = '\\'
	}
	s.SetColored(r.Right(), r.Y+r.H/2, beak, accent)
}

func drawHUD(s *core.Screen, f sim.Frame, th theme.Theme) {
	st := f.State
	line := fmt.Sprintf(" Score %d  High %d  Coins %d  Lv %d %s %d/%d",
		st.Score, st.HighScore, st.Coins, st.Level,
		xpBar(st.Experience, st.Level, st.ExperienceToNext, 10),
		st.Experience, st.ExperienceToNext)
	s.DrawTextColored(0, 0, line, core.ColorWhite)

	var b strings.Builder
	fmt.Fprintf(&b, " %s  Streak %d  Combo %d", th.Name, st.CoinStreak, st.PerfectFlightCombo)
	for _, p := range st.ActivePowerUps {
		fmt.Fprintf(&b, "  %s %.1fs", p.Kind.Label(), p.Remaining.Seconds())
	}
	s.DrawTextColored(0, 1, b.String(), core.Color(th.Accent))
}

// xpBar shows progress from the current level's start to the next threshold.
func xpBar(xp, level, next, width int) string {
	start := 0
	if level > 1 {
		start = progress.ExperienceForLevel(level - 1)
	}
	filled := 0
	if span := next - start; span > 0 {
		filled = core.Clamp((xp-start)*width/span, 0, width)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func drawAchievements(s *core.Screen, vp viewport, live []progress.LiveAchievement, now time.Time) {
	row := vp.field.Y + 1
	for _, a := range live {
		if now.Sub(a.Timestamp) >= achievementWindow {
			continue
		}
		text := fmt.Sprintf("★ %s %s (%d/%d)", a.Title, a.Description, a.Progress, a.Target)
		s.DrawTextCentered(row, text, core.ColorGold)
		row++
	}
}

func drawOverlay(s *core.Screen, vp viewport, f sim.Frame) {
	mid := vp.field.Y + vp.field.H/2
	switch f.State.Phase {
	case sim.Idle.String():
		s.DrawTextCentered(mid-1, "S K Y B I R D", core.ColorGold)
		s.DrawTextCentered(mid+1, "press space to fly", core.ColorWhite)
	case sim.Paused.String():
		s.DrawTextCentered(mid, "PAUSED", core.ColorWhite)
	case sim.GameOver.String():
		s.DrawTextCentered(mid-1, "GAME OVER", core.ColorRed)
		msg := fmt.Sprintf("score %d  best %d", f.State.Score, f.State.HighScore)
		if f.State.Score > 0 && f.State.Score >= f.State.HighScore {
			msg += "  NEW BEST!"
		}
		s.DrawTextCentered(mid, msg, core.ColorWhite)
		s.DrawTextCentered(mid+1, "space to fly again", core.ColorGray)
	}
}
