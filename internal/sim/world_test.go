package sim

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/theme"
)

var noon = time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)

const frame = 16 * time.Millisecond

func testWorld(t *testing.T) World {
	t.Helper()
	return New(config.DefaultSkybirdConfig(), 42, progress.DefaultProfile(), noon)
}

func playing(t *testing.T) World {
	t.Helper()
	w, fx := Reduce(testWorld(t), Flap{At: noon})
	if w.Phase() != Playing {
		t.Fatalf("phase after first flap = %s, expected playing", w.Phase())
	}
	if !hasEffect[SessionStarted](fx) {
		t.Fatalf("expected SessionStarted, got %v", fx)
	}
	return w
}

func step(w World, dt time.Duration) (World, []Effect) {
	return Reduce(w, Tick{Dt: dt, At: noon})
}

func hasEffect[T Effect](fx []Effect) bool {
	for _, e := range fx {
		if _, ok := e.(T); ok {
			return true
		}
	}
	return false
}

func findEffect[T Effect](fx []Effect) (T, bool) {
	for _, e := range fx {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestNewWorldIsIdle(t *testing.T) {
	w := testWorld(t)
	s := w.State()

	if w.Phase() != Idle || s.IsPlaying || s.IsPaused {
		t.Errorf("new world should be idle, got %+v", s)
	}
	if s.Coins != 150 || s.Level != 1 || s.ExperienceToNext != 100 {
		t.Errorf("unexpected restored progression: %+v", s)
	}
	if s.CurrentTheme != theme.Summer {
		t.Errorf("theme at 13h = %s, expected summer", s.CurrentTheme)
	}

	// Ticks are ignored until the first flap.
	w2, fx := step(w, frame)
	if w2.Ticks() != 0 || fx != nil {
		t.Error("idle world should not tick")
	}
}

func TestFlapStartsSessionAtStartPosition(t *testing.T) {
	w := playing(t)
	f := w.Snapshot()

	if f.Bird.Pos != (Vec{X: 80, Y: 300}) {
		t.Errorf("start position = %+v, expected {80 300}", f.Bird.Pos)
	}
	if f.Bird.Vel != (Vec{}) || f.Bird.Rotation != 0 || len(f.Bird.Trail) != 0 {
		t.Errorf("bird not reset: %+v", f.Bird)
	}
	if len(f.Obstacles)+len(f.Coins)+len(f.PowerUps) != 0 {
		t.Error("entity lists should start empty")
	}
}

func TestFlapWhilePlaying(t *testing.T) {
	w := playing(t)
	w, _ = step(w, 500*time.Millisecond)
	w, fx := Reduce(w, Flap{At: noon})

	if w.bird.Vel.Y != w.cfg.Physics.FlapStrength || !w.bird.Flapping {
		t.Errorf("flap velocity = %v, expected %v", w.bird.Vel.Y, w.cfg.Physics.FlapStrength)
	}
	if h, ok := findEffect[Haptic](fx); !ok || h.Impact != ImpactLight {
		t.Errorf("expected light haptic, got %v", fx)
	}
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	w := playing(t)
	w.obstacles = []Obstacle{{ID: "o", Kind: Ring, Pos: Vec{X: 200, Y: 0}, Size: Ring.Size()}}
	w.coins = []Coin{{ID: "c", Pos: Vec{X: 300, Y: 0}, Value: 1}}
	w.bird.Trail = []Vec{{X: 1, Y: 1}}
	before := w.Snapshot()

	a, _ := step(w, 100*time.Millisecond)
	b, _ := step(w, 100*time.Millisecond)

	if !reflect.DeepEqual(w.Snapshot(), before) {
		t.Error("Reduce modified its input world")
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("reducing the same world twice gave different results")
	}
}

func TestReduceReturnsUpdatedWorld(t *testing.T) {
	w := playing(t)
	if w.Ticks() != 0 {
		t.Fatalf("ticks = %d before any tick", w.Ticks())
	}

	next, _ := step(w, frame)
	if next.Ticks() != 1 || next.Snapshot().Elapsed == 0 {
		t.Errorf("tick result not returned: ticks=%d elapsed=%v", next.Ticks(), next.Snapshot().Elapsed)
	}

	flapped, fx := Reduce(next, Flap{At: noon})
	if !flapped.bird.Flapping || len(fx) == 0 {
		t.Errorf("flap result not returned: flapping=%v fx=%v", flapped.bird.Flapping, fx)
	}
}

func TestDeterministicForSeed(t *testing.T) {
	run := func(seed int64) Frame {
		w := New(config.DefaultSkybirdConfig(), seed, progress.DefaultProfile(), noon)
		w, _ = Reduce(w, Flap{At: noon})
		for i := 0; i < 600 && w.Phase() == Playing; i++ {
			if i%25 == 0 {
				w, _ = Reduce(w, Flap{At: noon})
			}
			w, _ = step(w, frame)
		}
		return w.Snapshot()
	}

	a, b := run(7), run(7)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs should produce identical frames")
	}

	c := run(8)
	if len(a.Obstacles) > 0 && len(c.Obstacles) > 0 && a.Obstacles[0].ID == c.Obstacles[0].ID {
		t.Error("different seeds should produce different entity ids")
	}
}

func TestDeltaClamped(t *testing.T) {
	w := playing(t)

	w, _ = step(w, 5*time.Second)
	if w.clock.Elapsed != w.cfg.Loop.MaxDelta {
		t.Errorf("elapsed after 5s tick = %v, expected %v", w.clock.Elapsed, w.cfg.Loop.MaxDelta)
	}

	before := w.bird.Pos
	w, _ = step(w, -time.Second)
	if w.clock.Elapsed != w.cfg.Loop.MaxDelta || w.bird.Pos != before {
		t.Error("negative dt should not advance the simulation")
	}
}

func TestSpawnTimers(t *testing.T) {
	w := playing(t)
	tick := 100 * time.Millisecond

	for i := 0; i < 17; i++ {
		w, _ = step(w, tick)
	}
	if len(w.coins) != 0 {
		t.Fatalf("coin spawned before 1.8s: %d", len(w.coins))
	}

	w, _ = step(w, tick)
	w, _ = step(w, tick)
	if len(w.coins) != 1 {
		t.Fatalf("expected one coin after 1.9s, got %d", len(w.coins))
	}

	for i := 19; i < 24; i++ {
		w, _ = step(w, tick)
	}
	if len(w.obstacles) != 0 {
		t.Fatalf("obstacle spawned before 2.5s: %d", len(w.obstacles))
	}

	w, _ = step(w, tick)
	w, _ = step(w, tick)
	if w.Phase() != Playing {
		t.Fatalf("bird should still be flying, phase %s", w.Phase())
	}
	if len(w.obstacles) != 1 {
		t.Fatalf("expected one obstacle after 2.6s, got %d", len(w.obstacles))
	}
	if w.clock.Obstacle >= tick.Seconds()+1e-9 {
		t.Errorf("obstacle timer should reset on spawn, got %v", w.clock.Obstacle)
	}

	o := w.obstacles[0]
	if o.ID == "" || o.Color == "" {
		t.Errorf("spawned obstacle incomplete: %+v", o)
	}
}

func TestNewObstacleVariants(t *testing.T) {
	w := playing(t)
	f, s := w.cfg.Playfield, w.cfg.Spawn
	r := newTestRand(3)

	seen := map[ObstacleKind]bool{}
	for i := 0; i < 200; i++ {
		o := w.newObstacle(r)
		seen[o.Kind] = true

		if o.Size != o.Kind.Size() {
			t.Errorf("%s size = %+v", o.Kind, o.Size)
		}
		if o.Pos.X != f.Width+o.Size.W {
			t.Errorf("%s spawned at x=%v", o.Kind, o.Pos.X)
		}
		top := f.Height * s.ObstacleBandTop
		if o.Pos.Y < top || o.Pos.Y > top+f.Height*s.ObstacleBandHeight {
			t.Errorf("%s spawned outside band at y=%v", o.Kind, o.Pos.Y)
		}
		bobs := o.Kind == Balloon || o.Kind == Platform
		if (o.Bob != nil) != bobs {
			t.Errorf("%s bob = %v", o.Kind, o.Bob)
		}
		inPalette := false
		for _, c := range w.theme.ObstacleColors {
			inPalette = inPalette || c == o.Color
		}
		if !inPalette {
			t.Errorf("colour %s not from theme palette", o.Color)
		}
	}
	if len(seen) != len(ObstacleKinds) {
		t.Errorf("not every variant spawned: %v", seen)
	}
}

func TestBobbingObstacleMoves(t *testing.T) {
	w := playing(t)
	w.clock.Elapsed = 1
	bob := &Bob{BaseY: 250, Amplitude: 30, Frequency: 2, Phase: -2}
	w.obstacles = []Obstacle{{ID: "p", Kind: Platform, Pos: Vec{X: 300, Y: 250}, Size: Platform.Size(), Bob: bob}}

	w, _ = step(w, 100*time.Millisecond)

	want := bob.At(w.clock.Elapsed)
	if got := w.obstacles[0].Pos.Y; got != want {
		t.Errorf("platform y = %v, expected %v", got, want)
	}
	if want == 250 {
		t.Error("platform should have moved off its base height")
	}
}

func TestObstaclePrunedOffscreen(t *testing.T) {
	w := playing(t)
	w.obstacles = []Obstacle{
		{ID: "gone", Kind: Ring, Pos: Vec{X: -81, Y: 0}, Size: Ring.Size(), Passed: true},
		{ID: "kept", Kind: Ring, Pos: Vec{X: -70, Y: 0}, Size: Ring.Size(), Passed: true},
	}

	w, _ = step(w, frame)

	if len(w.obstacles) != 1 || w.obstacles[0].ID != "kept" {
		t.Errorf("expected only the visible obstacle, got %+v", w.obstacles)
	}
}

func TestObstaclePassedOnce(t *testing.T) {
	w := playing(t)
	w.obstacles = []Obstacle{{ID: "b", Kind: Branch, Pos: Vec{X: w.bird.Pos.X + 5, Y: 0}, Size: Branch.Size()}}

	passes := 0
	for i := 0; i < 30; i++ {
		var fx []Effect
		w, fx = step(w, frame)
		for _, e := range fx {
			if h, ok := e.(Haptic); ok && h.Impact == ImpactLight {
				passes++
			}
		}
	}

	if passes != 1 {
		t.Errorf("pass fired %d times, expected once", passes)
	}
	if w.State().Score != 1 || w.State().PerfectFlightCombo != 1 {
		t.Errorf("score=%d combo=%d, expected 1/1", w.State().Score, w.State().PerfectFlightCombo)
	}
	if !w.obstacles[0].Passed {
		t.Error("obstacle should be marked passed")
	}
}

func TestFloorContactEndsSession(t *testing.T) {
	w := playing(t)
	w.bird.Pos.Y = w.cfg.Playfield.Height - w.cfg.Playfield.BirdSize - 0.1
	w.bird.Vel.Y = 60
	w.progress.Score = 7

	w, fx := step(w, frame)

	if w.Phase() != GameOver {
		t.Fatalf("phase = %s, expected game_over", w.Phase())
	}
	end, ok := findEffect[SessionEnded](fx)
	if !ok || end.Cause != CauseFloor {
		t.Fatalf("expected SessionEnded by floor, got %v", fx)
	}
	if end.Result.HighScore != 7 || end.Profile.HighScore != 7 {
		t.Errorf("high score not recorded: %+v", end.Result)
	}
	if h, ok := findEffect[Haptic](fx); !ok || h.Impact != ImpactHeavy {
		t.Errorf("expected heavy haptic, got %v", fx)
	}

	// A stray tick after game over changes nothing.
	after, fx := step(w, frame)
	if fx != nil || !reflect.DeepEqual(after.Snapshot(), w.Snapshot()) {
		t.Error("tick after game over should be a no-op")
	}
}

func TestObstacleCollisionIsFatal(t *testing.T) {
	w := playing(t)
	w.obstacles = []Obstacle{
		// Passes on this tick.
		{ID: "ahead", Kind: Branch, Pos: Vec{X: w.bird.Pos.X + 1, Y: 0}, Size: Branch.Size()},
		// Overlaps the bird.
		{ID: "hit", Kind: Ring, Pos: Vec{X: w.bird.Pos.X + 10, Y: w.bird.Pos.Y}, Size: Ring.Size()},
	}

	w, fx := step(w, frame)

	end, ok := findEffect[SessionEnded](fx)
	if !ok || end.Cause != CauseCollision {
		t.Fatalf("expected SessionEnded by collision, got %v", fx)
	}
	if w.State().Score != 1 || end.Result.Score != 1 {
		t.Errorf("pass on the crashing tick should score, got %d", w.State().Score)
	}
	if w.State().IsPlaying {
		t.Error("isPlaying should be false after game over")
	}
}

func TestCoinStreakScenario(t *testing.T) {
	w := playing(t)
	w.progress.CoinStreak = 4
	coins := w.State().Coins
	w.coins = []Coin{{ID: "c", Pos: w.bird.Pos, Value: 1}}

	w, fx := step(w, frame)

	s := w.State()
	if s.CoinStreak != 5 || s.Coins != coins+1 {
		t.Errorf("streak=%d coins=%d, expected 5/%d", s.CoinStreak, s.Coins, coins+1)
	}
	if len(w.coins) != 0 {
		t.Error("collected coin should be removed")
	}
	a, ok := findEffect[AchievementUnlocked](fx)
	if !ok {
		t.Fatalf("expected a live achievement, got %v", fx)
	}
	if a.Achievement.Progress != 5 || a.Achievement.Target != 5 {
		t.Errorf("achievement progress/target = %d/%d, expected 5/5", a.Achievement.Progress, a.Achievement.Target)
	}
	if h, ok := findEffect[Haptic](fx); !ok || h.Impact != ImpactMedium {
		t.Errorf("expected medium haptic, got %v", fx)
	}
	if len(s.LiveAchievements) != 1 {
		t.Errorf("live achievements = %d, expected 1", len(s.LiveAchievements))
	}
}

func TestMissedCoinBreaksStreak(t *testing.T) {
	w := playing(t)
	w.progress.CoinStreak = 3
	w.coins = []Coin{{ID: "c", Pos: Vec{X: -31, Y: 0}, Value: 1}}
	w.powerUps = []PowerUp{{ID: "p", Kind: progress.Magnet, Pos: Vec{X: -31, Y: 0}}}

	w, _ = step(w, frame)

	if len(w.coins) != 0 || len(w.powerUps) != 0 {
		t.Error("offscreen collectibles should be pruned")
	}
	if w.State().CoinStreak != 0 {
		t.Errorf("coin streak = %d, expected 0", w.State().CoinStreak)
	}
}

func TestPowerUpCollection(t *testing.T) {
	w := playing(t)
	w.powerUps = []PowerUp{{ID: "p", Kind: progress.Shield, Pos: w.bird.Pos, Duration: progress.Shield.Duration()}}
	score, coins := w.State().Score, w.State().Coins

	w, fx := step(w, frame)

	s := w.State()
	if len(s.ActivePowerUps) != 1 || s.ActivePowerUps[0].Kind != progress.Shield {
		t.Fatalf("active power-ups = %+v", s.ActivePowerUps)
	}
	if s.Score != score || s.Coins != coins {
		t.Error("power-up should not change score or coins")
	}
	a, ok := findEffect[AchievementUnlocked](fx)
	if !ok || a.Achievement.Title != "Power Up!" {
		t.Errorf("expected Power Up! achievement, got %v", fx)
	}

	// Counts down while playing and expires.
	for i := 0; i < 60; i++ {
		w.bird.Pos.Y = 300
		w.bird.Vel.Y = 0
		w, _ = step(w, 100*time.Millisecond)
	}
	if len(w.State().ActivePowerUps) != 0 {
		t.Errorf("shield should expire after 5s, got %+v", w.State().ActivePowerUps)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	w := playing(t)
	w, _ = step(w, frame)

	w, _ = Reduce(w, PauseToggle{})
	if w.Phase() != Paused || !w.State().IsPaused || !w.State().IsPlaying {
		t.Fatalf("expected paused, got %+v", w.State())
	}

	before := w.Snapshot()
	w, _ = step(w, frame)
	w, _ = Reduce(w, Flap{At: noon})
	if !reflect.DeepEqual(w.Snapshot(), before) {
		t.Error("paused world should ignore ticks and flaps")
	}

	w, _ = Reduce(w, PauseToggle{})
	if w.Phase() != Playing {
		t.Fatalf("expected playing after second toggle, got %s", w.Phase())
	}
	w, _ = step(w, frame)
	if w.Ticks() != before.Tick+1 {
		t.Errorf("ticks = %d, expected %d", w.Ticks(), before.Tick+1)
	}

	// Toggling outside a session does nothing.
	idle, _ := Reduce(testWorld(t), PauseToggle{})
	if idle.Phase() != Idle {
		t.Errorf("pause toggle from idle gave %s", idle.Phase())
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	w := playing(t)
	w.progress.CoinStreak = 4
	w.progress.PerfectFlightCombo = 2
	w.coins = []Coin{{ID: "c", Pos: w.bird.Pos, Value: 1}}
	w, _ = step(w, frame)
	w.progress.Score = 12
	w.bird.Pos.Y = 600
	w, _ = step(w, frame)
	if w.Phase() != GameOver {
		t.Fatalf("expected game over, got %s", w.Phase())
	}
	before := w.State()
	if len(before.LiveAchievements) == 0 {
		t.Fatal("expected live achievements before restart")
	}

	night := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
	w, _ = Reduce(w, Flap{At: night})

	s := w.State()
	if w.Phase() != Playing {
		t.Fatalf("flap from game over should start a session, got %s", w.Phase())
	}
	if s.Score != 0 || len(s.LiveAchievements) != 0 || s.CoinStreak != 0 || s.PerfectFlightCombo != 0 {
		t.Errorf("session state not reset: %+v", s)
	}
	if s.Coins != before.Coins || s.HighScore != before.HighScore || s.HighScore != 12 {
		t.Errorf("coins/highScore = %d/%d, expected %d/%d", s.Coins, s.HighScore, before.Coins, before.HighScore)
	}
	if s.CurrentTheme != theme.Night {
		t.Errorf("theme = %s, expected night", s.CurrentTheme)
	}
}

func TestSwitchThemePinsTheme(t *testing.T) {
	w := testWorld(t)

	w, _ = Reduce(w, SwitchTheme{ID: "nope"})
	if w.Theme().ID != theme.Summer {
		t.Errorf("unknown theme should be ignored, got %s", w.Theme().ID)
	}

	w, _ = Reduce(w, SwitchTheme{ID: theme.Winter})
	w, _ = Reduce(w, Flap{At: noon})
	if w.Theme().ID != theme.Winter {
		t.Errorf("explicit theme replaced at session start: %s", w.Theme().ID)
	}
}

func TestSelectSkin(t *testing.T) {
	p := progress.DefaultProfile()
	p.OwnedSkins = append(p.OwnedSkins, "robin")
	w := New(config.DefaultSkybirdConfig(), 1, p, noon)

	w, fx := Reduce(w, SelectSkin{ID: "robin"})
	sel, ok := findEffect[SkinSelected](fx)
	if !ok || sel.Profile.SelectedSkin != "robin" {
		t.Fatalf("expected SkinSelected, got %v", fx)
	}
	if w.Snapshot().Bird.Skin != "robin" || w.State().SelectedSkin != "robin" {
		t.Error("bird skin not updated")
	}

	w, fx = Reduce(w, SelectSkin{ID: "phoenix"})
	if fx != nil || w.State().SelectedSkin != "robin" {
		t.Error("unowned skin should be ignored")
	}
}

func TestLongRunInvariants(t *testing.T) {
	w := playing(t)
	cfg := w.cfg
	maxY := cfg.Playfield.Height - cfg.Playfield.BirdSize
	passed := map[string]bool{}

	for i := 0; i < 3000; i++ {
		if w.Phase() == GameOver {
			w, _ = Reduce(w, Flap{At: noon})
		}
		if w.bird.Pos.Y > 300 {
			w, _ = Reduce(w, Flap{At: noon})
		}
		w, _ = step(w, frame)

		f := w.Snapshot()
		if f.Bird.Vel.Y > cfg.Physics.MaxFallSpeed {
			t.Fatalf("tick %d: velocity %v", i, f.Bird.Vel.Y)
		}
		if f.Bird.Pos.Y < 0 || f.Bird.Pos.Y > maxY {
			t.Fatalf("tick %d: y %v out of bounds", i, f.Bird.Pos.Y)
		}
		if len(f.State.LiveAchievements) > progress.LiveCapacity {
			t.Fatalf("tick %d: %d live achievements", i, len(f.State.LiveAchievements))
		}
		if f.State.Experience >= f.State.ExperienceToNext {
			t.Fatalf("tick %d: experience invariant broken", i)
		}
		if len(f.Bird.Trail) > cfg.Loop.TrailLength {
			t.Fatalf("tick %d: trail length %d", i, len(f.Bird.Trail))
		}
		for _, o := range f.Obstacles {
			if passed[o.ID] && !o.Passed {
				t.Fatalf("tick %d: obstacle %s lost its passed flag", i, o.ID)
			}
			if o.Passed {
				passed[o.ID] = true
			}
		}
	}
}
