package engine

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/sim"
)

// Options configures a Session.
type Options struct {
	Player  string
	Seed    int64 // 0 picks a time-based seed
	Config  config.SkybirdConfig
	Store   ProfileStore // Optional
	Haptics Haptics      // Optional
	Logger  *log.Logger  // Optional
	Now     func() time.Time
}

// Session owns one player's World. It is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	world sim.World

	player  string
	store   ProfileStore
	haptics Haptics
	logger  *log.Logger
	now     func() time.Time
}

// NewSession restores the player's profile and creates an idle world. A
// profile that cannot be loaded is replaced by the defaults.
func NewSession(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == 0 {
		opts.Seed = opts.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	s := &Session{
		player:  opts.Player,
		store:   opts.Store,
		haptics: opts.Haptics,
		logger:  opts.Logger.With("player", opts.Player),
		now:     opts.Now,
	}
	s.world = sim.New(opts.Config, opts.Seed, s.loadProfile(), opts.Now())
	return s
}

func (s *Session) loadProfile() progress.Profile {
	if s.store == nil {
		return progress.DefaultProfile()
	}
	p, found, err := s.store.LoadProfile(s.player)
	if err != nil {
		s.logger.Warn("cannot load profile, using defaults", "err", err)
		return progress.DefaultProfile()
	}
	if !found {
		s.logger.Debug("new player, using default profile")
		return progress.DefaultProfile()
	}
	return p
}

// Apply reduces ev into the world and dispatches the resulting effects.
func (s *Session) Apply(ev sim.Event) []sim.Effect {
	s.mu.Lock()
	next, fx := sim.Reduce(s.world, ev)
	s.world = next
	s.mu.Unlock()

	for _, e := range fx {
		s.dispatch(e)
	}
	return fx
}

// Flap applies a flap at the current time.
func (s *Session) Flap() []sim.Effect {
	return s.Apply(sim.Flap{At: s.now()})
}

// TogglePause pauses or resumes the session.
func (s *Session) TogglePause() []sim.Effect {
	return s.Apply(sim.PauseToggle{})
}

// Tick advances the session by dt observed at the current time.
func (s *Session) Tick(dt time.Duration) []sim.Effect {
	return s.Apply(sim.Tick{Dt: dt, At: s.now()})
}

func (s *Session) dispatch(e sim.Effect) {
	switch e := e.(type) {
	case sim.Haptic:
		if s.haptics != nil {
			s.haptics.Impact(e.Impact)
		}
	case sim.SessionStarted:
		s.logger.Debug("session started", "theme", e.Theme)
	case sim.AchievementUnlocked:
		s.logger.Debug("live achievement", "title", e.Achievement.Title)
	case sim.SessionEnded:
		s.logger.Info("session ended",
			"cause", e.Cause,
			"score", e.Result.Score,
			"high_score", e.Result.HighScore,
			"level", e.Result.Level)
		for _, name := range e.Result.NewAchievements {
			s.logger.Info("achievement unlocked", "name", name)
		}
		s.persist(e.Profile, e.Result.Score, e.Result.Level)
	case sim.SkinSelected:
		s.persist(e.Profile, 0, 0)
	}
}

// SaveProgress persists the profile of a flight that is still in the air
// or paused, so coins collected before a disconnect are kept. The score
// is only recorded when a session ends.
func (s *Session) SaveProgress() {
	s.mu.Lock()
	phase := s.world.Phase()
	p := s.world.Profile()
	s.mu.Unlock()

	if phase != sim.Playing && phase != sim.Paused {
		return
	}
	s.logger.Debug("saving unfinished session", "phase", phase, "coins", p.Coins)
	s.persist(p, 0, 0)
}

// persist saves best-effort; failures are logged and play continues.
func (s *Session) persist(p progress.Profile, score, level int) {
	if s.store == nil {
		return
	}
	if score > 0 {
		if err := s.store.SaveScore(s.player, score, level); err != nil {
			s.logger.Warn("cannot save score", "err", err)
		}
	}
	if err := s.store.SaveProfile(s.player, p); err != nil {
		s.logger.Warn("cannot save profile", "err", err)
	}
}

// Frame returns the current snapshot.
func (s *Session) Frame() sim.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Snapshot()
}

// Phase returns the session state.
func (s *Session) Phase() sim.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Phase()
}

// World returns a copy of the world for read-only use.
func (s *Session) World() sim.World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world
}

// Player returns the profile name.
func (s *Session) Player() string {
	return s.player
}
