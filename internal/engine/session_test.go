package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/sim"
)

var noon = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

type memStore struct {
	mu       sync.Mutex
	profiles map[string]progress.Profile
	scores   []int
	loadErr  error
	saveErr  error
	saves    int
}

func newMemStore() *memStore {
	return &memStore{profiles: map[string]progress.Profile{}}
}

func (m *memStore) LoadProfile(player string) (progress.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return progress.Profile{}, false, m.loadErr
	}
	p, ok := m.profiles[player]
	return p, ok, nil
}

func (m *memStore) SaveProfile(player string, p progress.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles[player] = p
	return nil
}

func (m *memStore) SaveScore(player string, score, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.scores = append(m.scores, score)
	return nil
}

func (m *memStore) profile(player string) (progress.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[player]
	return p, ok
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

type recordHaptics struct {
	mu      sync.Mutex
	impacts []sim.Impact
}

func (r *recordHaptics) Impact(i sim.Impact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.impacts = append(r.impacts, i)
}

func (r *recordHaptics) all() []sim.Impact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sim.Impact(nil), r.impacts...)
}

// fallingConfig makes the bird reach the floor quickly.
func fallingConfig() config.SkybirdConfig {
	cfg := config.DefaultSkybirdConfig()
	cfg.Physics.Gravity = 6000
	cfg.Physics.MaxFallSpeed = 6000
	return cfg
}

func newTestSession(store ProfileStore, h Haptics, cfg config.SkybirdConfig) *Session {
	return NewSession(Options{
		Player:  "ada",
		Seed:    99,
		Config:  cfg,
		Store:   store,
		Haptics: h,
		Now:     func() time.Time { return noon },
	})
}

func TestSessionRestoresProfile(t *testing.T) {
	tests := []struct {
		name       string
		experience int
		wantLevel  int
		wantToNext int
	}{
		{"below threshold", 150, 4, 172},
		{"stored xp past threshold levels up", 200, 5, 207},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.profiles["ada"] = progress.Profile{Coins: 900, HighScore: 31, Level: 4, Experience: tt.experience}

			s := newTestSession(store, nil, config.DefaultSkybirdConfig())
			st := s.Frame().State

			if st.Coins != 900 || st.HighScore != 31 {
				t.Errorf("profile not restored: %+v", st)
			}
			if st.Level != tt.wantLevel || st.ExperienceToNext != tt.wantToNext {
				t.Errorf("level = %d (next %d), want %d (next %d)", st.Level, st.ExperienceToNext, tt.wantLevel, tt.wantToNext)
			}
			if s.Phase() != sim.Idle {
				t.Errorf("phase = %s, expected idle", s.Phase())
			}
		})
	}
}

func TestSessionFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		store *memStore
	}{
		{"load error", &memStore{profiles: map[string]progress.Profile{}, loadErr: errors.New("disk on fire")}},
		{"not found", newMemStore()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(tc.store, nil, config.DefaultSkybirdConfig())
			st := s.Frame().State
			if st.Coins != progress.DefaultCoins || st.Level != progress.DefaultLevel {
				t.Errorf("expected defaults, got %+v", st)
			}
		})
	}

	s := NewSession(Options{Config: config.DefaultSkybirdConfig()})
	if s.Player() != "local" || s.Frame().State.Coins != progress.DefaultCoins {
		t.Error("session without store should use defaults")
	}
}

func TestSessionPersistsOnGameOver(t *testing.T) {
	store := newMemStore()
	h := &recordHaptics{}
	s := newTestSession(store, h, fallingConfig())

	s.Flap()
	for i := 0; i < 100 && s.Phase() == sim.Playing; i++ {
		s.Tick(50 * time.Millisecond)
	}
	if s.Phase() != sim.GameOver {
		t.Fatalf("expected game over, got %s", s.Phase())
	}

	if _, ok := store.profile("ada"); !ok {
		t.Error("profile should be saved at game over")
	}
	if len(store.scores) != 0 {
		t.Errorf("zero score should not be recorded, got %v", store.scores)
	}

	impacts := h.all()
	if len(impacts) < 2 || impacts[0] != sim.ImpactLight || impacts[len(impacts)-1] != sim.ImpactHeavy {
		t.Errorf("haptics = %v, expected light first and heavy last", impacts)
	}
}

func TestSessionSaveFailureDoesNotStopPlay(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("read-only")
	s := newTestSession(store, nil, fallingConfig())

	s.Flap()
	for i := 0; i < 100 && s.Phase() == sim.Playing; i++ {
		s.Tick(50 * time.Millisecond)
	}
	if store.saveCount() == 0 {
		t.Fatal("expected a save attempt")
	}

	s.Flap()
	if s.Phase() != sim.Playing {
		t.Errorf("restart after failed save: phase %s", s.Phase())
	}
}

func TestSessionSkinSelectionPersists(t *testing.T) {
	store := newMemStore()
	store.profiles["ada"] = progress.Profile{Coins: 10, Level: 1, OwnedSkins: []string{"robin"}}
	s := newTestSession(store, nil, config.DefaultSkybirdConfig())

	s.Apply(sim.SelectSkin{ID: "robin"})

	p, _ := store.profile("ada")
	if p.SelectedSkin != "robin" {
		t.Errorf("saved skin = %q, expected robin", p.SelectedSkin)
	}
}

func TestSessionSaveProgress(t *testing.T) {
	store := newMemStore()
	store.profiles["ada"] = progress.Profile{Coins: 900, Level: 2}
	s := newTestSession(store, nil, config.DefaultSkybirdConfig())

	s.SaveProgress()
	if n := store.saveCount(); n != 0 {
		t.Fatalf("idle session saved %d times", n)
	}

	s.Flap()
	s.Tick(16 * time.Millisecond)
	s.SaveProgress()
	if n := store.saveCount(); n != 1 {
		t.Fatalf("saves = %d, want 1 while playing", n)
	}

	s.TogglePause()
	s.SaveProgress()
	if n := store.saveCount(); n != 2 {
		t.Fatalf("saves = %d, want 2 while paused", n)
	}

	p, _ := store.profile("ada")
	if p.Coins != 900 || p.Level != 2 {
		t.Errorf("saved profile = %+v", p)
	}
	if len(store.scores) != 0 {
		t.Errorf("unfinished session recorded scores %v", store.scores)
	}
}
