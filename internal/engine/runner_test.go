package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/sim"
)

type frameLog struct {
	mu     sync.Mutex
	frames []sim.Frame
}

func (l *frameLog) add(f sim.Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, f)
}

func (l *frameLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

func (l *frameLog) last() sim.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames[len(l.frames)-1]
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRunnerTicksWhilePlaying(t *testing.T) {
	frames := &frameLog{}
	r := NewRunner(newTestSession(nil, nil, config.DefaultSkybirdConfig()), time.Millisecond, frames.add)
	defer r.Close()

	if r.Running() {
		t.Fatal("runner should start stopped")
	}
	if err := r.Flap(); err != nil {
		t.Fatalf("Flap() failed: %v", err)
	}
	if !r.Running() {
		t.Fatal("flap from idle should start the ticker")
	}

	waitFor(t, "ticks", func() bool { return frames.len() > 5 })
	if frames.last().Tick == 0 {
		t.Error("frames should carry advancing ticks")
	}
}

func TestRunnerStopsWhilePaused(t *testing.T) {
	frames := &frameLog{}
	r := NewRunner(newTestSession(nil, nil, config.DefaultSkybirdConfig()), time.Millisecond, frames.add)
	defer r.Close()

	r.Flap()
	waitFor(t, "ticks", func() bool { return frames.len() > 3 })

	if err := r.TogglePause(); err != nil {
		t.Fatal(err)
	}
	if r.Running() {
		t.Fatal("ticker should stop on pause")
	}
	paused := r.Session().Frame().Tick
	time.Sleep(20 * time.Millisecond)
	if got := r.Session().Frame().Tick; got != paused {
		t.Errorf("ticks advanced while paused: %d -> %d", paused, got)
	}

	r.TogglePause()
	if !r.Running() {
		t.Fatal("ticker should restart on resume")
	}
	waitFor(t, "ticks after resume", func() bool { return r.Session().Frame().Tick > paused })

	// The first tick after resume measures from the resume, not the pause.
	if e := r.Session().Frame().Elapsed; e > 0.05 {
		t.Errorf("elapsed %v suggests a dt spike across the pause", e)
	}
}

func TestRunnerStopsOnGameOver(t *testing.T) {
	store := newMemStore()
	r := NewRunner(newTestSession(store, nil, fallingConfig()), time.Millisecond, nil)
	defer r.Close()

	r.Flap()
	waitFor(t, "game over", func() bool { return r.Session().Phase() == sim.GameOver })
	waitFor(t, "ticker stop", func() bool { return !r.Running() })

	ticks := r.Session().Frame().Tick
	time.Sleep(20 * time.Millisecond)
	if got := r.Session().Frame().Tick; got != ticks {
		t.Errorf("ticks after game over: %d -> %d", ticks, got)
	}
	if _, ok := store.profile("ada"); !ok {
		t.Error("profile should be saved")
	}

	// Restart runs again.
	r.Flap()
	if !r.Running() || r.Session().Phase() != sim.Playing {
		t.Error("flap after game over should restart")
	}
}

func TestRunnerClose(t *testing.T) {
	r := NewRunner(newTestSession(nil, nil, config.DefaultSkybirdConfig()), time.Millisecond, nil)
	r.Flap()
	time.Sleep(5 * time.Millisecond)

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	ticks := r.Session().Frame().Tick
	time.Sleep(20 * time.Millisecond)
	if got := r.Session().Frame().Tick; got != ticks {
		t.Errorf("tick applied after Close: %d -> %d", ticks, got)
	}

	if err := r.Flap(); !errors.Is(err, ErrClosed) {
		t.Errorf("Flap() after Close = %v, expected ErrClosed", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestFrameQueueDropsOldest(t *testing.T) {
	q := NewFrameQueue(2)
	for i := uint64(1); i <= 5; i++ {
		q.Send(sim.Frame{Tick: i})
	}

	a, b := <-q.Frames(), <-q.Frames()
	if a.Tick != 4 || b.Tick != 5 {
		t.Errorf("queue kept ticks %d,%d, expected 4,5", a.Tick, b.Tick)
	}

	q.Close()
	q.Close()
	q.Send(sim.Frame{Tick: 6})
	select {
	case f := <-q.Frames():
		t.Errorf("closed queue accepted frame %d", f.Tick)
	default:
	}
}
