package engine

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/skybird/internal/sim"
)

// Runner drives a Session from a wall-clock ticker. The ticker runs only
// while the session is playing: it stops on pause and game over and starts
// again, with a fresh time baseline, on resume or restart.
type Runner struct {
	session  *Session
	interval time.Duration
	onFrame  func(sim.Frame)

	mu      sync.Mutex
	gen     uint64 // Incremented on every stop; ticks from older generations are dropped
	cancel  context.CancelFunc
	running bool
	closed  bool
	wg      sync.WaitGroup
}

// NewRunner creates a stopped runner. onFrame, if set, receives a snapshot
// after every event and tick; it is called with the runner locked and must
// not block or call back into the runner.
func NewRunner(s *Session, interval time.Duration, onFrame func(sim.Frame)) *Runner {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Runner{
		session:  s,
		interval: interval,
		onFrame:  onFrame,
	}
}

// Flap forwards a flap. A flap that starts a session starts the ticker.
func (r *Runner) Flap() error {
	return r.apply(func() { r.session.Flap() })
}

// TogglePause pauses or resumes the session.
func (r *Runner) TogglePause() error {
	return r.apply(func() { r.session.TogglePause() })
}

// Send applies an arbitrary event.
func (r *Runner) Send(ev sim.Event) error {
	return r.apply(func() { r.session.Apply(ev) })
}

func (r *Runner) apply(fn func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	fn()
	r.sync()
	r.publish()
	return nil
}

// sync starts or stops the ticker to match the session phase. Callers hold mu.
func (r *Runner) sync() {
	playing := r.session.Phase() == sim.Playing
	switch {
	case playing && !r.running:
		r.start()
	case !playing && r.running:
		r.stop()
	}
}

func (r *Runner) start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true
	gen := r.gen

	r.wg.Add(1)
	go r.loop(ctx, gen)
}

func (r *Runner) stop() {
	r.gen++
	r.running = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Runner) loop(ctx context.Context, gen uint64) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if !r.tick(gen, dt) {
				return
			}
		}
	}
}

// tick applies one tick unless the generation has been stopped. It reports
// whether the loop should continue.
func (r *Runner) tick(gen uint64, dt time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.gen {
		return false
	}

	r.session.Tick(dt)
	r.sync()
	r.publish()
	return r.running
}

func (r *Runner) publish() {
	if r.onFrame != nil {
		r.onFrame(r.session.Frame())
	}
}

// Running reports whether the ticker is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Session returns the driven session.
func (r *Runner) Session() *Session {
	return r.session
}

// Close stops the ticker and waits for it to exit. No tick is applied
// after Close returns. Safe to call multiple times.
func (r *Runner) Close() error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		r.stop()
	}
	r.mu.Unlock()

	r.wg.Wait()
	return nil
}
