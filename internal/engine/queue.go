package engine

import (
	"sync"

	"github.com/vovakirdan/skybird/internal/sim"
)

// FrameQueue hands frames from a Runner to a slow consumer such as a
// network writer. When the buffer is full the oldest frame is dropped so
// the producer never blocks.
type FrameQueue struct {
	frames   chan sim.Frame
	done     chan struct{}
	doneOnce sync.Once
}

// NewFrameQueue creates a queue holding up to size frames.
func NewFrameQueue(size int) *FrameQueue {
	if size < 1 {
		size = 8
	}
	return &FrameQueue{
		frames: make(chan sim.Frame, size),
		done:   make(chan struct{}),
	}
}

// Send enqueues f without blocking.
func (q *FrameQueue) Send(f sim.Frame) {
	select {
	case <-q.done:
		return
	default:
	}

	select {
	case q.frames <- f:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-q.frames:
		default:
		}
		select {
		case q.frames <- f:
		default:
		}
	}
}

// Frames returns the channel to receive frames from.
func (q *FrameQueue) Frames() <-chan sim.Frame {
	return q.frames
}

// Done returns a channel closed by Close.
func (q *FrameQueue) Done() <-chan struct{} {
	return q.done
}

// Close marks the queue as done. Safe to call multiple times.
func (q *FrameQueue) Close() {
	q.doneOnce.Do(func() {
		close(q.done)
	})
}
