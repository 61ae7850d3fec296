package session

import (
	"sync"
	"time"
)

// FrameScheduler runs at most one pending callback per tick. Schedule
// replaces any callback that has not fired yet; Cancel drops it. This is the
// cancel-and-reschedule idiom that keeps paint work bounded no matter how
// fast the pointer moves.
type FrameScheduler interface {
	Schedule(fn func())
	Cancel()
}

// defaultInterval approximates one display refresh at 60Hz.
const defaultInterval = time.Second / 60

// TickScheduler implements FrameScheduler on a fixed-rate timer for hosts
// without a display-refresh callback primitive.
type TickScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

// NewTickScheduler creates a scheduler firing after the given interval; a
// non-positive interval selects the 60Hz default.
func NewTickScheduler(interval time.Duration) *TickScheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &TickScheduler{interval: interval}
}

func (t *TickScheduler) Schedule(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.interval, fn)
}

func (t *TickScheduler) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Immediate runs every scheduled callback synchronously. Headless pipelines
// replaying recorded pointer samples use it so each sample paints exactly
// once, in order, with no timing dependence.
type Immediate struct{}

func (Immediate) Schedule(fn func()) { fn() }

func (Immediate) Cancel() {}
