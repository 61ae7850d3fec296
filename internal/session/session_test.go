package session

import (
	"math/rand"
	"testing"

	"github.com/example/inkpad/internal/brush"
	"github.com/example/inkpad/internal/canvas"
)

// manualScheduler records scheduled callbacks and fires them on demand so
// tests control exactly when a frame tick happens.
type manualScheduler struct {
	fn        func()
	scheduled int
	canceled  int
}

func (m *manualScheduler) Schedule(fn func()) {
	m.fn = fn
	m.scheduled++
}

func (m *manualScheduler) Cancel() {
	m.fn = nil
	m.canceled++
}

func (m *manualScheduler) fire() {
	if m.fn == nil {
		return
	}
	fn := m.fn
	m.fn = nil
	fn()
}

func newTestSession(t *testing.T) (*Session, *canvas.Surface, *manualScheduler, *int, *int, *int) {
	t.Helper()
	surface := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1))))
	sched := &manualScheduler{}
	starts, ends, paints := 0, 0, 0
	sess := New(
		WithSurface(surface),
		WithScheduler(sched),
		WithOnDrawStart(func() { starts++ }),
		WithOnDrawEnd(func() { ends++ }),
		WithOnPaint(func() { paints++ }),
	)
	return sess, surface, sched, &starts, &ends, &paints
}

func ev(x, y float64, ts int64) PointerEvent {
	return PointerEvent{X: x, Y: y, Valid: true, Timestamp: ts}
}

func TestPointerDownPaintsImmediately(t *testing.T) {
	sess, surface, _, starts, _, paints := newTestSession(t)
	sess.PointerDown(ev(100, 100, 0))
	if *starts != 1 {
		t.Fatalf("starts = %d, want 1", *starts)
	}
	if *paints != 1 {
		t.Fatalf("paints = %d, want 1", *paints)
	}
	if surface.IsEmpty() {
		t.Fatal("the opening dot should land without waiting for a tick")
	}
}

func TestMoveBurstCoalescesToOnePaint(t *testing.T) {
	sess, _, sched, _, _, paints := newTestSession(t)
	sess.PointerDown(ev(100, 100, 0))
	for i := 1; i <= 10; i++ {
		sess.PointerMove(ev(100+float64(i)*5, 100, int64(i)))
	}
	if sched.scheduled != 1 {
		t.Fatalf("scheduled = %d, want one pending tick for the whole burst", sched.scheduled)
	}
	sched.fire()
	if *paints != 2 {
		t.Fatalf("paints = %d, want down + one coalesced segment", *paints)
	}

	// The next move schedules a fresh tick.
	sess.PointerMove(ev(200, 100, 11))
	if sched.scheduled != 2 {
		t.Fatalf("scheduled = %d, want a new tick after the flush", sched.scheduled)
	}
}

func TestMoveWithoutDownIsIgnored(t *testing.T) {
	sess, surface, sched, _, _, paints := newTestSession(t)
	sess.PointerMove(ev(100, 100, 0))
	sched.fire()
	if *paints != 0 || !surface.IsEmpty() || sched.scheduled != 0 {
		t.Fatal("moves before a pointer down must be inert")
	}
}

func TestInvalidEventsIgnored(t *testing.T) {
	sess, surface, _, starts, _, _ := newTestSession(t)
	sess.PointerDown(PointerEvent{X: 100, Y: 100, Valid: false})
	if *starts != 0 || !surface.IsEmpty() {
		t.Fatal("an invalid event must not start a stroke")
	}
}

func TestStrokeLifecycleCallbacksFireOnce(t *testing.T) {
	sess, _, sched, starts, ends, _ := newTestSession(t)
	sess.PointerDown(ev(100, 100, 0))
	sess.PointerMove(ev(110, 100, 16))
	sess.PointerUp(ev(110, 100, 32))
	sess.PointerUp(ev(110, 100, 48))
	sess.PointerLeave()
	if *starts != 1 {
		t.Fatalf("starts = %d, want 1", *starts)
	}
	if *ends != 1 {
		t.Fatalf("ends = %d, want 1", *ends)
	}
	if sched.canceled == 0 {
		t.Fatal("ending a stroke must cancel the pending tick")
	}
}

func TestPendingMoveDroppedOnPointerUp(t *testing.T) {
	sess, _, sched, _, _, paints := newTestSession(t)
	sess.PointerDown(ev(100, 100, 0))
	sess.PointerMove(ev(150, 100, 16))
	sess.PointerUp(ev(150, 100, 32))
	sched.fire()
	if *paints != 1 {
		t.Fatalf("paints = %d, the pending segment should die with the stroke", *paints)
	}
}

func TestClearMidStrokeLeavesMovesInert(t *testing.T) {
	sess, surface, sched, _, _, paints := newTestSession(t)
	sess.PointerDown(ev(100, 100, 0))
	sess.Clear()
	if !surface.IsEmpty() {
		t.Fatal("clear should blank the sheet")
	}

	painted := *paints
	sess.PointerMove(ev(200, 200, 16))
	sched.fire()
	if *paints != painted || !surface.IsEmpty() {
		t.Fatal("moves after a mid-stroke clear must not paint until the next pointer down")
	}

	// Releasing and pressing again starts over.
	sess.PointerUp(ev(200, 200, 32))
	sess.PointerDown(ev(50, 50, 48))
	if surface.IsEmpty() {
		t.Fatal("a new stroke after clear should paint again")
	}
}

func TestScaleMapper(t *testing.T) {
	m := ScaleMapper{OffsetX: 100, OffsetY: 50, DisplayW: 250, DisplayH: 350}
	p, ok := m.Map(ev(100+125, 50+175, 7))
	if !ok {
		t.Fatal("expected mapping to succeed")
	}
	if p.X != canvas.Width/2 || p.Y != canvas.Height/2 {
		t.Fatalf("mapped to (%g, %g), want sheet center", p.X, p.Y)
	}
	if p.Timestamp != 7 || p.Pressure != 1 {
		t.Fatalf("unexpected point metadata: %+v", p)
	}

	if _, ok := m.Map(PointerEvent{Valid: false}); ok {
		t.Fatal("invalid events must not map")
	}
	if _, ok := (ScaleMapper{}).Map(ev(1, 1, 0)); ok {
		t.Fatal("degenerate display sizes must not map")
	}
}

func TestImmediateSchedulerReplaysEverySample(t *testing.T) {
	surface := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1))))
	paints := 0
	sess := New(
		WithSurface(surface),
		WithScheduler(Immediate{}),
		WithOnPaint(func() { paints++ }),
	)
	sess.PointerDown(ev(100, 100, 0))
	sess.PointerMove(ev(110, 100, 16))
	sess.PointerMove(ev(120, 100, 32))
	sess.PointerUp(ev(120, 100, 48))
	if paints != 3 {
		t.Fatalf("paints = %d, want down plus one per move", paints)
	}
}

func TestBrushSnapshotReadPerPaint(t *testing.T) {
	surface := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1))))
	size := 20.0
	reads := 0
	sess := New(
		WithSurface(surface),
		WithScheduler(Immediate{}),
		WithBrush(func() brush.Settings {
			reads++
			return brush.Settings{Size: size, Density: 60, Contrast: 50}
		}),
	)
	sess.PointerDown(ev(100, 100, 0))
	size = 40
	sess.PointerMove(ev(120, 100, 16))
	if reads != 2 {
		t.Fatalf("brush reads = %d, want one per paint", reads)
	}
}
