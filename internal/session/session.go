package session

import (
	"sync"

	"github.com/example/inkpad/internal/brush"
	"github.com/example/inkpad/internal/canvas"
)

// PointerEvent is a raw pointer or touch sample in display coordinates.
// Valid is false when the platform event carried no usable coordinate (an
// empty touch list, for example); such events are silently ignored.
type PointerEvent struct {
	X, Y      float64
	Valid     bool
	Timestamp int64
}

// ViewportMapper translates display coordinates into logical surface
// coordinates. The host UI supplies one so the session never has to know
// about windows, zoom, or device pixel ratios.
type ViewportMapper interface {
	Map(ev PointerEvent) (brush.Point, bool)
}

// ScaleMapper maps a displayed rectangle onto the full logical sheet by
// ratio, making stroke positions independent of the on-screen size.
type ScaleMapper struct {
	OffsetX, OffsetY float64
	DisplayW         float64
	DisplayH         float64
}

func (m ScaleMapper) Map(ev PointerEvent) (brush.Point, bool) {
	if !ev.Valid || m.DisplayW <= 0 || m.DisplayH <= 0 {
		return brush.Point{}, false
	}
	return brush.Point{
		X:         (ev.X - m.OffsetX) * canvas.Width / m.DisplayW,
		Y:         (ev.Y - m.OffsetY) * canvas.Height / m.DisplayH,
		Pressure:  1,
		Timestamp: ev.Timestamp,
	}, true
}

type state int

const (
	stateIdle state = iota
	stateDrawing
)

// Session drives the Idle→Drawing→Idle stroke lifecycle. Pointer-move bursts
// are coalesced to at most one composite per scheduler tick: only the latest
// pending point is painted when the tick fires.
type Session struct {
	mu         sync.Mutex
	surface    *canvas.Surface
	mapper     ViewportMapper
	sched      FrameScheduler
	brushFn    func() brush.Settings
	onStart    func()
	onEnd      func()
	onPaint    func()
	st         state
	last       brush.Point
	hasLast    bool
	pending    brush.Point
	hasPending bool
}

// SessionOption modifies a Session during creation.
type SessionOption func(*Session)

// WithSurface sets the surface the session paints onto.
func WithSurface(s *canvas.Surface) SessionOption {
	return func(ses *Session) { ses.surface = s }
}

// WithMapper sets the viewport mapper translating raw events.
func WithMapper(m ViewportMapper) SessionOption {
	return func(ses *Session) { ses.mapper = m }
}

// WithScheduler sets the frame scheduler used to coalesce pointer movement.
func WithScheduler(fs FrameScheduler) SessionOption {
	return func(ses *Session) { ses.sched = fs }
}

// WithBrush registers the callback the session reads a fresh brush snapshot
// from before every paint.
func WithBrush(fn func() brush.Settings) SessionOption {
	return func(ses *Session) { ses.brushFn = fn }
}

// WithOnDrawStart registers a callback fired exactly once per stroke when
// drawing begins.
func WithOnDrawStart(fn func()) SessionOption {
	return func(ses *Session) { ses.onStart = fn }
}

// WithOnDrawEnd registers a callback fired exactly once per stroke when
// drawing ends.
func WithOnDrawEnd(fn func()) SessionOption {
	return func(ses *Session) { ses.onEnd = fn }
}

// WithOnPaint registers a callback fired after every composite; the host UI
// uses it to request a repaint of its window.
func WithOnPaint(fn func()) SessionOption {
	return func(ses *Session) { ses.onPaint = fn }
}

// New creates a Session. A surface is created on demand when none is given;
// the default scheduler runs at the display-refresh-equivalent rate.
func New(opts ...SessionOption) *Session {
	s := &Session{}
	for _, o := range opts {
		o(s)
	}
	if s.surface == nil {
		s.surface = canvas.New()
	}
	if s.sched == nil {
		s.sched = NewTickScheduler(0)
	}
	if s.brushFn == nil {
		s.brushFn = brush.Default
	}
	if s.mapper == nil {
		s.mapper = ScaleMapper{DisplayW: canvas.Width, DisplayH: canvas.Height}
	}
	return s
}

// Surface returns the surface the session paints onto.
func (s *Session) Surface() *canvas.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// SetMapper swaps the viewport mapper, typically after a window resize.
func (s *Session) SetMapper(m ViewportMapper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapper = m
}

// PointerDown begins a stroke if the event resolves to a point. The opening
// dot is painted immediately rather than waiting for a tick.
func (s *Session) PointerDown(ev PointerEvent) {
	s.mu.Lock()
	p, ok := s.mapper.Map(ev)
	if !ok || s.st == stateDrawing {
		s.mu.Unlock()
		return
	}
	s.st = stateDrawing
	s.last = p
	s.hasLast = true
	s.hasPending = false
	surface := s.surface
	set := s.brushFn()
	started := s.onStart
	painted := s.onPaint
	s.mu.Unlock()

	surface.PaintDot(p, set)
	if started != nil {
		started()
	}
	if painted != nil {
		painted()
	}
}

// PointerMove records the newest position while drawing and makes sure one
// composite is scheduled for the next tick. Bursts of moves inside a single
// tick collapse into one paint using the last position received.
func (s *Session) PointerMove(ev PointerEvent) {
	s.mu.Lock()
	if s.st != stateDrawing || !s.hasLast {
		s.mu.Unlock()
		return
	}
	p, ok := s.mapper.Map(ev)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.pending = p
	schedule := !s.hasPending
	s.hasPending = true
	sched := s.sched
	s.mu.Unlock()

	if schedule {
		sched.Schedule(s.flush)
	}
}

// flush runs on the scheduler tick and composites from the last painted
// point to the latest pending one.
func (s *Session) flush() {
	s.mu.Lock()
	if s.st != stateDrawing || !s.hasLast || !s.hasPending {
		s.hasPending = false
		s.mu.Unlock()
		return
	}
	from := s.last
	to := s.pending
	s.last = to
	s.hasPending = false
	surface := s.surface
	set := s.brushFn()
	painted := s.onPaint
	s.mu.Unlock()

	surface.PaintSegment(from, to, set)
	if painted != nil {
		painted()
	}
}

// PointerUp ends the stroke: any pending composite is cancelled, the last
// point is discarded and the end callback fires once.
func (s *Session) PointerUp(ev PointerEvent) {
	s.endStroke()
}

// PointerLeave is equivalent to PointerUp; leaving the surface always ends
// the stroke.
func (s *Session) PointerLeave() {
	s.endStroke()
}

func (s *Session) endStroke() {
	s.mu.Lock()
	if s.st != stateDrawing {
		s.mu.Unlock()
		return
	}
	s.st = stateIdle
	s.hasLast = false
	s.hasPending = false
	sched := s.sched
	ended := s.onEnd
	s.mu.Unlock()

	sched.Cancel()
	if ended != nil {
		ended()
	}
}

// Clear resets the sheet and discards the tracked last point, so a clear in
// the middle of a stroke leaves subsequent moves inert until the next
// PointerDown.
func (s *Session) Clear() {
	s.mu.Lock()
	s.hasLast = false
	s.hasPending = false
	surface := s.surface
	sched := s.sched
	s.mu.Unlock()

	sched.Cancel()
	surface.Clear()
}
