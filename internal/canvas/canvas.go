package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"sync"
	"time"

	"github.com/example/inkpad/internal/brush"
	"github.com/example/inkpad/internal/stroke"
)

// Logical drawing surface dimensions. Every pointer coordinate the session
// produces lives in this space regardless of how large the window is.
const (
	Width  = 500
	Height = 700
)

// Background is the warm paper color the sheet is filled with on creation and
// on every clear.
var Background = color.RGBA{R: 241, G: 231, B: 212, A: 255}

// Surface owns the pixel buffer for one drawing session. It is the single
// source of truth for what has been drawn: there is no stroke log, so the
// only way back to a blank sheet is Clear. All methods are safe for
// concurrent use.
type Surface struct {
	mu    sync.Mutex
	img   *image.RGBA
	rng   *rand.Rand
	inked bool
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithRand sets the random source driving stroke jitter and opacity noise.
// Tests pass a fixed-seed source for reproducible pixels.
func WithRand(rng *rand.Rand) Option {
	return func(s *Surface) { s.rng = rng }
}

// New creates a Surface filled with the background color.
func New(opts ...Option) *Surface {
	s := &Surface{
		img: image.NewRGBA(image.Rect(0, 0, Width, Height)),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.reset()
	return s
}

func (s *Surface) reset() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	s.inked = false
}

// Clear reinitializes the sheet to the background color and forgets that any
// ink was ever applied.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// IsEmpty reports whether no paint call has touched the sheet since the last
// clear.
func (s *Surface) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.inked
}

// PaintDot stamps the opening dot of a stroke.
func (s *Surface) PaintDot(at brush.Point, set brush.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stroke.PaintDot(s.img, s.rng, at, set)
	s.inked = true
}

// PaintSegment composites the textured segment between two consecutive
// pointer samples.
func (s *Surface) PaintSegment(from, to brush.Point, set brush.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stroke.Paint(s.img, s.rng, from, to, set)
	s.inked = true
}

// Snapshot returns a deep copy of the current pixels. Export and preview
// paths work from snapshots so they can never alias live paint operations.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}
