package canvas

import (
	"math/rand"
	"testing"

	"github.com/example/inkpad/internal/brush"
)

func TestNewSurfaceIsPaper(t *testing.T) {
	s := New(WithRand(rand.New(rand.NewSource(1))))
	if !s.IsEmpty() {
		t.Fatal("fresh surface should be empty")
	}
	img := s.Snapshot()
	if img.Bounds().Dx() != Width || img.Bounds().Dy() != Height {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
	for _, p := range [][2]int{{0, 0}, {Width - 1, 0}, {0, Height - 1}, {Width - 1, Height - 1}, {Width / 2, Height / 2}} {
		if got := img.RGBAAt(p[0], p[1]); got != Background {
			t.Fatalf("pixel %v = %+v, want background", p, got)
		}
	}
}

func TestIsEmptyLifecycle(t *testing.T) {
	s := New(WithRand(rand.New(rand.NewSource(1))))
	s.PaintDot(brush.Pt(100, 100, 0), brush.Default())
	if s.IsEmpty() {
		t.Fatal("surface should not be empty after a dot")
	}
	s.Clear()
	if !s.IsEmpty() {
		t.Fatal("surface should be empty after clear")
	}
	s.PaintSegment(brush.Pt(10, 10, 0), brush.Pt(20, 20, 16), brush.Default())
	if s.IsEmpty() {
		t.Fatal("surface should not be empty after a segment")
	}
}

func TestClearRestoresBackground(t *testing.T) {
	s := New(WithRand(rand.New(rand.NewSource(1))))
	s.PaintDot(brush.Pt(250, 350, 0), brush.Default())
	s.Clear()
	img := s.Snapshot()
	if got := img.RGBAAt(250, 350); got != Background {
		t.Fatalf("pixel after clear = %+v, want background", got)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New(WithRand(rand.New(rand.NewSource(1))))
	before := s.Snapshot()

	s.PaintDot(brush.Pt(100, 100, 0), brush.Default())
	if got := before.RGBAAt(100, 100); got != Background {
		t.Fatal("painting after Snapshot must not mutate the snapshot")
	}

	after := s.Snapshot()
	after.SetRGBA(0, 0, Background)
	after.SetRGBA(100, 100, Background)
	if got := s.Snapshot().RGBAAt(100, 100); got == Background {
		t.Fatal("mutating a snapshot must not restore the surface")
	}
}
