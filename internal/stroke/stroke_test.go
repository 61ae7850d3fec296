package stroke

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/example/inkpad/internal/brush"
)

var paper = color.RGBA{R: 241, G: 231, B: 212, A: 255}

func newSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 500, 700))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	return img
}

func TestPaintDeterministicWithSeed(t *testing.T) {
	set := brush.Default()
	a := newSheet()
	b := newSheet()
	Paint(a, rand.New(rand.NewSource(42)), brush.Pt(100, 100, 0), brush.Pt(180, 160, 64), set)
	Paint(b, rand.New(rand.NewSource(42)), brush.Pt(100, 100, 0), brush.Pt(180, 160, 64), set)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same seed and inputs must produce identical pixels")
	}
}

func TestPaintZeroDistanceStillInks(t *testing.T) {
	img := newSheet()
	Paint(img, rand.New(rand.NewSource(1)), brush.Pt(250, 350, 0), brush.Pt(250, 350, 16), brush.Default())
	if !darkerThanPaperNear(img, 250, 350, 12) {
		t.Fatal("expected ink near the sample position for a zero-length segment")
	}
}

func TestPaintDotInks(t *testing.T) {
	img := newSheet()
	PaintDot(img, rand.New(rand.NewSource(1)), brush.Pt(50, 50, 0), brush.Default())
	if !darkerThanPaperNear(img, 50, 50, 12) {
		t.Fatal("expected ink at the dot position")
	}
	// Far corner stays untouched.
	if got := img.RGBAAt(499, 699); got != paper {
		t.Fatalf("corner pixel changed: %+v", got)
	}
}

func TestPaintNeverFullyBlackInOnePass(t *testing.T) {
	// Even at maximum density and contrast, single-pass opacity is capped
	// below 1, so some paper must survive in every pixel.
	img := newSheet()
	set := brush.Settings{Size: 40, Density: 100, Contrast: 100}
	PaintDot(img, rand.New(rand.NewSource(1)), brush.Pt(100, 100, 0), set)
	c := img.RGBAAt(100, 100)
	if c.R == 0 && c.G == 0 && c.B == 0 {
		t.Fatal("one stamp should not reach pure black")
	}
	if c.A != 255 {
		t.Fatalf("alpha should stay opaque over opaque paper, got %d", c.A)
	}
}

func TestPaintClipsToBounds(t *testing.T) {
	img := newSheet()
	// A stamp centered outside the sheet must not panic and must leave the
	// sheet interior intact except near the shared edge.
	Paint(img, rand.New(rand.NewSource(1)), brush.Pt(-30, -30, 0), brush.Pt(-10, -10, 16), brush.Default())
	if got := img.RGBAAt(250, 350); got != paper {
		t.Fatalf("center pixel changed: %+v", got)
	}
}

func darkerThanPaperNear(img *image.RGBA, cx, cy, radius int) bool {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			c := img.RGBAAt(x, y)
			if c.R < paper.R && c.G < paper.G && c.B < paper.B {
				return true
			}
		}
	}
	return false
}
