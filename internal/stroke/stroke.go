package stroke

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/example/inkpad/internal/brush"
)

// The compositor deposits semi-transparent black disks; the warm paper color
// underneath is owned by the canvas package.

// Opacity ceilings for the two kinds of disks a segment produces.
const (
	maxTextureOpacity = 0.8
	maxCoreOpacity    = 0.98
)

// jitterFraction of the dynamic diameter is the total positional noise range
// applied to each texture dot.
const jitterFraction = 0.15

// Paint composites one stroke segment from→to onto dst. It walks the segment
// depositing jittered low-opacity texture disks, then stamps a denser core
// disk at the destination sample. The rng drives jitter and opacity noise;
// pass a fixed-seed source for reproducible output.
func Paint(dst *image.RGBA, rng *rand.Rand, from, to brush.Point, s brush.Settings) {
	s = s.Clamped()
	dyn := brush.ComputeDynamics(from, to, s.Size)
	dm := s.DensityMultiplier()
	cm := s.ContrastMultiplier()

	base := math.Floor(dyn.Distance / 2)
	if base < 1 {
		base = 1
	}
	steps := int(math.Floor(base * s.CoverageBoost()))
	jitter := dyn.Size * jitterFraction

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := from.X + (to.X-from.X)*t + (rng.Float64()-0.5)*jitter
		y := from.Y + (to.Y-from.Y)*t + (rng.Float64()-0.5)*jitter
		opacity := math.Min((0.08+rng.Float64()*0.04)*dm*cm, maxTextureOpacity)
		fillDisk(dst, x, y, dyn.Size/2, opacity)
	}

	// Core disk: a single higher-opacity stamp at the segment end keeps the
	// stroke spine readable beneath the texture. The denominator stays in
	// (2.5, 3.5] across the full contrast range.
	coreOpacity := math.Min(0.3*dm*cm, maxCoreOpacity)
	coreSize := dyn.Size / (3.5 - float64(s.Contrast)/100)
	fillDisk(dst, to.X, to.Y, coreSize/2, coreOpacity)
}

// PaintDot composites the initial stamp for a stroke's very first sample,
// before any segment exists.
func PaintDot(dst *image.RGBA, rng *rand.Rand, at brush.Point, s brush.Settings) {
	s = s.Clamped()
	opacity := math.Min(0.4*s.DensityMultiplier()*s.ContrastMultiplier(), maxCoreOpacity)
	fillDisk(dst, at.X, at.Y, s.Size/2, opacity)
}

// fillDisk alpha-blends a black disk of the given radius over dst, clipped to
// the image bounds. Pixels are tested against the disk at their centers.
func fillDisk(dst *image.RGBA, cx, cy, r, opacity float64) {
	if r <= 0 || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	b := dst.Bounds()
	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if maxX > b.Max.X-1 {
		maxX = b.Max.X - 1
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxY > b.Max.Y-1 {
		maxY = b.Max.Y - 1
	}
	rr := r * r
	for y := minY; y <= maxY; y++ {
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy > rr {
				continue
			}
			blendBlack(dst, x, y, opacity)
		}
	}
}

// blendBlack source-over composites black at the given alpha onto one pixel.
// The source color being black, only the destination contribution survives in
// the color channels.
func blendBlack(dst *image.RGBA, x, y int, a float64) {
	c := dst.RGBAAt(x, y)
	inv := 1 - a
	outA := a*255 + float64(c.A)*inv
	if outA > 255 {
		outA = 255
	}
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(c.R)*inv + 0.5),
		G: uint8(float64(c.G)*inv + 0.5),
		B: uint8(float64(c.B)*inv + 0.5),
		A: uint8(outA + 0.5),
	})
}
