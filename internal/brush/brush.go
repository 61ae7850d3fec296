package brush

import "math"

// Settings describes the ink brush for one paint call. Values outside the
// documented ranges are clamped rather than rejected; a Settings value is
// treated as an immutable snapshot by everything that consumes it.
type Settings struct {
	// Size is the base stroke diameter in logical pixels.
	Size float64
	// Density scales how much ink each texture dot deposits.
	Density int
	// Contrast scales dot opacity and coverage independently of width.
	Contrast int
}

const (
	MinSize     = 5
	MaxSize     = 80
	MinDensity  = 10
	MaxDensity  = 100
	MinContrast = 0
	MaxContrast = 100
)

// Default returns the brush used when no configuration is supplied.
func Default() Settings {
	return Settings{Size: 20, Density: 60, Contrast: 50}
}

// Clamped returns a copy of s with every field forced into its legal range.
func (s Settings) Clamped() Settings {
	out := s
	if out.Size < MinSize {
		out.Size = MinSize
	}
	if out.Size > MaxSize {
		out.Size = MaxSize
	}
	if out.Density < MinDensity {
		out.Density = MinDensity
	}
	if out.Density > MaxDensity {
		out.Density = MaxDensity
	}
	if out.Contrast < MinContrast {
		out.Contrast = MinContrast
	}
	if out.Contrast > MaxContrast {
		out.Contrast = MaxContrast
	}
	return out
}

// DensityMultiplier maps Density into [0.2, 2.0].
func (s Settings) DensityMultiplier() float64 {
	return 0.2 + float64(s.Density)/100*1.8
}

// ContrastMultiplier maps Contrast into [1.0, 4.0].
func (s Settings) ContrastMultiplier() float64 {
	return 1.0 + float64(s.Contrast)/100*3.0
}

// CoverageBoost maps Contrast into [1.0, 1.5]; higher contrast packs more
// texture dots into the same segment.
func (s Settings) CoverageBoost() float64 {
	return 1.0 + float64(s.Contrast)/100*0.5
}

// Point is one pointer sample in logical surface coordinates. Timestamp is
// monotonic milliseconds. Pressure is carried for future pressure-capable
// input but is fixed at 1.0 by every current producer.
type Point struct {
	X, Y      float64
	Pressure  float64
	Timestamp int64
}

// Pt builds a full-pressure Point.
func Pt(x, y float64, ts int64) Point {
	return Point{X: x, Y: y, Pressure: 1, Timestamp: ts}
}

// referenceSpeed is the pointer speed, in logical pixels per millisecond, at
// which stroke thinning saturates. Kept as-is for visual parity; there is no
// physical derivation behind it.
const referenceSpeed = 0.5

// maxThinning is the fraction of the base diameter shaved off at full speed.
const maxThinning = 0.3

// Dynamics is the per-segment geometry derived from two pointer samples.
type Dynamics struct {
	// Distance is the Euclidean length of the segment.
	Distance float64
	// Size is the speed-attenuated stroke diameter.
	Size float64
}

// ComputeDynamics derives segment length and the dynamic stroke diameter for
// the segment from→to. Faster motion thins the stroke by up to 30% of
// baseSize. Duplicate timestamps are treated as 1ms apart so the speed term
// never divides by zero.
func ComputeDynamics(from, to Point, baseSize float64) Dynamics {
	dist := math.Hypot(to.X-from.X, to.Y-from.Y)
	dt := to.Timestamp - from.Timestamp
	if dt < 1 {
		dt = 1
	}
	speed := dist / float64(dt)
	factor := math.Min(speed/referenceSpeed, 1)
	return Dynamics{
		Distance: dist,
		Size:     baseSize * (1 - factor*maxThinning),
	}
}
