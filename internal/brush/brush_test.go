package brush

import (
	"math"
	"testing"
)

func TestClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{"in range", Settings{Size: 20, Density: 60, Contrast: 50}, Settings{Size: 20, Density: 60, Contrast: 50}},
		{"below minimums", Settings{Size: 1, Density: 0, Contrast: -5}, Settings{Size: MinSize, Density: MinDensity, Contrast: MinContrast}},
		{"above maximums", Settings{Size: 500, Density: 150, Contrast: 300}, Settings{Size: MaxSize, Density: MaxDensity, Contrast: MaxContrast}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMultiplierRanges(t *testing.T) {
	low := Settings{Density: MinDensity, Contrast: MinContrast}
	high := Settings{Density: MaxDensity, Contrast: MaxContrast}

	if got := low.DensityMultiplier(); math.Abs(got-0.38) > 1e-9 {
		t.Errorf("density multiplier at minimum = %g, want 0.38", got)
	}
	if got := high.DensityMultiplier(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("density multiplier at maximum = %g, want 2.0", got)
	}
	if got := low.ContrastMultiplier(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("contrast multiplier at minimum = %g, want 1.0", got)
	}
	if got := high.ContrastMultiplier(); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("contrast multiplier at maximum = %g, want 4.0", got)
	}
	if got := low.CoverageBoost(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("coverage boost at minimum = %g, want 1.0", got)
	}
	if got := high.CoverageBoost(); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("coverage boost at maximum = %g, want 1.5", got)
	}
}

func TestComputeDynamicsStationary(t *testing.T) {
	d := ComputeDynamics(Pt(100, 100, 0), Pt(100, 100, 16), 20)
	if d.Distance != 0 {
		t.Errorf("distance = %g, want 0", d.Distance)
	}
	if d.Size != 20 {
		t.Errorf("size = %g, want full base size", d.Size)
	}
}

func TestComputeDynamicsFullThinning(t *testing.T) {
	// 200 units in 1ms is far beyond the reference speed, so the thinning
	// factor saturates at 30%.
	d := ComputeDynamics(Pt(0, 0, 0), Pt(200, 0, 1), 20)
	if math.Abs(d.Size-14) > 1e-9 {
		t.Errorf("size = %g, want 14", d.Size)
	}
	if math.Abs(d.Distance-200) > 1e-9 {
		t.Errorf("distance = %g, want 200", d.Distance)
	}
}

func TestComputeDynamicsEqualTimestamps(t *testing.T) {
	// A duplicate timestamp must not blow up; it is treated as 1ms.
	d := ComputeDynamics(Pt(0, 0, 100), Pt(200, 0, 100), 20)
	if math.Abs(d.Size-14) > 1e-9 {
		t.Errorf("size = %g, want saturated thinning", d.Size)
	}
}

func TestComputeDynamicsMonotonic(t *testing.T) {
	slow := ComputeDynamics(Pt(0, 0, 0), Pt(10, 0, 100), 20)
	fast := ComputeDynamics(Pt(0, 0, 0), Pt(10, 0, 25), 20)
	if !(fast.Size < slow.Size) {
		t.Errorf("faster motion should thin more: fast=%g slow=%g", fast.Size, slow.Size)
	}
	if slow.Size > 20 || fast.Size < 14 {
		t.Errorf("sizes out of range: fast=%g slow=%g", fast.Size, slow.Size)
	}
}
