package export

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/example/inkpad/internal/brush"
	"github.com/example/inkpad/internal/canvas"
)

func TestRenderBlankSheet(t *testing.T) {
	src := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1)))).Snapshot()
	out := Render(src, Options{})

	wantW := canvas.Width * Scale
	wantH := canvas.Height * Scale
	if out.Bounds().Dx() != wantW || out.Bounds().Dy() != wantH {
		t.Fatalf("bounds = %v, want %dx%d", out.Bounds(), wantW, wantH)
	}
	for _, p := range [][2]int{{0, 0}, {wantW - 1, wantH - 1}, {wantW / 2, wantH / 2}} {
		if got := out.RGBAAt(p[0], p[1]); got != canvas.Background {
			t.Fatalf("pixel %v = %+v, want background", p, got)
		}
	}
}

func TestRenderWithBorder(t *testing.T) {
	src := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1)))).Snapshot()
	out := Render(src, Options{IncludeBorder: true})

	bw := BorderWidth * Scale
	wantW := canvas.Width*Scale + 2*bw
	wantH := canvas.Height*Scale + 2*bw
	if out.Bounds().Dx() != wantW || out.Bounds().Dy() != wantH {
		t.Fatalf("bounds = %v, want %dx%d", out.Bounds(), wantW, wantH)
	}

	// Matte ring is solid black, inner area is paper.
	for _, p := range [][2]int{{0, 0}, {bw - 1, bw - 1}, {wantW - 1, 0}, {0, wantH - 1}, {wantW / 2, bw / 2}} {
		if got := out.RGBAAt(p[0], p[1]); got != matte {
			t.Fatalf("matte pixel %v = %+v, want black", p, got)
		}
	}
	if got := out.RGBAAt(wantW/2, wantH/2); got != canvas.Background {
		t.Fatalf("inner pixel = %+v, want background", got)
	}
}

func TestRenderDoesNotMutateSource(t *testing.T) {
	surface := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1))))
	surface.PaintDot(brush.Pt(250, 350, 0), brush.Default())
	src := surface.Snapshot()
	before := make([]byte, len(src.Pix))
	copy(before, src.Pix)

	Render(src, Options{IncludeBorder: true})
	if !bytes.Equal(before, src.Pix) {
		t.Fatal("rendering must not write into the source snapshot")
	}
}

func TestRenderScalesInkPosition(t *testing.T) {
	surface := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1))))
	surface.PaintDot(brush.Pt(250, 350, 0), brush.Default())
	out := Render(surface.Snapshot(), Options{})

	// The dot at sheet center must appear darker than paper at the scaled
	// center of the output.
	found := false
	cx, cy := 250*Scale, 350*Scale
	for y := cy - 4*Scale; y <= cy+4*Scale && !found; y++ {
		for x := cx - 4*Scale; x <= cx+4*Scale; x++ {
			c := out.RGBAAt(x, y)
			if c.R < canvas.Background.R && c.G < canvas.Background.G {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected ink near the scaled dot position")
	}
}

func TestEncodePNGProducesPNG(t *testing.T) {
	src := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1)))).Snapshot()
	data, err := PNG(src, Options{})
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("output is missing the PNG signature")
	}
}

func TestEncodePDFProducesPDF(t *testing.T) {
	src := canvas.New(canvas.WithRand(rand.New(rand.NewSource(1)))).Snapshot()
	var buf bytes.Buffer
	if err := EncodePDF(&buf, src, Options{}); err != nil {
		t.Fatalf("EncodePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("output is missing the PDF header")
	}
}
