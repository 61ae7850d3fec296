package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Scale is the linear output magnification applied to the logical sheet.
const Scale = 8

// BorderWidth is the matte width in logical units; it is scaled like the
// sheet itself.
const BorderWidth = 20

// matte is the solid frame color used when a border is requested.
var matte = color.RGBA{A: 255}

// Options configures one export call.
type Options struct {
	// IncludeBorder surrounds the sheet with a solid black matte.
	IncludeBorder bool
}

// Render resamples src into a fresh high-resolution buffer. The source is
// only read; callers hand in a snapshot and may keep painting while the
// export runs.
func Render(src *image.RGBA, opts Options) *image.RGBA {
	w := src.Bounds().Dx() * Scale
	h := src.Bounds().Dy() * Scale
	if !opts.IncludeBorder {
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
		return out
	}
	bw := BorderWidth * Scale
	out := image.NewRGBA(image.Rect(0, 0, w+2*bw, h+2*bw))
	draw.Draw(out, out.Bounds(), image.NewUniform(matte), image.Point{}, draw.Src)
	inner := image.Rect(bw, bw, bw+w, bw+h)
	xdraw.CatmullRom.Scale(out, inner, src, src.Bounds(), draw.Src, nil)
	return out
}

// EncodePNG renders src and writes it as PNG.
func EncodePNG(w io.Writer, src *image.RGBA, opts Options) error {
	return png.Encode(w, Render(src, opts))
}

// PNG renders src and returns the encoded PNG bytes.
func PNG(src *image.RGBA, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, src, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
