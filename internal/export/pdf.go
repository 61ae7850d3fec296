package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// pdfPointsPerUnit converts logical sheet units to PDF points so the page
// matches the sheet's aspect ratio exactly.
const pdfPointsPerUnit = 1.0

// EncodePDF renders src at export resolution and embeds it as the sole image
// on a single PDF page sized to the rendered output.
func EncodePDF(w io.Writer, src *image.RGBA, opts Options) error {
	rendered := Render(src, opts)
	pngBytes, err := PNG(src, opts)
	if err != nil {
		return fmt.Errorf("render PDF page image: %w", err)
	}

	pageW := float64(rendered.Bounds().Dx()) / Scale * pdfPointsPerUnit
	pageH := float64(rendered.Bounds().Dy()) / Scale * pdfPointsPerUnit

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.AddPage()
	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("sheet", imgOpts, bytes.NewReader(pngBytes))
	doc.ImageOptions("sheet", 0, 0, pageW, pageH, false, imgOpts, 0, "")
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}
