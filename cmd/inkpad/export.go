package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/example/inkpad/internal/canvas"
	"github.com/example/inkpad/internal/export"
)

// exportCmd renders a sheet at export resolution. Without -file it exports a
// blank sheet, which is handy for producing stationery.
type exportCmd struct {
	file   string
	output string
	stdout bool
	pdf    bool
	border bool
	*root
	fs *flag.FlagSet
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)

	borderDefault := false
	saveDir := ""
	if r != nil && r.config != nil {
		borderDefault = r.config.ExportBorder
		saveDir = r.config.SaveDir
	}
	fs.StringVar(&c.file, "file", "", "sheet PNG to export (blank sheet when omitted)")
	fs.StringVar(&c.output, "output", "", "output file path (default: generated name)")
	fs.BoolVar(&c.stdout, "stdout", false, "write the exported sheet to stdout")
	fs.BoolVar(&c.pdf, "pdf", false, "export a PDF page instead of a PNG")
	fs.BoolVar(&c.border, "border", borderDefault, "surround the export with a black matte border")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	ext := "png"
	if c.pdf {
		ext = "pdf"
	}
	if c.output == "" && !c.stdout {
		c.output = defaultOutputName(saveDir, ext)
	}
	return c, nil
}

// loadSheet decodes a previously saved sheet and checks it has the logical
// sheet dimensions.
func loadSheet(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() != canvas.Width || b.Dy() != canvas.Height {
		return nil, fmt.Errorf("%s is %dx%d, expected a %dx%d sheet", path, b.Dx(), b.Dy(), canvas.Width, canvas.Height)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

func (c *exportCmd) Run() error {
	var sheet *image.RGBA
	if c.file == "" {
		sheet = canvas.New().Snapshot()
	} else {
		loaded, err := loadSheet(c.file)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		sheet = loaded
	}

	opts := export.Options{IncludeBorder: c.border}
	encode := export.EncodePNG
	if c.pdf {
		encode = export.EncodePDF
	}

	if c.stdout {
		return encode(os.Stdout, sheet, opts)
	}
	out, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := encode(out, sheet, opts); err != nil {
		if cerr := out.Close(); cerr != nil {
			return fmt.Errorf("export: %w (close: %v)", err, cerr)
		}
		return fmt.Errorf("export: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: closing %s: %w", c.output, err)
	}
	if c.root != nil && c.root.notifier != nil {
		c.root.notifier.Export(c.output, nil)
	}
	return nil
}
