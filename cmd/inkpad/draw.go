package main

import (
	"flag"

	"github.com/example/inkpad/internal/boardui"
	"github.com/example/inkpad/internal/brush"
	"github.com/example/inkpad/internal/canvas"
)

// drawCmd opens the interactive drawing window.
type drawCmd struct {
	output   string
	border   bool
	size     float64
	density  int
	contrast int
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)

	set := brush.Default()
	borderDefault := false
	saveDir := ""
	if r != nil && r.config != nil {
		set = r.config.Brush
		borderDefault = r.config.ExportBorder
		saveDir = r.config.SaveDir
	}
	fs.StringVar(&d.output, "output", "", "output file path for saved sheets (default: generated name)")
	fs.BoolVar(&d.border, "border", borderDefault, "surround exports with a black matte border")
	fs.Float64Var(&d.size, "size", set.Size, "brush size")
	fs.IntVar(&d.density, "density", set.Density, "ink density percentage")
	fs.IntVar(&d.contrast, "contrast", set.Contrast, "ink contrast percentage")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: d}
	}
	if d.output == "" {
		d.output = defaultOutputName(saveDir, "png")
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	set := brush.Settings{Size: d.size, Density: d.density, Contrast: d.contrast}.Clamped()
	ui := boardui.New(
		boardui.WithSurface(canvas.New()),
		boardui.WithOutput(d.output),
		boardui.WithBrush(set),
		boardui.WithBorder(d.border),
		boardui.WithTheme(d.root.activeTheme),
		boardui.WithNotifier(d.root.notifier),
	)
	ui.Run()
	return nil
}
