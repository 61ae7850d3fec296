package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Brush.Size != 20 {
		t.Errorf("expected default brush size 20, got %g", cfg.Brush.Size)
	}
	if cfg.Brush.Density != 60 {
		t.Errorf("expected default density 60, got %d", cfg.Brush.Density)
	}
	if cfg.Brush.Contrast != 50 {
		t.Errorf("expected default contrast 50, got %d", cfg.Brush.Contrast)
	}
	if cfg.ExportBorder {
		t.Error("expected export_border default false")
	}
}

func TestParseFull(t *testing.T) {
	input := `
# Comment line
theme = dark
save_dir = /tmp/sheets
export_border = true

[brush]
size = 35.5
density = 80
contrast = 25

[notify]
save = true
copy = false
export = true

[theme.custom]
Background: #112233
ButtonText: #AABBCC
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/sheets" {
		t.Errorf("expected save_dir '/tmp/sheets', got %q", cfg.SaveDir)
	}
	if !cfg.ExportBorder {
		t.Error("expected export_border true")
	}
	if cfg.Brush.Size != 35.5 {
		t.Errorf("expected brush size 35.5, got %g", cfg.Brush.Size)
	}
	if cfg.Brush.Density != 80 {
		t.Errorf("expected density 80, got %d", cfg.Brush.Density)
	}
	if cfg.Brush.Contrast != 25 {
		t.Errorf("expected contrast 25, got %d", cfg.Brush.Contrast)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Export {
		t.Errorf("unexpected notify settings: %+v", cfg.Notify)
	}

	custom, ok := cfg.Themes["custom"]
	if !ok {
		t.Fatal("expected theme 'custom' to be parsed")
	}
	if custom.Background != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}) {
		t.Errorf("unexpected custom background: %+v", custom.Background)
	}
	if custom.ButtonText != (color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 255}) {
		t.Errorf("unexpected custom button text: %+v", custom.ButtonText)
	}
}

func TestParseClampsBrush(t *testing.T) {
	input := `
[brush]
size = 500
density = -20
contrast = 300
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Brush.Size != 80 {
		t.Errorf("expected size clamped to 80, got %g", cfg.Brush.Size)
	}
	if cfg.Brush.Density != 10 {
		t.Errorf("expected density clamped to 10, got %d", cfg.Brush.Density)
	}
	if cfg.Brush.Contrast != 100 {
		t.Errorf("expected contrast clamped to 100, got %d", cfg.Brush.Contrast)
	}
}

func TestParseInvalidValue(t *testing.T) {
	input := `
[brush]
size = huge
`
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for non-numeric brush size")
	}
}

func TestStringRoundTrip(t *testing.T) {
	cfg := New()
	cfg.Theme = "dark"
	cfg.SaveDir = "/home/test/sheets"
	cfg.ExportBorder = true
	cfg.Brush.Size = 42
	cfg.Brush.Density = 15
	cfg.Brush.Contrast = 90
	cfg.Notify.Save = true
	cfg.Notify.Export = true

	out := cfg.String()
	parsed, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse of serialized config failed: %v", err)
	}

	if parsed.Theme != cfg.Theme {
		t.Errorf("theme mismatch: %q vs %q", parsed.Theme, cfg.Theme)
	}
	if parsed.SaveDir != cfg.SaveDir {
		t.Errorf("save_dir mismatch: %q vs %q", parsed.SaveDir, cfg.SaveDir)
	}
	if parsed.ExportBorder != cfg.ExportBorder {
		t.Error("export_border mismatch")
	}
	if parsed.Brush != cfg.Brush {
		t.Errorf("brush mismatch: %+v vs %+v", parsed.Brush, cfg.Brush)
	}
	if parsed.Notify != cfg.Notify {
		t.Errorf("notify mismatch: %+v vs %+v", parsed.Notify, cfg.Notify)
	}
}
