package theme

import "embed"

// EmbeddedThemes ships the built-in palettes with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
