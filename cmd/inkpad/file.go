package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// defaultOutputName returns a collision-free output path in dir. The
// extension is given without the leading dot.
func defaultOutputName(dir, ext string) string {
	name := fmt.Sprintf("inkpad-%s.%s", uuid.NewString(), ext)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// withExt swaps the extension of path for ext (given without the dot).
func withExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path + "." + ext
	}
	return strings.TrimSuffix(path, old) + "." + ext
}
