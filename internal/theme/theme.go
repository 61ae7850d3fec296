package theme

import (
	"image/color"
)

// Theme defines the color palette for the window chrome. The sheet's paper
// and ink colors are fixed by the drawing core and are deliberately not
// themeable.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window backdrop behind the sheet
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA

	// Buttons and steppers
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Bottom shortcut bar
	BarBackground color.RGBA
	BarText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextHover:       color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		BarBackground:         color.RGBA{220, 220, 220, 255},
		BarText:               color.RGBA{0, 0, 0, 255},
	}
}
